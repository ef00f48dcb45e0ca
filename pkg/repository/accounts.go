package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/example/ordercrm/pkg/config"
	"github.com/example/ordercrm/pkg/models"
)

// AccountRepository stores tenant accounts in MySQL. The gateway resolves
// the tenant scope of every request through it.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(cfg *config.MySQLConfig) (*AccountRepository, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.AutoMigrate(&models.Account{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &AccountRepository{db: db}, nil
}

// GetByAPIKey returns the account owning the key, or nil when unknown.
func (r *AccountRepository) GetByAPIKey(ctx context.Context, apiKey string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}
