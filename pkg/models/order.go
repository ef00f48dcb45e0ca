package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used by Order.Date and the
// dateFrom/dateTo query parameters. Lexicographic order on this layout
// matches chronological order.
const DateLayout = "2006-01-02"

// Order statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

var Statuses = []string{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

var Categories = []string{
	"Electronics",
	"Clothing",
	"Food",
	"Books",
	"Toys",
	"Furniture",
	"Beauty",
	"Other",
}

var Sources = []string{
	"Website",
	"Mobile",
	"Store",
	"Phone",
	"Marketplace",
}

type Order struct {
	ID        string    `bson:"_id" json:"id"`
	TenantID  string    `bson:"tenant_id" json:"-"`
	Customer  string    `bson:"customer" json:"customer"`
	Category  string    `bson:"category" json:"category"`
	Date      string    `bson:"date" json:"date"`
	Source    string    `bson:"source" json:"source"`
	Location  string    `bson:"location" json:"geo"`
	Amount    *float64  `bson:"amount,omitempty" json:"amount,omitempty"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// AmountOrZero returns the order amount, with an absent amount counting
// as zero for sorting and aggregation.
func (o *Order) AmountOrZero() float64 {
	if o.Amount == nil {
		return 0
	}
	return *o.Amount
}

// OrderInput is the payload for creating an order.
type OrderInput struct {
	Customer string   `json:"customer"`
	Category string   `json:"category"`
	Date     string   `json:"date"`
	Source   string   `json:"source"`
	Location string   `json:"geo"`
	Amount   *float64 `json:"amount"`
	Status   string   `json:"status"`
}

// OrderUpdate is a partial update; nil fields are left unchanged.
type OrderUpdate struct {
	Customer *string  `json:"customer"`
	Category *string  `json:"category"`
	Date     *string  `json:"date"`
	Source   *string  `json:"source"`
	Location *string  `json:"geo"`
	Amount   *float64 `json:"amount"`
	Status   *string  `json:"status"`
}

// CanonicalCategory maps a case-insensitive category name to its canonical
// form, or returns false when the value is not a known category.
func CanonicalCategory(v string) (string, bool) {
	return canonical(Categories, v)
}

func CanonicalSource(v string) (string, bool) {
	return canonical(Sources, v)
}

func ValidStatus(v string) bool {
	for _, s := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func canonical(set []string, v string) (string, bool) {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return s, true
		}
	}
	return "", false
}
