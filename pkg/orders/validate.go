package orders

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/example/ordercrm/pkg/models"
)

// NormalizeQuery applies defaults to absent query fields and validates the
// rest. It returns the normalized copy; the input is not modified.
func NormalizeQuery(q models.OrderQuery) (models.OrderQuery, error) {
	if q.Page == 0 {
		q.Page = models.DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = models.DefaultLimit
	}
	if q.SortBy == "" {
		q.SortBy = models.DefaultSortBy
	}
	if q.SortOrder == "" {
		q.SortOrder = models.DefaultSortOrder
	}

	if q.Page < 1 {
		return q, &ValidationError{Field: "page", Message: "must be at least 1"}
	}
	if q.Limit < 1 || q.Limit > models.MaxLimit {
		return q, &ValidationError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", models.MaxLimit)}
	}
	switch q.SortBy {
	case models.SortByDate, models.SortByCustomer, models.SortByAmount, models.SortByCreatedAt:
	default:
		return q, &ValidationError{Field: "sortBy", Message: "must be one of date, customer, amount, createdAt"}
	}
	if q.SortOrder != models.SortAsc && q.SortOrder != models.SortDesc {
		return q, &ValidationError{Field: "sortOrder", Message: "must be asc or desc"}
	}

	if q.DateFrom != "" {
		if _, err := time.Parse(models.DateLayout, q.DateFrom); err != nil {
			return q, &ValidationError{Field: "dateFrom", Message: "must be a YYYY-MM-DD date"}
		}
	}
	if q.DateTo != "" {
		if _, err := time.Parse(models.DateLayout, q.DateTo); err != nil {
			return q, &ValidationError{Field: "dateTo", Message: "must be a YYYY-MM-DD date"}
		}
	}
	if q.DateFrom != "" && q.DateTo != "" && q.DateFrom > q.DateTo {
		return q, ErrInvalidDateRange
	}

	q.Search = strings.TrimSpace(q.Search)

	return q, nil
}

// ValidateInput checks a create payload, normalizes enum casing, and
// applies the default status.
func ValidateInput(in *models.OrderInput) error {
	in.Customer = strings.TrimSpace(in.Customer)
	if l := utf8.RuneCountInString(in.Customer); l < 1 || l > 100 {
		return &ValidationError{Field: "customer", Message: "must be 1-100 characters"}
	}

	category, ok := models.CanonicalCategory(in.Category)
	if !ok {
		return &ValidationError{Field: "category", Message: "unknown category"}
	}
	in.Category = category

	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return &ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"}
	}

	source, ok := models.CanonicalSource(in.Source)
	if !ok {
		return &ValidationError{Field: "source", Message: "unknown source"}
	}
	in.Source = source

	in.Location = strings.TrimSpace(in.Location)
	if l := utf8.RuneCountInString(in.Location); l < 1 || l > 100 {
		return &ValidationError{Field: "geo", Message: "must be 1-100 characters"}
	}

	if in.Amount != nil && *in.Amount < 0 {
		return &ValidationError{Field: "amount", Message: "must not be negative"}
	}

	if in.Status == "" {
		in.Status = models.StatusPending
	} else if !models.ValidStatus(in.Status) {
		return &ValidationError{Field: "status", Message: "unknown status"}
	}

	return nil
}

// ValidateUpdate checks the provided fields of a partial update and
// normalizes enum casing in place.
func ValidateUpdate(u *models.OrderUpdate) error {
	if u.Customer != nil {
		c := strings.TrimSpace(*u.Customer)
		if l := utf8.RuneCountInString(c); l < 1 || l > 100 {
			return &ValidationError{Field: "customer", Message: "must be 1-100 characters"}
		}
		u.Customer = &c
	}
	if u.Category != nil {
		category, ok := models.CanonicalCategory(*u.Category)
		if !ok {
			return &ValidationError{Field: "category", Message: "unknown category"}
		}
		u.Category = &category
	}
	if u.Date != nil {
		if _, err := time.Parse(models.DateLayout, *u.Date); err != nil {
			return &ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"}
		}
	}
	if u.Source != nil {
		source, ok := models.CanonicalSource(*u.Source)
		if !ok {
			return &ValidationError{Field: "source", Message: "unknown source"}
		}
		u.Source = &source
	}
	if u.Location != nil {
		l := strings.TrimSpace(*u.Location)
		if n := utf8.RuneCountInString(l); n < 1 || n > 100 {
			return &ValidationError{Field: "geo", Message: "must be 1-100 characters"}
		}
		u.Location = &l
	}
	if u.Amount != nil && *u.Amount < 0 {
		return &ValidationError{Field: "amount", Message: "must not be negative"}
	}
	if u.Status != nil && !models.ValidStatus(*u.Status) {
		return &ValidationError{Field: "status", Message: "unknown status"}
	}
	return nil
}
