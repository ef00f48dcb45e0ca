package orders

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/ordercrm/pkg/models"
)

func TestNormalizeQueryDefaults(t *testing.T) {
	q, err := NormalizeQuery(models.OrderQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Page != 1 || q.Limit != 10 {
		t.Errorf("got page=%d limit=%d, want 1/10", q.Page, q.Limit)
	}
	if q.SortBy != models.SortByDate || q.SortOrder != models.SortDesc {
		t.Errorf("got sort %s/%s, want date/desc", q.SortBy, q.SortOrder)
	}
}

func TestNormalizeQueryRejects(t *testing.T) {
	cases := []struct {
		name  string
		query models.OrderQuery
		field string
	}{
		{"negative page", models.OrderQuery{Page: -1}, "page"},
		{"limit too high", models.OrderQuery{Limit: 101}, "limit"},
		{"limit negative", models.OrderQuery{Limit: -5}, "limit"},
		{"unknown sortBy", models.OrderQuery{SortBy: "status"}, "sortBy"},
		{"unknown sortOrder", models.OrderQuery{SortOrder: "down"}, "sortOrder"},
		{"malformed dateFrom", models.OrderQuery{DateFrom: "01-02-2025"}, "dateFrom"},
		{"malformed dateTo", models.OrderQuery{DateTo: "2025/01/02"}, "dateTo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeQuery(tc.query)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("got %v, want ValidationError", err)
			}
			if ve.Field != tc.field {
				t.Errorf("got field %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestNormalizeQueryInvalidDateRange(t *testing.T) {
	_, err := NormalizeQuery(models.OrderQuery{
		DateFrom: "2025-02-01",
		DateTo:   "2025-01-01",
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("got %v, want ErrInvalidDateRange", err)
	}
}

func TestNormalizeQueryAcceptsEqualBounds(t *testing.T) {
	_, err := NormalizeQuery(models.OrderQuery{
		DateFrom: "2025-01-01",
		DateTo:   "2025-01-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateInput(t *testing.T) {
	amount := 10.0
	in := models.OrderInput{
		Customer: "  Alice  ",
		Category: "electronics",
		Date:     "2025-03-01",
		Source:   "WEBSITE",
		Location: "Berlin",
		Amount:   &amount,
	}
	if err := ValidateInput(&in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Customer != "Alice" {
		t.Errorf("customer not trimmed: %q", in.Customer)
	}
	if in.Category != "Electronics" || in.Source != "Website" {
		t.Errorf("enums not canonicalized: %q/%q", in.Category, in.Source)
	}
	if in.Status != models.StatusPending {
		t.Errorf("got status %q, want default pending", in.Status)
	}
}

func TestValidateInputRejects(t *testing.T) {
	negative := -1.0
	cases := []struct {
		name  string
		input models.OrderInput
		field string
	}{
		{"empty customer", models.OrderInput{Category: "Food", Date: "2025-01-01", Source: "Store", Location: "x"}, "customer"},
		{"unknown category", models.OrderInput{Customer: "a", Category: "Cars", Date: "2025-01-01", Source: "Store", Location: "x"}, "category"},
		{"bad date", models.OrderInput{Customer: "a", Category: "Food", Date: "Jan 1", Source: "Store", Location: "x"}, "date"},
		{"unknown source", models.OrderInput{Customer: "a", Category: "Food", Date: "2025-01-01", Source: "fax", Location: "x"}, "source"},
		{"empty location", models.OrderInput{Customer: "a", Category: "Food", Date: "2025-01-01", Source: "Store"}, "geo"},
		{"negative amount", models.OrderInput{Customer: "a", Category: "Food", Date: "2025-01-01", Source: "Store", Location: "x", Amount: &negative}, "amount"},
		{"unknown status", models.OrderInput{Customer: "a", Category: "Food", Date: "2025-01-01", Source: "Store", Location: "x", Status: "lost"}, "status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateInput(&tc.input)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("got %v, want ValidationError", err)
			}
			if ve.Field != tc.field {
				t.Errorf("got field %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestValidateInputCountsRunes(t *testing.T) {
	// Length limits are in characters, not bytes: 40 CJK characters are
	// 120 bytes but still well within the 100-character limit.
	in := models.OrderInput{
		Customer: strings.Repeat("株", 40),
		Category: "Food",
		Date:     "2025-01-01",
		Source:   "Store",
		Location: "Berlin",
	}
	if err := ValidateInput(&in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in.Customer = strings.Repeat("株", 101)
	err := ValidateInput(&in)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "customer" {
		t.Fatalf("got %v, want customer ValidationError", err)
	}
}

func TestValidateUpdatePartial(t *testing.T) {
	if err := ValidateUpdate(&models.OrderUpdate{}); err != nil {
		t.Fatalf("empty update should be valid, got %v", err)
	}

	status := "shipped"
	u := models.OrderUpdate{Status: &status}
	if err := ValidateUpdate(&u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := "teleported"
	u = models.OrderUpdate{Status: &bad}
	if err := ValidateUpdate(&u); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
