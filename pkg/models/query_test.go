package models

import "testing"

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int64
		hasNext    bool
		hasPrev    bool
	}{
		{"empty set", 1, 10, 0, 0, false, false},
		{"exact fit", 1, 10, 10, 1, false, false},
		{"remainder rounds up", 1, 10, 11, 2, true, false},
		{"middle page", 2, 10, 35, 4, true, true},
		{"last page", 4, 10, 35, 4, false, true},
		{"out of range page", 9, 10, 35, 4, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			if p.TotalPages != tc.totalPages {
				t.Errorf("totalPages=%d, want %d", p.TotalPages, tc.totalPages)
			}
			if p.HasNext != tc.hasNext {
				t.Errorf("hasNext=%v, want %v", p.HasNext, tc.hasNext)
			}
			if p.HasPrev != tc.hasPrev {
				t.Errorf("hasPrev=%v, want %v", p.HasPrev, tc.hasPrev)
			}
		})
	}
}
