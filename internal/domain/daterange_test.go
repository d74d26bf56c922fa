package domain

import (
	"testing"
	"time"
)

func TestNewDateRange(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	if _, err := NewDateRange(start, end); err != nil {
		t.Errorf("valid range failed: %v", err)
	}
	if _, err := NewDateRange(start, start); err != nil {
		t.Errorf("zero-length range should be allowed: %v", err)
	}
	if _, err := NewDateRange(end, start); err == nil {
		t.Error("inverted range should fail")
	}
}

func TestDateRangeContains(t *testing.T) {
	r, err := NewDateRange(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("NewDateRange failed: %v", err)
	}

	if !r.Contains(r.Start) || !r.Contains(r.End) {
		t.Error("range should include both endpoints")
	}
	if r.Contains(r.Start.AddDate(0, 0, -1)) || r.Contains(r.End.AddDate(0, 0, 1)) {
		t.Error("dates outside the window should not be contained")
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	march, _ := NewDateRange(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	midMarchToApril, _ := NewDateRange(
		time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
	)
	may, _ := NewDateRange(
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
	)

	if !march.Overlaps(midMarchToApril) || !midMarchToApril.Overlaps(march) {
		t.Error("overlapping ranges should report overlap both ways")
	}
	if march.Overlaps(may) {
		t.Error("disjoint ranges should not overlap")
	}

	// Sharing a single endpoint counts as overlap.
	touching, _ := NewDateRange(march.End, may.Start)
	if !march.Overlaps(touching) {
		t.Error("ranges sharing an endpoint should overlap")
	}
}

func TestDateRangeDurationDays(t *testing.T) {
	r, _ := NewDateRange(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
	)
	if got := r.DurationDays(); got != 7 {
		t.Errorf("DurationDays = %d, want 7", got)
	}
}

func TestThisMonthContainsNow(t *testing.T) {
	now := time.Now()
	month := ThisMonth()
	if !month.Contains(now) {
		t.Error("ThisMonth should contain the current instant")
	}
	if month.Contains(month.Start.AddDate(0, 0, -1)) {
		t.Error("ThisMonth should not reach into the previous month")
	}

	year := ThisYear()
	if !year.Contains(now) {
		t.Error("ThisYear should contain the current instant")
	}
}
