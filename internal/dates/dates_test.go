package dates

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(t *testing.T, at string) *Clock {
	t.Helper()
	c := NewClock("America/Sao_Paulo")
	now, err := time.ParseInLocation("2006-01-02 15:04", at, c.Location())
	if err != nil {
		t.Fatalf("bad fixture time: %v", err)
	}
	return c.WithNow(func() time.Time { return now })
}

func TestClock_Parse(t *testing.T) {
	c := NewClock("America/Sao_Paulo")

	t.Run("calendar_date", func(t *testing.T) {
		got, err := c.Parse("2024-05-10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Format(Layout) != "2024-05-10" || got.Hour() != 0 {
			t.Errorf("unexpected parse result %v", got)
		}
	})

	t.Run("rfc3339_is_converted_to_local_day", func(t *testing.T) {
		// 01:30 UTC is still the previous evening in Sao Paulo.
		got, err := c.Parse("2024-05-10T01:30:00Z")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Format(Layout) != "2024-05-09" {
			t.Errorf("expected 2024-05-09, got %s", got.Format(Layout))
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := c.Parse("10/05/2024"); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}
	})
}

func TestClock_NamedRange(t *testing.T) {
	// Wednesday
	c := fixedClock(t, "2024-05-15 22:00")

	cases := []struct {
		name, from, to string
	}{
		{RangeToday, "2024-05-15", "2024-05-16"},
		{RangeWeek, "2024-05-12", "2024-05-19"},
		{RangeMonth, "2024-05-01", "2024-06-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := c.NamedRange(tc.name)
			if !ok {
				t.Fatal("expected range to resolve")
			}
			if r.From.Format(Layout) != tc.from || r.To.Format(Layout) != tc.to {
				t.Errorf("expected [%s, %s), got [%s, %s)", tc.from, tc.to, r.From.Format(Layout), r.To.Format(Layout))
			}
		})
	}

	t.Run("unknown_name", func(t *testing.T) {
		if _, ok := c.NamedRange("year"); ok {
			t.Error("expected unknown range to be rejected")
		}
	})
}
