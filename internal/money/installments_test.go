package money

import (
	"errors"
	"testing"
	"time"
)

func sum(parts []int64) int64 {
	var s int64
	for _, p := range parts {
		s += p
	}
	return s
}

func TestSplitInstallments(t *testing.T) {
	t.Run("remainder_goes_to_first", func(t *testing.T) {
		parts, err := SplitInstallments(10000, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []int64{3334, 3333, 3333}
		for i := range want {
			if parts[i] != want[i] {
				t.Errorf("part %d: expected %d, got %d", i, want[i], parts[i])
			}
		}
	})

	t.Run("even_split", func(t *testing.T) {
		parts, err := SplitInstallments(1000, 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, p := range parts {
			if p != 250 {
				t.Errorf("part %d: expected 250, got %d", i, p)
			}
		}
	})

	t.Run("sum_is_exact_and_first_is_largest", func(t *testing.T) {
		for total := int64(1); total <= 2000; total += 37 {
			for count := 2; count <= 13 && int64(count) <= total; count++ {
				parts, err := SplitInstallments(total, count)
				if err != nil {
					t.Fatalf("unexpected error for %d/%d: %v", total, count, err)
				}
				if len(parts) != count {
					t.Fatalf("expected %d parts, got %d", count, len(parts))
				}
				if sum(parts) != total {
					t.Fatalf("sum %d != total %d (count %d)", sum(parts), total, count)
				}
				for i := 1; i < count; i++ {
					if parts[i] <= 0 {
						t.Fatalf("part %d of %d/%d is not positive", i, total, count)
					}
					if parts[0] < parts[i] {
						t.Fatalf("first part %d smaller than part %d (%d)", parts[0], i, parts[i])
					}
				}
			}
		}
	})

	t.Run("rejects_small_count", func(t *testing.T) {
		if _, err := SplitInstallments(100, 1); !errors.Is(err, ErrInstallmentCount) {
			t.Errorf("expected ErrInstallmentCount, got %v", err)
		}
	})

	t.Run("rejects_total_below_count", func(t *testing.T) {
		if _, err := SplitInstallments(2, 3); !errors.Is(err, ErrInstallmentSmall) {
			t.Errorf("expected ErrInstallmentSmall, got %v", err)
		}
		parts, err := SplitInstallments(3, 3)
		if err != nil || parts[0] != 1 || parts[2] != 1 {
			t.Errorf("expected one centavo each, got %v (%v)", parts, err)
		}
	})

	t.Run("rejects_non_positive_total", func(t *testing.T) {
		if _, err := SplitInstallments(0, 3); !errors.Is(err, ErrInstallmentTotal) {
			t.Errorf("expected ErrInstallmentTotal, got %v", err)
		}
	})
}

func TestInstallmentSchedule(t *testing.T) {
	origin := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	t.Run("monthly_clamps_to_month_end", func(t *testing.T) {
		dates, err := InstallmentSchedule(origin, 4, PeriodMonths)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}
		for i, w := range want {
			if got := dates[i].Format("2006-01-02"); got != w {
				t.Errorf("date %d: expected %s, got %s", i, w, got)
			}
		}
	})

	t.Run("weekly_adds_seven_days", func(t *testing.T) {
		dates, err := InstallmentSchedule(origin, 3, PeriodWeeks)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"2024-01-31", "2024-02-07", "2024-02-14"}
		for i, w := range want {
			if got := dates[i].Format("2006-01-02"); got != w {
				t.Errorf("date %d: expected %s, got %s", i, w, got)
			}
		}
	})

	t.Run("unknown_period", func(t *testing.T) {
		if _, err := InstallmentSchedule(origin, 2, Period("days")); !errors.Is(err, ErrInstallmentPeriod) {
			t.Errorf("expected ErrInstallmentPeriod, got %v", err)
		}
	})
}

func TestBuildPlan(t *testing.T) {
	origin := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	plan, err := BuildPlan(10000, 3, PeriodMonths, origin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan[0].Number != 1 || plan[0].Amount != 3334 {
		t.Errorf("unexpected first installment %+v", plan[0])
	}
	if got := plan[2].Date.Format("2006-01-02"); got != "2024-05-15" {
		t.Errorf("expected 2024-05-15, got %s", got)
	}
}
