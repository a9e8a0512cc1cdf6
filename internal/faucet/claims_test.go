package faucet

import (
	"testing"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
)

func TestShouldClaimOnDay(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		policy   domain.ClaimDaysPolicy
		reinvest float64
		want     bool
	}{
		{
			name:     "start of month half reinvest last claim day",
			date:     time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			policy:   domain.ClaimStartOfMonth,
			reinvest: 0.5,
			want:     true,
		},
		{
			name:     "start of month half reinvest first compound day",
			date:     time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC),
			policy:   domain.ClaimStartOfMonth,
			reinvest: 0.5,
			want:     false,
		},
		{
			name:     "end of month half reinvest last compound day",
			date:     time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			policy:   domain.ClaimEndOfMonth,
			reinvest: 0.5,
			want:     false,
		},
		{
			name:     "end of month half reinvest first claim day",
			date:     time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC),
			policy:   domain.ClaimEndOfMonth,
			reinvest: 0.5,
			want:     true,
		},
		{
			name:     "full reinvest never claims",
			date:     time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			policy:   domain.ClaimStartOfMonth,
			reinvest: 1,
			want:     false,
		},
		{
			name:     "zero reinvest claims every day",
			date:     time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
			policy:   domain.ClaimStartOfMonth,
			reinvest: 0,
			want:     true,
		},
		{
			name:     "leap february rounds half a day up",
			date:     time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
			policy:   domain.ClaimStartOfMonth,
			reinvest: 0.5,
			want:     true,
		},
		{
			name:     "leap february day past the rounded block",
			date:     time.Date(2024, time.February, 16, 0, 0, 0, 0, time.UTC),
			policy:   domain.ClaimStartOfMonth,
			reinvest: 0.5,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldClaimOnDay(tt.date, tt.policy, tt.reinvest)
			if got != tt.want {
				t.Errorf("ShouldClaimOnDay(%s, %s, %v) = %v, want %v",
					tt.date.Format("2006-01-02"), tt.policy, tt.reinvest, got, tt.want)
			}
		})
	}
}

func TestWhaleTaxRate(t *testing.T) {
	tests := []struct {
		fraction float64
		want     float64
	}{
		{0, 0},
		{0.004, 0},
		{0.005, 0.01},
		{0.014, 0.01},
		{0.023, 0.02},
		{0.095, 0.10},
		{0.10, 0.10},
		{0.50, 0.10},
		{-0.02, 0},
	}

	for _, tt := range tests {
		if got := WhaleTaxRate(tt.fraction); got != tt.want {
			t.Errorf("WhaleTaxRate(%v) = %v, want %v", tt.fraction, got, tt.want)
		}
	}
}

func TestHydrateDue(t *testing.T) {
	for day := 0; day < 14; day++ {
		if !hydrateDue(day, domain.EveryDay) {
			t.Errorf("everyDay: day %d should be due", day)
		}
		if !hydrateDue(day, domain.MultipleTimesADay) {
			t.Errorf("multipleTimesADay: day %d should be due", day)
		}
		if got, want := hydrateDue(day, domain.EveryOtherDay), day%2 == 0; got != want {
			t.Errorf("everyOtherDay: day %d due = %v, want %v", day, got, want)
		}
		if got, want := hydrateDue(day, domain.EveryWeek), day%7 == 0; got != want {
			t.Errorf("everyWeek: day %d due = %v, want %v", day, got, want)
		}
	}
}
