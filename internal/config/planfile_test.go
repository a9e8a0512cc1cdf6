package config

import (
	"testing"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/trend"
)

const testPlanYAML = `
id: plan-1
label: Example plan
config:
  min_wallet_date: 01/01/2022
  max_wallet_date: 31/12/2026
  final_year: 2026
faucet:
  max_payout_cap: 50000
  default_reinvest: 0.6
  claim_days: endOfMonth
  trend: downtrend
  trend_period: twoYears
garden:
  seeds_per_plant: 100000
  default_sow_frequency: everyOtherDay
wallets:
  - id: wallet-1
    label: Main
    start_date: 15/06/2024
    month_inputs:
      01/07/2024:
        token_value: 42.5
        reinvest: 0.8
        hydrate_frequency: everyWeek
        deposits:
          - id: dep-1
            day_of_month: 3
            amount_in_currency: 250
          - day_of_month: 10
            timestamp: 2024-07-10T09:30:00Z
            amount_in_tokens: 5
        day_actions:
          20/07/2024: harvest
        garden_values:
          token_value: 18
          plant_fraction: 0.55
`

func TestLoadPlan(t *testing.T) {
	path := writeFile(t, "plan.yaml", testPlanYAML)

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}

	if plan.PlanID != "plan-1" {
		t.Errorf("PlanID = %q, want plan-1", plan.PlanID)
	}
	if want := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC); !plan.Config.MinWalletDate.Equal(want) {
		t.Errorf("MinWalletDate = %v, want %v", plan.Config.MinWalletDate, want)
	}
	if plan.Config.FinalYear != 2026 {
		t.Errorf("FinalYear = %d, want 2026", plan.Config.FinalYear)
	}

	// Overridden faucet fields apply on top of the defaults.
	if plan.Faucet.MaxPayoutCap != 50000 {
		t.Errorf("MaxPayoutCap = %v, want 50000", plan.Faucet.MaxPayoutCap)
	}
	if plan.Faucet.DefaultReinvest != 0.6 {
		t.Errorf("DefaultReinvest = %v, want 0.6", plan.Faucet.DefaultReinvest)
	}
	if plan.Faucet.ClaimDays != domain.ClaimEndOfMonth {
		t.Errorf("ClaimDays = %q, want endOfMonth", plan.Faucet.ClaimDays)
	}
	if plan.Faucet.Trend != trend.Downtrend || plan.Faucet.TrendPeriod != trend.TwoYears {
		t.Errorf("trend = %q/%q, want downtrend/twoYears", plan.Faucet.Trend, plan.Faucet.TrendPeriod)
	}
	if want := domain.DefaultFaucetSettings().DailyCompound; plan.Faucet.DailyCompound != want {
		t.Errorf("DailyCompound = %v, want the default %v", plan.Faucet.DailyCompound, want)
	}

	if plan.Garden.SeedsPerPlant != 100000 {
		t.Errorf("SeedsPerPlant = %v, want 100000", plan.Garden.SeedsPerPlant)
	}
	if plan.Garden.DefaultSowFrequency != domain.EveryOtherDay {
		t.Errorf("DefaultSowFrequency = %q, want everyOtherDay", plan.Garden.DefaultSowFrequency)
	}

	if len(plan.Wallets) != 1 {
		t.Fatalf("got %d wallets, want 1", len(plan.Wallets))
	}
	w := plan.Wallets[0]
	if w.WalletID != "wallet-1" {
		t.Errorf("WalletID = %q, want wallet-1", w.WalletID)
	}
	if want := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC); !w.StartDate.Equal(want) {
		t.Errorf("StartDate = %v, want %v", w.StartDate, want)
	}

	input, ok := w.MonthInputs["01/07/2024"]
	if !ok {
		t.Fatalf("missing month input, got keys %v", w.MonthInputs)
	}
	if input.TokenValue == nil || *input.TokenValue != 42.5 {
		t.Errorf("TokenValue = %v, want 42.5", input.TokenValue)
	}
	if input.Reinvest == nil || *input.Reinvest != 0.8 {
		t.Errorf("Reinvest = %v, want 0.8", input.Reinvest)
	}
	if input.HydrateFrequency == nil || *input.HydrateFrequency != domain.EveryWeek {
		t.Errorf("HydrateFrequency = %v, want everyWeek", input.HydrateFrequency)
	}

	if len(input.Deposits) != 2 {
		t.Fatalf("got %d deposits, want 2", len(input.Deposits))
	}
	first := input.Deposits[0]
	if first.DepositID != "dep-1" || first.AmountInCurrency != 250 {
		t.Errorf("first deposit = %+v", first)
	}
	// No explicit timestamp defaults to midday on the deposit day.
	if want := time.Date(2024, time.July, 3, 12, 0, 0, 0, time.UTC); !first.Timestamp.Equal(want) {
		t.Errorf("first deposit timestamp = %v, want %v", first.Timestamp, want)
	}
	second := input.Deposits[1]
	if second.DepositID == "" {
		t.Error("deposit without an id should get a generated one")
	}
	if want := time.Date(2024, time.July, 10, 9, 30, 0, 0, time.UTC); !second.Timestamp.Equal(want) {
		t.Errorf("second deposit timestamp = %v, want %v", second.Timestamp, want)
	}

	if len(input.DayActions) != 1 {
		t.Fatalf("got %d day actions, want 1", len(input.DayActions))
	}
	action := input.DayActions[0]
	if action.Action != domain.DayActionHarvest {
		t.Errorf("day action = %q, want harvest", action.Action)
	}
	if want := time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC); !action.Date.Equal(want) {
		t.Errorf("day action date = %v, want %v", action.Date, want)
	}

	if input.GardenValues == nil {
		t.Fatal("missing garden values")
	}
	if input.GardenValues.TokenValue == nil || *input.GardenValues.TokenValue != 18 {
		t.Errorf("garden token value = %v, want 18", input.GardenValues.TokenValue)
	}
	if input.GardenValues.PlantFraction == nil || *input.GardenValues.PlantFraction != 0.55 {
		t.Errorf("plant fraction = %v, want 0.55", input.GardenValues.PlantFraction)
	}
	if input.GardenValues.YieldPercentage != nil {
		t.Error("absent yield percentage should stay nil")
	}

	// The loaded plan passes full validation.
	if plan.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestLoadPlanGeneratesIDs(t *testing.T) {
	path := writeFile(t, "plan.yaml", `
config:
  min_wallet_date: 01/01/2022
  max_wallet_date: 31/12/2026
  final_year: 2026
wallets:
  - start_date: 01/06/2024
`)

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}
	if plan.PlanID == "" {
		t.Error("plan without an id should get a generated one")
	}
	if plan.Wallets[0].WalletID == "" {
		t.Error("wallet without an id should get a generated one")
	}
}

func TestLoadPlanBadDates(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing wallet date bounds",
			yaml: "config:\n  final_year: 2026\n",
		},
		{
			name: "US-style start date",
			yaml: `
config:
  min_wallet_date: 01/01/2022
  max_wallet_date: 31/12/2026
  final_year: 2026
wallets:
  - start_date: 06/15/2024
`,
		},
		{
			name: "bad deposit timestamp",
			yaml: `
config:
  min_wallet_date: 01/01/2022
  max_wallet_date: 31/12/2026
  final_year: 2026
wallets:
  - start_date: 15/06/2024
    month_inputs:
      01/07/2024:
        deposits:
          - day_of_month: 3
            timestamp: "July 3rd"
            amount_in_tokens: 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "plan.yaml", tt.yaml)
			if _, err := LoadPlan(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
