package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/trend"
)

// dateLayout is the DD/MM/YYYY layout plan files use for every date field,
// matching the month key format.
const dateLayout = "02/01/2006"

// planFile mirrors the YAML shape of a plan document. Settings fields are
// pointers so absent keys fall back to the plan-level defaults.
type planFile struct {
	ID     string `yaml:"id"`
	Label  string `yaml:"label"`
	Config struct {
		MinWalletDate string `yaml:"min_wallet_date"`
		MaxWalletDate string `yaml:"max_wallet_date"`
		FinalYear     int    `yaml:"final_year"`
	} `yaml:"config"`
	Faucet  faucetFile   `yaml:"faucet"`
	Garden  gardenFile   `yaml:"garden"`
	Wallets []walletFile `yaml:"wallets"`
}

type faucetFile struct {
	DailyCompound           *float64 `yaml:"daily_compound"`
	HydrateTax              *float64 `yaml:"hydrate_tax"`
	ClaimTax                *float64 `yaml:"claim_tax"`
	DepositTax              *float64 `yaml:"deposit_tax"`
	MaxPayoutCap            *float64 `yaml:"max_payout_cap"`
	MaxDepositBalance       *float64 `yaml:"max_deposit_balance"`
	TotalSupply             *float64 `yaml:"total_supply"`
	AverageGasFee           *float64 `yaml:"average_gas_fee"`
	ExchangeFeePct          *float64 `yaml:"exchange_fee_pct"`
	FeeBuffer               *float64 `yaml:"fee_buffer"`
	ClaimDays               *string  `yaml:"claim_days"`
	DefaultReinvest         *float64 `yaml:"default_reinvest"`
	DefaultHydrateFrequency *string  `yaml:"default_hydrate_frequency"`
	CurrentTokenValue       *float64 `yaml:"current_token_value"`
	TrendTargetValue        *float64 `yaml:"trend_target_value"`
	Trend                   *string  `yaml:"trend"`
	TrendPeriod             *string  `yaml:"trend_period"`
}

type gardenFile struct {
	SeedsPerPlant          *float64 `yaml:"seeds_per_plant"`
	DefaultYieldPercentage *float64 `yaml:"default_yield_percentage"`
	AverageGasFee          *float64 `yaml:"average_gas_fee"`
	ExchangeFeePct         *float64 `yaml:"exchange_fee_pct"`
	FeeBuffer              *float64 `yaml:"fee_buffer"`
	HarvestDays            *string  `yaml:"harvest_days"`
	DefaultReinvest        *float64 `yaml:"default_reinvest"`
	DefaultSowFrequency    *string  `yaml:"default_sow_frequency"`
	MaxPlantFraction       *float64 `yaml:"max_plant_fraction"`
	MinPlantFraction       *float64 `yaml:"min_plant_fraction"`
	CurrentTokenValue      *float64 `yaml:"current_token_value"`
	TrendTargetValue       *float64 `yaml:"trend_target_value"`
	Trend                  *string  `yaml:"trend"`
	TrendPeriod            *string  `yaml:"trend_period"`
}

type walletFile struct {
	ID          string                    `yaml:"id"`
	Label       string                    `yaml:"label"`
	StartDate   string                    `yaml:"start_date"`
	MonthInputs map[string]monthInputFile `yaml:"month_inputs"`
}

type monthInputFile struct {
	TokenValue       *float64          `yaml:"token_value"`
	Reinvest         *float64          `yaml:"reinvest"`
	HydrateFrequency *string           `yaml:"hydrate_frequency"`
	SowFrequency     *string           `yaml:"sow_frequency"`
	Deposits         []depositFile     `yaml:"deposits"`
	DayActions       map[string]string `yaml:"day_actions"`
	GardenValues     *struct {
		TokenValue      *float64 `yaml:"token_value"`
		PlantFraction   *float64 `yaml:"plant_fraction"`
		YieldPercentage *float64 `yaml:"yield_percentage"`
	} `yaml:"garden_values"`
}

type depositFile struct {
	ID               string  `yaml:"id"`
	DayOfMonth       int     `yaml:"day_of_month"`
	Timestamp        string  `yaml:"timestamp"`
	AmountInCurrency float64 `yaml:"amount_in_currency"`
	AmountInTokens   float64 `yaml:"amount_in_tokens"`
}

// LoadPlan reads a plan document from a YAML file and converts it to a
// domain plan seeded with default settings. Full validation happens in the
// engine, not here; loading only fails on malformed YAML and dates.
func LoadPlan(path string) (*domain.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var pf planFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse plan file: %w", err)
	}

	return pf.toDomain()
}

func (pf *planFile) toDomain() (*domain.Plan, error) {
	plan := &domain.Plan{
		PlanID:    pf.ID,
		Label:     pf.Label,
		Faucet:    domain.DefaultFaucetSettings(),
		Garden:    domain.DefaultGardenSettings(),
		CreatedAt: time.Now().UTC(),
	}
	if plan.PlanID == "" {
		plan.PlanID = uuid.NewString()
	}

	var err error
	if plan.Config.MinWalletDate, err = parseDate(pf.Config.MinWalletDate, "config.min_wallet_date"); err != nil {
		return nil, err
	}
	if plan.Config.MaxWalletDate, err = parseDate(pf.Config.MaxWalletDate, "config.max_wallet_date"); err != nil {
		return nil, err
	}
	plan.Config.FinalYear = pf.Config.FinalYear

	pf.Faucet.apply(&plan.Faucet)
	pf.Garden.apply(&plan.Garden)

	for _, wf := range pf.Wallets {
		w, err := wf.toDomain()
		if err != nil {
			return nil, err
		}
		plan.Wallets = append(plan.Wallets, w)
	}

	return plan, nil
}

func (f *faucetFile) apply(s *domain.FaucetSettings) {
	setFloat(&s.DailyCompound, f.DailyCompound)
	setFloat(&s.HydrateTax, f.HydrateTax)
	setFloat(&s.ClaimTax, f.ClaimTax)
	setFloat(&s.DepositTax, f.DepositTax)
	setFloat(&s.MaxPayoutCap, f.MaxPayoutCap)
	setFloat(&s.MaxDepositBalance, f.MaxDepositBalance)
	setFloat(&s.TotalSupply, f.TotalSupply)
	setFloat(&s.AverageGasFee, f.AverageGasFee)
	setFloat(&s.ExchangeFeePct, f.ExchangeFeePct)
	setFloat(&s.FeeBuffer, f.FeeBuffer)
	setFloat(&s.DefaultReinvest, f.DefaultReinvest)
	setFloat(&s.CurrentTokenValue, f.CurrentTokenValue)
	setFloat(&s.TrendTargetValue, f.TrendTargetValue)
	if f.ClaimDays != nil {
		s.ClaimDays = domain.ClaimDaysPolicy(*f.ClaimDays)
	}
	if f.DefaultHydrateFrequency != nil {
		s.DefaultHydrateFrequency = domain.Frequency(*f.DefaultHydrateFrequency)
	}
	if f.Trend != nil {
		s.Trend = trend.Trend(*f.Trend)
	}
	if f.TrendPeriod != nil {
		s.TrendPeriod = trend.TrendPeriod(*f.TrendPeriod)
	}
}

func (g *gardenFile) apply(s *domain.GardenSettings) {
	setFloat(&s.SeedsPerPlant, g.SeedsPerPlant)
	setFloat(&s.DefaultYieldPercentage, g.DefaultYieldPercentage)
	setFloat(&s.AverageGasFee, g.AverageGasFee)
	setFloat(&s.ExchangeFeePct, g.ExchangeFeePct)
	setFloat(&s.FeeBuffer, g.FeeBuffer)
	setFloat(&s.DefaultReinvest, g.DefaultReinvest)
	setFloat(&s.MaxPlantFraction, g.MaxPlantFraction)
	setFloat(&s.MinPlantFraction, g.MinPlantFraction)
	setFloat(&s.CurrentTokenValue, g.CurrentTokenValue)
	setFloat(&s.TrendTargetValue, g.TrendTargetValue)
	if g.HarvestDays != nil {
		s.HarvestDays = domain.ClaimDaysPolicy(*g.HarvestDays)
	}
	if g.DefaultSowFrequency != nil {
		s.DefaultSowFrequency = domain.Frequency(*g.DefaultSowFrequency)
	}
	if g.Trend != nil {
		s.Trend = trend.Trend(*g.Trend)
	}
	if g.TrendPeriod != nil {
		s.TrendPeriod = trend.TrendPeriod(*g.TrendPeriod)
	}
}

func (wf *walletFile) toDomain() (*domain.Wallet, error) {
	w := &domain.Wallet{
		WalletID: wf.ID,
		Label:    wf.Label,
	}
	if w.WalletID == "" {
		w.WalletID = uuid.NewString()
	}

	var err error
	if w.StartDate, err = parseDate(wf.StartDate, "wallet start_date"); err != nil {
		return nil, err
	}

	if len(wf.MonthInputs) > 0 {
		w.MonthInputs = make(map[domain.MonthKey]domain.MonthInput, len(wf.MonthInputs))
	}
	for keyStr, mf := range wf.MonthInputs {
		keyDate, err := parseDate(keyStr, "month input key")
		if err != nil {
			return nil, err
		}
		key := domain.NewMonthKey(keyDate)

		input, err := mf.toDomain(keyDate)
		if err != nil {
			return nil, fmt.Errorf("month %s: %w", key, err)
		}
		w.MonthInputs[key] = input
	}

	return w, nil
}

func (mf *monthInputFile) toDomain(monthStart time.Time) (domain.MonthInput, error) {
	input := domain.MonthInput{
		TokenValue: mf.TokenValue,
		Reinvest:   mf.Reinvest,
	}
	if mf.HydrateFrequency != nil {
		f := domain.Frequency(*mf.HydrateFrequency)
		input.HydrateFrequency = &f
	}
	if mf.SowFrequency != nil {
		f := domain.Frequency(*mf.SowFrequency)
		input.SowFrequency = &f
	}

	for _, df := range mf.Deposits {
		d := domain.Deposit{
			DepositID:        df.ID,
			DayOfMonth:       df.DayOfMonth,
			AmountInCurrency: df.AmountInCurrency,
			AmountInTokens:   df.AmountInTokens,
		}
		if d.DepositID == "" {
			d.DepositID = uuid.NewString()
		}
		if df.Timestamp != "" {
			ts, err := time.Parse(time.RFC3339, df.Timestamp)
			if err != nil {
				return input, fmt.Errorf("deposit timestamp %q: %w", df.Timestamp, err)
			}
			d.Timestamp = ts.UTC()
		} else {
			// Default to midday on the deposit day.
			d.Timestamp = time.Date(monthStart.Year(), monthStart.Month(), df.DayOfMonth, 12, 0, 0, 0, time.UTC)
		}
		input.Deposits = append(input.Deposits, d)
	}

	for dayStr, action := range mf.DayActions {
		date, err := parseDate(dayStr, "day action date")
		if err != nil {
			return input, err
		}
		input.DayActions = append(input.DayActions, domain.DayActionOverride{
			Date:   date,
			Action: domain.DayActionKind(action),
		})
	}

	if mf.GardenValues != nil {
		input.GardenValues = &domain.GardenMonthValues{
			TokenValue:      mf.GardenValues.TokenValue,
			PlantFraction:   mf.GardenValues.PlantFraction,
			YieldPercentage: mf.GardenValues.YieldPercentage,
		}
	}

	return input, nil
}

func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: expected DD/MM/YYYY, got %q", field, value)
	}
	return t, nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
