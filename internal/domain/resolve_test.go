package domain

import (
	"testing"
	"time"
)

func TestResolveReinvest(t *testing.T) {
	override := 0.4

	if got := ResolveReinvest(nil, 0.8); got != 0.8 {
		t.Errorf("Nil input: got %v, want plan default 0.8", got)
	}
	if got := ResolveReinvest(&MonthInput{}, 0.8); got != 0.8 {
		t.Errorf("Empty input: got %v, want plan default 0.8", got)
	}
	if got := ResolveReinvest(&MonthInput{Reinvest: &override}, 0.8); got != 0.4 {
		t.Errorf("Override: got %v, want 0.4", got)
	}
}

func TestResolveHydrateFrequency(t *testing.T) {
	weekly := EveryWeek

	if got := ResolveHydrateFrequency(nil, EveryOtherDay); got != EveryOtherDay {
		t.Errorf("Nil input: got %v, want plan default", got)
	}
	if got := ResolveHydrateFrequency(&MonthInput{HydrateFrequency: &weekly}, EveryOtherDay); got != EveryWeek {
		t.Errorf("Override: got %v, want everyWeek", got)
	}
	// An invalid plan default falls through to the global default.
	if got := ResolveHydrateFrequency(nil, Frequency("")); got != EveryDay {
		t.Errorf("Invalid plan default: got %v, want everyDay", got)
	}
}

func TestResolveTokenValue(t *testing.T) {
	custom := 42.0

	if got := ResolveTokenValue(nil); got != nil {
		t.Errorf("Nil input: got %v, want nil", got)
	}
	if got := ResolveTokenValue(&MonthInput{}); got != nil {
		t.Errorf("No override: got %v, want nil", got)
	}
	got := ResolveTokenValue(&MonthInput{TokenValue: &custom})
	if got == nil || *got != 42 {
		t.Errorf("Override: got %v, want 42", got)
	}
}

func TestResolveGardenOverrides(t *testing.T) {
	lpValue := 18.0
	fraction := 0.55
	yield := 0.025
	gv := &GardenMonthValues{
		TokenValue:      &lpValue,
		PlantFraction:   &fraction,
		YieldPercentage: &yield,
	}
	mi := &MonthInput{GardenValues: gv}

	if got := ResolveGardenTokenValue(mi); got == nil || *got != 18 {
		t.Errorf("Garden token value: got %v, want 18", got)
	}
	if got := ResolvePlantFraction(mi); got == nil || *got != 0.55 {
		t.Errorf("Plant fraction: got %v, want 0.55", got)
	}
	if got := ResolveGardenYield(mi, 0.03); got != 0.025 {
		t.Errorf("Yield: got %v, want 0.025", got)
	}

	if got := ResolveGardenTokenValue(&MonthInput{}); got != nil {
		t.Errorf("No garden values: got %v, want nil", got)
	}
	if got := ResolveGardenYield(&MonthInput{}, 0.03); got != 0.03 {
		t.Errorf("No garden values: got %v, want plan default 0.03", got)
	}
}

func TestDayAction(t *testing.T) {
	mi := &MonthInput{
		DayActions: []DayActionOverride{
			{Date: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), Action: DayActionHarvest},
			{Date: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), Action: DayActionNone},
		},
	}

	action, ok := DayAction(mi, 2024, 6, 12)
	if !ok || action != DayActionHarvest {
		t.Errorf("Forced harvest: got (%v, %v)", action, ok)
	}
	action, ok = DayAction(mi, 2024, 6, 20)
	if !ok || action != DayActionNone {
		t.Errorf("Forced none: got (%v, %v)", action, ok)
	}
	if _, ok := DayAction(mi, 2024, 6, 13); ok {
		t.Error("Unforced day reported an action")
	}
	if _, ok := DayAction(nil, 2024, 6, 12); ok {
		t.Error("Nil input reported an action")
	}
}

func TestDepositsForDay(t *testing.T) {
	mi := &MonthInput{
		Deposits: []Deposit{
			{DepositID: "a", DayOfMonth: 5, AmountInCurrency: 100},
			{DepositID: "b", DayOfMonth: 5, AmountInTokens: 10},
			{DepositID: "c", DayOfMonth: 20, AmountInCurrency: 50},
		},
	}

	got := DepositsForDay(mi, 5)
	if len(got) != 2 {
		t.Fatalf("Day 5: got %d deposits, want 2", len(got))
	}
	if got[0].DepositID != "a" || got[1].DepositID != "b" {
		t.Errorf("Day 5 order: got %s, %s", got[0].DepositID, got[1].DepositID)
	}
	if got := DepositsForDay(mi, 6); len(got) != 0 {
		t.Errorf("Day 6: got %d deposits, want 0", len(got))
	}
	if got := DepositsForDay(nil, 5); got != nil {
		t.Errorf("Nil input: got %v, want nil", got)
	}
}
