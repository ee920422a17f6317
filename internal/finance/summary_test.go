/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package finance

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/utils"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 12, 0, 0, 0, time.UTC)
}

func mustMonth(t *testing.T, s string) utils.YearMonth {
	t.Helper()
	ym, err := utils.ParseYearMonth(s)
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	return ym
}

func TestSummarizeScenario(t *testing.T) {
	income := []models.IncomeEntry{{Amount: d("1000"), Date: day(2024, 5, 10)}}
	spending := []models.SpendingEntry{{Amount: d("200"), Category: "Gıda", Date: day(2024, 5, 15)}}
	recurring := []models.RecurringExpense{{Amount: d("300"), Category: "Kira", IsActive: true, PaidMonths: []string{"2024-05"}}}

	s := Summarize(mustMonth(t, "2024-05"), income, spending, recurring, time.UTC)

	if !s.TotalIncome.Equal(d("1000")) {
		t.Fatalf("totalIncome = %s", s.TotalIncome)
	}
	if !s.TotalSpending.Equal(d("500")) {
		t.Fatalf("totalSpending = %s", s.TotalSpending)
	}
	if !s.NetBalance.Equal(d("500")) {
		t.Fatalf("netBalance = %s", s.NetBalance)
	}
	if len(s.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %+v", s.Categories)
	}
	if s.Categories[0].Category != "Kira" || !s.Categories[0].Amount.Equal(d("300")) || s.Categories[0].Percentage != 60 {
		t.Fatalf("unexpected first category %+v", s.Categories[0])
	}
	if s.Categories[1].Category != "Gıda" || !s.Categories[1].Amount.Equal(d("200")) || s.Categories[1].Percentage != 40 {
		t.Fatalf("unexpected second category %+v", s.Categories[1])
	}
}

func TestSummarizeMonthBoundariesInclusive(t *testing.T) {
	loc := time.FixedZone("TRT", 3*60*60)
	ym := mustMonth(t, "2024-05")
	start, end := ym.Range(loc)
	income := []models.IncomeEntry{
		{Amount: d("1"), Date: start},
		{Amount: d("2"), Date: end},
		{Amount: d("4"), Date: start.Add(-time.Nanosecond)},
		{Amount: d("8"), Date: end.Add(time.Nanosecond)},
	}
	s := Summarize(ym, income, nil, nil, loc)
	if !s.TotalIncome.Equal(d("3")) {
		t.Fatalf("expected only in-month entries (3), got %s", s.TotalIncome)
	}
}

func TestSummarizeInactiveRecurringContributesNothing(t *testing.T) {
	recurring := []models.RecurringExpense{
		{Amount: d("300"), Category: "Kira", IsActive: false, PaidMonths: []string{"2024-05"}},
		{Amount: d("50"), Category: "Abonelik", IsActive: true, PaidMonths: []string{"2024-04"}},
	}
	s := Summarize(mustMonth(t, "2024-05"), nil, nil, recurring, time.UTC)
	if !s.TotalSpending.IsZero() || len(s.Categories) != 0 {
		t.Fatalf("expected nothing counted, got %+v", s)
	}
}

func TestSummarizeZeroSpendingIsSafe(t *testing.T) {
	income := []models.IncomeEntry{{Amount: d("10"), Date: day(2024, 5, 1)}}
	s := Summarize(mustMonth(t, "2024-05"), income, nil, nil, time.UTC)
	if len(s.Categories) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", s.Categories)
	}
	if !s.NetBalance.Equal(d("10")) {
		t.Fatalf("netBalance = %s", s.NetBalance)
	}

	zeroOnly := []models.SpendingEntry{{Amount: decimal.Zero, Category: "Diğer", Date: day(2024, 5, 2)}}
	s = Summarize(mustMonth(t, "2024-05"), nil, zeroOnly, nil, time.UTC)
	if len(s.Categories) != 1 || s.Categories[0].Percentage != 0 {
		t.Fatalf("expected a zero-percent row, got %+v", s.Categories)
	}
}

func TestSummarizeTotalsAndPercentages(t *testing.T) {
	spending := []models.SpendingEntry{
		{Amount: d("33.33"), Category: "Gıda", Date: day(2024, 5, 1)},
		{Amount: d("33.33"), Category: "Ulaşım", Date: day(2024, 5, 2)},
		{Amount: d("10.01"), Category: "Fatura", Date: day(2024, 5, 3)},
		{Amount: d("99"), Category: "Gıda", Date: day(2024, 6, 1)},
	}
	recurring := []models.RecurringExpense{
		{Amount: d("25.5"), Category: "Fatura", IsActive: true, PaidMonths: []string{"2024-05"}},
		{Amount: d("7"), Category: "Abonelik", IsActive: true, PaidMonths: []string{"2024-03", "2024-05"}},
	}
	income := []models.IncomeEntry{{Amount: d("100"), Date: day(2024, 5, 20)}}

	s := Summarize(mustMonth(t, "2024-05"), income, spending, recurring, time.UTC)

	if !s.TotalSpending.Equal(s.TotalInstantSpending.Add(s.TotalPaidRecurringSpending)) {
		t.Fatalf("totalSpending must equal instant + recurring")
	}
	if !s.NetBalance.Equal(s.TotalIncome.Sub(s.TotalSpending)) {
		t.Fatalf("netBalance must equal income - spending")
	}
	if !s.TotalInstantSpending.Equal(d("76.67")) || !s.TotalPaidRecurringSpending.Equal(d("32.5")) {
		t.Fatalf("unexpected totals %s / %s", s.TotalInstantSpending, s.TotalPaidRecurringSpending)
	}

	var pct float64
	for i, c := range s.Categories {
		pct += c.Percentage
		if i > 0 && c.Amount.GreaterThan(s.Categories[i-1].Amount) {
			t.Fatalf("categories not sorted by amount desc: %+v", s.Categories)
		}
	}
	if math.Abs(pct-100) > 1e-9 {
		t.Fatalf("percentages sum to %v", pct)
	}
	if s.Categories[0].Category != "Fatura" || !s.Categories[0].Amount.Equal(d("35.51")) {
		t.Fatalf("expected merged Fatura category first, got %+v", s.Categories[0])
	}
}

func TestTogglePaidMonthRoundTrip(t *testing.T) {
	original := []string{"2024-03", "2024-04"}
	once := TogglePaidMonth(original, "2024-05")
	if len(once) != 3 || once[2] != "2024-05" {
		t.Fatalf("expected month appended, got %v", once)
	}
	twice := TogglePaidMonth(once, "2024-05")
	if len(twice) != len(original) || twice[0] != original[0] || twice[1] != original[1] {
		t.Fatalf("expected round trip to original, got %v", twice)
	}
	if len(original) != 2 {
		t.Fatalf("input must not be modified")
	}
}
