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

// Package finance computes the monthly money summary across income, spending
// and recurring expenses.
package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/utils"
)

var hundred = decimal.NewFromInt(100)

// CategoryTotal is one row of the spending breakdown.
type CategoryTotal struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// Summary is the result of Summarize for one month.
type Summary struct {
	Month                      string          `json:"month"`
	TotalIncome                decimal.Decimal `json:"totalIncome"`
	TotalInstantSpending       decimal.Decimal `json:"totalInstantSpending"`
	TotalPaidRecurringSpending decimal.Decimal `json:"totalPaidRecurringSpending"`
	TotalSpending              decimal.Decimal `json:"totalSpending"`
	NetBalance                 decimal.Decimal `json:"netBalance"`
	Categories                 []CategoryTotal `json:"categories"`
}

// Summarize totals one calendar month. Income and spending count when their
// date falls inside the month as observed in loc, boundaries inclusive. Active
// recurring expenses count when month is in their paid set. Spending and
// recurring categories share one breakdown keyed by name.
func Summarize(month utils.YearMonth, income []models.IncomeEntry, spending []models.SpendingEntry, recurring []models.RecurringExpense, loc *time.Location) Summary {
	s := Summary{
		Month:                      month.String(),
		TotalIncome:                decimal.Zero,
		TotalInstantSpending:       decimal.Zero,
		TotalPaidRecurringSpending: decimal.Zero,
	}
	byCategory := make(map[string]decimal.Decimal)

	for _, in := range income {
		if month.Contains(in.Date, loc) {
			s.TotalIncome = s.TotalIncome.Add(in.Amount)
		}
	}
	for _, sp := range spending {
		if !month.Contains(sp.Date, loc) {
			continue
		}
		s.TotalInstantSpending = s.TotalInstantSpending.Add(sp.Amount)
		byCategory[sp.Category] = byCategory[sp.Category].Add(sp.Amount)
	}
	token := month.String()
	for _, re := range recurring {
		if !re.IsActive || !re.IsPaid(token) {
			continue
		}
		s.TotalPaidRecurringSpending = s.TotalPaidRecurringSpending.Add(re.Amount)
		byCategory[re.Category] = byCategory[re.Category].Add(re.Amount)
	}

	s.TotalSpending = s.TotalInstantSpending.Add(s.TotalPaidRecurringSpending)
	s.NetBalance = s.TotalIncome.Sub(s.TotalSpending)
	s.Categories = breakdown(byCategory, s.TotalSpending)
	return s
}

func breakdown(byCategory map[string]decimal.Decimal, total decimal.Decimal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(byCategory))
	for name, amount := range byCategory {
		row := CategoryTotal{Category: name, Amount: amount}
		if !total.IsZero() {
			row.Percentage = amount.Div(total).Mul(hundred).InexactFloat64()
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TogglePaidMonth adds month to paid when absent and removes it when present.
// The input slice is not modified.
func TogglePaidMonth(paid []string, month string) []string {
	out := make([]string, 0, len(paid)+1)
	found := false
	for _, m := range paid {
		if m == month {
			found = true
			continue
		}
		out = append(out, m)
	}
	if !found {
		out = append(out, month)
	}
	return out
}
