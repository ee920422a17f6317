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

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpendingCategories are the categories offered for one-off spending.
var SpendingCategories = []string{
	"Gıda", "Ulaşım", "Fatura", "Kira", "Sağlık", "Giyim",
	"Eğlence", "Keyfi", "Eğitim", "Ev Eşyası", "Kişisel Bakım", "Diğer",
}

// RecurringCategories are the categories offered for recurring expenses.
var RecurringCategories = []string{
	"Fatura", "Kira", "Abonelik", "Kredi/Borç", "Eğitim", "Sağlık", "Diğer",
}

type IncomeEntry struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

type SpendingEntry struct {
	ID        string          `json:"id"`
	Item      string          `json:"item"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// RecurringExpense is a monthly obligation. PaidMonths holds "YYYY-MM" tokens
// with set semantics.
type RecurringExpense struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	DueDay     int             `json:"dueDay"`
	Category   string          `json:"category"`
	IsActive   bool            `json:"isActive"`
	PaidMonths []string        `json:"paidMonths"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// IsPaid reports whether month is recorded as paid.
func (r RecurringExpense) IsPaid(month string) bool {
	for _, m := range r.PaidMonths {
		if m == month {
			return true
		}
	}
	return false
}
