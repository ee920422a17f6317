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

package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/finance"
	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/projection"
	"blockarchitech.com/lifeboard/internal/repository"
	"blockarchitech.com/lifeboard/internal/storage"
	"blockarchitech.com/lifeboard/internal/utils"
	"blockarchitech.com/lifeboard/internal/validation"
)

type FinanceService struct {
	base
}

func (s *FinanceService) AddIncome(ctx context.Context, form validation.IncomeForm) (string, error) {
	ctx, span := s.start(ctx, "FinanceService.AddIncome")
	defer span.End()

	if err := validation.Struct(form); err != nil {
		return "", err
	}
	amount, _ := utils.ParseLocaleDecimal(form.Amount)
	date, _ := utils.ParseDate(form.Date, s.loc)

	id, err := s.repos.Income.Add(ctx, map[string]interface{}{
		repository.FieldSource:    strings.TrimSpace(form.Source),
		repository.FieldDate:      date,
		repository.FieldAmount:    amount.InexactFloat64(),
		repository.FieldCreatedAt: storage.ServerTimestamp,
	})
	if err != nil {
		return "", fail(span, err, "failed to add income")
	}
	s.logger.Info("Added income entry", zap.String("id", id), zap.String("amount", amount.String()))
	return id, nil
}

func (s *FinanceService) ListIncome(ctx context.Context) ([]models.IncomeEntry, error) {
	ctx, span := s.start(ctx, "FinanceService.ListIncome")
	defer span.End()

	entries, err := s.repos.Income.List(ctx)
	if err != nil {
		return nil, fail(span, err, "failed to list income")
	}
	return entries, nil
}

func (s *FinanceService) DeleteIncome(ctx context.Context, id string) error {
	ctx, span := s.start(ctx, "FinanceService.DeleteIncome")
	defer span.End()

	if err := s.repos.Income.Delete(ctx, id); err != nil {
		return fail(span, err, "failed to delete income")
	}
	return nil
}

func (s *FinanceService) AddSpending(ctx context.Context, form validation.SpendingForm) (string, error) {
	ctx, span := s.start(ctx, "FinanceService.AddSpending")
	defer span.End()

	if err := validation.Struct(form); err != nil {
		return "", err
	}
	amount, _ := utils.ParseLocaleDecimal(form.Amount)
	date, _ := utils.ParseDate(form.Date, s.loc)

	data := map[string]interface{}{
		repository.FieldItem:      strings.TrimSpace(form.Item),
		repository.FieldAmount:    amount.InexactFloat64(),
		repository.FieldCategory:  form.Category,
		repository.FieldDate:      date,
		repository.FieldCreatedAt: storage.ServerTimestamp,
	}
	if notes := strings.TrimSpace(form.Notes); notes != "" {
		data[repository.FieldNotes] = notes
	}
	id, err := s.repos.Spending.Add(ctx, data)
	if err != nil {
		return "", fail(span, err, "failed to add spending")
	}
	s.logger.Info("Added spending entry", zap.String("id", id), zap.String("category", form.Category))
	return id, nil
}

// ListSpending returns spending entries, newest date first.
func (s *FinanceService) ListSpending(ctx context.Context) ([]models.SpendingEntry, error) {
	ctx, span := s.start(ctx, "FinanceService.ListSpending")
	defer span.End()

	entries, err := s.repos.Spending.List(ctx)
	if err != nil {
		return nil, fail(span, err, "failed to list spending")
	}
	return entries, nil
}

func (s *FinanceService) DeleteSpending(ctx context.Context, id string) error {
	ctx, span := s.start(ctx, "FinanceService.DeleteSpending")
	defer span.End()

	if err := s.repos.Spending.Delete(ctx, id); err != nil {
		return fail(span, err, "failed to delete spending")
	}
	return nil
}

// AddRecurringExpense stores a new active expense with no paid months.
func (s *FinanceService) AddRecurringExpense(ctx context.Context, form validation.RecurringExpenseForm) (string, error) {
	ctx, span := s.start(ctx, "FinanceService.AddRecurringExpense")
	defer span.End()

	if err := validation.Struct(form); err != nil {
		return "", err
	}
	amount, _ := utils.ParseLocaleDecimal(form.Amount)
	dueDay, _ := utils.ParseInt(form.DueDay)

	id, err := s.repos.Recurring.Add(ctx, map[string]interface{}{
		repository.FieldName:       strings.TrimSpace(form.Name),
		repository.FieldAmount:     amount.InexactFloat64(),
		repository.FieldDueDate:    dueDay,
		repository.FieldCategory:   form.Category,
		repository.FieldIsActive:   true,
		repository.FieldPaidMonths: []string{},
		repository.FieldCreatedAt:  storage.ServerTimestamp,
	})
	if err != nil {
		return "", fail(span, err, "failed to add recurring expense")
	}
	s.logger.Info("Added recurring expense", zap.String("id", id), zap.Int64("dueDay", dueDay))
	return id, nil
}

// ListRecurring returns recurring expenses ordered by due day, then name.
func (s *FinanceService) ListRecurring(ctx context.Context) ([]models.RecurringExpense, error) {
	ctx, span := s.start(ctx, "FinanceService.ListRecurring")
	defer span.End()

	expenses, err := s.repos.Recurring.List(ctx)
	if err != nil {
		return nil, fail(span, err, "failed to list recurring expenses")
	}
	return expenses, nil
}

func (s *FinanceService) getRecurring(ctx context.Context, id string) (*models.RecurringExpense, error) {
	expense, err := s.repos.Recurring.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, notFound("recurring expense", id)
	}
	return expense, nil
}

// ToggleActive flips whether the expense counts towards monthly totals.
func (s *FinanceService) ToggleActive(ctx context.Context, id string) (bool, error) {
	ctx, span := s.start(ctx, "FinanceService.ToggleActive")
	defer span.End()

	expense, err := s.getRecurring(ctx, id)
	if err != nil {
		return false, fail(span, err, "failed to load recurring expense")
	}
	active := !expense.IsActive
	if err := s.repos.Recurring.Update(ctx, id, map[string]interface{}{repository.FieldIsActive: active}); err != nil {
		return false, fail(span, err, "failed to toggle recurring expense")
	}
	return active, nil
}

// TogglePaid adds month to the paid set when absent and removes it when present.
// It returns whether the month is paid afterwards.
func (s *FinanceService) TogglePaid(ctx context.Context, id, month string) (bool, error) {
	ctx, span := s.start(ctx, "FinanceService.TogglePaid")
	defer span.End()

	if err := validation.Struct(validation.MonthQuery{Month: month}); err != nil {
		return false, err
	}
	expense, err := s.getRecurring(ctx, id)
	if err != nil {
		return false, fail(span, err, "failed to load recurring expense")
	}

	paid := !expense.IsPaid(month)
	var change interface{} = storage.ArrayUnion(month)
	if !paid {
		change = storage.ArrayRemove(month)
	}
	if err := s.repos.Recurring.Update(ctx, id, map[string]interface{}{repository.FieldPaidMonths: change}); err != nil {
		return false, fail(span, err, "failed to toggle paid month")
	}
	s.logger.Info("Toggled paid month", zap.String("id", id), zap.String("month", month), zap.Bool("paid", paid))
	return paid, nil
}

func (s *FinanceService) DeleteRecurringExpense(ctx context.Context, id string) error {
	ctx, span := s.start(ctx, "FinanceService.DeleteRecurringExpense")
	defer span.End()

	if err := s.repos.Recurring.Delete(ctx, id); err != nil {
		return fail(span, err, "failed to delete recurring expense")
	}
	return nil
}

// MonthlySummary reads the month's income and spending plus every active
// recurring expense and aggregates them. The three reads are not atomic.
func (s *FinanceService) MonthlySummary(ctx context.Context, month string) (finance.Summary, error) {
	ctx, span := s.start(ctx, "FinanceService.MonthlySummary")
	defer span.End()

	if err := validation.Struct(validation.MonthQuery{Month: month}); err != nil {
		return finance.Summary{}, err
	}
	ym, _ := utils.ParseYearMonth(month)
	start, end := ym.Range(s.loc)

	inMonth := func(q storage.Query) storage.Query {
		return q.Where(repository.FieldDate, storage.OpGreaterEqual, start).
			Where(repository.FieldDate, storage.OpLessEqual, end)
	}
	income, err := s.repos.Income.Find(ctx, inMonth(storage.Query{Path: s.repos.Income.Path()}))
	if err != nil {
		return finance.Summary{}, fail(span, err, "failed to read income")
	}
	spending, err := s.repos.Spending.Find(ctx, inMonth(storage.Query{Path: s.repos.Spending.Path()}))
	if err != nil {
		return finance.Summary{}, fail(span, err, "failed to read spending")
	}
	recurring, err := s.repos.Recurring.Find(ctx, storage.Query{Path: s.repos.Recurring.Path()}.
		Where(repository.FieldIsActive, storage.OpEqual, true))
	if err != nil {
		return finance.Summary{}, fail(span, err, "failed to read recurring expenses")
	}

	summary := finance.Summarize(ym, income, spending, recurring, s.loc)
	s.logger.Debug("Computed monthly summary",
		zap.String("month", summary.Month),
		zap.Int("income", len(income)),
		zap.Int("spending", len(spending)),
		zap.Int("recurring", len(recurring)),
	)
	return summary, nil
}

// WatchIncome keeps the income list current.
func (s *FinanceService) WatchIncome(ctx context.Context) (*projection.Handle[[]models.IncomeEntry], error) {
	return projection.Watch(ctx, s.repos.Income, s.repos.Income.Query(), projection.List[models.IncomeEntry], s.logger)
}

// WatchSpending keeps the spending list current.
func (s *FinanceService) WatchSpending(ctx context.Context) (*projection.Handle[[]models.SpendingEntry], error) {
	return projection.Watch(ctx, s.repos.Spending, s.repos.Spending.Query(), projection.List[models.SpendingEntry], s.logger)
}

// WatchRecurring keeps the recurring expense list current.
func (s *FinanceService) WatchRecurring(ctx context.Context) (*projection.Handle[[]models.RecurringExpense], error) {
	return projection.Watch(ctx, s.repos.Recurring, s.repos.Recurring.Query(), projection.List[models.RecurringExpense], s.logger)
}
