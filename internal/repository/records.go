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

package repository

import "blockarchitech.com/lifeboard/internal/models"

const (
	TasksCollection     = "tasks"
	IncomeCollection    = "incomeEntries"
	SpendingCollection  = "spendingEntries"
	RecurringCollection = "recurringExpenses"
	AppsCollection      = "apps"
	MetricsCollection   = "metrics"
	MoodCollection      = "moodEntries"
	ActivityCollection  = "activityEntries"
	FoodCollection      = "foodDiaryEntries"
	IdeasCollection     = "ideas"
)

// Stored field names.
const (
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
	FieldText        = "text"
	FieldCompleted   = "completed"
	FieldTypes       = "types"
	FieldDueDate     = "dueDate" // instant on tasks, day of month on recurring expenses
	FieldCompletedAt = "completedAt"

	FieldSource     = "source"
	FieldDate       = "date"
	FieldAmount     = "amount"
	FieldItem       = "item"
	FieldCategory   = "category"
	FieldNotes      = "notes"
	FieldName       = "name"
	FieldIsActive   = "isActive"
	FieldPaidMonths = "paidMonths"

	FieldDescription          = "description"
	FieldPlatform             = "platform"
	FieldStatus               = "status"
	FieldUserCount            = "userCount"
	FieldMonthlyRevenue       = "monthlyRevenue"
	FieldDevelopmentStartDate = "developmentStartDate"
	FieldMetricTimestamp      = "metricTimestamp"

	FieldMoods      = "moods"
	FieldLegacyMood = "mood"
	FieldEnergy     = "energy"

	FieldActivityType    = "activityType"
	FieldActivityTime    = "activityTime"
	FieldDurationMinutes = "durationMinutes"

	FieldEntryTime       = "entryTime"
	FieldFoodDescription = "foodDescription"

	FieldPriority = "priority"
)

func decodeTask(r reader) models.Task {
	t := models.Task{
		ID:        r.id,
		Text:      r.str(FieldText),
		Completed: r.boolean(FieldCompleted),
		Types:     canonicalList(r.list(FieldTypes), models.TaskTypes, legacyTaskTypes),
		CreatedAt: r.timestamp(FieldCreatedAt),
		DueDate:   r.timePtr(FieldDueDate),
	}
	if t.Completed {
		t.CompletedAt = r.timePtr(FieldCompletedAt)
	}
	return t
}

func decodeIncome(r reader) models.IncomeEntry {
	amount, _ := r.number(FieldAmount)
	return models.IncomeEntry{
		ID:        r.id,
		Source:    r.str(FieldSource),
		Date:      r.timestamp(FieldDate),
		Amount:    amount,
		CreatedAt: r.timestamp(FieldCreatedAt),
	}
}

func decodeSpending(r reader) models.SpendingEntry {
	amount, _ := r.number(FieldAmount)
	return models.SpendingEntry{
		ID:        r.id,
		Item:      r.str(FieldItem),
		Amount:    amount,
		Category:  r.str(FieldCategory),
		Date:      r.timestamp(FieldDate),
		Notes:     r.str(FieldNotes),
		CreatedAt: r.timestamp(FieldCreatedAt),
	}
}

func decodeRecurring(r reader) models.RecurringExpense {
	amount, _ := r.number(FieldAmount)
	dueDay, _ := r.integer(FieldDueDate)
	months := make([]string, 0)
	seen := make(map[string]struct{})
	for _, m := range r.list(FieldPaidMonths) {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	return models.RecurringExpense{
		ID:         r.id,
		Name:       r.str(FieldName),
		Amount:     amount,
		DueDay:     int(dueDay),
		Category:   r.str(FieldCategory),
		IsActive:   r.boolean(FieldIsActive),
		PaidMonths: months,
		CreatedAt:  r.timestamp(FieldCreatedAt),
	}
}

// decodeApp accepts the platform field as a list or as a legacy single string.
func decodeApp(r reader) models.App {
	app := models.App{
		ID:                   r.id,
		Name:                 r.str(FieldName),
		Description:          r.str(FieldDescription),
		Platforms:            canonicalList(r.list(FieldPlatform), models.Platforms, legacyPlatforms),
		DevelopmentStartDate: r.timePtr(FieldDevelopmentStartDate),
		CreatedAt:            r.timestamp(FieldCreatedAt),
		UpdatedAt:            r.timePtr(FieldUpdatedAt),
	}
	if raw := r.str(FieldStatus); raw != "" {
		if s, ok := canonical(raw, models.AppStatuses, legacyStatuses); ok {
			app.Status = &s
		} else {
			r.malformed(FieldStatus, raw)
		}
	}
	if n, ok := r.integer(FieldUserCount); ok {
		app.UserCount = &n
	}
	if d, ok := r.number(FieldMonthlyRevenue); ok {
		app.MonthlyRevenue = &d
	}
	return app
}

func decodeMetric(appID string, r reader) models.Metric {
	users, _ := r.integer(FieldUserCount)
	revenue, _ := r.number(FieldMonthlyRevenue)
	return models.Metric{
		ID:              r.id,
		AppID:           appID,
		MetricTimestamp: r.timePtr(FieldMetricTimestamp),
		UserCount:       users,
		MonthlyRevenue:  revenue,
	}
}

// decodeMood migrates the legacy single "mood" string into the moods list and
// drops moods that are no longer offered.
func decodeMood(r reader) models.MoodEntry {
	raw := r.list(FieldMoods)
	if len(raw) == 0 {
		raw = r.list(FieldLegacyMood)
	}
	energy := models.DefaultEnergy
	if n, ok := r.integer(FieldEnergy); ok && n >= models.MinEnergy && n <= models.MaxEnergy {
		energy = int(n)
	}
	return models.MoodEntry{
		Date:      r.id,
		Moods:     canonicalList(raw, models.Moods, legacyMoods),
		Energy:    energy,
		Notes:     r.str(FieldNotes),
		UpdatedAt: r.timePtr(FieldUpdatedAt),
	}
}

func decodeActivity(r reader) models.ActivityEntry {
	kind, ok := canonical(r.str(FieldActivityType), models.ActivityTypes, legacyActivities)
	if !ok {
		r.malformed(FieldActivityType, r.data[FieldActivityType])
		kind = models.ActivityOther
	}
	minutes, _ := r.integer(FieldDurationMinutes)
	return models.ActivityEntry{
		ID:              r.id,
		ActivityType:    kind,
		ActivityTime:    r.timestamp(FieldActivityTime),
		DurationMinutes: int(minutes),
		Description:     r.str(FieldDescription),
		CreatedAt:       r.timestamp(FieldCreatedAt),
	}
}

func decodeFood(r reader) models.FoodEntry {
	return models.FoodEntry{
		ID:              r.id,
		EntryTime:       r.timestamp(FieldEntryTime),
		FoodDescription: r.str(FieldFoodDescription),
		CreatedAt:       r.timestamp(FieldCreatedAt),
	}
}

func decodeIdea(r reader) models.Idea {
	priority := models.PriorityMedium
	if raw := r.str(FieldPriority); raw != "" {
		if p, ok := canonical(raw, models.Priorities, legacyPriorities); ok {
			priority = p
		} else {
			r.malformed(FieldPriority, raw)
		}
	}
	return models.Idea{
		ID:        r.id,
		Text:      r.str(FieldText),
		Priority:  priority,
		CreatedAt: r.timestamp(FieldCreatedAt),
	}
}
