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

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"

	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/storage"
)

func newTestRepos(t *testing.T) (*Repositories, *storage.InMemoryStore) {
	t.Helper()
	store := storage.NewInMemoryStore(zaptest.NewLogger(t))
	return New(store, zaptest.NewLogger(t)), store
}

func TestDecodeAppLegacyPlatformString(t *testing.T) {
	repos, store := newTestRepos(t)
	ctx := context.Background()
	store.Set(ctx, storage.Col(AppsCollection), "legacy", map[string]interface{}{
		FieldName:           "Old App",
		FieldPlatform:       "Web",
		FieldStatus:         "Yayınlandı",
		FieldUserCount:      nil,
		FieldMonthlyRevenue: "12,5",
		FieldCreatedAt:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}, false)

	app, err := repos.Apps.Get(ctx, "legacy")
	if err != nil || app == nil {
		t.Fatalf("get: %v / %v", app, err)
	}
	if len(app.Platforms) != 1 || app.Platforms[0] != models.PlatformWeb {
		t.Fatalf("expected legacy platform string migrated to [Web], got %v", app.Platforms)
	}
	if app.Status == nil || *app.Status != models.StatusReleased {
		t.Fatalf("expected legacy status label migrated, got %v", app.Status)
	}
	if app.UserCount != nil {
		t.Fatalf("expected nil user count, got %v", *app.UserCount)
	}
	if app.MonthlyRevenue == nil || !app.MonthlyRevenue.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("expected revenue 12.5, got %v", app.MonthlyRevenue)
	}
}

func TestDecodeAppPlatformList(t *testing.T) {
	repos, store := newTestRepos(t)
	ctx := context.Background()
	store.Set(ctx, storage.Col(AppsCollection), "a", map[string]interface{}{
		FieldName:     "New App",
		FieldPlatform: []string{"iOS", "Android", "Diğer", "Symbian"},
		FieldStatus:   nil,
	}, false)

	app, _ := repos.Apps.Get(ctx, "a")
	want := []models.Platform{models.PlatformIOS, models.PlatformAndroid, models.PlatformOther}
	if len(app.Platforms) != len(want) {
		t.Fatalf("expected %v, got %v", want, app.Platforms)
	}
	for i := range want {
		if app.Platforms[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, app.Platforms)
		}
	}
	if app.Status != nil {
		t.Fatalf("expected nil status, got %v", *app.Status)
	}
}

func TestDecodeMoodLegacySingleMood(t *testing.T) {
	repos, store := newTestRepos(t)
	ctx := context.Background()
	store.Set(ctx, storage.Col(MoodCollection), "2024-05-01", map[string]interface{}{
		FieldLegacyMood: "Mutlu",
	}, false)
	store.Set(ctx, storage.Col(MoodCollection), "2024-05-02", map[string]interface{}{
		FieldLegacyMood: "Bored",
		FieldEnergy:     42,
	}, false)

	entry, _ := repos.Moods.Get(ctx, "2024-05-01")
	if entry.Date != "2024-05-01" {
		t.Fatalf("expected date from document id, got %q", entry.Date)
	}
	if len(entry.Moods) != 1 || entry.Moods[0] != models.MoodHappy {
		t.Fatalf("expected legacy mood migrated to [Happy], got %v", entry.Moods)
	}
	if entry.Energy != models.DefaultEnergy {
		t.Fatalf("expected default energy, got %d", entry.Energy)
	}

	unknown, _ := repos.Moods.Get(ctx, "2024-05-02")
	if len(unknown.Moods) != 0 {
		t.Fatalf("expected unknown legacy mood dropped, got %v", unknown.Moods)
	}
	if unknown.Energy != models.DefaultEnergy {
		t.Fatalf("expected out-of-range energy replaced by default, got %d", unknown.Energy)
	}
}

func TestDecodeMalformedAmountsAreZero(t *testing.T) {
	repos, store := newTestRepos(t)
	ctx := context.Background()
	store.Insert(ctx, storage.Col(SpendingCollection), map[string]interface{}{
		FieldItem:   "broken",
		FieldAmount: "not a number",
		FieldDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	store.Insert(ctx, storage.Col(SpendingCollection), map[string]interface{}{
		FieldItem:   "list",
		FieldAmount: []string{"1"},
		FieldDate:   time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	})

	entries, err := repos.Spending.Find(ctx, storage.Query{Path: repos.Spending.Path()})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if !e.Amount.IsZero() {
			t.Fatalf("expected malformed amount coerced to 0, got %s", e.Amount)
		}
	}
}

func TestDecodeRecurringDedupesPaidMonths(t *testing.T) {
	repos, store := newTestRepos(t)
	ctx := context.Background()
	store.Set(ctx, storage.Col(RecurringCollection), "r1", map[string]interface{}{
		FieldName:       "Rent",
		FieldAmount:     300,
		FieldDueDate:    1,
		FieldIsActive:   true,
		FieldPaidMonths: []string{"2024-05", "2024-05", "2024-06"},
	}, false)
	store.Set(ctx, storage.Col(RecurringCollection), "r2", map[string]interface{}{
		FieldName:       "Gym",
		FieldPaidMonths: "oops",
	}, false)

	r1, _ := repos.Recurring.Get(ctx, "r1")
	if len(r1.PaidMonths) != 2 || !r1.IsPaid("2024-06") {
		t.Fatalf("unexpected paid months %v", r1.PaidMonths)
	}
	if r1.DueDay != 1 || !r1.Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("unexpected decode %+v", r1)
	}
	r2, _ := repos.Recurring.Get(ctx, "r2")
	if r2.IsActive {
		t.Fatalf("missing isActive must decode as false")
	}
}

func TestDecodeTaskLegacyTypesAndStaleCompletedAt(t *testing.T) {
	repos, store := newTestRepos(t)
	ctx := context.Background()
	stale := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store.Set(ctx, storage.Col(TasksCollection), "t1", map[string]interface{}{
		FieldText:        "plan week",
		FieldCompleted:   false,
		FieldTypes:       []string{"Haftalık", "Weekly", "Daily"},
		FieldCompletedAt: stale,
	}, false)

	task, _ := repos.Tasks.Get(ctx, "t1")
	if len(task.Types) != 2 || task.Types[0] != models.TaskWeekly || task.Types[1] != models.TaskDaily {
		t.Fatalf("unexpected types %v", task.Types)
	}
	if task.CompletedAt != nil {
		t.Fatalf("pending task must not carry completedAt")
	}
}

func TestDecodeIdeaDefaultsPriority(t *testing.T) {
	repos, store := newTestRepos(t)
	ctx := context.Background()
	store.Set(ctx, storage.Col(IdeasCollection), "i1", map[string]interface{}{FieldText: "x"}, false)
	store.Set(ctx, storage.Col(IdeasCollection), "i2", map[string]interface{}{FieldText: "y", FieldPriority: "Yüksek"}, false)

	i1, _ := repos.Ideas.Get(ctx, "i1")
	i2, _ := repos.Ideas.Get(ctx, "i2")
	if i1.Priority != models.PriorityMedium || i2.Priority != models.PriorityHigh {
		t.Fatalf("unexpected priorities %s / %s", i1.Priority, i2.Priority)
	}
}

func TestMetricsScopedToApp(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }

	m := repos.Metrics("app1")
	m.Add(ctx, map[string]interface{}{FieldMetricTimestamp: day(20), FieldUserCount: 20, FieldMonthlyRevenue: 2.5})
	m.Add(ctx, map[string]interface{}{FieldMetricTimestamp: day(10), FieldUserCount: 10, FieldMonthlyRevenue: 1})
	repos.Metrics("app2").Add(ctx, map[string]interface{}{FieldMetricTimestamp: day(1), FieldUserCount: 99})

	metrics, err := m.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metrics) != 2 || metrics[0].UserCount != 10 || metrics[1].UserCount != 20 {
		t.Fatalf("expected app1 metrics oldest first, got %+v", metrics)
	}
	if metrics[0].AppID != "app1" {
		t.Fatalf("expected app id on metric, got %q", metrics[0].AppID)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	repos, _ := newTestRepos(t)
	task, err := repos.Tasks.Get(context.Background(), "missing")
	if err != nil || task != nil {
		t.Fatalf("expected nil, nil; got %v, %v", task, err)
	}
}
