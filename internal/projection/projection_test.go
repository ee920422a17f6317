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

package projection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"

	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/repository"
	"blockarchitech.com/lifeboard/internal/storage"
)

func TestGroupByDayFirstSeenOrder(t *testing.T) {
	ts := func(d, h int) time.Time { return time.Date(2024, 5, d, h, 0, 0, 0, time.UTC) }
	entries := []models.FoodEntry{
		{ID: "a", EntryTime: ts(10, 20)},
		{ID: "b", EntryTime: ts(12, 8)},
		{ID: "c", EntryTime: ts(10, 8)},
		{ID: "d", EntryTime: ts(11, 8)},
	}
	groups := FoodByDay(time.UTC)(entries)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	order := []string{"2024-05-10", "2024-05-12", "2024-05-11"}
	for i, want := range order {
		if groups[i].Date != want {
			t.Fatalf("group %d: expected %s, got %s", i, want, groups[i].Date)
		}
	}
	if len(groups[0].Entries) != 2 || groups[0].Entries[0].ID != "a" || groups[0].Entries[1].ID != "c" {
		t.Fatalf("unexpected first group %+v", groups[0].Entries)
	}
	if groups[0].Label != "Friday, 10 May 2024" {
		t.Fatalf("unexpected label %q", groups[0].Label)
	}
}

func TestGroupByDayUsesLocation(t *testing.T) {
	loc := time.FixedZone("TRT", 3*60*60)
	entries := []models.ActivityEntry{
		{ID: "late", ActivityTime: time.Date(2024, 5, 10, 22, 0, 0, 0, time.UTC)},
	}
	groups := ActivitiesByDay(loc)(entries)
	if groups[0].Date != "2024-05-11" {
		t.Fatalf("expected local date 2024-05-11, got %s", groups[0].Date)
	}
}

func TestMetricPointsKeepsDuplicatesAndSkipsMissing(t *testing.T) {
	ts := func(m time.Month, d int) *time.Time {
		v := time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}
	metrics := []models.Metric{
		{MetricTimestamp: ts(4, 1), UserCount: 10, MonthlyRevenue: decimal.NewFromInt(1)},
		{MetricTimestamp: ts(5, 1), UserCount: 20, MonthlyRevenue: decimal.NewFromInt(2)},
		{MetricTimestamp: nil, UserCount: 99},
		{MetricTimestamp: ts(5, 20), UserCount: 25, MonthlyRevenue: decimal.NewFromInt(3)},
	}
	points := MetricPoints(time.UTC)(metrics)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[1].Month != "2024-05" || points[2].Month != "2024-05" || points[2].UserCount != 25 {
		t.Fatalf("unexpected points %+v", points)
	}
}

func TestWatchDerivesOnEverySnapshot(t *testing.T) {
	store := storage.NewInMemoryStore(zaptest.NewLogger(t))
	repos := repository.New(store, zaptest.NewLogger(t))
	ctx := context.Background()

	repos.Ideas.Add(ctx, map[string]interface{}{
		repository.FieldText:      "first",
		repository.FieldCreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	count := func(ideas []models.Idea) int { return len(ideas) }
	h, err := Watch(ctx, repos.Ideas, repos.Ideas.Query(), count, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	expect := func(want int) {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case got := <-h.Updates():
				if got == want {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for view %d", want)
			}
		}
	}
	expect(1)

	id, _ := repos.Ideas.Add(ctx, map[string]interface{}{
		repository.FieldText:      "second",
		repository.FieldCreatedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	})
	expect(2)

	repos.Ideas.Delete(ctx, id)
	expect(1)

	h.Close()
	for range h.Updates() {
	}
}

func TestWatchCancelledContextEndsProjection(t *testing.T) {
	store := storage.NewInMemoryStore(zaptest.NewLogger(t))
	repos := repository.New(store, zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())

	h, err := Watch(ctx, repos.Food, repos.Food.Query(), FoodByDay(time.UTC), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-h.Updates():
			if !ok {
				h.Close()
				return
			}
		case <-deadline:
			t.Fatal("projection did not end after cancel")
		}
	}
}

type failedSource struct{ err error }

func (f failedSource) Watch(ctx context.Context, q storage.Query) (*storage.Subscription, error) {
	return storage.FailedSubscription(f.err), nil
}

func (f failedSource) Decode(docs []storage.Document) []models.Idea {
	return nil
}

func TestWatchReportsErrorOfEndedSubscription(t *testing.T) {
	boom := errors.New("listener failed")
	count := func(ideas []models.Idea) int { return len(ideas) }

	// Both the closed snapshot channel and the error are ready at once, so
	// repeat to cover whichever the goroutine observes first.
	for i := 0; i < 100; i++ {
		h, err := Watch(context.Background(), failedSource{err: boom}, storage.Query{Path: storage.Col("ideas")}, count, zaptest.NewLogger(t))
		if err != nil {
			t.Fatalf("watch: %v", err)
		}
		for range h.Updates() {
		}
		select {
		case got := <-h.Err():
			if !errors.Is(got, boom) {
				t.Fatalf("run %d: expected %v, got %v", i, boom, got)
			}
		default:
			t.Fatalf("run %d: expected terminal error after updates closed", i)
		}
		h.Close()
	}
}
