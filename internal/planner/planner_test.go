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

package planner

import (
	"fmt"
	"testing"
	"time"

	"blockarchitech.com/lifeboard/internal/models"
)

// Wednesday 15 May 2024, 14:00.
var now = time.Date(2024, 5, 15, 14, 0, 0, 0, time.UTC)

func at(y int, m time.Month, d, h int) *time.Time {
	t := time.Date(y, m, d, h, 0, 0, 0, time.UTC)
	return &t
}

func done(id string, completedAt *time.Time, types ...models.TaskType) models.Task {
	return models.Task{ID: id, Completed: true, CompletedAt: completedAt, Types: types}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		when *time.Time
		want Bucket
	}{
		{at(2024, 5, 15, 0), Today},
		{at(2024, 5, 15, 23), Today},
		{at(2024, 5, 14, 9), Yesterday},
		{at(2024, 5, 13, 9), ThisWeek}, // Monday of this week
		{at(2024, 5, 18, 9), ThisWeek}, // later this week
		{at(2024, 5, 12, 23), LastWeek},
		{at(2024, 5, 6, 0), LastWeek},
		{at(2024, 5, 5, 23), ThisMonth},
		{at(2024, 5, 1, 8), ThisMonth},
		{at(2024, 4, 30, 8), Older},
		{at(2023, 5, 15, 8), Older},
	}
	for _, tc := range cases {
		if got := Classify(*tc.when, now); got != tc.want {
			t.Fatalf("Classify(%v) = %s, want %s", tc.when, got, tc.want)
		}
	}
}

func TestClassifyMondayYesterdayBeatsLastWeek(t *testing.T) {
	monday := time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC)
	if got := Classify(time.Date(2024, 5, 12, 20, 0, 0, 0, time.UTC), monday); got != Yesterday {
		t.Fatalf("expected Sunday to be yesterday on Monday, got %s", got)
	}
	if got := Classify(time.Date(2024, 5, 11, 20, 0, 0, 0, time.UTC), monday); got != LastWeek {
		t.Fatalf("expected Saturday to be last week on Monday, got %s", got)
	}
}

func TestClassifyLastWeekAcrossMonthBoundary(t *testing.T) {
	// Thursday 2 May 2024: last week's Monday is 22 April.
	thursday := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	if got := Classify(time.Date(2024, 4, 24, 10, 0, 0, 0, time.UTC), thursday); got != LastWeek {
		t.Fatalf("expected last week across month boundary, got %s", got)
	}
	if got := Classify(time.Date(2024, 4, 29, 10, 0, 0, 0, time.UTC), thursday); got != ThisWeek {
		t.Fatalf("expected this week across month boundary, got %s", got)
	}
}

func TestClassifyUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("TRT", 3*60*60)
	localNow := time.Date(2024, 5, 15, 1, 0, 0, 0, loc)
	// 22:30 UTC on the 14th is 01:30 on the 15th in TRT.
	if got := Classify(time.Date(2024, 5, 14, 22, 30, 0, 0, time.UTC), localNow); got != Today {
		t.Fatalf("expected today in local time, got %s", got)
	}
}

func TestBuildScenarioTodayAndTypeMismatch(t *testing.T) {
	task := done("t1", at(2024, 5, 15, 9), models.TaskDaily)

	daily := Build([]models.Task{task}, now, models.TaskDaily)
	if len(daily.Completed.Today) != 1 || daily.Completed.Today[0].ID != "t1" {
		t.Fatalf("expected task in today bucket, got %+v", daily.Completed)
	}

	weekly := Build([]models.Task{task}, now, models.TaskWeekly)
	for _, b := range Buckets {
		if len(weekly.Completed.Get(b)) != 0 {
			t.Fatalf("expected task excluded from weekly view, found in %s", b)
		}
	}
	if len(weekly.Pending) != 0 {
		t.Fatalf("expected no pending tasks in weekly view")
	}
}

func TestBuildPendingKeepsOrder(t *testing.T) {
	tasks := []models.Task{
		{ID: "c", Types: []models.TaskType{models.TaskWeekly}},
		{ID: "a", Types: []models.TaskType{models.TaskDaily, models.TaskWeekly}},
		{ID: "b", Types: []models.TaskType{models.TaskDaily}},
	}
	board := Build(tasks, now, models.TaskWeekly)
	if len(board.Pending) != 2 || board.Pending[0].ID != "c" || board.Pending[1].ID != "a" {
		t.Fatalf("unexpected pending %+v", board.Pending)
	}
}

func TestBuildBucketsSortedNewestFirst(t *testing.T) {
	tasks := []models.Task{
		done("early", at(2024, 5, 15, 8), models.TaskDaily),
		done("late", at(2024, 5, 15, 13), models.TaskDaily),
		done("mid", at(2024, 5, 15, 10), models.TaskDaily),
	}
	board := Build(tasks, now, models.TaskDaily)
	got := fmt.Sprint(board.Completed.Today[0].ID, board.Completed.Today[1].ID, board.Completed.Today[2].ID)
	if got != fmt.Sprint("late", "mid", "early") {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestBuildIsPartition(t *testing.T) {
	var tasks []models.Task
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 24*90; i += 7 {
		ts := start.Add(time.Duration(i) * time.Hour)
		tasks = append(tasks, done(fmt.Sprintf("t%d", i), &ts, models.TaskMonthly))
	}
	tasks = append(tasks, done("no-time", nil, models.TaskMonthly))

	board := Build(tasks, now, models.TaskMonthly)
	seen := make(map[string]Bucket)
	total := 0
	for _, b := range Buckets {
		for _, task := range board.Completed.Get(b) {
			if prev, dup := seen[task.ID]; dup {
				t.Fatalf("task %s in both %s and %s", task.ID, prev, b)
			}
			seen[task.ID] = b
			total++
		}
	}
	if total != len(tasks) {
		t.Fatalf("expected %d bucketed tasks, got %d", len(tasks), total)
	}
	if seen["no-time"] != Older {
		t.Fatalf("expected completed task without completedAt in older, got %s", seen["no-time"])
	}
}
