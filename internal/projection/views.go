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
	"time"

	"github.com/shopspring/decimal"

	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/planner"
	"blockarchitech.com/lifeboard/internal/utils"
)

// DayGroup is the entries of one calendar day.
type DayGroup[T any] struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Entries []T    `json:"entries"`
}

// GroupByDay collapses items into calendar-day groups in loc. Groups appear in
// the order their first item appears; items keep their relative order.
func GroupByDay[T any](items []T, at func(T) time.Time, loc *time.Location) []DayGroup[T] {
	groups := make([]DayGroup[T], 0)
	index := make(map[string]int)
	for _, item := range items {
		local := at(item).In(loc)
		key := utils.DateKey(local)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup[T]{Date: key, Label: utils.FormatLongDate(local)})
		}
		groups[i].Entries = append(groups[i].Entries, item)
	}
	return groups
}

// FoodByDay groups food entries by entry time.
func FoodByDay(loc *time.Location) func([]models.FoodEntry) []DayGroup[models.FoodEntry] {
	return func(entries []models.FoodEntry) []DayGroup[models.FoodEntry] {
		return GroupByDay(entries, func(e models.FoodEntry) time.Time { return e.EntryTime }, loc)
	}
}

// ActivitiesByDay groups activity entries by activity time.
func ActivitiesByDay(loc *time.Location) func([]models.ActivityEntry) []DayGroup[models.ActivityEntry] {
	return func(entries []models.ActivityEntry) []DayGroup[models.ActivityEntry] {
		return GroupByDay(entries, func(e models.ActivityEntry) time.Time { return e.ActivityTime }, loc)
	}
}

// MetricPoint is one chart sample.
type MetricPoint struct {
	Month     string          `json:"month"`
	UserCount int64           `json:"userCount"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// MetricPoints emits one point per metric, in input order. Same-month samples
// are not merged; metrics without a timestamp are skipped.
func MetricPoints(loc *time.Location) func([]models.Metric) []MetricPoint {
	return func(metrics []models.Metric) []MetricPoint {
		points := make([]MetricPoint, 0, len(metrics))
		for _, m := range metrics {
			if m.MetricTimestamp == nil {
				continue
			}
			points = append(points, MetricPoint{
				Month:     utils.YearMonthOf(m.MetricTimestamp.In(loc)).String(),
				UserCount: m.UserCount,
				Revenue:   m.MonthlyRevenue,
			})
		}
		return points
	}
}

// TaskBoard builds the planner board for view, reading the clock on every snapshot.
func TaskBoard(view models.TaskType, now func() time.Time) func([]models.Task) planner.Board {
	return func(tasks []models.Task) planner.Board {
		return planner.Build(tasks, now(), view)
	}
}

// List passes records through unchanged.
func List[T any](items []T) []T {
	return items
}
