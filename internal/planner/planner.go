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

// Package planner arranges tasks for a planner view: pending tasks as they
// come, completed tasks in relative-time buckets.
package planner

import (
	"sort"
	"time"

	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/utils"
)

// Bucket names a relative-time window for completed tasks.
type Bucket string

const (
	Today     Bucket = "today"
	Yesterday Bucket = "yesterday"
	ThisWeek  Bucket = "thisWeek"
	LastWeek  Bucket = "lastWeek"
	ThisMonth Bucket = "thisMonth"
	Older     Bucket = "older"
)

// Buckets lists every bucket in evaluation order.
var Buckets = []Bucket{Today, Yesterday, ThisWeek, LastWeek, ThisMonth, Older}

// Completed holds completed tasks per bucket, each newest first.
type Completed struct {
	Today     []models.Task `json:"today"`
	Yesterday []models.Task `json:"yesterday"`
	ThisWeek  []models.Task `json:"thisWeek"`
	LastWeek  []models.Task `json:"lastWeek"`
	ThisMonth []models.Task `json:"thisMonth"`
	Older     []models.Task `json:"older"`
}

// Get returns the tasks of bucket b.
func (c Completed) Get(b Bucket) []models.Task {
	switch b {
	case Today:
		return c.Today
	case Yesterday:
		return c.Yesterday
	case ThisWeek:
		return c.ThisWeek
	case LastWeek:
		return c.LastWeek
	case ThisMonth:
		return c.ThisMonth
	default:
		return c.Older
	}
}

func (c *Completed) slot(b Bucket) *[]models.Task {
	switch b {
	case Today:
		return &c.Today
	case Yesterday:
		return &c.Yesterday
	case ThisWeek:
		return &c.ThisWeek
	case LastWeek:
		return &c.LastWeek
	case ThisMonth:
		return &c.ThisMonth
	default:
		return &c.Older
	}
}

// Board is the planner for one view.
type Board struct {
	View      models.TaskType `json:"view"`
	Pending   []models.Task   `json:"pending"`
	Completed Completed       `json:"completed"`
}

// Build filters tasks to those tagged view and buckets the completed ones
// relative to now, in now's location. Pending tasks keep their input order.
func Build(tasks []models.Task, now time.Time, view models.TaskType) Board {
	board := Board{View: view, Pending: []models.Task{}}
	for _, b := range Buckets {
		*board.Completed.slot(b) = []models.Task{}
	}
	for _, t := range tasks {
		if !t.HasType(view) {
			continue
		}
		if !t.Completed {
			board.Pending = append(board.Pending, t)
			continue
		}
		b := Older
		if t.CompletedAt != nil {
			b = Classify(*t.CompletedAt, now)
		}
		s := board.Completed.slot(b)
		*s = append(*s, t)
	}
	for _, b := range Buckets {
		sortNewestFirst(board.Completed.Get(b))
	}
	return board
}

// Classify returns the first bucket whose window contains completedAt.
// Weeks start on Monday.
func Classify(completedAt, now time.Time) Bucket {
	loc := now.Location()
	c := completedAt.In(loc)
	today := utils.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)
	weekStart := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	nextWeek := weekStart.AddDate(0, 0, 7)
	lastWeek := weekStart.AddDate(0, 0, -7)

	switch {
	case within(c, today, tomorrow):
		return Today
	case within(c, yesterday, today):
		return Yesterday
	case within(c, weekStart, nextWeek):
		return ThisWeek
	case within(c, lastWeek, weekStart):
		return LastWeek
	case c.Year() == today.Year() && c.Month() == today.Month():
		return ThisMonth
	default:
		return Older
	}
}

// within reports whether t lies in [from, to).
func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func sortNewestFirst(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].CompletedAt, tasks[j].CompletedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
