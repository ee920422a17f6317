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

import "time"

// TaskType tags which planner view a task belongs to.
type TaskType string

const (
	TaskDaily   TaskType = "Daily"
	TaskWeekly  TaskType = "Weekly"
	TaskMonthly TaskType = "Monthly"
)

// TaskTypes lists every TaskType in display order.
var TaskTypes = []TaskType{TaskDaily, TaskWeekly, TaskMonthly}

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	for _, known := range TaskTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Task is a planner item. CompletedAt is set exactly while Completed is true.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	Types       []TaskType `json:"types"`
	CreatedAt   time.Time  `json:"createdAt"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// HasType reports whether the task is tagged with tt.
func (t Task) HasType(tt TaskType) bool {
	for _, v := range t.Types {
		if v == tt {
			return true
		}
	}
	return false
}
