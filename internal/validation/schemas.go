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

package validation

// Schemas for every entity writer. Fields hold raw user input; numeric fields
// are strings so locale separators and blanks can be checked before parsing.

type TaskForm struct {
	Text    string   `json:"text" validate:"notblank"`
	Types   []string `json:"types" validate:"required,min=1,dive,tasktype"`
	DueDate string   `json:"dueDate" validate:"omitempty,date"`
}

type IncomeForm struct {
	Source string `json:"source" validate:"notblank"`
	Date   string `json:"date" validate:"required,date"`
	Amount string `json:"amount" validate:"required,posdecimal"`
}

type SpendingForm struct {
	Item     string `json:"item" validate:"notblank"`
	Amount   string `json:"amount" validate:"required,posdecimal"`
	Category string `json:"category" validate:"required,spendingcategory"`
	Date     string `json:"date" validate:"required,date"`
	Notes    string `json:"notes"`
}

type RecurringExpenseForm struct {
	Name     string `json:"name" validate:"notblank"`
	Amount   string `json:"amount" validate:"required,posdecimal"`
	DueDay   string `json:"dueDay" validate:"required,dueday"`
	Category string `json:"category" validate:"required,recurringcategory"`
}

type AppForm struct {
	Name             string   `json:"name" validate:"notblank"`
	Description      string   `json:"description"`
	Platforms        []string `json:"platforms" validate:"dive,platform"`
	Status           string   `json:"status" validate:"omitempty,appstatus"`
	UserCount        string   `json:"userCount" validate:"omitempty,nonnegint"`
	MonthlyRevenue   string   `json:"monthlyRevenue" validate:"omitempty,nonnegdecimal"`
	DevelopmentStart string   `json:"developmentStart" validate:"omitempty,yearmonth"`
}

// MetricForm only requires a date; unparsable numbers are recorded as zero.
type MetricForm struct {
	Date           string `json:"date" validate:"required,date"`
	UserCount      string `json:"userCount"`
	MonthlyRevenue string `json:"monthlyRevenue"`
}

type MoodForm struct {
	Date   string   `json:"date" validate:"omitempty,date"`
	Moods  []string `json:"moods" validate:"required,min=1,dive,mood"`
	Energy int      `json:"energy" validate:"energy"`
	Notes  string   `json:"notes"`
}

type ActivityForm struct {
	ActivityType    string `json:"activityType" validate:"required,activitytype"`
	Date            string `json:"date" validate:"required,date"`
	Time            string `json:"time" validate:"required,clock"`
	DurationMinutes string `json:"durationMinutes" validate:"required,posint"`
	Description     string `json:"description"`
}

type FoodForm struct {
	Date            string `json:"date" validate:"omitempty,date"`
	Time            string `json:"time" validate:"required,clock"`
	FoodDescription string `json:"foodDescription" validate:"notblank"`
}

type IdeaForm struct {
	Text string `json:"text" validate:"notblank,max=1000"`
}

type PriorityForm struct {
	Priority string `json:"priority" validate:"required,priority"`
}

type MonthQuery struct {
	Month string `json:"month" validate:"required,yearmonth"`
}
