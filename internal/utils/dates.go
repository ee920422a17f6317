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

package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
	MonthLayout = "2006-01"

	longDateLayout = "Monday, 2 January 2006"
)

// ParseDate parses a "YYYY-MM-DD" calendar date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// CombineDateTime joins a "YYYY-MM-DD" date and an "HH:MM" (or "HH:MM:SS") clock into one instant in loc.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	combined := strings.TrimSpace(date) + "T" + strings.TrimSpace(clock)
	layouts := []string{
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, combined, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q %q", date, clock)
}

// DateKey formats t as "YYYY-MM-DD" in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatLongDate renders the long-form calendar date used as a grouping label.
func FormatLongDate(t time.Time) string {
	return t.Format(longDateLayout)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// YearMonth identifies a calendar month; its token form is "YYYY-MM".
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses a "YYYY-MM" token.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// YearMonthOf returns the month containing t, in t's location.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Range returns the first and last instant of the month in loc. Both ends are inclusive.
func (ym YearMonth) Range(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Contains reports whether t falls inside the month as observed in loc.
func (ym YearMonth) Contains(t time.Time, loc *time.Location) bool {
	start, end := ym.Range(loc)
	return !t.Before(start) && !t.After(end)
}

// FirstDay returns midnight of the first day of the month in loc.
func (ym YearMonth) FirstDay(loc *time.Location) time.Time {
	start, _ := ym.Range(loc)
	return start
}
