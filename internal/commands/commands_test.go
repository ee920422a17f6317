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

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"blockarchitech.com/lifeboard/internal/finance"
	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/planner"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, finance.Summary{
		Month:         "2024-05",
		TotalIncome:   decimal.NewFromInt(1000),
		TotalSpending: decimal.NewFromInt(400),
		NetBalance:    decimal.NewFromInt(600),
		Categories: []finance.CategoryTotal{
			{Category: "Gıda", Amount: decimal.NewFromInt(400), Percentage: 100},
		},
	})
	out := buf.String()
	for _, want := range []string{"Summary 2024-05", "1000.00", "600.00", "Gıda", "100.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintBoardSkipsEmptyBuckets(t *testing.T) {
	var buf bytes.Buffer
	printBoard(&buf, planner.Board{
		View:    models.TaskWeekly,
		Pending: []models.Task{{Text: "plan meals", Types: []models.TaskType{models.TaskWeekly}}},
		Completed: planner.Completed{
			Yesterday: []models.Task{{Text: "laundry", Completed: true, Types: []models.TaskType{models.TaskWeekly, models.TaskDaily}}},
		},
	})
	out := buf.String()
	if !strings.Contains(out, "Weekly tasks") || !strings.Contains(out, "plan meals") {
		t.Fatalf("expected pending section, got:\n%s", out)
	}
	if !strings.Contains(out, "Completed yesterday") || !strings.Contains(out, "Weekly,Daily") {
		t.Fatalf("expected yesterday section, got:\n%s", out)
	}
	if strings.Contains(out, "Completed today") {
		t.Fatalf("expected empty buckets to be skipped, got:\n%s", out)
	}
}

func TestCommandTree(t *testing.T) {
	root := New()
	for _, name := range []string{"serve", "summary", "tasks", "version"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("expected %s command, got %v / %v", name, cmd, err)
		}
	}
}
