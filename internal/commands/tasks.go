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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	lifeboard "blockarchitech.com/lifeboard/internal"
	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/planner"
	"blockarchitech.com/lifeboard/internal/service"
)

var bucketTitles = map[planner.Bucket]string{
	planner.Today:     "Completed today",
	planner.Yesterday: "Completed yesterday",
	planner.ThisWeek:  "Completed this week",
	planner.LastWeek:  "Completed last week",
	planner.ThisMonth: "Completed this month",
	planner.Older:     "Completed earlier",
}

func addTasks(topLevel *cobra.Command) {
	oo := &OutputOptions{}
	view := ""

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Show the task planner for a view.",
		Example: `
lifeboard tasks
lifeboard tasks --view Weekly
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := service.ParseView(view)
			if err != nil {
				return err
			}
			ctx := context.Background()
			services, closeStore, err := lifeboard.NewApp().Open(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			board, err := services.Tasks.Board(ctx, v)
			if err != nil {
				return err
			}
			if oo.JSON {
				return printJSON(board)
			}
			printBoard(color.Output, board)
			return nil
		},
	}
	cmd.Flags().StringVar(&view, "view", string(models.TaskDaily), "Planner view: Daily, Weekly or Monthly.")
	addOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func printBoard(w io.Writer, b planner.Board) {
	title := color.New(color.Bold, color.Underline)
	count := color.New(color.Faint)

	section := func(name string, tasks []models.Task, done bool) {
		_, _ = title.Fprint(w, name)
		_, _ = count.Fprintf(w, " - %d\n", len(tasks))
		if len(tasks) == 0 {
			return
		}
		tbl := uitable.New()
		tbl.Separator = " "
		for _, t := range tasks {
			mark := "•"
			if done {
				mark = "✓"
			}
			tbl.AddRow(mark, t.Text, taskTypes(t.Types))
		}
		_, _ = fmt.Fprintln(w, tbl)
	}

	section(string(b.View)+" tasks", b.Pending, false)
	for _, bucket := range planner.Buckets {
		if tasks := b.Completed.Get(bucket); len(tasks) > 0 {
			section(bucketTitles[bucket], tasks, true)
		}
	}
}

func taskTypes(types []models.TaskType) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return strings.Join(names, ",")
}
