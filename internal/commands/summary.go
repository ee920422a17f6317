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

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	lifeboard "blockarchitech.com/lifeboard/internal"
	"blockarchitech.com/lifeboard/internal/finance"
	"blockarchitech.com/lifeboard/internal/utils"
)

func addSummary(topLevel *cobra.Command) {
	oo := &OutputOptions{}
	month := ""

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the income and spending summary of a month.",
		Example: `
lifeboard summary
lifeboard summary --month 2024-05 --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			services, closeStore, err := lifeboard.NewApp().Open(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if month == "" {
				month = utils.YearMonthOf(services.Now()).String()
			}
			summary, err := services.Finance.MonthlySummary(ctx, month)
			if err != nil {
				return err
			}
			if oo.JSON {
				return printJSON(summary)
			}
			printSummary(color.Output, summary)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM. Defaults to the current month.")
	addOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func printSummary(w io.Writer, s finance.Summary) {
	title := color.New(color.Bold, color.Underline)
	_, _ = title.Fprintf(w, "Summary %s\n", s.Month)

	tbl := uitable.New()
	tbl.RightAlign(1)
	tbl.AddRow("Income", s.TotalIncome.StringFixed(2))
	tbl.AddRow("Instant spending", s.TotalInstantSpending.StringFixed(2))
	tbl.AddRow("Paid recurring", s.TotalPaidRecurringSpending.StringFixed(2))
	tbl.AddRow("Total spending", s.TotalSpending.StringFixed(2))
	net := color.New(color.FgGreen)
	if s.NetBalance.IsNegative() {
		net = color.New(color.FgRed)
	}
	tbl.AddRow("Net balance", net.Sprint(s.NetBalance.StringFixed(2)))
	_, _ = fmt.Fprintln(w, tbl)

	if len(s.Categories) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(w, " no spending")
		return
	}
	_, _ = fmt.Fprintln(w)
	cats := uitable.New()
	cats.AddRow("CATEGORY", "AMOUNT", "SHARE")
	for _, c := range s.Categories {
		cats.AddRow(c.Category, c.Amount.StringFixed(2), fmt.Sprintf("%.1f%%", c.Percentage))
	}
	_, _ = fmt.Fprintln(w, cats)
}
