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
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blockarchitech.com/lifeboard/internal/config"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// New builds the lifeboard command tree. Persistent flags override the
// environment and lifeboard.yaml through viper.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lifeboard",
		Short: "Personal dashboard for tasks, money, mood and projects.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("storage", config.StorageInMemory, "Document store: inmemory, disk or firestore.")
	flags.String("data-dir", "./data", "Data directory for the disk store.")
	flags.String("timezone", config.DefaultTimezone, "IANA timezone used for calendar arithmetic.")
	flags.String("project", "", "GCP project id for the firestore store.")
	for key, flag := range map[string]string{
		config.KeyStorageType:  "storage",
		config.KeyDataDir:      "data-dir",
		config.KeyTimezone:     "timezone",
		config.KeyGCPProjectID: "project",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	addServe(cmd)
	addSummary(cmd)
	addTasks(cmd)
	addVersion(cmd)
	return cmd
}

// OutputOptions selects between table and JSON output.
type OutputOptions struct {
	JSON bool
}

func addOutputArg(cmd *cobra.Command, oo *OutputOptions) {
	cmd.Flags().BoolVar(&oo.JSON, "json", false, "Output as JSON.")
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(color.Output, string(b))
	return err
}
