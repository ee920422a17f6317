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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	lifeboard "blockarchitech.com/lifeboard/internal"
	"blockarchitech.com/lifeboard/internal/config"
)

func addServe(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API.",
		Example: `
lifeboard serve --port 9000
lifeboard serve --storage disk --data-dir ~/.lifeboard
`,
		Run: func(cmd *cobra.Command, args []string) {
			lifeboard.NewApp().Run()
		},
	}
	cmd.Flags().String("port", "8080", "Port to listen on.")
	_ = viper.BindPFlag(config.KeyPort, cmd.Flags().Lookup("port"))

	topLevel.AddCommand(cmd)
}

func addVersion(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the lifeboard version.",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(Version)
		},
	}
	topLevel.AddCommand(cmd)
}
