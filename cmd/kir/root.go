// SPDX-License-Identifier: Apache-2.0
package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the kir multi-verb CLI: parse/validate/emit/stats each
// operate on the textual IR format as a distinct subcommand.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kir",
		Short:         "kir inspects and validates a contract intermediate representation",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newEmitCmd())
	root.AddCommand(newStatsCmd())
	return root
}
