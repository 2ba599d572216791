// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"conir/internal/irtext"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file.kir>",
		Short: "Parse a textual IR file and re-emit it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			reg, err := irtext.Parse(string(src))
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), color.New(color.FgRed, color.Bold).Sprint("error:"), err)
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), irtext.Render(reg))
			return err
		},
	}
}
