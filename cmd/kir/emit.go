// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"conir/internal/ir"
	"conir/internal/irtext"
)

func newEmitCmd() *cobra.Command {
	var fn string
	cmd := &cobra.Command{
		Use:   "emit <file.kir>",
		Short: "Parse a textual IR file and print one function's body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			reg, err := irtext.Parse(string(src))
			if err != nil {
				return err
			}
			for _, c := range reg.Contracts() {
				f, ok := c.FindFunction(fn)
				if !ok {
					continue
				}
				fmt.Fprint(cmd.OutOrStdout(), ir.PrintFunction(f))
				return nil
			}
			return fmt.Errorf("function %q not found in any contract", fn)
		},
	}
	cmd.Flags().StringVar(&fn, "function", "", "unqualified function name to emit (first contract defining it wins)")
	cmd.MarkFlagRequired("function")
	return cmd
}
