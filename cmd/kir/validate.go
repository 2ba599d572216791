// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"conir/internal/ir/analysis"
	"conir/internal/irtext"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.kir>",
		Short: "Parse a textual IR file and check every structural invariant",
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
			v := reg.Validate()
			if v.HasErrors() {
				return v
			}

			pm := analysis.NewPassManager()
			for _, c := range reg.Contracts() {
				for _, f := range c.Functions {
					qualified := c.Name + "::" + f.Name
					cfg := pm.CFG(f)
					dom := pm.DominatorTree(f)
					for _, e := range analysis.CheckDominance(qualified, f, cfg, dom) {
						v.Add(e)
					}
				}
			}
			if v.HasErrors() {
				return v
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
