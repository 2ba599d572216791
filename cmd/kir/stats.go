// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"conir/internal/ir/analysis"
	"conir/internal/irtext"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file.kir>",
		Short: "Print per-function block/instruction counts, unused results, loops and derived metadata",
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
			pm := analysis.NewPassManager()
			for _, c := range reg.Contracts() {
				for _, f := range c.Functions {
					pm.CFG(f)
					pm.DominatorTree(f)
					du := pm.DefUse(f)
					unused := 0
					for _, inst := range f.AllInsts() {
						for _, r := range inst.Results {
							if du.IsUnused(r) {
								unused++
							}
						}
					}
					loops := pm.Loops(f)
					fmt.Fprintf(cmd.OutOrStdout(), "%s::%s: blocks=%d insts=%d unused_results=%d loops=%d calls_external=%t modifies_state=%t can_reenter=%t estimated_gas=%d\n",
						c.Name, f.Name, len(f.Blocks), len(f.AllInsts()), unused, len(loops),
						f.CallsExternal, f.ModifiesState, f.CanReenter, f.EstimatedGas)
				}
			}
			return nil
		},
	}
}
