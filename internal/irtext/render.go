// SPDX-License-Identifier: Apache-2.0
package irtext

import "conir/internal/ir"

// Render snapshots reg into its textual form via ir.Print, the inverse of
// Parse.
func Render(reg *ir.Registry) string {
	return ir.Print(reg.ToProgram())
}
