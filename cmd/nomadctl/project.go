package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	var stays []string
	var domiciled bool
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Project compliance status with hypothetical future stays",
		Long: "Each --stay takes JURISDICTION:START:END, e.g.\n" +
			"  nomadctl project --stay FR:2026-09-01:2026-09-20 --stay TH:2026-10-01:2026-11-15",
		RunE: func(cmd *cobra.Command, args []string) error {
			planned := make([]map[string]string, 0, len(stays))
			for _, s := range stays {
				parts := strings.Split(s, ":")
				if len(parts) != 3 {
					return fmt.Errorf("invalid --stay %q, want JURISDICTION:START:END", s)
				}
				planned = append(planned, map[string]string{
					"jurisdictionId": parts[0],
					"startDate":      parts[1],
					"endDate":        parts[2],
				})
			}
			payload := map[string]interface{}{
				"plannedStays": planned,
				"domiciled":    domiciled,
			}
			if refFlag != "" {
				payload["referenceDate"] = refFlag
			}
			data, err := doPostJSON("/api/v1/scenario", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	projectCmd.Flags().StringArrayVarP(&stays, "stay", "s", nil, "Planned stay JURISDICTION:START:END (repeatable, required)")
	projectCmd.Flags().BoolVarP(&domiciled, "domiciled", "d", false, "Evaluate hybrid rules under the safe-harbor limit")
	_ = projectCmd.MarkFlagRequired("stay")
	rootCmd.AddCommand(projectCmd)
}
