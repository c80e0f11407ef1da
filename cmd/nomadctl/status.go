package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var domiciled bool
	statusCmd := &cobra.Command{
		Use:   "status [JURISDICTION]",
		Short: "Show compliance status for all jurisdictions, or one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/status"
			if len(args) == 1 {
				path = path + "/" + args[0]
			}
			query := map[string]string{}
			if domiciled {
				query["domiciled"] = "true"
			}
			data, err := doGet(path, query)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	statusCmd.Flags().BoolVarP(&domiciled, "domiciled", "d", false, "Evaluate hybrid rules under the safe-harbor limit")
	rootCmd.AddCommand(statusCmd)

	schengenCmd := &cobra.Command{
		Use:   "schengen",
		Short: "Show the 90/180 rolling-window detail for the Schengen zone",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/v1/schengen", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(schengenCmd)

	sptCmd := &cobra.Command{
		Use:   "spt",
		Short: "Show the US substantial-presence test result",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/v1/substantial-presence", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(sptCmd)
}
