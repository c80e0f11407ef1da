package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	staysCmd := &cobra.Command{Use: "stays", Short: "Stay record operations"}

	// list
	var jurisdiction string
	var includeSuperseded bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded stays",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := map[string]string{}
			if jurisdiction != "" {
				query["jurisdiction"] = jurisdiction
			}
			if includeSuperseded {
				query["includeSuperseded"] = "true"
			}
			data, err := doGet("/api/v1/stays", query)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&jurisdiction, "jurisdiction", "j", "", "Filter by jurisdiction ID")
	listCmd.Flags().BoolVar(&includeSuperseded, "all", false, "Include superseded records")
	staysCmd.AddCommand(listCmd)

	// add
	var addJurisdiction, start, end, notes string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a stay",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"jurisdictionId": addJurisdiction,
				"startDate":      start,
			}
			if end != "" {
				payload["endDate"] = end
			}
			if notes != "" {
				payload["notes"] = notes
			}
			data, err := doPostJSON("/api/v1/stays", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&addJurisdiction, "jurisdiction", "j", "", "Jurisdiction ID (required)")
	addCmd.Flags().StringVarP(&start, "start", "s", "", "Start date YYYY-MM-DD (required)")
	addCmd.Flags().StringVarP(&end, "end", "e", "", "End date YYYY-MM-DD (omit for an ongoing stay)")
	addCmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-form note")
	_ = addCmd.MarkFlagRequired("jurisdiction")
	_ = addCmd.MarkFlagRequired("start")
	staysCmd.AddCommand(addCmd)

	rootCmd.AddCommand(staysCmd)
}
