package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zsmartex/rebate/services/report_service"
)

type opener func() (*report_service.ReportService, error)

type exportOptions struct {
	uid    string
	output string
}

func newRootCmd(open opener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rebate-export",
		Short:         "Export referral commission reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newReportCmd(open, "csv", "Export the commission report of a user as CSV"),
		newReportCmd(open, "xlsx", "Export the commission report of a user as an Excel workbook"),
		newStatsCmd(open),
	)

	return rootCmd
}

func newReportCmd(open opener, format, short string) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   format,
		Short: short,
		Long: `Generate the report of one user. Without --output the file is
written to the current directory under its download name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := open()
			if err != nil {
				return err
			}

			return runReport(cmd.OutOrStdout(), reports, format, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.uid, "uid", "u", "", "User uid")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file, - for stdout")
	_ = cmd.MarkFlagRequired("uid")

	return cmd
}

func runReport(out io.Writer, reports *report_service.ReportService, format string, opts *exportOptions) error {
	user, err := reports.User(opts.uid)
	if err != nil {
		return fmt.Errorf("user %s: %w", opts.uid, err)
	}

	var content []byte
	switch format {
	case "csv":
		csv, err := reports.GenerateUserStatsCSV(user.UID)
		if err != nil {
			return err
		}
		content = []byte(csv)
	case "xlsx":
		content, err = reports.GenerateUserStatsXLSX(user.UID)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if opts.output == "-" {
		_, err := out.Write(content)
		return err
	}

	path := opts.output
	if len(path) == 0 {
		path = report_service.ReportFilename(user, format, time.Now())
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(out, "Wrote %s (%d bytes)\n", path, len(content))

	return nil
}

func newStatsCmd(open opener) *cobra.Command {
	var uid string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the commission stats of a user as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := open()
			if err != nil {
				return err
			}

			user, err := reports.User(uid)
			if err != nil {
				return fmt.Errorf("user %s: %w", uid, err)
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")

			return encoder.Encode(reports.Stats(user.UID))
		},
	}

	cmd.Flags().StringVarP(&uid, "uid", "u", "", "User uid")
	_ = cmd.MarkFlagRequired("uid")

	return cmd
}
