package main

import (
	"fmt"
	"os"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/server"
	"github.com/zsmartex/rebate/services/report_service"
)

func openReports() (*report_service.ReportService, error) {
	if err := config.InitializeConfig(); err != nil {
		return nil, err
	}

	repo, err := server.OpenRepository()
	if err != nil {
		return nil, err
	}

	return report_service.NewReportService(server.NewReferralService(repo)), nil
}

func main() {
	if err := newRootCmd(openReports).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
