package awslogging

import (
	"context"

	aasvc "github.com/aws/aws-sdk-go-v2/service/accessanalyzer"
	iamsvc "github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// collectIAMMonitoring checks two account-level monitoring signals: whether
// the IAM credential report can be generated, and whether at least one IAM
// Access Analyzer exists. Neither check is fatal; a failure simply records
// the capability as unavailable so the engine can flag it.
func collectIAMMonitoring(ctx context.Context, iamClient iamAPIClient, aaClient accessAnalyzerAPIClient) (*models.IAMMonitoringData, error) {
	data := &models.IAMMonitoringData{}

	// GenerateCredentialReport kicks off report generation; success in either
	// the STARTED or COMPLETE state means the report is available to review.
	if _, err := iamClient.GenerateCredentialReport(ctx, &iamsvc.GenerateCredentialReportInput{}); err == nil {
		data.CredentialReportAvailable = true
	}

	if out, err := aaClient.ListAnalyzers(ctx, &aasvc.ListAnalyzersInput{}); err == nil {
		data.AccessAnalyzerPresent = len(out.Analyzers) > 0
	}

	return data, nil
}
