package rules

import (
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// MonitoringAlertsRule recommends creating CloudWatch alarms when the
// account has none. An unmonitored logging pipeline can fail silently; the
// script creates delivery-failure alarms wired to an SNS topic.
type MonitoringAlertsRule struct{}

func (r MonitoringAlertsRule) ID() string       { return "MONITORING_ALERTS" }
func (r MonitoringAlertsRule) Category() string { return "Monitoring" }

// Evaluate returns one MEDIUM recommendation when no alarms are configured.
func (r MonitoringAlertsRule) Evaluate(ctx RuleContext) *models.Recommendation {
	mon := ctx.Report.Monitoring
	if mon == nil || mon.AlarmsConfigured > 0 {
		return nil
	}
	script, _ := ctx.Scripts.MonitoringAlertsScript()
	return &models.Recommendation{
		Priority:      models.SeverityMedium,
		Category:      r.Category(),
		Title:         "Configure CloudWatch Alarms",
		Description:   "Create CloudWatch alarms and SNS notifications for logging failures",
		PCIReference:  "10.4.1",
		Script:        script,
		EstimatedCost: "Low (first 10 alarms are free)",
	}
}
