package engine

import (
	"context"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// ReviewOptions configures a single review run.
// It is the sole input to ReviewEngine.RunReview.
type ReviewOptions struct {
	// Profile is the named AWS profile to use. Empty means the default profile.
	Profile string

	// Region overrides the profile's configured region when non-empty.
	Region string

	// WithCost enables the Cost Explorer logging-spend probe. The probe is
	// non-fatal: a failure leaves the cost summary empty rather than adding
	// an issue, since Cost Explorer is frequently not enabled.
	WithCost bool
}

// ReviewEngine is the central orchestration interface. It coordinates
// credential loading, probe collection, and finding normalization, returning
// a fully populated FindingsReport.
//
// ReviewEngine must not call AWS SDK clients directly; it delegates to the
// client provider and logging collector interfaces.
type ReviewEngine interface {
	RunReview(ctx context.Context, opts ReviewOptions) (*models.FindingsReport, error)
}
