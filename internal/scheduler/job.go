package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/service"
)

// RunSummary reports what one pass over the projects did.
type RunSummary struct {
	Projects    int // projects with pending revenue
	Distributed int // projects that received a distribution
	Empty       int // projects where nothing could be distributed
	Failed      int
}

// DividendJob distributes all pending revenue of every project that has some.
// Running it twice in a row is harmless: the second pass finds nothing pending.
type DividendJob struct {
	projects  *service.ProjectService
	dividends *service.DividendService
	logger    *zap.Logger
	timeout   time.Duration
}

// NewDividendJob creates a DividendJob.
func NewDividendJob(projects *service.ProjectService, dividends *service.DividendService, logger *zap.Logger) *DividendJob {
	return &DividendJob{
		projects:  projects,
		dividends: dividends,
		logger:    logger,
		timeout:   defaultJobTimeout,
	}
}

// Run performs one pass. A failing project is logged and counted but does not stop
// the others; Run only returns an error when the project list cannot be read or ctx ends.
func (j *DividendJob) Run(ctx context.Context) (RunSummary, error) {
	var summary RunSummary

	projects, err := j.projects.GetProjectsWithPendingRevenue(ctx)
	if err != nil {
		return summary, err
	}
	summary.Projects = len(projects)

	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := j.dividends.DistributeDividends(ctx, p.ID, nil)
		switch {
		case errors.Is(err, apperrors.ErrConcurrentModification):
			// Another writer got there first; whatever is still pending is picked up next run.
			j.logger.Warn("dividend distribution conflicted, will retry next run", zap.String("project_id", p.ID))
			summary.Failed++
		case err != nil:
			j.logger.Error("dividend distribution failed", zap.String("project_id", p.ID), zap.Error(err))
			summary.Failed++
		case result.Distribution == nil:
			j.logger.Info("nothing to distribute", zap.String("project_id", p.ID), zap.String("reason", result.Reason))
			summary.Empty++
		default:
			summary.Distributed++
		}
	}

	j.logger.Info("dividend run finished",
		zap.Int("projects", summary.Projects),
		zap.Int("distributed", summary.Distributed),
		zap.Int("empty", summary.Empty),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}
