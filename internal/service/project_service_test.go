package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/request"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/service"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/testutil"
)

func TestProjectService_CreateProject(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestProjectService(t, db)

	project, err := svc.CreateProject(ctx, request.CreateProjectRequest{
		CreatorID:   testutil.MakeID(),
		Title:       "Community Solar",
		FundingGoal: testutil.Dec("25000"),
		StartDate:   "2026-01-01",
		EndDate:     "2026-06-30",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ProjectStatusDraft, project.Status)
	assert.True(t, project.CurrentFunding.IsZero())

	stored, err := svc.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Community Solar", stored.Title)
	testutil.AssertDecimal(t, "25000", stored.FundingGoal)
	assert.Equal(t, "2026-06-30", stored.EndDate.Format("2006-01-02"))
}

func TestProjectService_RecordRevenue(t *testing.T) {
	ctx := context.Background()

	t.Run("accumulates revenue", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)
		project := testutil.NewProject().Build(t, db)

		_, err := svc.RecordRevenue(ctx, project.ID, testutil.Dec("120.10"))
		require.NoError(t, err)
		updated, err := svc.RecordRevenue(ctx, project.ID, testutil.Dec("79.90"))
		require.NoError(t, err)

		testutil.AssertDecimal(t, "200", updated.TotalRevenue)
		assert.Equal(t, project.Version+2, updated.Version)

		pending, err := svc.PendingRevenue(ctx, project.ID)
		require.NoError(t, err)
		testutil.AssertDecimal(t, "200", pending)
	})

	t.Run("concurrent revenue is not lost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)
		project := testutil.NewProject().Build(t, db)

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.RecordRevenue(ctx, project.ID, testutil.Dec("1.01"))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stored, err := svc.GetProject(ctx, project.ID)
		require.NoError(t, err)
		testutil.AssertDecimal(t, "10.10", stored.TotalRevenue)
	})

	t.Run("rejects invalid amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)
		project := testutil.NewProject().Build(t, db)

		_, err := svc.RecordRevenue(ctx, project.ID, testutil.Dec("-5"))
		assert.ErrorIs(t, err, apperrors.ErrNonPositiveAmount)
	})

	t.Run("unknown project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)

		_, err := svc.RecordRevenue(ctx, testutil.MakeID(), testutil.Dec("5"))
		assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
	})
}

func TestProjectService_GetProjectsWithPendingRevenue(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestProjectService(t, db)

	withPending := testutil.NewProject().WithRevenue(testutil.Dec("100")).WithDistributed(testutil.Dec("40")).Build(t, db)
	testutil.NewProject().WithRevenue(testutil.Dec("100")).WithDistributed(testutil.Dec("100")).Build(t, db)
	testutil.NewProject().Build(t, db)

	projects, err := svc.GetProjectsWithPendingRevenue(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, withPending.ID, projects[0].ID)
	testutil.AssertDecimal(t, "60", projects[0].PendingRevenue())
}

func TestProjectLocks(t *testing.T) {
	locks := service.NewProjectLocks()
	ctx := context.Background()

	release, err := locks.Acquire(ctx, "a")
	require.NoError(t, err)

	// A different project is not blocked.
	other, err := locks.Acquire(ctx, "b")
	require.NoError(t, err)
	other()

	// The same project is, until the holder releases.
	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = locks.Acquire(waitCtx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	again, err := locks.Acquire(ctx, "a")
	require.NoError(t, err)
	again()
}
