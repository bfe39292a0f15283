package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/testutil"
)

// seedProperty creates a property row for report tests to reference.
func seedProperty(t *testing.T, db *sql.DB, ownerID string) *model.Property {
	t.Helper()
	property, err := NewPropertyRepo(db).Create(context.Background(), ownerID, testutil.NewPropertyRequest().Build())
	require.NoError(t, err)
	return property
}

func TestReportRepo_Integration_CreateStartsAsDraft(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewReportRepo(db)
		ctx := context.Background()

		creatorID := uuid.NewString()
		property := seedProperty(t, db, creatorID)

		report, err := repo.Create(ctx, creatorID, testutil.NewReportRequest(property.ID).
			WithDescription("Golf-ball-size hail on the south slope").
			Build())
		require.NoError(t, err)

		assert.NotEmpty(t, report.ID)
		assert.Equal(t, property.ID, report.PropertyID)
		assert.Equal(t, creatorID, report.CreatorID)
		assert.Equal(t, model.ReportStatusDraft, report.Status)
		assert.Nil(t, report.AdjusterID)
	})
}

func TestReportRepo_Integration_CreateRejectsUnknownProperty(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewReportRepo(db)

		_, err := repo.Create(context.Background(), uuid.NewString(),
			testutil.NewReportRequest(uuid.NewString()).Build())
		require.Error(t, err)
	})
}

func TestReportRepo_Integration_LifecycleUpdates(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewReportRepo(db)
		ctx := context.Background()

		creatorID := uuid.NewString()
		property := seedProperty(t, db, creatorID)
		report, err := repo.Create(ctx, creatorID, testutil.NewReportRequest(property.ID).Build())
		require.NoError(t, err)

		submitted := model.ReportStatusSubmitted
		updated, err := repo.Update(ctx, report.ID, model.UpdateReportRequest{Status: &submitted})
		require.NoError(t, err)
		assert.Equal(t, model.ReportStatusSubmitted, updated.Status)

		adjusterID := uuid.NewString()
		inReview := model.ReportStatusInReview
		updated, err = repo.Update(ctx, report.ID, model.UpdateReportRequest{
			Status:     &inReview,
			AdjusterID: &adjusterID,
		})
		require.NoError(t, err)
		assert.Equal(t, model.ReportStatusInReview, updated.Status)
		require.NotNil(t, updated.AdjusterID)
		assert.Equal(t, adjusterID, *updated.AdjusterID)
	})
}

func TestReportRepo_Integration_UpdateMissing(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewReportRepo(db)

		title := "renamed"
		_, err := repo.Update(context.Background(), uuid.NewString(), model.UpdateReportRequest{Title: &title})
		require.ErrorIs(t, err, ErrReportNotFound)
	})
}

func TestReportRepo_Integration_ListFilters(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewReportRepo(db)
		ctx := context.Background()

		creatorA := uuid.NewString()
		creatorB := uuid.NewString()
		property := seedProperty(t, db, creatorA)

		first, err := repo.Create(ctx, creatorA, testutil.NewReportRequest(property.ID).Build())
		require.NoError(t, err)
		_, err = repo.Create(ctx, creatorB, testutil.NewReportRequest(property.ID).
			WithTitle("Wind damage to siding").
			Build())
		require.NoError(t, err)

		submitted := model.ReportStatusSubmitted
		_, err = repo.Update(ctx, first.ID, model.UpdateReportRequest{Status: &submitted})
		require.NoError(t, err)

		byCreator, err := repo.List(ctx, model.ReportsListOptions{CreatorID: &creatorA})
		require.NoError(t, err)
		require.Len(t, byCreator, 1)
		assert.Equal(t, first.ID, byCreator[0].ID)

		byStatus, err := repo.List(ctx, model.ReportsListOptions{Status: &submitted})
		require.NoError(t, err)
		require.Len(t, byStatus, 1)
		assert.Equal(t, first.ID, byStatus[0].ID)

		q := "wind"
		byTitle, err := repo.List(ctx, model.ReportsListOptions{Q: &q})
		require.NoError(t, err)
		require.Len(t, byTitle, 1)
		assert.Equal(t, "Wind damage to siding", byTitle[0].Title)
	})
}

func TestReportRepo_Integration_DeleteCascadesWithProperty(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		reports := NewReportRepo(db)
		properties := NewPropertyRepo(db)
		ctx := context.Background()

		creatorID := uuid.NewString()
		property := seedProperty(t, db, creatorID)
		report, err := reports.Create(ctx, creatorID, testutil.NewReportRequest(property.ID).Build())
		require.NoError(t, err)

		deleted, err := properties.Delete(ctx, property.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		_, err = reports.GetByID(ctx, report.ID)
		require.ErrorIs(t, err, ErrReportNotFound)
	})
}
