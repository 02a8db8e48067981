package service

import (
	"context"
	"testing"
	"time"

	"record_store/internal/domain"
	"record_store/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJobs(t *testing.T, backend storage.Backend) *Jobs {
	return NewJobs(
		openCatalog[domain.JobListing](t, backend, "jobs/job_listings", "Job listing"),
		openRecords[domain.Application](t, backend, "jobs/applications", "Application"),
	)
}

func TestJobs_ApplyIncrementsApplicants(t *testing.T) {
	ctx := context.Background()
	s := newTestJobs(t, storage.NewFileBackend(t.TempDir()))
	_, err := s.CreateListing(ctx, ListingInput{ID: "j1", Title: "Engineer", Company: "Acme"})
	require.NoError(t, err)

	app, err := s.Apply(ctx, "dave", "j1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, app.Status)
	assert.Equal(t, "Engineer", app.JobTitle)
	assert.Equal(t, "Acme", app.Company)
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), app.DateApplied)

	listings, err := s.Listings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, listings["j1"].Applicants)

	apps, err := s.Applications(ctx, "dave")
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestJobs_ApplyUnknownListing(t *testing.T) {
	ctx := context.Background()
	s := newTestJobs(t, storage.NewFileBackend(t.TempDir()))

	_, err := s.Apply(ctx, "dave", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	apps, err := s.Applications(ctx, "dave")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestJobs_ApplyRollsBackWhenCounterWriteFails(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{Backend: storage.NewFileBackend(t.TempDir()), failName: "jobs/job_listings"}
	s := newTestJobs(t, backend)
	_, err := s.CreateListing(ctx, ListingInput{ID: "j1", Title: "Engineer", Company: "Acme"})
	require.NoError(t, err)

	backend.armed = true
	_, err = s.Apply(ctx, "dave", "j1")
	require.Error(t, err)

	apps, err := s.Applications(ctx, "dave")
	require.NoError(t, err)
	assert.Empty(t, apps)

	listings, err := s.Listings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, listings["j1"].Applicants)
}

func TestJobs_StatusAndWithdrawKeepCounter(t *testing.T) {
	ctx := context.Background()
	s := newTestJobs(t, storage.NewFileBackend(t.TempDir()))
	_, err := s.CreateListing(ctx, ListingInput{ID: "j1", Title: "Engineer", Company: "Acme"})
	require.NoError(t, err)
	app, err := s.Apply(ctx, "dave", "j1")
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, "dave", app.ID, "hired")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := s.UpdateStatus(ctx, "dave", app.ID, domain.StatusInterviewing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInterviewing, updated.Status)
	assert.NotEmpty(t, updated.UpdatedAt)

	got, err := s.Application(ctx, "dave", app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInterviewing, got.Status)

	require.NoError(t, s.Withdraw(ctx, "dave", app.ID))
	assert.ErrorIs(t, s.Withdraw(ctx, "dave", app.ID), domain.ErrNotFound)

	listings, err := s.Listings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, listings["j1"].Applicants)
}

func TestJobs_CreateListingValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestJobs(t, storage.NewFileBackend(t.TempDir()))

	_, err := s.CreateListing(ctx, ListingInput{ID: "j1", Title: "Engineer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.CreateListing(ctx, ListingInput{ID: "j1", Title: "Engineer", Company: "Acme"})
	require.NoError(t, err)
	_, err = s.CreateListing(ctx, ListingInput{ID: "j1", Title: "Other", Company: "Acme"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
}
