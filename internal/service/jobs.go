package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"record_store/internal/catalog"
	"record_store/internal/domain"
	"record_store/internal/records"

	"github.com/sirupsen/logrus"
)

// ListingInput creates a job listing
type ListingInput struct {
	ID      string
	Title   string
	Company string
}

// Jobs manages job listings and each user's applications
type Jobs struct {
	listings     *catalog.Catalog[domain.JobListing]
	applications *records.Store[domain.Application]

	applyMu sync.Mutex // pairs the application write with its counter write
}

// NewJobs wires the listing catalog and the application store
func NewJobs(listings *catalog.Catalog[domain.JobListing], applications *records.Store[domain.Application]) *Jobs {
	return &Jobs{listings: listings, applications: applications}
}

// Listings returns every listing keyed by id
func (s *Jobs) Listings(ctx context.Context) (catalog.Entries[domain.JobListing], error) {
	return s.listings.List(ctx)
}

// CreateListing adds a listing with zero applicants; callers enforce the admin gate
func (s *Jobs) CreateListing(ctx context.Context, in ListingInput) (domain.JobListing, error) {
	if in.ID == "" || in.Title == "" || in.Company == "" {
		return domain.JobListing{}, fmt.Errorf("%w: id, title and company are required", domain.ErrInvalidInput)
	}
	listing := domain.JobListing{Title: in.Title, Company: in.Company}
	if err := s.listings.Create(ctx, in.ID, listing); err != nil {
		return domain.JobListing{}, err
	}
	logrus.WithFields(logrus.Fields{"job_listing_id": in.ID, "company": in.Company}).Info("Job listing created")
	return listing, nil
}

// Apply records a pending application and bumps the listing's applicant counter.
// If the counter cannot be written the application is removed again.
func (s *Jobs) Apply(ctx context.Context, owner, listingID string) (domain.Application, error) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	listing, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return domain.Application{}, err
	}

	app, err := s.applications.Append(ctx, owner, func(id string, now time.Time) domain.Application {
		return domain.Application{
			ID:           id,
			JobListingID: listingID,
			JobTitle:     listing.Title,
			Company:      listing.Company,
			DateApplied:  now.Format(time.DateOnly),
			Status:       domain.StatusPending,
		}
	})
	if err != nil {
		return domain.Application{}, err
	}

	_, err = s.listings.Update(ctx, listingID, func(l *domain.JobListing) error {
		l.Applicants++
		return nil
	})
	if err != nil {
		if cerr := s.applications.Delete(ctx, owner, app.ID); cerr != nil {
			logrus.WithFields(logrus.Fields{
				"username":       owner,
				"application_id": app.ID,
				"error":          cerr.Error(),
			}).Error("Failed to roll back application")
			return domain.Application{}, errors.Join(err, cerr)
		}
		return domain.Application{}, fmt.Errorf("increment applicants: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"username":       owner,
		"application_id": app.ID,
		"job_listing_id": listingID,
	}).Info("Application added")
	return app, nil
}

// Applications returns owner's applications
func (s *Jobs) Applications(ctx context.Context, owner string) ([]domain.Application, error) {
	return s.applications.List(ctx, owner)
}

// Application returns one of owner's applications
func (s *Jobs) Application(ctx context.Context, owner, id string) (domain.Application, error) {
	return s.applications.Get(ctx, owner, id)
}

// UpdateStatus moves an application to a new status
func (s *Jobs) UpdateStatus(ctx context.Context, owner, id, status string) (domain.Application, error) {
	if !domain.ValidStatus(status) {
		return domain.Application{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	app, err := s.applications.Update(ctx, owner, id, func(a *domain.Application, now time.Time) error {
		a.Status = status
		a.UpdatedAt = now.Format(time.RFC3339Nano)
		return nil
	})
	if err != nil {
		return domain.Application{}, err
	}
	logrus.WithFields(logrus.Fields{"username": owner, "application_id": id, "status": status}).Info("Application updated")
	return app, nil
}

// Withdraw deletes an application; the listing's counter is left as is
func (s *Jobs) Withdraw(ctx context.Context, owner, id string) error {
	if err := s.applications.Delete(ctx, owner, id); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"username": owner, "application_id": id}).Info("Application deleted")
	return nil
}
