package service

import (
	"context"
	"maps"

	"record_store/internal/auth"
	"record_store/internal/domain"
)

// Portal exposes the grades stored with each student's credentials
type Portal struct {
	students *auth.CredentialStore
}

// NewPortal wraps the students credential store
func NewPortal(students *auth.CredentialStore) *Portal {
	return &Portal{students: students}
}

// Grades returns every grade of username, never nil
func (s *Portal) Grades(ctx context.Context, username string) (map[string]float64, error) {
	user, err := s.students.Lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	grades := maps.Clone(user.Grades)
	if grades == nil {
		grades = map[string]float64{}
	}
	return grades, nil
}

// Grade returns a single subject's grade
func (s *Portal) Grade(ctx context.Context, username, subject string) (float64, error) {
	grades, err := s.Grades(ctx, username)
	if err != nil {
		return 0, err
	}
	g, ok := grades[subject]
	if !ok {
		return 0, domain.NotFound("Subject")
	}
	return g, nil
}
