package service

import (
	"context"
	"fmt"
	"time"

	"record_store/internal/domain"
	"record_store/internal/records"

	"github.com/sirupsen/logrus"
)

// NoteInput is the user-supplied part of a note
type NoteInput struct {
	Title   string
	Content string
}

// Notes manages each user's notes
type Notes struct {
	notes *records.Store[domain.Note]
}

// NewNotes wraps a note record store
func NewNotes(notes *records.Store[domain.Note]) *Notes {
	return &Notes{notes: notes}
}

// Add creates a note for owner
func (s *Notes) Add(ctx context.Context, owner string, in NoteInput) (domain.Note, error) {
	if in.Title == "" {
		return domain.Note{}, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	note, err := s.notes.Append(ctx, owner, func(id string, now time.Time) domain.Note {
		return domain.Note{ID: id, Title: in.Title, Content: in.Content, Date: now.Format(time.RFC3339Nano)}
	})
	if err != nil {
		return domain.Note{}, err
	}
	logrus.WithFields(logrus.Fields{"username": owner, "note_id": note.ID}).Info("Note added")
	return note, nil
}

// List returns owner's notes in creation order
func (s *Notes) List(ctx context.Context, owner string) ([]domain.Note, error) {
	return s.notes.List(ctx, owner)
}

// Get returns one note
func (s *Notes) Get(ctx context.Context, owner, id string) (domain.Note, error) {
	return s.notes.Get(ctx, owner, id)
}

// Update overwrites title and content and refreshes the date
func (s *Notes) Update(ctx context.Context, owner, id string, in NoteInput) (domain.Note, error) {
	if in.Title == "" {
		return domain.Note{}, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	note, err := s.notes.Update(ctx, owner, id, func(n *domain.Note, now time.Time) error {
		n.Title = in.Title
		n.Content = in.Content
		n.Date = now.Format(time.RFC3339Nano)
		return nil
	})
	if err != nil {
		return domain.Note{}, err
	}
	logrus.WithFields(logrus.Fields{"username": owner, "note_id": id}).Info("Note updated")
	return note, nil
}

// Delete removes one note
func (s *Notes) Delete(ctx context.Context, owner, id string) error {
	if err := s.notes.Delete(ctx, owner, id); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"username": owner, "note_id": id}).Info("Note deleted")
	return nil
}
