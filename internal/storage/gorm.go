package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRow is one document in the documents table
type DocumentRow struct {
	Name      string `gorm:"primaryKey;size:191"`    // Document name, e.g. notes/users
	Body      []byte `gorm:"type:longblob;not null"` // Raw JSON body
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`   // Last write in milliseconds
}

// TableName pins the table name
func (DocumentRow) TableName() string { return "documents" }

// GormBackend stores documents as rows through GORM
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend wraps an open GORM connection
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

// Read loads the row for name
func (b *GormBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var row DocumentRow
	err := b.db.WithContext(ctx).Where("name = ?", name).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Body, nil
}

// Write upserts the row for name
func (b *GormBackend) Write(ctx context.Context, name string, body []byte) error {
	row := DocumentRow{Name: name, Body: body}
	return b.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}
