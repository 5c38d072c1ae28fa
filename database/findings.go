package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/jinzhu/gorm"

	"github.com/sundew-project/sundew/core"
)

// FindingRecord stored finding row
type FindingRecord struct {
	gorm.Model
	FindingID   string `gorm:"unique_index"`
	Title       string
	Description string
	Reporter    string
	DedupeKey   string `gorm:"index"`
	RequestID   string
}

// FindingDB persists findings referencing captured requests. Satisfies
// the core.FindingStore contract.
type FindingDB struct {
	db      *gorm.DB
	capture *CaptureStore
}

// NewFindingDB wrap an open database, capture resolves request references
func NewFindingDB(db *gorm.DB, capture *CaptureStore) *FindingDB {
	return &FindingDB{db: db, capture: capture}
}

// Save persist one finding and hand back its immutable view. A known
// dedupe key returns the finding already stored under it.
func (s *FindingDB) Save(ctx context.Context, spec core.FindingSpec) (*core.Finding, error) {
	if s.capture != nil && !s.capture.HasRequest(spec.Request.ID()) {
		return nil, fmt.Errorf("referenced request %v not found", spec.Request.ID())
	}

	if spec.DedupeKey != "" {
		var existing FindingRecord
		if err := s.db.Where("dedupe_key = ?", spec.DedupeKey).First(&existing).Error; err == nil {
			return core.NewFinding(existing.FindingID, existing.Title, existing.Description, existing.Reporter), nil
		}
	}

	id, _ := uuid.NewUUID()
	rec := FindingRecord{
		FindingID: id.String(),
		RequestID: spec.Request.ID(),
	}
	copier.Copy(&rec, &spec)
	if err := s.db.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("storing finding: %w", err)
	}
	return core.NewFinding(rec.FindingID, rec.Title, rec.Description, rec.Reporter), nil
}
