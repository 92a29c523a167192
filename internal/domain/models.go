// Package domain defines the persistence models for stored industry
// classifications. These types are mapped with GORM and form the core
// data layer of the inference backend.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// IndustryProfile is the persisted classification result for a user.
// It is created or overwritten each time the user updates their
// occupation description; there is at most one row per user.
//
// Invariants:
//   - CategoryID/CategoryLabel and SegmentID/SegmentLabel are always
//     present.
//   - Niche fields are set only when the taxonomy path has a third
//     level and the classifier was confident enough to assign it.
//   - Confidence is stored in [0,1].
//   - Source records the tier that produced the classification
//     (seed, ontology, ai, fallback) or "manual" for a user override.
type IndustryProfile struct {
	ID     string `json:"id"      gorm:"type:char(36);primaryKey"`
	UserID string `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_profile_user"`

	Raw        string `json:"raw"        gorm:"type:text;not null"`
	Normalized string `json:"normalized" gorm:"type:text;not null"`

	CategoryID    string  `json:"category_id"    gorm:"type:varchar(64);not null;index"`
	CategoryLabel string  `json:"category_label" gorm:"type:varchar(128);not null"`
	SegmentID     string  `json:"segment_id"     gorm:"type:varchar(64);not null"`
	SegmentLabel  string  `json:"segment_label"  gorm:"type:varchar(128);not null"`
	NicheID       *string `json:"niche_id,omitempty"    gorm:"type:varchar(64)"`
	NicheLabel    *string `json:"niche_label,omitempty" gorm:"type:varchar(128)"`

	Confidence float64 `json:"confidence" gorm:"not null"`
	Source     string  `json:"source"     gorm:"type:varchar(16);not null;index;check:source IN ('seed','ontology','ai','fallback','manual')"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the database table name for IndustryProfile.
func (IndustryProfile) TableName() string { return "industry_profiles" }
