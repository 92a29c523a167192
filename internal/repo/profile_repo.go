// Package repo implements the data persistence layer for domain
// entities, backed by GORM. This file provides repository functions
// for the IndustryProfile model.
//
// All functions are context-aware and accept a *gorm.DB handle, making
// them safe for use within transactions. They follow the "thin
// repository" approach: no business logic, only CRUD persistence and
// query composition.
//
// Error semantics:
//   - When a profile is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joyjoin/industry-inference/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetProfile fetches the industry profile for userID, or ErrNotFound.
func GetProfile(ctx context.Context, db *gorm.DB, userID string) (*domain.IndustryProfile, error) {
	var p domain.IndustryProfile
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile creates the profile for p.UserID or overwrites the
// existing one in place. The row keeps its original ID and CreatedAt
// on overwrite; everything else is replaced, matching the
// created/overwritten lifecycle of a user's classification.
func UpsertProfile(ctx context.Context, db *gorm.DB, p *domain.IndustryProfile) (*domain.IndustryProfile, error) {
	now := time.Now().UTC()

	var existing domain.IndustryProfile
	err := db.WithContext(ctx).Where("user_id = ?", p.UserID).First(&existing).Error
	switch {
	case err == nil:
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = now
		if err := db.WithContext(ctx).Save(p).Error; err != nil {
			return nil, err
		}
		return p, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		p.ID = uuid.NewString()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := db.WithContext(ctx).Create(p).Error; err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, err
	}
}

// GetProfileByID fetches a profile by primary key, or ErrNotFound.
func GetProfileByID(ctx context.Context, db *gorm.DB, id string) (*domain.IndustryProfile, error) {
	var p domain.IndustryProfile
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CountProfiles returns the total number of stored profiles.
func CountProfiles(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.IndustryProfile{}).
		Count(&total).Error
	return total, err
}
