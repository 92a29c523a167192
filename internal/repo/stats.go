// Package repo implements the data persistence layer for domain
// entities, backed by GORM. This file provides small aggregate
// queries used for conditional responses (ETag generation) and the
// operational stats endpoint.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/joyjoin/industry-inference/internal/domain"
)

// ProfileStats returns aggregate metadata for a user's profile: row
// count (0 or 1) and the UpdatedAt timestamp. Used to build ETags for
// GET /users/{id}/industry without loading the full row.
func ProfileStats(ctx context.Context, db *gorm.DB, userID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.IndustryProfile{}).Where("user_id = ?", userID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Read updated_at directly (avoid MAX() -> TEXT in SQLite).
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// SourceCounts returns the number of stored profiles per
// classification source (seed, ontology, ai, fallback, manual).
func SourceCounts(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		Source string
		N      int64
	}
	err := db.WithContext(ctx).
		Model(&domain.IndustryProfile{}).
		Select("source, COUNT(*) AS n").
		Group("source").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Source] = r.N
	}
	return out, nil
}
