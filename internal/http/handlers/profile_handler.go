// Profile HTTP handlers.
//
// This file exposes REST endpoints for the stored industry profile:
//   - GET /users/{id}/industry  (read, ETag support)
//   - PUT /users/{id}/industry  (create or overwrite, Idempotency-Key support)
//
// A user has at most one profile; PUT always replaces it wholesale.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joyjoin/industry-inference/internal/domain"
	"github.com/joyjoin/industry-inference/internal/http/middleware"
	"github.com/joyjoin/industry-inference/internal/repo"
	"github.com/joyjoin/industry-inference/internal/services"
)

// idemScopeProfile is the idempotency scope shared by profile writes.
const idemScopeProfile = "industry_profile"

// ProfileService defines the stored-profile operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ProfileService interface {
	// Get returns the profile for userID, or services.ErrProfileNotFound.
	Get(ctx context.Context, userID string) (*domain.IndustryProfile, error)
	// Save creates or overwrites the profile for userID.
	Save(ctx context.Context, userID string, in services.SaveProfileInput) (*domain.IndustryProfile, error)
}

// ProfileHandlers groups the HTTP endpoints for stored profiles.
type ProfileHandlers struct {
	svc ProfileService
	db  *gorm.DB

	// idemTTL bounds how long a given Idempotency-Key stays valid.
	idemTTL time.Duration
}

// NewProfile constructs ProfileHandlers bound to the given service. db is
// used for ETag stats and idempotency records.
func NewProfile(svc ProfileService, db *gorm.DB, idemTTL time.Duration) *ProfileHandlers {
	return &ProfileHandlers{svc: svc, db: db, idemTTL: idemTTL}
}

// SaveProfileRequest is the JSON payload for persisting a classification.
type SaveProfileRequest struct {
	// Raw is the original free-text description the user entered.
	Raw string `json:"raw" binding:"required" example:"做AI的"`
	// CategoryID, SegmentID, and optional NicheID form the taxonomy path.
	CategoryID string `json:"category_id" binding:"required" example:"tech"`
	SegmentID  string `json:"segment_id" binding:"required" example:"tech-ai"`
	NicheID    string `json:"niche_id,omitempty" example:"tech-ai-application"`
	// Confidence in [0,1].
	Confidence float64 `json:"confidence" example:"0.9"`
	// Source is seed|ontology|ai|fallback|manual; defaults to manual.
	Source string `json:"source,omitempty" example:"manual"`
}

// profileETag derives a weak ETag from the profile row count and latest
// update timestamp for a user.
func profileETag(ctx context.Context, db *gorm.DB, userID string) (string, bool) {
	count, maxTS, err := repo.ProfileStats(ctx, db, userID)
	if err != nil {
		return "", false
	}
	var ts int64
	if maxTS != nil {
		ts = maxTS.Unix()
	}
	return fmt.Sprintf(`W/"profile:%s:%d:%d"`, userID, count, ts), true
}

// GetIndustry godoc
// @ID          getUserIndustry
// @Summary     Get a user's stored industry profile
// @Description Returns the persisted classification for the user. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Profiles
// @Produce     json
//
// @Param       id             path    string  true  "User ID"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {object} domain.IndustryProfile
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     404  {object} handlers.ErrorResponse "Profile not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/industry [get]
func (h *ProfileHandlers) GetIndustry(c *gin.Context) {
	ctx := c.Request.Context()
	uid := c.Param("id")

	// ETag pre-check (best effort).
	if h.db != nil {
		if etag, okTag := profileETag(ctx, h.db, uid); okTag {
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	p, err := h.svc.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "industry profile not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

// PutIndustry godoc
// @ID          putUserIndustry
// @Summary     Persist a user's industry classification
// @Description Creates or overwrites the user's stored profile. Honors Idempotency-Key: a repeated key within the TTL replays the stored profile without rewriting it.
// @Tags        Profiles
// @Accept      json
// @Produce     json
//
// @Param       id               path    string  true   "User ID"
// @Param       Idempotency-Key  header  string  false  "Safe-retry key"
// @Param       body             body    handlers.SaveProfileRequest  true  "Classification to persist"
//
// @Success     200  {object} domain.IndustryProfile
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/industry [put]
func (h *ProfileHandlers) PutIndustry(c *gin.Context) {
	ctx := c.Request.Context()
	uid := c.Param("id")

	// Replay: serve the previously persisted profile without rewriting.
	if middleware.IsReplay(c) && h.db != nil {
		if key, okKey := middleware.GetIdempotencyKey(c); okKey {
			if rec, err := repo.GetIdempotency(ctx, h.db, uid, idemScopeProfile, key, time.Now().UTC()); err == nil {
				if p, err := repo.GetProfileByID(ctx, h.db, rec.ProfileID); err == nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, rec.Status, p)
					return
				}
			}
		}
	}

	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.svc.Save(ctx, uid, services.SaveProfileInput{
		Raw:        req.Raw,
		CategoryID: req.CategoryID,
		SegmentID:  req.SegmentID,
		NicheID:    req.NicheID,
		Confidence: req.Confidence,
		Source:     req.Source,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyDescription):
			fail(c, http.StatusBadRequest, ErrCodeEmptyDescription, "raw description must not be empty")
		case errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeDescriptionTooLong, "raw description too long")
		case errors.Is(err, services.ErrInvalidPath):
			fail(c, http.StatusBadRequest, ErrCodeInvalidPath, "category/segment/niche is not a valid taxonomy path")
		case errors.Is(err, services.ErrInvalidConfidence):
			fail(c, http.StatusBadRequest, ErrCodeInvalidConfidence, "confidence must be between 0 and 1")
		case errors.Is(err, services.ErrInvalidSource):
			fail(c, http.StatusBadRequest, ErrCodeInvalidSource, "unknown classification source")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		}
		return
	}

	// Record the key so retries replay instead of rewriting. Duplicate
	// records are fine; the first writer wins.
	if key, okKey := middleware.GetIdempotencyKey(c); okKey && h.db != nil {
		if _, err := repo.CreateIdempotency(ctx, h.db, uid, idemScopeProfile, key, p.ID, http.StatusOK, h.idemTTL); err != nil && !errors.Is(err, repo.ErrDuplicate) {
			lg := middleware.LoggerFrom(c)
			lg.Warn().Err(err).Msg("idempotency record not stored")
		}
	}

	ok(c, http.StatusOK, p)
}
