package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// EngagementService owns the like/view state machine for blog posts. Each
// (post, user) pair holds at most one like row and one view row; the store's
// composite unique constraints, not locks, arbitrate concurrent writers.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
	viewWindow     time.Duration
}

// StatsResult is the engagement summary for a post.
type StatsResult struct {
	PostSlug    string `json:"postSlug"`
	LikeCount   int64  `json:"likeCount"`
	ViewCount   int64  `json:"viewCount"`
	LikedByUser bool   `json:"likedByUser"`
}

// ToggleLikeResult reports the like-state after a toggle.
type ToggleLikeResult struct {
	PostSlug  string `json:"postSlug"`
	Liked     bool   `json:"liked"`
	LikeCount int64  `json:"likeCount"`
}

// RecordViewResult reports the distinct-viewer count after a view attempt and
// whether this call counted as a fresh or renewed view.
type RecordViewResult struct {
	ViewCount int64 `json:"viewCount"`
	Counted   bool  `json:"counted"`
}

// NewEngagementService creates an EngagementService with the given view
// deduplication window.
func NewEngagementService(engagementRepo repository.EngagementRepository, viewWindow time.Duration) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		viewWindow:     viewWindow,
	}
}

func validatePostSlug(postSlug string) (string, error) {
	postSlug = strings.TrimSpace(postSlug)
	if postSlug == "" {
		return "", models.NewValidationError("Post slug is required")
	}
	return postSlug, nil
}

// ToggleLike flips the caller's like state on a post: an existing like is
// removed, a missing one is created. Two calls in succession restore the
// original state. A concurrent duplicate create is resolved by the unique
// constraint; the loser re-reads and reports the state the winner produced.
func (s *EngagementService) ToggleLike(ctx context.Context, postSlug string, userID uint) (*ToggleLikeResult, error) {
	postSlug, err := validatePostSlug(postSlug)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required to like posts")
	}

	liked := false
	_, err = s.engagementRepo.GetLike(ctx, postSlug, userID)
	switch {
	case err == nil:
		// Already liked, so unlike it
		if derr := s.engagementRepo.DeleteLike(ctx, postSlug, userID); derr != nil {
			return nil, models.NewInternalError(derr)
		}
	case err == gorm.ErrRecordNotFound:
		inserted, ierr := s.engagementRepo.InsertLike(ctx, &models.Like{
			PostSlug: postSlug,
			UserID:   userID,
		})
		if ierr != nil {
			return nil, models.NewInternalError(ierr)
		}
		liked = true
		if !inserted {
			// Another toggle won the race; report whatever state it left.
			liked, ierr = s.engagementRepo.IsLiked(ctx, postSlug, userID)
			if ierr != nil {
				return nil, models.NewInternalError(ierr)
			}
		}
	default:
		return nil, models.NewInternalError(err)
	}

	count, err := s.engagementRepo.CountLikes(ctx, postSlug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &ToggleLikeResult{PostSlug: postSlug, Liked: liked, LikeCount: count}, nil
}

// RemoveLike removes the caller's like if present. Removing an absent like is
// a no-op, so the operation is idempotent.
func (s *EngagementService) RemoveLike(ctx context.Context, postSlug string, userID uint) (*ToggleLikeResult, error) {
	postSlug, err := validatePostSlug(postSlug)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required to like posts")
	}

	if err := s.engagementRepo.DeleteLike(ctx, postSlug, userID); err != nil {
		return nil, models.NewInternalError(err)
	}
	count, err := s.engagementRepo.CountLikes(ctx, postSlug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &ToggleLikeResult{PostSlug: postSlug, Liked: false, LikeCount: count}, nil
}

// RecordView registers that the caller viewed a post. Anonymous traffic is
// not deduplicable per user, so it succeeds without effect. For identified
// users the first view creates the pair's single row; later views within the
// dedup window are suppressed, and views after the window only renew
// last_view_at. The returned count is therefore a distinct-viewer count and
// never grows after a user's first view.
func (s *EngagementService) RecordView(ctx context.Context, postSlug string, userID uint) (*RecordViewResult, error) {
	postSlug, err := validatePostSlug(postSlug)
	if err != nil {
		return nil, err
	}

	if userID == 0 {
		count, cerr := s.engagementRepo.CountViews(ctx, postSlug)
		if cerr != nil {
			return nil, models.NewInternalError(cerr)
		}
		return &RecordViewResult{ViewCount: count, Counted: false}, nil
	}

	now := time.Now().UTC()
	counted := false

	view, err := s.engagementRepo.GetView(ctx, postSlug, userID)
	switch {
	case err == gorm.ErrRecordNotFound:
		inserted, ierr := s.engagementRepo.InsertView(ctx, &models.View{
			PostSlug:   postSlug,
			UserID:     userID,
			LastViewAt: now,
		})
		if ierr != nil {
			return nil, models.NewInternalError(ierr)
		}
		// A lost insert race means a near-simultaneous view from the same
		// user already counted; suppress this one.
		counted = inserted
	case err != nil:
		return nil, models.NewInternalError(err)
	default:
		if now.Sub(view.LastViewAt) >= s.viewWindow {
			if terr := s.engagementRepo.TouchView(ctx, view.ID, now); terr != nil {
				return nil, models.NewInternalError(terr)
			}
			counted = true
		}
	}

	count, err := s.engagementRepo.CountViews(ctx, postSlug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &RecordViewResult{ViewCount: count, Counted: counted}, nil
}

// GetStats returns the like/view summary for a post. LikedByUser is always
// false for anonymous callers.
func (s *EngagementService) GetStats(ctx context.Context, postSlug string, userID uint) (*StatsResult, error) {
	postSlug, err := validatePostSlug(postSlug)
	if err != nil {
		return nil, err
	}

	likeCount, err := s.engagementRepo.CountLikes(ctx, postSlug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	viewCount, err := s.engagementRepo.CountViews(ctx, postSlug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	likedByUser := false
	if userID != 0 {
		likedByUser, err = s.engagementRepo.IsLiked(ctx, postSlug, userID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	return &StatsResult{
		PostSlug:    postSlug,
		LikeCount:   likeCount,
		ViewCount:   viewCount,
		LikedByUser: likedByUser,
	}, nil
}
