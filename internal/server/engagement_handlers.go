package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPostStats returns the like/view summary for a post (public; likedByUser
// reflects the caller when authenticated)
func (s *Server) GetPostStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	slug, err := s.parseSlug(c)
	if err != nil {
		return nil
	}

	stats, err := s.engagementSvc().GetStats(ctx, slug, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(stats)
}

// ToggleLike handles POST /api/posts/:slug/like (protected)
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	slug, err := s.parseSlug(c)
	if err != nil {
		return nil
	}

	result, err := s.engagementSvc().ToggleLike(ctx, slug, userID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	outcome := "unlike"
	if result.Liked {
		outcome = "like"
	}
	middleware.EngagementWrites.WithLabelValues("like", outcome).Inc()

	return c.JSON(result)
}

// RemoveLike handles DELETE /api/posts/:slug/like (protected, idempotent)
func (s *Server) RemoveLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	slug, err := s.parseSlug(c)
	if err != nil {
		return nil
	}

	result, err := s.engagementSvc().RemoveLike(ctx, slug, userID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	middleware.EngagementWrites.WithLabelValues("like", "unlike").Inc()

	return c.JSON(result)
}

// RecordView handles POST /api/posts/:slug/view. Anonymous callers succeed
// without effect; identified callers are deduplicated by the view window.
func (s *Server) RecordView(c *fiber.Ctx) error {
	ctx := c.UserContext()

	slug, err := s.parseSlug(c)
	if err != nil {
		return nil
	}

	result, err := s.engagementSvc().RecordView(ctx, slug, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	outcome := "suppressed"
	if result.Counted {
		outcome = "counted"
	}
	middleware.EngagementWrites.WithLabelValues("view", outcome).Inc()

	return c.JSON(result)
}
