package server

import (
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments returns all comments for a post, newest first (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	slug, err := s.parseSlug(c)
	if err != nil {
		return nil
	}

	comments, err := s.commentSvc().ListComments(ctx, slug)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(comments)
}

// CreateComment creates a comment on a post. Anonymous callers are allowed;
// their comments are owned by the shared anonymous user and may carry a
// one-shot display-name hint.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		PostSlug   string `json:"postSlug"`
		Content    string `json:"content"`
		AuthorName string `json:"authorName"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentSvc().CreateComment(ctx, service.CreateCommentInput{
		UserID:     currentUserID(c),
		PostSlug:   req.PostSlug,
		Content:    req.Content,
		AuthorName: req.AuthorName,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateComment updates a comment (only owner)
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	updated, err := s.commentSvc().UpdateComment(ctx, service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, ownershipStatus(err), err)
	}

	return c.JSON(updated)
}

// DeleteComment deletes a comment (owner only)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentSvc().DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	}); err != nil {
		return models.RespondWithError(c, ownershipStatus(err), err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// ownershipStatus is statusForError with UNAUTHORIZED mapped to 403: on these
// routes the caller is authenticated, just not the owner.
func ownershipStatus(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == models.CodeUnauthorized {
		return fiber.StatusForbidden
	}
	return statusForError(err)
}
