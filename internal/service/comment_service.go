package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLength = 1000

// CommentService owns comment creation, listing and owner-guarded
// modification.
type CommentService struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

// CommentResponse is the API shape of a comment. The author fields are
// resolved from the owning user at read time; for anonymous comments the
// display name may be overridden per response (see CreateComment).
type CommentResponse struct {
	ID          uint      `json:"id"`
	PostSlug    string    `json:"postSlug"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	AuthorName  string    `json:"authorName"`
	AuthorImage string    `json:"authorImage,omitempty"`
}

type CreateCommentInput struct {
	UserID     uint // zero when the caller is anonymous
	PostSlug   string
	Content    string
	AuthorName string // display-name hint for anonymous comments
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

func newCommentResponse(c *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:          c.ID,
		PostSlug:    c.PostSlug,
		Content:     c.Content,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		AuthorName:  c.User.Name(),
		AuthorImage: c.User.Avatar,
	}
}

func validateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return "", models.NewValidationError("Comment too long (max 1000 characters)")
	}
	return content, nil
}

// CreateComment persists a comment on a post. Authenticated callers own their
// comments; anonymous callers all share the single lazily-created anonymous
// user. When an anonymous caller supplies a display-name hint, only the
// returned response carries it - the stored row still points at the shared
// anonymous user, so anonymous attribution is not recoverable from the
// database afterwards. That asymmetry is inherited platform behavior, kept
// intentionally.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*CommentResponse, error) {
	content, err := validateCommentContent(in.Content)
	if err != nil {
		return nil, err
	}
	postSlug := strings.TrimSpace(in.PostSlug)
	if postSlug == "" {
		return nil, models.NewValidationError("Post slug is required")
	}

	author, err := s.resolveAuthor(ctx, in.UserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	comment := &models.Comment{
		Content:  content,
		PostSlug: postSlug,
		UserID:   author.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	resp := newCommentResponse(created)
	if hint := strings.TrimSpace(in.AuthorName); hint != "" && created.User.IsAnonymous() {
		resp.AuthorName = hint
	}
	return resp, nil
}

// resolveAuthor maps the caller identity to the owning user: the
// authenticated user when one resolves, otherwise the shared anonymous
// placeholder. An authenticated ID that no longer resolves (account deleted
// mid-session) falls back to anonymous rather than failing the comment.
func (s *CommentService) resolveAuthor(ctx context.Context, userID uint) (*models.User, error) {
	if userID != 0 {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err == nil {
			return user, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}
	return s.userRepo.GetOrCreateAnonymous(ctx)
}

// ListComments returns all comments for a post, newest first.
func (s *CommentService) ListComments(ctx context.Context, postSlug string) ([]*CommentResponse, error) {
	comments, err := s.commentRepo.ListBySlug(ctx, postSlug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	responses := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, newCommentResponse(c))
	}
	return responses, nil
}

// UpdateComment edits a comment's content. Only the owner may edit.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Comment", in.CommentID)
		}
		return nil, models.NewInternalError(err)
	}

	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}

	content, err := validateCommentContent(in.Content)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	updated, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return newCommentResponse(updated), nil
}

// DeleteComment removes a comment. Only the owner may delete.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.NewNotFoundError("Comment", in.CommentID)
		}
		return models.NewInternalError(err)
	}

	if comment.UserID != in.UserID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
