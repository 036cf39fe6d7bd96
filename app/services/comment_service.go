package services

import (
	"fmt"
	"sort"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CommentService handles business logic for comments. A comment starts
// pending and becomes visible to the public only after an explicit
// approval; rejection is modeled as deletion, not a state.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Add creates a new comment in the pending state. The owning post must
// exist; no record is written otherwise.
func (s *CommentService) Add(comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if _, err := s.postRepo.GetByID(comment.BlogID); err != nil {
		return err
	}

	comment.Approved = false
	comment.CreatedAt = time.Now()

	return s.commentRepo.Create(comment)
}

// ListApproved retrieves the approved comments for a post in
// chronological conversation order, oldest first.
func (s *CommentService) ListApproved(postID string) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, err
	}

	approved := make([]*models.Comment, 0, len(comments))
	for _, comment := range comments {
		if comment.Approved {
			approved = append(approved, comment)
		}
	}
	sort.Slice(approved, func(i, j int) bool {
		return approved[i].CreatedAt.Before(approved[j].CreatedAt)
	})

	return approved, nil
}

// ListAll retrieves every comment across all posts for moderation
// review, newest first. Each comment carries its owning post id.
func (s *CommentService) ListAll() ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

// Approve flips a comment to approved. Re-approving an approved comment
// is a no-op success and leaves the stored record untouched.
func (s *CommentService) Approve(id string) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if comment.Approved {
		return nil
	}

	comment.Approved = true
	return s.commentRepo.Update(comment)
}

// Delete removes a comment unconditionally.
func (s *CommentService) Delete(id string) error {
	return s.commentRepo.Delete(id)
}
