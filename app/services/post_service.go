package services

import (
	"fmt"
	"sort"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// PostService handles business logic for blog posts. Publish state is a
// plain boolean gate: a post is either a draft or published, and
// TogglePublish flips it unconditionally.
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Create creates a new blog post with validation. The post starts as a
// draft unless IsPublished is set on the way in.
func (s *PostService) Create(post *models.Post) error {
	if post.Author == "" {
		post.Author = "Anonymous"
	}
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	post.CreatedAt = time.Now()

	return s.postRepo.Create(post)
}

// Get retrieves a post by ID regardless of publish state. Direct-link
// readers and admins share this path.
func (s *PostService) Get(id string) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// ListPublished retrieves published posts only, newest first.
func (s *PostService) ListPublished() ([]*models.Post, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, err
	}

	published := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		if post.IsPublished {
			published = append(published, post)
		}
	}
	sortNewestFirst(published)

	return published, nil
}

// ListAll retrieves every post including drafts, newest first.
func (s *PostService) ListAll() ([]*models.Post, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

// TogglePublish flips the post between draft and published.
func (s *PostService) TogglePublish(id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	post.IsPublished = !post.IsPublished

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete deletes a post and cascades deletion of its comments. Comments
// go first so a partial failure cannot strand them without a post.
func (s *PostService) Delete(id string) error {
	if _, err := s.postRepo.GetByID(id); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByPost(id); err != nil {
		return fmt.Errorf("failed to delete comments: %v", err)
	}

	return s.postRepo.Delete(id)
}

func sortNewestFirst(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
