package services

import (
	"sort"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// Stats aggregates the dashboard counters.
type Stats struct {
	Blogs       int            `json:"blogs"`
	Comments    int            `json:"comments"`
	Drafts      int            `json:"drafts"`
	RecentBlogs []*models.Post `json:"recentBlogs"`
}

// StatsService aggregates content counts for the admin dashboard.
type StatsService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *StatsService {
	return &StatsService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Dashboard returns total posts, total comments, draft count and the
// five most recent posts regardless of publish state.
func (s *StatsService) Dashboard() (*Stats, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListAll()
	if err != nil {
		return nil, err
	}

	drafts := 0
	for _, post := range posts {
		if !post.IsPublished {
			drafts++
		}
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	recent := posts
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if recent == nil {
		recent = []*models.Post{}
	}

	return &Stats{
		Blogs:       len(posts),
		Comments:    len(comments),
		Drafts:      drafts,
		RecentBlogs: recent,
	}, nil
}
