package services

import (
	"testing"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func setupServices(t *testing.T) (*PostService, *CommentService, *StatsService) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	return NewPostService(postRepo, commentRepo),
		NewCommentService(commentRepo, postRepo),
		NewStatsService(postRepo, commentRepo)
}

func newPost(title string, published bool) *models.Post {
	return &models.Post{
		Title:       title,
		SubTitle:    "subtitle",
		Description: "<p>content</p>",
		Category:    "Lifestyle",
		IsPublished: published,
	}
}

func createPost(t *testing.T, posts *PostService, title string, published bool) *models.Post {
	post := newPost(title, published)
	require.NoError(t, posts.Create(post))
	// CreatedAt drives ordering; keep creations distinguishable
	time.Sleep(2 * time.Millisecond)
	return post
}

func createComment(t *testing.T, comments *CommentService, postID, content string) *models.Comment {
	comment := &models.Comment{BlogID: postID, Name: "Reader", Content: content}
	require.NoError(t, comments.Add(comment))
	time.Sleep(2 * time.Millisecond)
	return comment
}
