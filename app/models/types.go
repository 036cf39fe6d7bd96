package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Categories a post may be filed under.
var Categories = []string{"Startup", "Technology", "Lifestyle", "Finance"}

// Post represents a blog post.
type Post struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	SubTitle    string    `json:"subTitle" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category" validate:"required,oneof=Startup Technology Lifestyle Finance"`
	Thumbnail   string    `json:"image"`
	Author      string    `json:"author"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Comment represents a reader comment on a blog post.
type Comment struct {
	ID        string    `json:"_id"`
	BlogID    string    `json:"blog" validate:"required"`
	Name      string    `json:"name" validate:"required,min=1,max=100"`
	Content   string    `json:"content" validate:"required,min=1,max=1000"`
	Approved  bool      `json:"isApproved"`
	CreatedAt time.Time `json:"createdAt"`
}
