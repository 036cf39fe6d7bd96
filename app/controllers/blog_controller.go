package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"inkwell/app/generator"
	"inkwell/app/models"
	"inkwell/app/services"
	"inkwell/app/uploads"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// BlogController handles the public blog surface plus the admin-gated
// authoring endpoints mounted under /blog.
type BlogController struct {
	posts     *services.PostService
	comments  *services.CommentService
	uploader  uploads.Uploader
	generator generator.Generator
	log       zerolog.Logger
}

// NewBlogController creates a new BlogController
func NewBlogController(posts *services.PostService, comments *services.CommentService, uploader uploads.Uploader, gen generator.Generator, log zerolog.Logger) *BlogController {
	return &BlogController{
		posts:     posts,
		comments:  comments,
		uploader:  uploader,
		generator: gen,
		log:       log,
	}
}

type addBlogRequest struct {
	Title       string `json:"title"`
	SubTitle    string `json:"subTitle"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Author      string `json:"author"`
	IsPublished bool   `json:"isPublished"`
}

type blogIDRequest struct {
	ID string `json:"id" validate:"required"`
}

type addCommentRequest struct {
	Blog    string `json:"blog" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type generateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type listBlogsResponse struct {
	Success bool           `json:"success"`
	Blogs   []*models.Post `json:"blogs"`
}

type blogResponse struct {
	Success bool         `json:"success"`
	Blog    *models.Post `json:"blog"`
}

type listCommentsResponse struct {
	Success  bool              `json:"success"`
	Comments []*models.Comment `json:"comments"`
}

type generateResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
}

// Add creates a post from a multipart form: a "blog" field holding the
// post JSON and an "image" file for the thumbnail. The fields are
// validated before the thumbnail is uploaded so invalid input writes
// nothing anywhere.
func (bc *BlogController) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		sendError(w, bc.log, fmt.Errorf("%w: malformed multipart form", services.ErrInvalid))
		return
	}

	var req addBlogRequest
	if blob := r.FormValue("blog"); blob == "" || json.Unmarshal([]byte(blob), &req) != nil {
		sendError(w, bc.log, fmt.Errorf("%w: missing or malformed blog field", services.ErrInvalid))
		return
	}

	post := &models.Post{
		Title:       req.Title,
		SubTitle:    req.SubTitle,
		Description: req.Description,
		Category:    req.Category,
		Author:      req.Author,
		IsPublished: req.IsPublished,
	}
	if post.Author == "" {
		post.Author = "Anonymous"
	}
	if err := post.Validate(); err != nil {
		sendError(w, bc.log, fmt.Errorf("%w: %v", services.ErrInvalid, err))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		sendError(w, bc.log, fmt.Errorf("%w: thumbnail image is required", services.ErrInvalid))
		return
	}
	defer file.Close()

	thumbnail, err := bc.uploader.Save(header.Filename, file)
	if err != nil {
		sendError(w, bc.log, fmt.Errorf("%w: %v", services.ErrUpstream, err))
		return
	}
	post.Thumbnail = thumbnail

	if err := bc.posts.Create(post); err != nil {
		if rmErr := bc.uploader.Remove(thumbnail); rmErr != nil {
			bc.log.Warn().Err(rmErr).Str("thumbnail", thumbnail).Msg("failed to remove orphaned upload")
		}
		sendError(w, bc.log, err)
		return
	}

	sendMessage(w, "blog added successfully")
}

// ListPublished handles GET /blog/all
func (bc *BlogController) ListPublished(w http.ResponseWriter, r *http.Request) {
	blogs, err := bc.posts.ListPublished()
	if err != nil {
		sendError(w, bc.log, err)
		return
	}
	if blogs == nil {
		blogs = []*models.Post{}
	}
	sendJSON(w, http.StatusOK, listBlogsResponse{Success: true, Blogs: blogs})
}

// Get handles GET /blog/{id}. Drafts resolve here too; direct-link
// reads are not gated by publish state.
func (bc *BlogController) Get(w http.ResponseWriter, r *http.Request) {
	blog, err := bc.posts.Get(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, bc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, blogResponse{Success: true, Blog: blog})
}

// Delete handles POST /blog/delete
func (bc *BlogController) Delete(w http.ResponseWriter, r *http.Request) {
	var req blogIDRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, bc.log, err)
		return
	}

	if err := bc.posts.Delete(req.ID); err != nil {
		sendError(w, bc.log, err)
		return
	}

	sendMessage(w, "blog deleted successfully")
}

// TogglePublish handles POST /blog/toggle-publish
func (bc *BlogController) TogglePublish(w http.ResponseWriter, r *http.Request) {
	var req blogIDRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, bc.log, err)
		return
	}

	if _, err := bc.posts.TogglePublish(req.ID); err != nil {
		sendError(w, bc.log, err)
		return
	}

	sendMessage(w, "blog status updated")
}

// AddComment handles POST /blog/add-comment. No authentication; the
// comment lands in the moderation queue unapproved.
func (bc *BlogController) AddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, bc.log, err)
		return
	}

	comment := &models.Comment{
		BlogID:  req.Blog,
		Name:    req.Name,
		Content: req.Content,
	}
	if err := bc.comments.Add(comment); err != nil {
		sendError(w, bc.log, err)
		return
	}

	sendMessage(w, "comment added for review")
}

// ListComments handles POST /blog/comments/{id}, returning only the
// approved comments for the post in conversation order.
func (bc *BlogController) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := bc.comments.ListApproved(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, bc.log, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	sendJSON(w, http.StatusOK, listCommentsResponse{Success: true, Comments: comments})
}

// Generate handles POST /blog/generate. The generated text is returned
// raw for the caller to edit into the post body.
func (bc *BlogController) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, bc.log, err)
		return
	}

	prompt := req.Prompt + " Generate a blog content for this topic in simple text format"
	content, err := bc.generator.Generate(r.Context(), prompt)
	if err != nil {
		sendError(w, bc.log, fmt.Errorf("%w: %v", services.ErrUpstream, err))
		return
	}

	sendJSON(w, http.StatusOK, generateResponse{Success: true, Content: content})
}
