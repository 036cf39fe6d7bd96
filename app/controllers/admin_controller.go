package controllers

import (
	"net/http"

	"inkwell/app/auth"
	"inkwell/app/models"
	"inkwell/app/services"

	"github.com/rs/zerolog"
)

// AdminController handles login and the moderation endpoints mounted
// under /admin.
type AdminController struct {
	auth     *auth.Service
	posts    *services.PostService
	comments *services.CommentService
	stats    *services.StatsService
	log      zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(authSvc *auth.Service, posts *services.PostService, comments *services.CommentService, stats *services.StatsService, log zerolog.Logger) *AdminController {
	return &AdminController{
		auth:     authSvc,
		posts:    posts,
		comments: comments,
		stats:    stats,
		log:      log,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type commentIDRequest struct {
	ID string `json:"id" validate:"required"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type dashboardResponse struct {
	Success       bool            `json:"success"`
	DashboardData *services.Stats `json:"dashboardData"`
}

// Login handles POST /admin/login and returns a bearer token
func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, ac.log, err)
		return
	}

	token, err := ac.auth.Login(req.Email, req.Password)
	if err != nil {
		sendError(w, ac.log, err)
		return
	}

	sendJSON(w, http.StatusOK, loginResponse{Success: true, Token: token})
}

// ListComments handles GET /admin/comments, returning every comment
// across all posts for moderation review.
func (ac *AdminController) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := ac.comments.ListAll()
	if err != nil {
		sendError(w, ac.log, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	sendJSON(w, http.StatusOK, listCommentsResponse{Success: true, Comments: comments})
}

// ListBlogs handles GET /admin/blogs, returning drafts too
func (ac *AdminController) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := ac.posts.ListAll()
	if err != nil {
		sendError(w, ac.log, err)
		return
	}
	if blogs == nil {
		blogs = []*models.Post{}
	}
	sendJSON(w, http.StatusOK, listBlogsResponse{Success: true, Blogs: blogs})
}

// DeleteComment handles POST /admin/delete-comment
func (ac *AdminController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	var req commentIDRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, ac.log, err)
		return
	}

	if err := ac.comments.Delete(req.ID); err != nil {
		sendError(w, ac.log, err)
		return
	}

	sendMessage(w, "comment deleted successfully")
}

// ApproveComment handles POST /admin/approve-comment
func (ac *AdminController) ApproveComment(w http.ResponseWriter, r *http.Request) {
	var req commentIDRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, ac.log, err)
		return
	}

	if err := ac.comments.Approve(req.ID); err != nil {
		sendError(w, ac.log, err)
		return
	}

	sendMessage(w, "comment approved successfully")
}

// Dashboard handles GET /admin/dashboard
func (ac *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := ac.stats.Dashboard()
	if err != nil {
		sendError(w, ac.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dashboardResponse{Success: true, DashboardData: stats})
}
