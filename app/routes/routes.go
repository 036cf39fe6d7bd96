package routes

import (
	"net/http"
	"time"

	"inkwell/app/auth"
	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/generator"
	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"
	"inkwell/app/uploads"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Deps carries everything the router needs; tests swap in stubs for the
// external collaborators.
type Deps struct {
	Posts      *services.PostService
	Comments   *services.CommentService
	Stats      *services.StatsService
	Auth       *auth.Service
	Uploader   uploads.Uploader
	Generator  generator.Generator
	Log        zerolog.Logger
	UploadsDir string
}

// Setup defines the application's routes and returns the handler. Every
// admin-tagged endpoint is wrapped by the auth gate here, so a handler
// cannot be reached without a valid token.
func Setup(deps Deps) http.Handler {
	router := mux.NewRouter()

	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.Recoverer(deps.Log))

	blogController := controllers.NewBlogController(deps.Posts, deps.Comments, deps.Uploader, deps.Generator, deps.Log)
	adminController := controllers.NewAdminController(deps.Auth, deps.Posts, deps.Comments, deps.Stats, deps.Log)

	admin := middleware.RequireAdmin(deps.Auth.Verify)

	// Blog endpoints
	blog := router.PathPrefix("/blog").Subrouter()
	blog.Handle("/add", admin(http.HandlerFunc(blogController.Add))).Methods("POST")
	blog.HandleFunc("/all", blogController.ListPublished).Methods("GET")
	blog.Handle("/delete", admin(http.HandlerFunc(blogController.Delete))).Methods("POST")
	blog.Handle("/toggle-publish", admin(http.HandlerFunc(blogController.TogglePublish))).Methods("POST")
	blog.HandleFunc("/add-comment", blogController.AddComment).Methods("POST")
	blog.HandleFunc("/comments/{id}", blogController.ListComments).Methods("POST")
	blog.Handle("/generate", admin(http.HandlerFunc(blogController.Generate))).Methods("POST")
	blog.HandleFunc("/{id}", blogController.Get).Methods("GET")

	// Admin endpoints
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Handle("/login", httprate.LimitByIP(10, time.Minute)(http.HandlerFunc(adminController.Login))).Methods("POST")
	adminRoutes.Handle("/comments", admin(http.HandlerFunc(adminController.ListComments))).Methods("GET")
	adminRoutes.Handle("/blogs", admin(http.HandlerFunc(adminController.ListBlogs))).Methods("GET")
	adminRoutes.Handle("/delete-comment", admin(http.HandlerFunc(adminController.DeleteComment))).Methods("POST")
	adminRoutes.Handle("/approve-comment", admin(http.HandlerFunc(adminController.ApproveComment))).Methods("POST")
	adminRoutes.Handle("/dashboard", admin(http.HandlerFunc(adminController.Dashboard))).Methods("GET")

	// Serve uploaded thumbnails
	if deps.UploadsDir != "" {
		router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir))))
	}

	// CORS wraps the whole router rather than running as route
	// middleware so OPTIONS preflights are answered even when no route
	// matches the method.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})
	return corsHandler.Handler(router)
}

// SetupWithDB wires the production dependencies on top of the given
// Badger DB and returns the handler.
func SetupWithDB(db *badger.DB, cfg *config.Config, log zerolog.Logger) (http.Handler, error) {
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)

	authSvc, err := auth.NewService(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.SessionTTL)
	if err != nil {
		return nil, err
	}

	uploader, err := uploads.NewDiskUploader(cfg.Uploads.Dir, "/uploads")
	if err != nil {
		return nil, err
	}

	return Setup(Deps{
		Posts:      services.NewPostService(postRepo, commentRepo),
		Comments:   services.NewCommentService(commentRepo, postRepo),
		Stats:      services.NewStatsService(postRepo, commentRepo),
		Auth:       authSvc,
		Uploader:   uploader,
		Generator:  generator.NewChatClient(cfg.Generator.APIURL, cfg.Generator.APIKey, cfg.Generator.Model),
		Log:        log,
		UploadsDir: cfg.Uploads.Dir,
	}), nil
}
