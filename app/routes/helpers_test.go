package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/app/auth"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail    = "admin@test.local"
	testAdminPassword = "correct horse"
)

type stubUploader struct {
	saved   []string
	removed []string
}

func (u *stubUploader) Save(filename string, r io.Reader) (string, error) {
	io.Copy(io.Discard, r)
	u.saved = append(u.saved, filename)
	return "/uploads/stub-" + filename, nil
}

func (u *stubUploader) Remove(url string) error {
	u.removed = append(u.removed, url)
	return nil
}

type stubGenerator struct {
	content string
	err     error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.content, nil
}

type testEnv struct {
	router    http.Handler
	uploader  *stubUploader
	generator *stubGenerator
	db        *badger.DB
}

func setupTestRouter(t *testing.T) *testEnv {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		if !db.IsClosed() {
			db.Close()
		}
	})

	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)

	authSvc, err := auth.NewService(testAdminEmail, testAdminPassword, time.Hour)
	require.NoError(t, err)

	uploader := &stubUploader{}
	gen := &stubGenerator{content: "generated draft text"}

	router := Setup(Deps{
		Posts:     services.NewPostService(postRepo, commentRepo),
		Comments:  services.NewCommentService(commentRepo, postRepo),
		Stats:     services.NewStatsService(postRepo, commentRepo),
		Auth:      authSvc,
		Uploader:  uploader,
		Generator: gen,
		Log:       zerolog.Nop(),
	})

	return &testEnv{router: router, uploader: uploader, generator: gen, db: db}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) login(t *testing.T) string {
	rec := env.do(t, "POST", "/admin/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.NotEmpty(t, body.Token)
	return body.Token
}

// addBlog posts a multipart form the way the admin console does: a
// "blog" field holding the post JSON plus an "image" file.
func (env *testEnv) addBlog(t *testing.T, token string, blog map[string]interface{}) *httptest.ResponseRecorder {
	blob, err := json.Marshal(blog)
	require.NoError(t, err)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("blog", string(blob)))
	part, err := writer.CreateFormFile("image", "thumb.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/blog/add", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (env *testEnv) listBlogs(t *testing.T, path, token string) []map[string]interface{} {
	rec := env.do(t, "GET", path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                     `json:"success"`
		Blogs   []map[string]interface{} `json:"blogs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	return body.Blogs
}

func (env *testEnv) listComments(t *testing.T, path, token string) []map[string]interface{} {
	method := "POST"
	if path == "/admin/comments" {
		method = "GET"
	}
	rec := env.do(t, method, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success  bool                     `json:"success"`
		Comments []map[string]interface{} `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	return body.Comments
}
