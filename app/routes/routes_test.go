package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blogPayload(title string, published bool) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"subTitle":    "a subtitle",
		"description": "<p>body</p>",
		"category":    "Technology",
		"isPublished": published,
	}
}

func TestPreflightRequests(t *testing.T) {
	env := setupTestRouter(t)

	paths := []string{"/blog/add", "/blog/add-comment", "/admin/login", "/admin/approve-comment"}
	for _, path := range paths {
		req := httptest.NewRequest("OPTIONS", path, nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "preflight %s", path)
		assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"), "preflight %s", path)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST", "preflight %s", path)
	}
}

func TestAdminLogin(t *testing.T) {
	env := setupTestRouter(t)

	token := env.login(t)
	assert.NotEmpty(t, token)

	rec := env.do(t, "POST", "/admin/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "invalid email or password", body["message"])
}

func TestAdminRoutesRefuseWithoutToken(t *testing.T) {
	env := setupTestRouter(t)

	cases := []struct{ method, path string }{
		{"POST", "/blog/add"},
		{"POST", "/blog/delete"},
		{"POST", "/blog/toggle-publish"},
		{"POST", "/blog/generate"},
		{"GET", "/admin/comments"},
		{"GET", "/admin/blogs"},
		{"POST", "/admin/delete-comment"},
		{"POST", "/admin/approve-comment"},
		{"GET", "/admin/dashboard"},
	}
	for _, tc := range cases {
		rec := env.do(t, tc.method, tc.path, "", map[string]string{"id": "x"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)

		rec = env.do(t, tc.method, tc.path, "forged-token", map[string]string{"id": "x"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s with bad token", tc.method, tc.path)
		assert.Equal(t, "unauthorized", decodeEnvelope(t, rec)["message"])
	}
}

func TestAddBlogStoreFailureRemovesUpload(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)

	// A closed store makes the post write fail after the thumbnail has
	// already been saved; the orphaned upload must be removed again.
	require.NoError(t, env.db.Close())

	rec := env.addBlog(t, token, blogPayload("Doomed", true))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, env.uploader.saved, 1)
	assert.Equal(t, []string{"/uploads/stub-thumb.png"}, env.uploader.removed)
}

func TestAddBlogValidation(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)

	rec := env.addBlog(t, token, blogPayload("", false))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad := blogPayload("Title", false)
	bad["category"] = "NotACategory"
	rec = env.addBlog(t, token, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Invalid input never reached the uploader
	assert.Empty(t, env.uploader.saved)
	// And nothing was stored
	assert.Empty(t, env.listBlogs(t, "/admin/blogs", token))
}

func TestDraftLifecycle(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)

	rec := env.addBlog(t, token, blogPayload("Draft Post", false))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.uploader.saved, 1)

	// Draft is invisible publicly but listed for the admin
	assert.Empty(t, env.listBlogs(t, "/blog/all", ""))
	adminBlogs := env.listBlogs(t, "/admin/blogs", token)
	require.Len(t, adminBlogs, 1)
	id := adminBlogs[0]["_id"].(string)
	assert.Equal(t, "/uploads/stub-thumb.png", adminBlogs[0]["image"])

	// Direct link resolves even for a draft
	rec = env.do(t, "GET", "/blog/"+id, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Publish, then it appears publicly
	rec = env.do(t, "POST", "/blog/toggle-publish", token, map[string]string{"id": id})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.listBlogs(t, "/blog/all", ""), 1)

	// Toggle is its own inverse
	rec = env.do(t, "POST", "/blog/toggle-publish", token, map[string]string{"id": id})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.listBlogs(t, "/blog/all", ""))
}

func TestGetMissingBlog(t *testing.T) {
	env := setupTestRouter(t)

	rec := env.do(t, "GET", "/blog/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestCommentModerationFlow(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)

	require.Equal(t, http.StatusOK, env.addBlog(t, token, blogPayload("Host", true)).Code)
	id := env.listBlogs(t, "/admin/blogs", token)[0]["_id"].(string)

	// Anyone may comment without auth; it lands pending
	rec := env.do(t, "POST", "/blog/add-comment", "", map[string]string{
		"blog": id, "name": "Reader", "content": "first!",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	time.Sleep(2 * time.Millisecond)
	rec = env.do(t, "POST", "/blog/add-comment", "", map[string]string{
		"blog": id, "name": "Reader Two", "content": "second!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, env.listComments(t, "/blog/comments/"+id, ""))
	adminComments := env.listComments(t, "/admin/comments", token)
	require.Len(t, adminComments, 2)

	// Admin listing is newest-first; approve both, oldest last
	secondID := adminComments[0]["_id"].(string)
	firstID := adminComments[1]["_id"].(string)

	rec = env.do(t, "POST", "/admin/approve-comment", token, map[string]string{"id": secondID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, "POST", "/admin/approve-comment", token, map[string]string{"id": firstID})
	require.Equal(t, http.StatusOK, rec.Code)

	// Public listing is oldest-first regardless of approval order
	approved := env.listComments(t, "/blog/comments/"+id, "")
	require.Len(t, approved, 2)
	assert.Equal(t, firstID, approved[0]["_id"])
	assert.Equal(t, secondID, approved[1]["_id"])

	// Re-approval is a no-op success
	rec = env.do(t, "POST", "/admin/approve-comment", token, map[string]string{"id": firstID})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.listComments(t, "/blog/comments/"+id, ""), 2)

	// Rejection is deletion
	rec = env.do(t, "POST", "/admin/delete-comment", token, map[string]string{"id": secondID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.listComments(t, "/blog/comments/"+id, ""), 1)
}

func TestCommentValidation(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)

	require.Equal(t, http.StatusOK, env.addBlog(t, token, blogPayload("Host", true)).Code)
	id := env.listBlogs(t, "/admin/blogs", token)[0]["_id"].(string)

	rec := env.do(t, "POST", "/blog/add-comment", "", map[string]string{
		"blog": id, "name": "", "content": "hi",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, "POST", "/blog/add-comment", "", map[string]string{
		"blog": "missing-post", "name": "Reader", "content": "hi",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Empty(t, env.listComments(t, "/admin/comments", token))
}

func TestDeleteBlogCascades(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)

	require.Equal(t, http.StatusOK, env.addBlog(t, token, blogPayload("Doomed", true)).Code)
	id := env.listBlogs(t, "/admin/blogs", token)[0]["_id"].(string)

	rec := env.do(t, "POST", "/blog/add-comment", "", map[string]string{
		"blog": id, "name": "Reader", "content": "soon gone",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "POST", "/blog/delete", token, map[string]string{"id": id})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, env.listBlogs(t, "/admin/blogs", token))
	assert.Empty(t, env.listComments(t, "/admin/comments", token))

	rec = env.do(t, "POST", "/blog/delete", token, map[string]string{"id": id})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerate(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)

	rec := env.do(t, "POST", "/blog/generate", token, map[string]string{"prompt": "ducks"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "generated draft text", body["content"])

	rec = env.do(t, "POST", "/blog/generate", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateUpstreamFailure(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)

	env.generator.err = assert.AnError
	rec := env.do(t, "POST", "/blog/generate", token, map[string]string{"prompt": "ducks"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestDashboard(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)

	require.Equal(t, http.StatusOK, env.addBlog(t, token, blogPayload("Draft", false)).Code)
	time.Sleep(2 * time.Millisecond)
	require.Equal(t, http.StatusOK, env.addBlog(t, token, blogPayload("Live", true)).Code)

	blogs := env.listBlogs(t, "/admin/blogs", token)
	require.Len(t, blogs, 2)
	// Newest first
	assert.Equal(t, "Live", blogs[0]["title"])

	liveID := blogs[0]["_id"].(string)
	rec := env.do(t, "POST", "/blog/add-comment", "", map[string]string{
		"blog": liveID, "name": "Reader", "content": "hello",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "GET", "/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	require.Equal(t, true, body["success"])
	data := body["dashboardData"].(map[string]interface{})
	assert.Equal(t, float64(2), data["blogs"])
	assert.Equal(t, float64(1), data["comments"])
	assert.Equal(t, float64(1), data["drafts"])
	assert.Len(t, data["recentBlogs"].([]interface{}), 2)
}
