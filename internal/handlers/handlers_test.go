package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaspark/internal/router"
	"ideaspark/internal/store"
	"ideaspark/internal/utils"
)

// testApp wires a full engine over MemKV, mirroring the production setup.
type testApp struct {
	engine  *gin.Engine
	kv      *store.MemKV
	cookies []*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kv := store.NewMemKV()
	st := store.New(kv, store.SeedIdeas())
	cache, err := utils.NewCache(100)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(sessions.Sessions("ideaspark_session", cookie.NewStore([]byte("test-secret"))))
	router.RegisterRoutes(engine, st, cache)

	return &testApp{engine: engine, kv: kv}
}

// do performs a request, carrying session cookies across calls.
func (a *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range a.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		a.cookies = set
	}
	return w
}

func (a *testApp) login(t *testing.T, email, name string) map[string]interface{} {
	t.Helper()
	w := a.do(t, "POST", "/api/auth/login", gin.H{"email": email, "name": name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func validSubmission() gin.H {
	return gin.H{
		"title":       "Solar-powered bike lights",
		"description": "Self-charging lights that never need a battery swap.",
		"tags":        []string{"Cycling", "Solar"},
		"category":    "Hardware",
	}
}

func TestListFeed(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "GET", "/api/ideas", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["ideas"], 8)
	assert.EqualValues(t, 8, body["total"])
	assert.EqualValues(t, 8, body["filtered"])
	assert.Equal(t, false, body["hasMore"])
}

func TestListFeedWithFilters(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "GET", "/api/ideas?q=garden&category=Software&sort=popular", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 8, body["total"])
	assert.EqualValues(t, 1, body["filtered"])

	ideas := body["ideas"].([]interface{})
	require.Len(t, ideas, 1)
	first := ideas[0].(map[string]interface{})
	assert.Equal(t, "1", first["id"])
}

func TestListFeedWindow(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "GET", "/api/ideas?count=3", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["ideas"], 3)
	assert.EqualValues(t, 8, body["filtered"])
	assert.Equal(t, true, body["hasMore"])
}

func TestTrendingRail(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "GET", "/api/ideas/trending", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	ideas := body["ideas"].([]interface{})
	require.Len(t, ideas, 6)

	// most upvoted seed idea leads the rail
	first := ideas[0].(map[string]interface{})
	assert.Equal(t, "5", first["id"])
	assert.EqualValues(t, 305, first["upvotes"])
}

func TestDetail(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "GET", "/api/ideas/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	idea := body["idea"].(map[string]interface{})
	assert.Equal(t, "1", idea["id"])
	assert.NotEmpty(t, body["descriptionHtml"])
	assert.Equal(t, false, body["isSaved"])
}

func TestDetailNotFound(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, "GET", "/api/ideas/no-such-idea", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportDownload(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "GET", "/api/ideas/1/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Idea Title: AI-Powered Personal Garden Assistant")
	assert.Contains(t, w.Body.String(), "Upvotes: 152")
}

func TestMutationsRequireLogin(t *testing.T) {
	app := newTestApp(t)

	for _, req := range []struct{ method, path string }{
		{"POST", "/api/ideas"},
		{"DELETE", "/api/ideas/1"},
		{"POST", "/api/ideas/1/upvote"},
		{"POST", "/api/ideas/1/save"},
		{"GET", "/api/saved"},
	} {
		w := app.do(t, req.method, req.path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", req.method, req.path)
	}
}

func TestLoginValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "POST", "/api/auth/login", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := app.login(t, "demo@example.com", "")
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Demo User", user["name"], "missing name falls back to the demo default")
	assert.Equal(t, "demo@example.com", user["email"])
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "GET", "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeBody(t, w)["user"])

	app.login(t, "demo@example.com", "Demo")

	w = app.do(t, "GET", "/api/auth/me", nil)
	body := decodeBody(t, w)
	require.NotNil(t, body["user"])
	assert.Equal(t, "Demo", body["user"].(map[string]interface{})["name"])

	w = app.do(t, "POST", "/api/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, "GET", "/api/auth/me", nil)
	assert.Nil(t, decodeBody(t, w)["user"])
}

func TestSubmitIdea(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "demo@example.com", "Demo")

	w := app.do(t, "POST", "/api/ideas", validSubmission())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Idea submitted successfully!", body["message"])
	idea := body["idea"].(map[string]interface{})
	assert.Equal(t, "Demo", idea["userName"])
	assert.EqualValues(t, 0, idea["upvotes"])

	// newest first in the recent feed
	w = app.do(t, "GET", "/api/ideas", nil)
	feed := decodeBody(t, w)
	assert.Len(t, feed["ideas"], 9)
	first := feed["ideas"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, idea["id"], first["id"])
}

func TestSubmitIdeaValidationErrors(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "demo@example.com", "Demo")

	bad := validSubmission()
	bad["title"] = "no"
	bad["tags"] = []string{}

	w := app.do(t, "POST", "/api/ideas", bad)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	fields := body["errors"].(map[string]interface{})
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "tags")
}

func TestUpvoteFlow(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "demo@example.com", "Demo")

	w := app.do(t, "POST", "/api/ideas/1/upvote", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["found"])
	assert.EqualValues(t, 153, body["upvotes"])

	// unknown id reports found=false, still 200
	w = app.do(t, "POST", "/api/ideas/ghost/upvote", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["found"])
}

func TestSaveAndDeleteCascade(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "demo@example.com", "Demo")

	w := app.do(t, "POST", "/api/ideas/2/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["saved"])

	w = app.do(t, "GET", "/api/saved", nil)
	saved := decodeBody(t, w)["ideas"].([]interface{})
	require.Len(t, saved, 1)

	w = app.do(t, "DELETE", "/api/ideas/2", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, "GET", "/api/saved", nil)
	assert.Empty(t, decodeBody(t, w)["ideas"])

	// saving a deleted idea is a 404
	w = app.do(t, "POST", "/api/ideas/2/save", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveToggle(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "demo@example.com", "Demo")

	w := app.do(t, "POST", "/api/ideas/3/save", nil)
	assert.Equal(t, true, decodeBody(t, w)["saved"])

	w = app.do(t, "POST", "/api/ideas/3/save", nil)
	assert.Equal(t, false, decodeBody(t, w)["saved"])
}

func TestChatValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "POST", "/api/ideas/ghost/chat", gin.H{"question": "who is this for?"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, "POST", "/api/ideas/1/chat", gin.H{"question": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestTagsValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "POST", "/api/ideas/suggest-tags", gin.H{"description": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMutationPurgesFeedCache(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "demo@example.com", "Demo")

	w := app.do(t, "GET", "/api/ideas?sort=popular", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "POST", "/api/ideas/3/upvote", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the cached page was dropped, so the new count is visible
	w = app.do(t, "GET", "/api/ideas?sort=popular", nil)
	for _, raw := range decodeBody(t, w)["ideas"].([]interface{}) {
		idea := raw.(map[string]interface{})
		if idea["id"] == "3" {
			assert.EqualValues(t, 99, idea["upvotes"])
			return
		}
	}
	t.Fatal("idea 3 missing from feed")
}
