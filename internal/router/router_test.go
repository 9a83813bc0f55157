package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-devconnector/config"
	"github.com/oksasatya/go-devconnector/internal/container"
	"github.com/oksasatya/go-devconnector/internal/infrastructure/memory"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
	"github.com/oksasatya/go-devconnector/pkg/validation"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type api struct {
	t      *testing.T
	engine *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	gh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat/repos" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`[{"name":"hello-world"}]`))
	}))
	t.Cleanup(gh.Close)

	st := memory.NewStore()
	container.SetConfig(&config.Config{
		AppName:        "devconnector-test",
		Env:            "test",
		GitHubAPIURL:   gh.URL,
		MetricsEnabled: true,
	})
	container.SetLogger(nil)
	container.SetPGPool(nil)
	container.SetRedis(nil)
	container.SetES(nil)
	container.SetRabbitPub(nil)
	container.SetTokens(helpers.NewTokenService("test-secret", time.Hour))
	container.SetRepositories(container.Repositories{
		Users:    st.Users(),
		Profiles: st.Profiles(),
		Posts:    st.Posts(),
		Accounts: st.Accounts(),
	})
	return &api{t: t, engine: NewEngine()}
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func (a *api) register(name, email string) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/users", "", map[string]string{"name": name, "email": email, "password": "secret1"})
	require.Equal(a.t, http.StatusOK, code, env.Message)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(a.t, data.Token)
	return data.Token
}

// decode reads the envelope data; empty collections are omitted from it.
func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	if len(raw) == 0 {
		return out
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestRegisterAndLogin(t *testing.T) {
	a := newAPI(t)
	token := a.register("Ann", "ann@example.com")

	code, env := a.do(http.MethodPost, "/api/users", "", map[string]string{"name": "Ann", "email": "ann@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User already exists", env.Message)

	code, env = a.do(http.MethodPost, "/api/users", "", map[string]string{"name": "Bob", "email": "bob@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Error), "password")

	code, env = a.do(http.MethodPost, "/api/users", "", map[string]string{"name": "Bob", "email": "bob@example.com", "password": strings.Repeat("p", 80)})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Error), "must be at most 72 characters")

	code, env = a.do(http.MethodPost, "/api/auth", "", map[string]string{"email": "ann@example.com", "password": "wrong!"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid Credentials", env.Message)

	code, env = a.do(http.MethodPost, "/api/auth", "", map[string]string{"email": "ann@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "token")

	code, env = a.do(http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, code)
	me := decode[map[string]any](t, env.Data)
	assert.Equal(t, "ann@example.com", me["email"])
	assert.Equal(t, helpers.GravatarURL("ann@example.com"), me["avatar"])
	assert.NotContains(t, me, "password")

	code, env = a.do(http.MethodGet, "/api/auth", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "No token provided, authorization denied", env.Message)

	code, env = a.do(http.MethodGet, "/api/auth", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token", env.Message)
}

func TestProfileLifecycle(t *testing.T) {
	a := newAPI(t)
	token := a.register("Ann", "ann@example.com")

	code, env := a.do(http.MethodGet, "/api/profile/me", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "There is no profile for this user", env.Message)

	code, _ = a.do(http.MethodPost, "/api/profile", token, map[string]string{"skills": "go"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = a.do(http.MethodPost, "/api/profile", token, map[string]string{
		"status": "Developer", "skills": "go, sql", "twitter": "https://twitter.com/ann",
	})
	require.Equal(t, http.StatusCreated, code)
	created := decode[map[string]any](t, env.Data)
	userID := created["user"].(map[string]any)["id"].(string)

	code, _ = a.do(http.MethodPost, "/api/profile", token, map[string]string{"status": "Lead", "skills": "rust"})
	require.Equal(t, http.StatusOK, code)

	for _, title := range []string{"A", "B"} {
		code, env = a.do(http.MethodPut, "/api/profile/experience", token, map[string]any{
			"title": title, "company": "Acme", "from": "2020-01-01",
		})
		require.Equal(t, http.StatusOK, code)
	}
	type entry struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	exp := decode[struct {
		Experience []entry `json:"experience"`
	}](t, env.Data).Experience
	require.Len(t, exp, 2)
	assert.Equal(t, "B", exp[0].Title)

	code, _ = a.do(http.MethodDelete, "/api/profile/experience/"+exp[1].ID, token, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = a.do(http.MethodDelete, "/api/profile/experience/"+exp[1].ID, token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = a.do(http.MethodPut, "/api/profile/education", token, map[string]any{
		"school": "MIT", "degree": "BSc", "fieldofstudy": "CS", "from": "2010-09-01",
	})
	require.Equal(t, http.StatusOK, code)

	code, env = a.do(http.MethodGet, "/api/profile/user/"+userID, "", nil)
	require.Equal(t, http.StatusOK, code)
	p := decode[map[string]any](t, env.Data)
	assert.Equal(t, "Lead", p["status"])
	assert.Equal(t, []any{"rust"}, p["skills"])
	assert.Equal(t, "Ann", p["user"].(map[string]any)["name"])
	assert.Equal(t, map[string]any{"twitter": "https://twitter.com/ann"}, p["social"])

	code, env = a.do(http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]any](t, env.Data), 1)

	code, _ = a.do(http.MethodGet, "/api/profile/user/not-a-user", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPostScenario(t *testing.T) {
	a := newAPI(t)
	ann := a.register("Ann", "ann@example.com")
	bob := a.register("Bob", "bob@example.com")

	code, env := a.do(http.MethodPost, "/api/post", ann, map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, code)
	post := decode[map[string]any](t, env.Data)
	postID := post["id"].(string)
	assert.Equal(t, "Ann", post["name"])

	code, env = a.do(http.MethodPut, "/api/post/like/"+postID, bob, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]any](t, env.Data), 1)

	code, env = a.do(http.MethodPut, "/api/post/like/"+postID, bob, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Post already liked", env.Message)

	code, env = a.do(http.MethodPut, "/api/post/unlike/"+postID, bob, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]any](t, env.Data))

	code, env = a.do(http.MethodPut, "/api/post/unlike/"+postID, bob, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Post has not yet been liked", env.Message)

	code, env = a.do(http.MethodPost, "/api/post/comment/"+postID, bob, map[string]string{"text": "nice"})
	require.Equal(t, http.StatusOK, code)
	comments := decode[[]map[string]any](t, env.Data)
	require.Len(t, comments, 1)
	commentID := comments[0]["id"].(string)
	assert.Equal(t, "Bob", comments[0]["name"])

	code, _ = a.do(http.MethodDelete, "/api/post/comment/"+postID+"/"+commentID, ann, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = a.do(http.MethodDelete, "/api/post/comment/"+postID+"/missing", bob, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = a.do(http.MethodDelete, "/api/post/comment/"+postID+"/"+commentID, bob, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = a.do(http.MethodDelete, "/api/post/"+postID, bob, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = a.do(http.MethodDelete, "/api/post/"+postID, ann, nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = a.do(http.MethodGet, "/api/post/"+postID, ann, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Post not found", env.Message)

	code, _ = a.do(http.MethodGet, "/api/post", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestPostList_NewestFirst(t *testing.T) {
	a := newAPI(t)
	ann := a.register("Ann", "ann@example.com")
	for _, text := range []string{"first", "second"} {
		code, _ := a.do(http.MethodPost, "/api/post", ann, map[string]string{"text": text})
		require.Equal(t, http.StatusOK, code)
		time.Sleep(2 * time.Millisecond)
	}

	code, env := a.do(http.MethodGet, "/api/post", ann, nil)
	require.Equal(t, http.StatusOK, code)
	posts := decode[[]map[string]any](t, env.Data)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0]["text"])
}

func TestDeleteAccount(t *testing.T) {
	a := newAPI(t)
	ann := a.register("Ann", "ann@example.com")
	code, _ := a.do(http.MethodPost, "/api/profile", ann, map[string]string{"status": "Dev", "skills": "go"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = a.do(http.MethodPost, "/api/post", ann, map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, code)

	code, env := a.do(http.MethodDelete, "/api/profile", ann, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User deleted", env.Message)

	code, env = a.do(http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]any](t, env.Data))

	// the token stays valid but names a removed identity
	code, _ = a.do(http.MethodGet, "/api/auth", ann, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = a.do(http.MethodPost, "/api/auth", "", map[string]string{"email": "ann@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = a.do(http.MethodPost, "/api/profile", ann, map[string]string{"status": "Dev", "skills": "go"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", env.Message)
	code, env = a.do(http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]any](t, env.Data))
}

func TestGitHubRepos(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodGet, "/api/profile/github/octocat", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"name":"hello-world"}]`, string(env.Data))

	code, env = a.do(http.MethodGet, "/api/profile/github/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No Github profile found", env.Message)
}

func TestSearchWithoutIndex(t *testing.T) {
	a := newAPI(t)

	code, _ := a.do(http.MethodGet, "/api/profile/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := a.do(http.MethodGet, "/api/profile/search?q=go", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]any](t, env.Data))
}

func TestHealthAndMetrics(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
