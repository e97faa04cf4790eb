package handler

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/azaya-go/internal/apiclient"
	"github.com/olegiv/azaya-go/internal/model"
	"github.com/olegiv/azaya-go/internal/session"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	env.api.set(func(f *fakeAPI) {
		f.blogs = []model.Blog{{ID: "b1", Title: "Spring Campaign", Status: model.StatusPublished}}
	})

	env.login(t)

	require.Len(t, env.api.logins, 1)
	assert.Equal(t, "admin@example.com", env.api.logins[0].Email)
	assert.Equal(t, []string{"tok-1"}, env.poller.started)
	assert.WithinDuration(t, time.Now().Add(session.MaxAge), env.poller.until, time.Minute,
		"poller must stop when the login record expires")

	resp, body := env.get(t, "/admin/blogs")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Spring Campaign")
	assert.Contains(t, body, "admin@example.com")
}

func TestLoginForm_RedirectsWhenLoggedIn(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp, _ := env.get(t, "/admin/login")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.post(t, "/admin/login", url.Values{"email": {"admin@example.com"}})
	body := env.follow(t, resp)

	assert.Contains(t, body, "Please enter email and password")
	assert.Contains(t, body, `value="admin@example.com"`)
	assert.Empty(t, env.api.logins)
}

func TestLogin_Rejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", apiclient.ErrUnauthorized, "Invalid email or password"},
		{"client error", &apiclient.StatusError{Method: "POST", Path: "/auth/login", StatusCode: 400}, "Invalid email or password"},
		{"server error", &apiclient.StatusError{Method: "POST", Path: "/auth/login", StatusCode: 502}, "Login failed. Please try again."},
		{"network error", errors.New("dial tcp: connection refused"), "Login failed. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.api.setErr("Login", tt.err)

			resp, _ := env.post(t, "/admin/login", url.Values{
				"email":    {"admin@example.com"},
				"password": {"wrong"},
			})
			require.Equal(t, "/admin/login", resp.Header.Get("Location"))

			body := env.follow(t, resp)
			assert.Contains(t, body, tt.want)
			assert.Empty(t, env.poller.started)
		})
	}
}

func TestProtectedRoutes_RequireLogin(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/admin", "/admin/blogs", "/admin/comments", "/admin/users", "/admin/blogs/editor"} {
		resp, _ := env.get(t, path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/admin/login", resp.Header.Get("Location"), path)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp, _ := env.post(t, "/admin/logout", nil)
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))
	assert.Equal(t, []string{"poller-tok-1"}, env.poller.stopped)

	body := env.follow(t, resp)
	assert.Contains(t, body, "You have been logged out")

	resp, _ = env.get(t, "/admin/blogs")
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestUnauthorized_EndsSession(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.api.setErr("ListBlogs", apiclient.ErrUnauthorized)

	resp, _ := env.get(t, "/admin/blogs")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))
	assert.Equal(t, []string{"poller-tok-1"}, env.poller.stopped)

	body := env.follow(t, resp)
	assert.Contains(t, body, "Session expired. Please login again.")

	resp, _ = env.get(t, "/admin/users")
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestUnauthorized_EveryRoute(t *testing.T) {
	get := func(path string) func(*testEnv, *testing.T) *http.Response {
		return func(env *testEnv, t *testing.T) *http.Response {
			resp, _ := env.get(t, path)
			return resp
		}
	}
	post := func(path string, form url.Values) func(*testEnv, *testing.T) *http.Response {
		return func(env *testEnv, t *testing.T) *http.Response {
			resp, _ := env.post(t, path, form)
			return resp
		}
	}

	tests := []struct {
		name   string
		method string
		setup  func(*testEnv, *testing.T)
		do     func(*testEnv, *testing.T) *http.Response
	}{
		{name: "list blogs", method: "ListBlogs", do: get("/admin/blogs")},
		{name: "edit blog", method: "GetBlog", do: get("/admin/blogs/b9/edit")},
		{name: "create blog", method: "CreateBlog", do: post("/admin/blogs/editor", editorForm(ActionSave))},
		{
			name:   "update blog",
			method: "UpdateBlog",
			setup: func(env *testEnv, t *testing.T) {
				resp, _ := env.get(t, "/admin/blogs/b9/edit")
				require.Equal(t, "/admin/blogs/editor", resp.Header.Get("Location"))
			},
			do: post("/admin/blogs/editor", editorForm(ActionSave)),
		},
		{name: "delete blog", method: "DeleteBlog", do: post("/admin/blogs/b1/delete", nil)},
		{name: "list comments", method: "ListComments", do: get("/admin/comments")},
		{name: "comment post selector", method: "ListBlogs", do: get("/admin/comments?blogId=b1")},
		{name: "comment stats", method: "CommentStats", do: get("/admin/comments")},
		{name: "delete comment", method: "DeleteComment", do: post("/admin/comments/u1/c1/delete", nil)},
		{name: "list users", method: "ListUsers", do: get("/admin/users")},
		{name: "show user", method: "GetUser", do: get("/admin/users/u1")},
		{name: "mark submission read", method: "UpdateSubmissionStatus", do: post("/admin/users/u1/submissions/s1/read", nil)},
		{name: "delete submission", method: "DeleteSubmission", do: post("/admin/users/u1/submissions/s1/delete", nil)},
		{name: "delete profile comment", method: "DeleteComment", do: post("/admin/users/u1/comments/c1/delete", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.login(t)
			if tt.setup != nil {
				tt.setup(env, t)
			}
			env.api.setErr(tt.method, apiclient.ErrUnauthorized)

			resp := tt.do(env, t)
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			require.Equal(t, "/admin/login", resp.Header.Get("Location"))
			assert.Equal(t, []string{"poller-tok-1"}, env.poller.stopped)
			assert.Contains(t, env.follow(t, resp), "Session expired. Please login again.")

			// The login record is gone: the guard turns the next request away.
			resp, _ = env.get(t, "/admin")
			assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
		})
	}
}

func TestHome_ReturnsToActivePanel(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp, _ := env.get(t, "/admin")
	assert.Equal(t, "/admin/blogs", resp.Header.Get("Location"))

	env.get(t, "/admin/users")
	resp, _ = env.get(t, "/admin")
	assert.Equal(t, "/admin/users", resp.Header.Get("Location"))

	env.get(t, "/admin/comments?blogId=b7")
	resp, _ = env.get(t, "/admin")
	assert.Equal(t, "/admin/comments?blogId=b7", resp.Header.Get("Location"))
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	env.api.set(func(f *fakeAPI) { f.stats = model.CommentStats{Total: 4} })
	resp, body := env.get(t, "/admin/stats")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"total":4}`, body)

	env.poller.setStats(9)
	_, body = env.get(t, "/admin/stats")
	assert.JSONEq(t, `{"success":true,"total":9}`, body)
}

func TestStats_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.api.setErr("CommentStats", apiclient.ErrUnauthorized)

	resp, body := env.get(t, "/admin/stats")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"error":"Session expired"}`, body)
}

func TestStats_AfterSessionEnds(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.post(t, "/admin/logout", nil)

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/admin/stats", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	resp, err := env.client.Do(req)
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
	assert.JSONEq(t, `{"success":false,"error":"Session expired"}`, body)
}
