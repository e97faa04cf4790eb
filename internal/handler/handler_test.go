package handler

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/azaya-go/internal/apiclient"
	"github.com/olegiv/azaya-go/internal/middleware"
	"github.com/olegiv/azaya-go/internal/model"
	"github.com/olegiv/azaya-go/internal/render"
	"github.com/olegiv/azaya-go/internal/testutil"
	"github.com/olegiv/azaya-go/web"
)

// fakeAPI records mutations and fails the methods named in fail.
type fakeAPI struct {
	mu   sync.Mutex
	fail map[string]error

	token    string
	blogs    []model.Blog
	blog     model.Blog
	comments []model.Comment
	stats    model.CommentStats
	users    []model.User
	user     model.User

	logins          []apiclient.Credentials
	created         []model.Blog
	updated         map[string]model.Blog
	deletedBlogs    []string
	commentsBlogID  string
	deletedComments []string
	statusUpdates   []string
	deletedSubs     []string
	statsCalls      int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		fail:    map[string]error{},
		token:   "tok-1",
		updated: map[string]model.Blog{},
	}
}

// set changes the fake under its lock while the server is running.
func (f *fakeAPI) set(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) setErr(method string, err error) {
	f.set(func(f *fakeAPI) { f.fail[method] = err })
}

func (f *fakeAPI) Login(_ context.Context, creds apiclient.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, creds)
	if err := f.fail["Login"]; err != nil {
		return "", err
	}
	return f.token, nil
}

func (f *fakeAPI) ListBlogs(context.Context, string) ([]model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail["ListBlogs"]; err != nil {
		return nil, err
	}
	return f.blogs, nil
}

func (f *fakeAPI) GetBlog(_ context.Context, _, id string) (model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail["GetBlog"]; err != nil {
		return model.Blog{}, err
	}
	b := f.blog
	b.ID = id
	return b, nil
}

func (f *fakeAPI) CreateBlog(_ context.Context, _ string, blog model.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail["CreateBlog"]; err != nil {
		return err
	}
	f.created = append(f.created, blog)
	return nil
}

func (f *fakeAPI) UpdateBlog(_ context.Context, _, id string, blog model.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail["UpdateBlog"]; err != nil {
		return err
	}
	f.updated[id] = blog
	return nil
}

func (f *fakeAPI) DeleteBlog(_ context.Context, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail["DeleteBlog"]; err != nil {
		return err
	}
	f.deletedBlogs = append(f.deletedBlogs, id)
	return nil
}

func (f *fakeAPI) ListComments(_ context.Context, _, blogID string) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commentsBlogID = blogID
	if err := f.fail["ListComments"]; err != nil {
		return nil, err
	}
	return f.comments, nil
}

func (f *fakeAPI) CommentStats(context.Context, string) (model.CommentStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
	if err := f.fail["CommentStats"]; err != nil {
		return model.CommentStats{}, err
	}
	return f.stats, nil
}

func (f *fakeAPI) DeleteComment(_ context.Context, _, userID, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail["DeleteComment"]; err != nil {
		return err
	}
	f.deletedComments = append(f.deletedComments, userID+"/"+commentID)
	return nil
}

func (f *fakeAPI) ListUsers(context.Context, string) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail["ListUsers"]; err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeAPI) GetUser(context.Context, string, string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail["GetUser"]; err != nil {
		return model.User{}, err
	}
	return f.user, nil
}

func (f *fakeAPI) UpdateSubmissionStatus(_ context.Context, _, userID, submissionID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail["UpdateSubmissionStatus"]; err != nil {
		return err
	}
	f.statusUpdates = append(f.statusUpdates, userID+"/"+submissionID+"="+status)
	return nil
}

func (f *fakeAPI) DeleteSubmission(_ context.Context, _, userID, submissionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail["DeleteSubmission"]; err != nil {
		return err
	}
	f.deletedSubs = append(f.deletedSubs, userID+"/"+submissionID)
	return nil
}

var _ API = (*fakeAPI)(nil)

// fakePoller hands out sequential IDs and serves a fixed total.
type fakePoller struct {
	mu        sync.Mutex
	started   []string
	stopped   []string
	refreshed int
	stats     *model.CommentStats
	until     time.Time
}

func (p *fakePoller) Start(_ context.Context, token string, until time.Time) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = append(p.started, token)
	p.until = until
	return "poller-" + token, nil
}

func (p *fakePoller) Stop(_ context.Context, id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id != "" {
		p.stopped = append(p.stopped, id)
	}
}

func (p *fakePoller) Refresh(context.Context, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshed++
}

func (p *fakePoller) Store(_ context.Context, _ string, stats model.CommentStats) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats = &stats
}

func (p *fakePoller) Latest(context.Context, string) (model.CommentStats, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stats == nil {
		return model.CommentStats{}, false
	}
	return *p.stats, true
}

func (p *fakePoller) setStats(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats = &model.CommentStats{Total: total}
}

var _ StatsPoller = (*fakePoller)(nil)

type testEnv struct {
	api    *fakeAPI
	poller *fakePoller
	sm     *scs.SessionManager
	srv    *httptest.Server
	client *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sm := testutil.SessionManager()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, SessionManager: sm})
	require.NoError(t, err)

	env := &testEnv{api: newFakeAPI(), poller: &fakePoller{}, sm: sm}
	h := NewAdminHandler(AdminConfig{
		API:            env.api,
		Renderer:       renderer,
		SessionManager: sm,
		Stats:          env.poller,
		Logger:         testutil.TestLogger(),
	})

	r := chi.NewRouter()
	r.Route(RouteAdmin, func(r chi.Router) {
		r.Use(sm.LoadAndSave)
		h.Mount(r, middleware.RequireSession(sm, h.EndSession), nil)
	})

	env.srv = httptest.NewServer(r)
	t.Cleanup(env.srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	env.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return env
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Get(e.srv.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.PostForm(e.srv.URL+path, form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

// follow GETs the redirect target of resp.
func (e *testEnv) follow(t *testing.T, resp *http.Response) string {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body := e.get(t, resp.Header.Get("Location"))
	return body
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	resp, _ := e.post(t, "/admin/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/blogs", resp.Header.Get("Location"))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
