package handler

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/azaya-go/internal/apiclient"
	"github.com/olegiv/azaya-go/internal/model"
)

func editorForm(action string) url.Values {
	return url.Values{
		"action":   {action},
		"title":    {"Brand Voice 101"},
		"date":     {"2026-03-01"},
		"status":   {model.StatusPublished},
		"category": {"Branding"},
		"content":  {"<p>Find your tone.</p>"},
		"format":   {"html"},
		"keywords": {"brand, voice"},
	}
}

func TestListBlogs_Filter(t *testing.T) {
	env := newTestEnv(t)
	env.api.set(func(f *fakeAPI) {
		f.blogs = []model.Blog{
			{ID: "b1", Title: "Published Post", Status: model.StatusPublished},
			{ID: "b2", Title: "Draft Post", Status: model.StatusDraft},
		}
	})
	env.login(t)

	_, body := env.get(t, "/admin/blogs?filter=draft")
	assert.Contains(t, body, "Draft Post")
	assert.NotContains(t, body, "Published Post")

	// The filter is remembered for the next visit.
	_, body = env.get(t, "/admin/blogs")
	assert.NotContains(t, body, "Published Post")
}

func TestListBlogs_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	_, body := env.get(t, "/admin/blogs")
	assert.Contains(t, body, "No blogs yet")
	assert.Contains(t, body, "Add New Blog")
}

func TestListBlogs_ErrorState(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.api.setErr("ListBlogs", errors.New("upstream timeout"))

	resp, body := env.get(t, "/admin/blogs")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Error loading blogs")
	assert.Contains(t, body, "upstream timeout")
	assert.Contains(t, body, "Retry")
}

func TestSaveBlog_Create(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp, _ := env.get(t, "/admin/blogs/new")
	require.Equal(t, "/admin/blogs/editor", resp.Header.Get("Location"))

	resp, _ = env.post(t, "/admin/blogs/editor", editorForm(ActionSave))
	require.Equal(t, "/admin/blogs", resp.Header.Get("Location"))

	require.Len(t, env.api.created, 1)
	got := env.api.created[0]
	assert.Equal(t, "Brand Voice 101", got.Title)
	assert.Equal(t, []string{"Branding"}, got.Categories)
	assert.Equal(t, []string{"brand", "voice"}, got.SEO.Keywords)

	body := env.follow(t, resp)
	assert.Contains(t, body, "Blog saved successfully!")
}

func TestSaveBlog_ValidationKeepsForm(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	form := editorForm(ActionSave)
	form.Set("content", "")
	resp, _ := env.post(t, "/admin/blogs/editor", form)
	require.Equal(t, "/admin/blogs/editor", resp.Header.Get("Location"))
	assert.Empty(t, env.api.created)

	body := env.follow(t, resp)
	assert.Contains(t, body, "Please enter blog content")
	assert.Contains(t, body, `value="Brand Voice 101"`)
}

func TestSaveBlog_APIFailureKeepsForm(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.api.setErr("CreateBlog", errors.New("boom"))

	resp, _ := env.post(t, "/admin/blogs/editor", editorForm(ActionSave))
	require.Equal(t, "/admin/blogs/editor", resp.Header.Get("Location"))

	body := env.follow(t, resp)
	assert.Contains(t, body, "Failed to save blog. Please try again.")
	assert.Contains(t, body, `value="Brand Voice 101"`)
}

func TestSaveBlog_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.api.setErr("CreateBlog", apiclient.ErrUnauthorized)

	resp, _ := env.post(t, "/admin/blogs/editor", editorForm(ActionSave))
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
	assert.Equal(t, []string{"poller-tok-1"}, env.poller.stopped)
}

func TestEditBlog_Update(t *testing.T) {
	env := newTestEnv(t)
	env.api.set(func(f *fakeAPI) {
		f.blog = model.Blog{
			Title:      "Old Title",
			Content:    "<p>Old body</p>",
			Date:       "2026-01-15",
			Status:     model.StatusDraft,
			Categories: []string{"Marketing"},
		}
	})
	env.login(t)

	resp, _ := env.get(t, "/admin/blogs/b9/edit")
	require.Equal(t, "/admin/blogs/editor", resp.Header.Get("Location"))

	body := env.follow(t, resp)
	assert.Contains(t, body, `value="Old Title"`)
	assert.Contains(t, body, "Update Blog")

	resp, _ = env.post(t, "/admin/blogs/editor", editorForm(ActionSave))
	require.Equal(t, "/admin/blogs", resp.Header.Get("Location"))
	assert.Empty(t, env.api.created)
	require.Contains(t, env.api.updated, "b9")
	assert.Equal(t, "Brand Voice 101", env.api.updated["b9"].Title)

	body = env.follow(t, resp)
	assert.Contains(t, body, "Blog updated successfully!")
}

func TestEditBlog_LoadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.api.setErr("GetBlog", errors.New("not reachable"))

	resp, _ := env.get(t, "/admin/blogs/b9/edit")
	require.Equal(t, "/admin/blogs", resp.Header.Get("Location"))
	assert.Contains(t, env.follow(t, resp), "Failed to load blog for editing")
}

func TestEditor_Preview(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	form := editorForm(ActionPreview)
	form.Set("content", "<p>Preview body</p><script>alert(1)</script>")
	resp, _ := env.post(t, "/admin/blogs/editor", form)
	require.Equal(t, "/admin/blogs/editor?preview=1#preview", resp.Header.Get("Location"))

	_, body := env.get(t, "/admin/blogs/editor?preview=1")
	assert.Contains(t, body, `id="preview"`)
	assert.Contains(t, body, "<p>Preview body</p>")
	assert.NotContains(t, body, "<script>alert(1)</script>")
}

func TestEditor_Markdown(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	form := editorForm(ActionSave)
	form.Set("format", "markdown")
	form.Set("content", "# Heading\n\nSome **bold** text.")
	resp, _ := env.post(t, "/admin/blogs/editor", form)
	require.Equal(t, "/admin/blogs", resp.Header.Get("Location"))

	require.Len(t, env.api.created, 1)
	assert.Contains(t, env.api.created[0].Content, "<strong>bold</strong>")
}

func TestEditor_InsertImageURL(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	form := editorForm(ActionInsertImage)
	form.Set("image_url", "https://cdn.example.com/hero.png")
	resp, _ := env.post(t, "/admin/blogs/editor", form)
	require.Equal(t, "/admin/blogs/editor", resp.Header.Get("Location"))

	body := env.follow(t, resp)
	assert.Contains(t, body, "Image inserted")
	assert.Contains(t, body, "https://cdn.example.com/hero.png")
}

func TestEditor_InsertImageRejectsBadURL(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	form := editorForm(ActionInsertImage)
	form.Set("image_url", "javascript:alert(1)")
	resp, _ := env.post(t, "/admin/blogs/editor", form)

	body := env.follow(t, resp)
	assert.Contains(t, body, "Image URL must start with http:// or https://")
}

func TestEditor_ThumbnailUploadAndRemove(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range editorForm(ActionUploadThumbnail) {
		require.NoError(t, mw.WriteField(k, v[0]))
	}
	part, err := mw.CreateFormFile("thumbnail", "thumb.png")
	require.NoError(t, err)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	require.NoError(t, png.Encode(part, img))
	require.NoError(t, mw.Close())

	resp, err := env.client.Post(env.srv.URL+"/admin/blogs/editor", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	_ = readBody(t, resp)
	require.Equal(t, "/admin/blogs/editor", resp.Header.Get("Location"))

	body := env.follow(t, resp)
	assert.Contains(t, body, "Featured image added")
	assert.Contains(t, body, "data:image/png;base64,")

	resp, _ = env.post(t, "/admin/blogs/editor", editorForm(ActionRemoveThumbnail))
	body = env.follow(t, resp)
	assert.Contains(t, body, "Featured image removed")
	assert.NotContains(t, body, "data:image/png;base64,")
}

func TestEditor_DropZones(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp, _ := env.get(t, "/admin/blogs/new")
	body := env.follow(t, resp)

	// Each drop zone names its file input and a submit button that exists.
	for input, action := range map[string]string{
		"thumbnail":     ActionUploadThumbnail,
		"content_image": ActionInsertImage,
	} {
		assert.Contains(t, body, `data-drop-input="`+input+`" data-drop-action="`+action+`"`)
		assert.Contains(t, body, `name="`+input+`"`)
		assert.Contains(t, body, `name="action" value="`+action+`"`)
	}
}

func TestEditor_InsertUploadedImage(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range editorForm(ActionInsertImage) {
		require.NoError(t, mw.WriteField(k, v[0]))
	}
	part, err := mw.CreateFormFile("content_image", "dropped.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	require.NoError(t, mw.Close())

	resp, err := env.client.Post(env.srv.URL+"/admin/blogs/editor", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	_ = readBody(t, resp)
	require.Equal(t, "/admin/blogs/editor", resp.Header.Get("Location"))

	body := env.follow(t, resp)
	assert.Contains(t, body, "Image inserted")
	assert.Contains(t, body, "data:image/png;base64,")
}

func TestEditor_ThumbnailRejectsNonImage(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("action", ActionUploadThumbnail))
	part, err := mw.CreateFormFile("thumbnail", "notes.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("just some text"))
	require.NoError(t, mw.Close())

	resp, err := env.client.Post(env.srv.URL+"/admin/blogs/editor", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	_ = readBody(t, resp)

	assert.Contains(t, env.follow(t, resp), "Please choose an image file")
}

func TestCancelEdit(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	env.post(t, "/admin/blogs/editor", editorForm(ActionPreview))
	resp, _ := env.post(t, "/admin/blogs/cancel", nil)
	require.Equal(t, "/admin/blogs", resp.Header.Get("Location"))

	// The next add starts from an empty form.
	resp, _ = env.get(t, "/admin/blogs/new")
	body := env.follow(t, resp)
	assert.NotContains(t, body, "Brand Voice 101")
}

func TestDeleteBlog(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp, _ := env.post(t, "/admin/blogs/b3/delete", nil)
	require.Equal(t, "/admin/blogs", resp.Header.Get("Location"))
	assert.Equal(t, []string{"b3"}, env.api.deletedBlogs)
	assert.Contains(t, env.follow(t, resp), "Blog deleted successfully!")
}

func TestDeleteBlog_Failure(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.api.setErr("DeleteBlog", errors.New("boom"))

	resp, _ := env.post(t, "/admin/blogs/b3/delete", nil)
	assert.Contains(t, env.follow(t, resp), "Failed to delete blog")
}
