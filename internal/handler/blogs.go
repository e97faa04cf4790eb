// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/azaya-go/internal/model"
	"github.com/olegiv/azaya-go/internal/panel"
	"github.com/olegiv/azaya-go/internal/session"
	"github.com/olegiv/azaya-go/internal/view"
)

// Editor actions submitted with the editor form.
const (
	ActionSave            = "save"
	ActionUploadThumbnail = "upload-thumbnail"
	ActionRemoveThumbnail = "remove-thumbnail"
	ActionInsertImage     = "insert-image"
	ActionPreview         = "preview"
)

// EditorData is the add/edit panel model.
type EditorData struct {
	Editing    bool
	Form       panel.Form
	Thumbnail  string
	Categories []string
	Statuses   []string
	Preview    template.HTML
	ShowPrev   bool
	Cancel     view.Action
}

// ListBlogs handles GET /admin/blogs. The filter query selects the list
// filter; without it the session's last filter applies.
func (h *AdminHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	st := h.state(r).Switch(panel.PanelList)
	if q := r.URL.Query(); q.Has("filter") {
		st = st.SetFilter(q.Get("filter"))
	}
	h.saveState(r, st)

	blogs, err := h.api.ListBlogs(r.Context(), token(r))
	if h.unauthorized(w, r, err) {
		return
	}

	var list view.BlogList
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load blogs", "error", err)
		list = view.BlogListError(st.Filter, err)
	} else {
		list = view.NewBlogList(blogs, st.Filter)
	}

	h.render(w, r, "admin/blogs", h.pageData(r, st, "All Blogs", list))
}

// NewBlog handles GET /admin/blogs/new with an empty form.
func (h *AdminHandler) NewBlog(w http.ResponseWriter, r *http.Request) {
	h.saveState(r, h.state(r).Switch(panel.PanelAdd))
	http.Redirect(w, r, redirectEditor, http.StatusSeeOther)
}

// EditBlog handles GET /admin/blogs/{id}/edit by loading the post into the
// editor.
func (h *AdminHandler) EditBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	blog, err := h.api.GetBlog(r.Context(), token(r), id)
	if h.unauthorized(w, r, err) {
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load blog for editing", "blog_id", id, "error", err)
		h.flashError(w, r, redirectBlogs, panel.MsgBlogLoadFailed)
		return
	}

	h.saveState(r, h.state(r).BeginEdit(blog, panel.DefaultCategories))
	http.Redirect(w, r, redirectEditor, http.StatusSeeOther)
}

// Editor handles GET /admin/blogs/editor. It shows the form held in the
// session, so uploads and validation errors never lose typed input.
func (h *AdminHandler) Editor(w http.ResponseWriter, r *http.Request) {
	st := h.state(r)
	if st.Panel != panel.PanelAdd {
		st = st.Switch(panel.PanelAdd)
		h.saveState(r, st)
	}

	data := EditorData{
		Editing:    st.Editing(),
		Form:       st.Form,
		Thumbnail:  st.Thumbnail,
		Categories: panel.DefaultCategories,
		Statuses:   panel.Statuses,
		ShowPrev:   r.URL.Query().Get("preview") == "1",
		Cancel: view.Action{
			Label:   "Cancel",
			URL:     view.URLCancel,
			Method:  http.MethodPost,
			Style:   "outline-secondary",
			Confirm: "Are you sure you want to cancel? Unsaved changes will be lost.",
		},
	}
	if data.ShowPrev {
		if blog, err := panel.BuildSubmission(st.Form, st.Thumbnail, time.Now()); err == nil {
			data.Preview = view.SanitizeContent(blog.Content)
		} else {
			data.Preview = view.SanitizeContent(st.Form.Content)
		}
	}

	title := "Add New Blog"
	if data.Editing {
		title = "Edit Blog"
	}
	h.render(w, r, "admin/editor", h.pageData(r, st, title, data))
}

// formFromRequest reads the editor fields. Unchecked checkboxes are false.
func formFromRequest(r *http.Request) panel.Form {
	f := panel.Form{
		Title:           r.FormValue("title"),
		Date:            r.FormValue("date"),
		Status:          r.FormValue("status"),
		Featured:        r.FormValue("featured") != "",
		Category:        r.FormValue("category"),
		NewCategory:     r.FormValue("new_category"),
		Content:         r.FormValue("content"),
		Format:          r.FormValue("format"),
		MetaTitle:       r.FormValue("meta_title"),
		MetaDescription: r.FormValue("meta_description"),
		Keywords:        r.FormValue("keywords"),
		RobotsIndex:     r.FormValue("robots_index") != "",
		RobotsFollow:    r.FormValue("robots_follow") != "",
	}
	if f.Format != panel.FormatMarkdown {
		f.Format = panel.FormatHTML
	}
	if f.Status == "" {
		f.Status = model.StatusDraft
	}
	return f
}

func parseEditorForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxUploadMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// SubmitEditor handles POST /admin/blogs/editor. The typed form is kept in
// the session first, then the chosen action runs.
func (h *AdminHandler) SubmitEditor(w http.ResponseWriter, r *http.Request) {
	if err := parseEditorForm(r); err != nil {
		h.logger.WarnContext(r.Context(), "unreadable editor form", "error", err)
		h.flashError(w, r, redirectEditor, msgInvalidForm)
		return
	}

	st := h.state(r)
	if st.Panel != panel.PanelAdd {
		st = st.Switch(panel.PanelAdd)
	}
	st.Form = formFromRequest(r)

	switch r.FormValue("action") {
	case ActionUploadThumbnail:
		h.uploadThumbnail(w, r, st)
	case ActionRemoveThumbnail:
		st.Thumbnail = ""
		h.saveState(r, st)
		h.flashAndRedirect(w, r, redirectEditor, panel.MsgThumbnailRemove, session.FlashInfo)
	case ActionInsertImage:
		h.insertImage(w, r, st)
	case ActionPreview:
		h.saveState(r, st)
		http.Redirect(w, r, redirectEditor+"?preview=1#preview", http.StatusSeeOther)
	default:
		h.saveBlog(w, r, st)
	}
}

func (h *AdminHandler) uploadThumbnail(w http.ResponseWriter, r *http.Request, st panel.State) {
	file, _, err := r.FormFile("thumbnail")
	if err != nil {
		h.saveState(r, st)
		h.flashError(w, r, redirectEditor, panel.Message(panel.ErrNoImage))
		return
	}
	defer func() { _ = file.Close() }()

	uri, err := panel.CaptureThumbnail(file, h.thumbnailMaxWidth)
	if err != nil {
		h.logger.InfoContext(r.Context(), "thumbnail rejected", "error", err)
		h.saveState(r, st)
		h.flashError(w, r, redirectEditor, panel.Message(err))
		return
	}
	st.Thumbnail = uri
	h.saveState(r, st)
	h.flashSuccess(w, r, redirectEditor, panel.MsgThumbnailAdded)
}

func (h *AdminHandler) insertImage(w http.ResponseWriter, r *http.Request, st panel.State) {
	if file, _, err := r.FormFile("content_image"); err == nil {
		uri, err := panel.CaptureImage(file)
		_ = file.Close()
		if err != nil {
			h.saveState(r, st)
			h.flashError(w, r, redirectEditor, panel.Message(err))
			return
		}
		st.ContentImage = uri
	}

	content, err := panel.InsertImage(st.Form.Content, r.FormValue("image_url"), st.ContentImage)
	if err != nil {
		h.saveState(r, st)
		h.flashError(w, r, redirectEditor, panel.Message(err))
		return
	}
	st.Form.Content = content
	st.ContentImage = ""
	h.saveState(r, st)
	h.flashSuccess(w, r, redirectEditor, panel.MsgImageInserted)
}

// saveBlog creates or updates the post. Success returns to the list with an
// empty form; failure keeps the form populated.
func (h *AdminHandler) saveBlog(w http.ResponseWriter, r *http.Request, st panel.State) {
	h.saveState(r, st)

	blog, err := panel.BuildSubmission(st.Form, st.Thumbnail, time.Now())
	if err != nil {
		h.flashAndRedirect(w, r, redirectEditor, panel.Message(err), session.FlashWarning)
		return
	}

	msg := panel.MsgBlogSaved
	if st.Editing() {
		err = h.api.UpdateBlog(r.Context(), token(r), st.EditID, blog)
		msg = panel.MsgBlogUpdated
	} else {
		err = h.api.CreateBlog(r.Context(), token(r), blog)
	}
	if h.unauthorized(w, r, err) {
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to save blog", "blog_id", st.EditID, "error", err)
		h.flashError(w, r, redirectEditor, panel.MsgBlogSaveFailed)
		return
	}

	h.logger.InfoContext(r.Context(), "blog saved", "blog_id", st.EditID, "title", blog.Title)
	h.saveState(r, st.Switch(panel.PanelList))
	h.flashSuccess(w, r, redirectBlogs, msg)
}

// CancelEdit handles POST /admin/blogs/cancel.
func (h *AdminHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	h.saveState(r, h.state(r).Switch(panel.PanelList))
	http.Redirect(w, r, redirectBlogs, http.StatusSeeOther)
}

// DeleteBlog handles POST /admin/blogs/{id}/delete.
func (h *AdminHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.api.DeleteBlog(r.Context(), token(r), id)
	if h.unauthorized(w, r, err) {
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to delete blog", "blog_id", id, "error", err)
		h.flashError(w, r, redirectBlogs, panel.MsgBlogDeleteFail)
		return
	}

	h.logger.InfoContext(r.Context(), "blog deleted", "blog_id", id)
	h.flashSuccess(w, r, redirectBlogs, panel.MsgBlogDeleted)
}
