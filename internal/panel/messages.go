// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package panel

import "errors"

// Banner texts shown after dashboard actions.
const (
	MsgBlogSaved       = "Blog saved successfully!"
	MsgBlogUpdated     = "Blog updated successfully!"
	MsgBlogSaveFailed  = "Failed to save blog. Please try again."
	MsgBlogDeleted     = "Blog deleted successfully!"
	MsgBlogDeleteFail  = "Failed to delete blog"
	MsgBlogLoadFailed  = "Failed to load blog for editing"
	MsgCommentDeleted  = "Comment deleted successfully!"
	MsgCommentDelFail  = "Failed to delete comment. Please try again."
	MsgStatusUpdated   = "Status updated successfully!"
	MsgStatusFailed    = "Failed to update status"
	MsgSubmissionGone  = "Contact submission deleted successfully!"
	MsgSubmissionFail  = "Failed to delete contact submission"
	MsgImageInserted   = "Image inserted"
	MsgThumbnailAdded  = "Featured image added"
	MsgThumbnailRemove = "Featured image removed"
)

// Message maps a panel error to the banner shown to the admin.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrContentRequired):
		return "Please enter blog content"
	case errors.Is(err, ErrCategoryRequired):
		return "Please enter a category name"
	case errors.Is(err, ErrImageTooLarge):
		return "Image size must be less than 5MB"
	case errors.Is(err, ErrNotAnImage):
		return "Please choose an image file"
	case errors.Is(err, ErrNoImage):
		return "Please enter an image URL or upload an image"
	case errors.Is(err, ErrBadImageURL):
		return "Image URL must start with http:// or https://"
	default:
		return MsgBlogSaveFailed
	}
}
