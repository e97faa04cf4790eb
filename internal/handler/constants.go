// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot   = "/"
	RouteSend   = "/send"
	RouteAdmin  = "/admin"
	RouteLogin  = "/login"
	RouteLogout = "/logout"
)

// Redirect targets.
const (
	redirectLogin    = "/admin/login"
	redirectBlogs    = "/admin/blogs"
	redirectEditor   = "/admin/blogs/editor"
	redirectUsers    = "/admin/users"
	redirectComments = "/admin/comments"
)

// Relay responses. Clients of the contact form match on these texts.
const (
	msgServerUp     = "Mailer server is up"
	msgMissingField = "Missing fields"
	msgSendFailed   = "Failed to send email"
	msgSent         = "Email sent successfully!"
)

// Login and session banners.
const (
	msgLoginRequired = "Please enter email and password"
	msgLoginInvalid  = "Invalid email or password"
	msgLoginFailed   = "Login failed. Please try again."
	msgLoggedOut     = "You have been logged out"
	msgUserNotFound  = "User not found"
	msgUserLoadFail  = "Failed to load user"
	msgInvalidForm   = "Invalid form data"
)

// maxUploadMemory bounds the in-memory part of editor multipart forms.
const maxUploadMemory = 32 << 20
