// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package panel

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp" // WebP decoder
)

// MaxThumbnailSize is the upload ceiling for post thumbnails.
const MaxThumbnailSize = 5 << 20

// Image capture errors.
var (
	ErrNotAnImage    = errors.New("panel: file is not an image")
	ErrImageTooLarge = errors.New("panel: image exceeds 5MB")
	ErrNoImage       = errors.New("panel: no image to insert")
	ErrBadImageURL   = errors.New("panel: image URL must be http or https")
)

// decodable maps the image types imaging can decode to the format used when
// re-encoding a resized thumbnail. WebP has no encoder and becomes JPEG.
var decodable = map[string]imaging.Format{
	"image/jpeg": imaging.JPEG,
	"image/png":  imaging.PNG,
	"image/gif":  imaging.GIF,
	"image/bmp":  imaging.BMP,
	"image/tiff": imaging.TIFF,
	"image/webp": imaging.JPEG,
}

// encodedMIME returns the MIME type of a resized thumbnail.
func encodedMIME(mime string) string {
	if mime == "image/webp" {
		return "image/jpeg"
	}
	return mime
}

// CaptureThumbnail reads a thumbnail upload and returns it as a data URI.
// Raster formats are decoded to prove they are images and, when maxWidth is
// positive, downscaled to that width.
func CaptureThumbnail(r io.Reader, maxWidth int) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxThumbnailSize+1))
	if err != nil {
		return "", fmt.Errorf("reading thumbnail: %w", err)
	}
	if len(data) > MaxThumbnailSize {
		return "", ErrImageTooLarge
	}

	mime, err := sniffImage(data)
	if err != nil {
		return "", err
	}

	format, ok := decodable[mime]
	if !ok {
		return DataURI(mime, data), nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrNotAnImage
	}
	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return DataURI(mime, data), nil
	}

	var buf bytes.Buffer
	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("encoding thumbnail: %w", err)
	}
	return DataURI(encodedMIME(mime), buf.Bytes()), nil
}

// CaptureImage reads an inline content image and returns it as a data URI.
// Content images have no size ceiling.
func CaptureImage(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	mime, err := sniffImage(data)
	if err != nil {
		return "", err
	}
	return DataURI(mime, data), nil
}

// sniffImage detects the MIME type from the bytes and requires image/*.
func sniffImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNotAnImage
	}
	mt := mimetype.Detect(data)
	mime := strings.ToLower(strings.TrimSpace(strings.Split(mt.String(), ";")[0]))
	if !strings.HasPrefix(mime, "image/") {
		return "", ErrNotAnImage
	}
	return mime, nil
}

// DataURI encodes data as a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// InsertImage appends an image to content. A non-empty imageURL wins over
// the uploaded data URI.
func InsertImage(content, imageURL, uploaded string) (string, error) {
	src := strings.TrimSpace(imageURL)
	if src != "" {
		u, err := url.Parse(src)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return content, ErrBadImageURL
		}
	} else {
		src = uploaded
	}
	if src == "" {
		return content, ErrNoImage
	}

	if strings.TrimSpace(content) == ContentPlaceholder {
		content = ""
	}
	tag := `<img src="` + html.EscapeString(src) + `" style="max-width:100%;height:auto">`
	return content + tag, nil
}
