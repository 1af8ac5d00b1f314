// Package dataurl wraps Base64 payloads in the data URL envelope used to
// display images, and unwraps them again.
package dataurl

import (
	"errors"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// ImagePrefix marks a data URL that already carries an image header.
	ImagePrefix = "data:image/"

	scheme       = "data:"
	base64Marker = ";base64,"
)

var ErrNotDataURL = errors.New("dataurl: missing data:<mime>;base64, header")

// Payload is an image body and the MIME type it should be rendered with.
type Payload struct {
	MimeType   string
	Base64Body string
}

// DataURL renders the payload as "data:<mime>;base64,<body>".
func (p Payload) DataURL() string {
	return scheme + p.MimeType + base64Marker + p.Base64Body
}

// Wrap builds a data URL for an unprefixed Base64 body.
func Wrap(mimeType, body string) string {
	return Payload{MimeType: mimeType, Base64Body: body}.DataURL()
}

// HasImagePrefix reports whether s already starts with "data:image/".
func HasImagePrefix(s string) bool {
	return strings.HasPrefix(s, ImagePrefix)
}

// Parse splits a Base64 data URL into its MIME type and body.
func Parse(s string) (Payload, error) {
	if !strings.HasPrefix(s, scheme) {
		return Payload{}, ErrNotDataURL
	}
	header, body, ok := strings.Cut(s[len(scheme):], ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return Payload{}, ErrNotDataURL
	}
	return Payload{
		MimeType:   strings.TrimSuffix(header, ";base64"),
		Base64Body: body,
	}, nil
}

// IsImageType reports whether a MIME type names an image.
func IsImageType(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/")
}

// Sniff detects the MIME type of the content in r, without parameters.
// The reader is rewound afterwards so it can be read again in full.
func Sniff(r io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return baseType(mtype.String()), nil
}

// SniffFile detects the MIME type of the file at path.
func SniffFile(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	return baseType(mtype.String()), nil
}

// Resolve prefers a declared MIME type and falls back to a sniffed one
// when the declaration is empty or the generic octet-stream type.
func Resolve(declared, sniffed string) string {
	declared = baseType(declared)
	if declared == "" || declared == "application/octet-stream" {
		return sniffed
	}
	return declared
}

func baseType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.TrimSpace(base)
}
