package converter

import (
	"errors"
	"fmt"

	"base64-converter/internal/codec"
)

var (
	ErrNotAnImage         = errors.New("converter: file is not an image")
	ErrFileTooLarge       = errors.New("converter: file exceeds the size limit")
	ErrEmptyInput         = errors.New("converter: base64 input is empty")
	ErrMissingImagePrefix = errors.New("converter: base64 input lacks a data:image/ header")
	ErrClipboardWrite     = errors.New("converter: clipboard write failed")
	ErrNoClipboard        = errors.New("converter: no clipboard available")
	ErrSuperseded         = errors.New("converter: file read superseded")
	ErrNoReader           = errors.New("converter: file has no content reader")
)

const (
	EncodeErrorMessage = "Error: Unable to encode. Make sure your input contains valid characters."
	DecodeErrorMessage = "Error: Unable to decode. Make sure your input is valid Base64."
)

// UserMessage turns an error from a session operation into the text a
// front-end shows in an alert or status line.
func (s *Session) UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotAnImage):
		return "Please select an image file"
	case errors.Is(err, ErrFileTooLarge):
		return "File size should be less than " + formatSize(s.opts.MaxImageBytes)
	case errors.Is(err, ErrEmptyInput):
		return "Please enter a Base64 string"
	case errors.Is(err, ErrMissingImagePrefix):
		return `Invalid image Base64 string. It should start with "data:image/"`
	case errors.Is(err, ErrClipboardWrite), errors.Is(err, ErrNoClipboard):
		return LabelCopyFailed
	case errors.Is(err, codec.ErrInvalidCharacters):
		return EncodeErrorMessage
	case errors.Is(err, codec.ErrInvalidBase64):
		return DecodeErrorMessage
	default:
		return "Something went wrong. Please try again."
	}
}

func formatSize(n int64) string {
	const (
		kib = 1024
		mib = 1024 * kib
	)
	switch {
	case n >= mib && n%mib == 0:
		return fmt.Sprintf("%dMB", n/mib)
	case n >= kib && n%kib == 0:
		return fmt.Sprintf("%dKB", n/kib)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
