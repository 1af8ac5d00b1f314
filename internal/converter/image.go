package converter

import (
	"context"
	"io"
	"strings"

	"base64-converter/internal/codec"
	"base64-converter/internal/dataurl"
)

// File is an image selected by the user. Reader is closed after the read
// when it implements io.Closer.
type File struct {
	Name     string
	MimeType string
	Size     int64
	Reader   io.Reader
}

type IngestResult struct {
	DataURL string
	Err     error
}

// IngestFile validates f and reads it in the background. Rejected files
// leave the session untouched. The returned channel yields one result and
// is closed. A read overtaken by another IngestFile, ClearImage or SetMode
// completes with ErrSuperseded and does not touch the session.
func (s *Session) IngestFile(ctx context.Context, f File) (<-chan IngestResult, error) {
	if !dataurl.IsImageType(f.MimeType) {
		return nil, ErrNotAnImage
	}
	if f.Size > s.opts.MaxImageBytes {
		return nil, ErrFileTooLarge
	}
	if f.Reader == nil {
		return nil, ErrNoReader
	}

	s.mu.Lock()
	s.ingestGen++
	gen := s.ingestGen
	s.reading = true
	s.unlock(true)

	results := make(chan IngestResult, 1)
	go s.readFile(ctx, gen, f, results)
	return results, nil
}

func (s *Session) readFile(ctx context.Context, gen uint64, f File, results chan<- IngestResult) {
	defer close(results)
	if c, ok := f.Reader.(io.Closer); ok {
		defer c.Close()
	}

	data, err := io.ReadAll(io.LimitReader(f.Reader, s.opts.MaxImageBytes+1))
	if err == nil && int64(len(data)) > s.opts.MaxImageBytes {
		err = ErrFileTooLarge
	}
	if err == nil {
		err = ctx.Err()
	}

	var dataURL string
	if err == nil {
		mimeType := strings.ToLower(strings.TrimSpace(f.MimeType))
		dataURL = dataurl.Wrap(mimeType, codec.EncodeBytes(data))
	}

	s.mu.Lock()
	if gen != s.ingestGen {
		s.mu.Unlock()
		results <- IngestResult{Err: ErrSuperseded}
		return
	}
	s.reading = false
	if err == nil {
		s.preview = dataURL
		s.base64Output = dataURL
		s.fileName = f.Name
		s.track(FeatureImageEncode)
	}
	s.unlock(true)

	results <- IngestResult{DataURL: dataURL, Err: err}
}

// DecodeToImage previews pasted Base64 as an image. Text that already
// carries a data:image/ header is shown verbatim; bare Base64 is wrapped
// with the default image type. The payload itself is not validated.
func (s *Session) DecodeToImage(text string) error {
	s.mu.Lock()
	s.base64Input = text
	switch {
	case strings.TrimSpace(text) == "":
		s.unlock(true)
		return ErrEmptyInput
	case dataurl.HasImagePrefix(text):
		s.preview = text
	case s.opts.RequireImagePrefix:
		s.unlock(true)
		return ErrMissingImagePrefix
	default:
		s.preview = dataurl.Wrap(s.opts.DefaultImageMIME, text)
	}
	s.track(FeatureImageDecode)
	s.unlock(true)
	return nil
}

// SetBase64Input stores pasted text without previewing it.
func (s *Session) SetBase64Input(text string) {
	s.mu.Lock()
	if s.base64Input == text {
		s.mu.Unlock()
		return
	}
	s.base64Input = text
	s.unlock(true)
}

// ClearImage resets the image fields and discards any pending read.
func (s *Session) ClearImage() {
	s.mu.Lock()
	s.clearImageLocked()
	s.unlock(true)
}

func (s *Session) clearImageLocked() {
	s.preview = ""
	s.base64Output = ""
	s.base64Input = ""
	s.fileName = ""
	s.reading = false
	s.ingestGen++
}
