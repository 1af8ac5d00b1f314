package converter

import (
	"context"
	"time"
)

const (
	DefaultMaxImageBytes    = 5 * 1024 * 1024
	DefaultImageMIME        = "image/png"
	DefaultCopyFeedback     = 2000 * time.Millisecond
	FeatureTextEncode       = "text_encode"
	FeatureTextDecode       = "text_decode"
	FeatureImageEncode      = "image_encode"
	FeatureImageDecode      = "image_decode"
	FeatureCopyImageBase64  = "copy_image_base64"
	FeatureCopyTextOutput   = "copy_text_output"
	FeatureClearAll         = "clear_all"
	featureSwitchModePrefix = "switch_to_"
)

// Clipboard writes text to wherever the front-end keeps its clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(ctx context.Context, text string) error

func (f ClipboardFunc) WriteText(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Tracker receives the name of every feature a user exercises.
type Tracker interface {
	Track(feature string)
}

// TrackerFunc adapts a function to Tracker.
type TrackerFunc func(feature string)

func (f TrackerFunc) Track(feature string) {
	f(feature)
}

type nopTracker struct{}

func (nopTracker) Track(string) {}

type Options struct {
	MaxImageBytes      int64
	DefaultImageMIME   string
	CopyFeedback       time.Duration
	RequireImagePrefix bool
	AutoDetect         bool
	Clipboard          Clipboard
	Tracker            Tracker
}

func DefaultOptions() Options {
	return Options{
		MaxImageBytes:    DefaultMaxImageBytes,
		DefaultImageMIME: DefaultImageMIME,
		CopyFeedback:     DefaultCopyFeedback,
		AutoDetect:       true,
	}
}

func ensureDefaultOptions(opts *Options) {
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = DefaultMaxImageBytes
	}
	if opts.DefaultImageMIME == "" {
		opts.DefaultImageMIME = DefaultImageMIME
	}
	if opts.CopyFeedback <= 0 {
		opts.CopyFeedback = DefaultCopyFeedback
	}
	if opts.Clipboard == nil {
		opts.Clipboard = ClipboardFunc(func(context.Context, string) error {
			return ErrNoClipboard
		})
	}
	if opts.Tracker == nil {
		opts.Tracker = nopTracker{}
	}
}
