package converter

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

type Mode int

const (
	ModeText Mode = iota
	ModeImage
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeImage:
		return "image"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode accepts "text" or "image", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return ModeText, nil
	case "image":
		return ModeImage, nil
	}
	return ModeText, fmt.Errorf("converter: unknown mode %q", s)
}

const (
	LabelCopy       = "Copy"
	LabelCopied     = "Copied!"
	LabelCopyFailed = "Failed to copy"
)

// State is a snapshot of everything a front-end renders. Version grows by
// one with every change so out-of-order deliveries can be dropped.
type State struct {
	Version      uint64 `json:"version"`
	Mode         Mode   `json:"mode"`
	AutoDetect   bool   `json:"auto_detect"`
	Input        string `json:"input"`
	Output       string `json:"output"`
	OutputFailed bool   `json:"output_failed"`
	InputChars   int    `json:"input_chars"`
	OutputChars  int    `json:"output_chars"`
	Preview      string `json:"preview"`
	Base64Output string `json:"base64_output"`
	Base64Input  string `json:"base64_input"`
	FileName     string `json:"file_name"`
	Reading      bool   `json:"reading"`
	CopyLabel    string `json:"copy_label"`
}

// Session holds the conversion state of one user. All methods are safe for
// concurrent use; observers are called outside the session lock.
type Session struct {
	opts Options

	mu           sync.Mutex
	version      uint64
	mode         Mode
	autoDetect   bool
	input        string
	output       string
	outputFailed bool
	preview      string
	base64Output string
	base64Input  string
	fileName     string
	reading      bool
	ingestGen    uint64
	copyLabel    string
	copyGen      uint64
	modeGen      uint64
	copyTimer    *time.Timer
	tracked      []string
	closed       bool

	obsMu        sync.Mutex
	observers    map[int]func(State)
	nextObserver int
}

func NewSession(opts Options) *Session {
	ensureDefaultOptions(&opts)
	return &Session{
		opts:       opts,
		mode:       ModeText,
		autoDetect: opts.AutoDetect,
		copyLabel:  LabelCopy,
		observers:  make(map[int]func(State)),
	}
}

func (s *Session) Options() Options {
	return s.opts
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	return State{
		Version:      s.version,
		Mode:         s.mode,
		AutoDetect:   s.autoDetect,
		Input:        s.input,
		Output:       s.output,
		OutputFailed: s.outputFailed,
		InputChars:   utf8.RuneCountInString(s.input),
		OutputChars:  utf8.RuneCountInString(s.output),
		Preview:      s.preview,
		Base64Output: s.base64Output,
		Base64Input:  s.base64Input,
		FileName:     s.fileName,
		Reading:      s.reading,
		CopyLabel:    s.copyLabel,
	}
}

// Subscribe registers fn to receive a snapshot after every state change.
func (s *Session) Subscribe(fn func(State)) (cancel func()) {
	s.obsMu.Lock()
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			delete(s.observers, id)
			s.obsMu.Unlock()
		})
	}
}

func (s *Session) notify(st State) {
	s.obsMu.Lock()
	fns := make([]func(State), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}

func (s *Session) track(feature string) {
	s.tracked = append(s.tracked, feature)
}

// unlock releases s.mu, then reports tracked features and, when changed is
// set, publishes a new snapshot.
func (s *Session) unlock(changed bool) {
	var st State
	if changed {
		s.version++
		st = s.stateLocked()
	}
	features := s.tracked
	s.tracked = nil
	s.mu.Unlock()

	for _, feature := range features {
		s.opts.Tracker.Track(feature)
	}
	if changed {
		s.notify(st)
	}
}

// SetMode resets every field and activates m. The reset happens even when
// m is already active.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	s.resetLocked()
	s.mode = m
	s.track(featureSwitchModePrefix + m.String() + "_mode")
	s.unlock(true)
}

func (s *Session) resetLocked() {
	s.clearTextLocked()
	s.clearImageLocked()
	s.stopCopyTimerLocked()
	s.copyLabel = LabelCopy
	s.modeGen++
}

// ClearAll clears the fields of the active mode.
func (s *Session) ClearAll() {
	s.mu.Lock()
	if s.mode == ModeImage {
		s.clearImageLocked()
	} else {
		s.clearTextLocked()
	}
	s.track(FeatureClearAll)
	s.unlock(true)
}

// Close stops pending timers and discards in-flight reads. The session
// stays readable but should not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.modeGen++
	s.stopCopyTimerLocked()
	s.ingestGen++
	s.reading = false
	s.mu.Unlock()

	s.obsMu.Lock()
	clear(s.observers)
	s.obsMu.Unlock()
}
