package converter

import (
	"context"
	"fmt"
	"time"
)

// CopyBase64 writes the Base64 of the loaded image to the clipboard. The
// channel yields nil straight away when there is nothing to copy.
func (s *Session) CopyBase64(ctx context.Context) <-chan error {
	s.mu.Lock()
	text, gen := s.base64Output, s.modeGen
	s.mu.Unlock()
	return s.copyText(ctx, gen, text, FeatureCopyImageBase64)
}

// CopyOutput writes the text-mode output to the clipboard.
func (s *Session) CopyOutput(ctx context.Context) <-chan error {
	s.mu.Lock()
	text, gen := s.output, s.modeGen
	s.mu.Unlock()
	return s.copyText(ctx, gen, text, FeatureCopyTextOutput)
}

func (s *Session) copyText(ctx context.Context, modeGen uint64, text, feature string) <-chan error {
	done := make(chan error, 1)
	if text == "" {
		done <- nil
		close(done)
		return done
	}
	go func() {
		defer close(done)
		err := s.opts.Clipboard.WriteText(ctx, text)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrClipboardWrite, err)
		}
		s.showCopyResult(modeGen, err == nil, feature)
		done <- err
	}()
	return done
}

// showCopyResult sets the status label and schedules its revert. A newer
// result replaces the pending revert. Results of writes started before the
// last mode switch are dropped.
func (s *Session) showCopyResult(modeGen uint64, ok bool, feature string) {
	s.mu.Lock()
	if s.closed || modeGen != s.modeGen {
		s.mu.Unlock()
		return
	}
	if ok {
		s.copyLabel = LabelCopied
		s.track(feature)
	} else {
		s.copyLabel = LabelCopyFailed
	}
	s.stopCopyTimerLocked()
	gen := s.copyGen
	s.copyTimer = time.AfterFunc(s.opts.CopyFeedback, func() {
		s.revertCopyLabel(gen)
	})
	s.unlock(true)
}

func (s *Session) revertCopyLabel(gen uint64) {
	s.mu.Lock()
	if gen != s.copyGen || s.closed {
		s.mu.Unlock()
		return
	}
	s.copyLabel = LabelCopy
	s.copyTimer = nil
	s.unlock(true)
}

func (s *Session) stopCopyTimerLocked() {
	if s.copyTimer != nil {
		s.copyTimer.Stop()
		s.copyTimer = nil
	}
	s.copyGen++
}
