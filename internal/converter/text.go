package converter

import (
	"base64-converter/internal/classify"
	"base64-converter/internal/codec"
)

// SetInput stores the text to convert and, with auto-detect on, converts it.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	s.input = text
	s.autoProcessLocked()
	s.unlock(true)
}

func (s *Session) SetAutoDetect(on bool) {
	s.mu.Lock()
	if s.autoDetect == on {
		s.mu.Unlock()
		return
	}
	s.autoDetect = on
	s.unlock(true)
}

func (s *Session) Encode() {
	s.mu.Lock()
	changed := s.encodeLocked()
	s.unlock(changed)
}

func (s *Session) Decode() {
	s.mu.Lock()
	changed := s.decodeLocked()
	s.unlock(changed)
}

func (s *Session) AutoProcess() {
	s.mu.Lock()
	changed := s.autoProcessLocked()
	s.unlock(changed)
}

// Clear empties the text input and output.
func (s *Session) Clear() {
	s.mu.Lock()
	s.clearTextLocked()
	s.unlock(true)
}

func (s *Session) encodeLocked() bool {
	if s.input == "" {
		return false
	}
	encoded, err := codec.Encode(s.input)
	if err != nil {
		s.setOutputLocked(EncodeErrorMessage, true)
		return true
	}
	s.setOutputLocked(encoded, false)
	s.track(FeatureTextEncode)
	return true
}

func (s *Session) decodeLocked() bool {
	if s.input == "" {
		return false
	}
	decoded, err := codec.Decode(s.input)
	if err != nil {
		s.setOutputLocked(DecodeErrorMessage, true)
		return true
	}
	s.setOutputLocked(decoded, false)
	s.track(FeatureTextDecode)
	return true
}

// autoProcessLocked decodes input that looks like Base64 and encodes
// everything else. A failed decode falls back to encoding without
// surfacing the decode error.
func (s *Session) autoProcessLocked() bool {
	if !s.autoDetect || s.input == "" {
		return false
	}
	if classify.Classify(s.input).LooksLikeBase64 {
		if decoded, err := codec.Decode(s.input); err == nil {
			s.setOutputLocked(decoded, false)
			return true
		}
	}
	return s.encodeLocked()
}

func (s *Session) setOutputLocked(out string, failed bool) {
	s.output = out
	s.outputFailed = failed
}

func (s *Session) clearTextLocked() {
	s.input = ""
	s.output = ""
	s.outputFailed = false
}
