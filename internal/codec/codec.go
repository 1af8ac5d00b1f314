package codec

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrInvalidCharacters is returned by Encode when the text holds a
	// character that does not fit in a single byte.
	ErrInvalidCharacters = errors.New("codec: input contains characters outside the Latin-1 range")
	// ErrInvalidBase64 is returned by Decode for input that is not Base64.
	ErrInvalidBase64 = errors.New("codec: input is not valid base64")
)

// Encode returns the standard Base64 form of text. Each character is
// treated as one byte, so only U+0000 through U+00FF are accepted.
func Encode(text string) (string, error) {
	raw, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return "", errors.WithMessage(ErrInvalidCharacters, err.Error())
	}
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// Decode reverses Encode. It is forgiving in the same way browsers are:
// ASCII whitespace is ignored and padding may be omitted.
func Decode(text string) (string, error) {
	body, err := normalize(text)
	if err != nil {
		return "", err
	}
	data, err := base64.RawStdEncoding.DecodeString(body)
	if err != nil {
		return "", errors.WithMessage(ErrInvalidBase64, err.Error())
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Wrap(err, "codec: latin-1 decode")
	}
	return string(decoded), nil
}

// EncodeBytes returns the standard Base64 form of raw bytes.
func EncodeBytes(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// normalize strips whitespace and trailing padding so the remainder can be
// decoded with the unpadded alphabet.
func normalize(text string) (string, error) {
	body := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, text)

	if len(body)%4 == 0 {
		switch {
		case strings.HasSuffix(body, "=="):
			body = body[:len(body)-2]
		case strings.HasSuffix(body, "="):
			body = body[:len(body)-1]
		}
	}
	if len(body)%4 == 1 {
		return "", errors.WithMessagef(ErrInvalidBase64, "length %d cannot be decoded", len(body))
	}
	for i := 0; i < len(body); i++ {
		if !inAlphabet(body[i]) {
			return "", errors.WithMessagef(ErrInvalidBase64, "illegal character %q at offset %d", body[i], i)
		}
	}
	return body, nil
}

func inAlphabet(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	return c == '+' || c == '/'
}
