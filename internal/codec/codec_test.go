package codec

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		Name    string
		Input   string
		Encoded string
	}{
		{
			Name:    "hello",
			Input:   "Hello",
			Encoded: "SGVsbG8=",
		},
		{
			Name:    "empty",
			Input:   "",
			Encoded: "",
		},
		{
			Name:    "latin-1",
			Input:   "café",
			Encoded: "Y2Fm6Q==",
		},
		{
			Name: "printable ascii",
			Input: func() string {
				buf := make([]byte, 0, 95)
				for c := byte(' '); c <= '~'; c++ {
					buf = append(buf, c)
				}
				return string(buf)
			}(),
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			encoded, err := Encode(test.Input)
			require.NoError(t, err)
			if test.Encoded != "" {
				require.Equal(t, test.Encoded, encoded)
			}

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			require.Equal(t, test.Input, decoded)
		})
	}
}

func TestEncodeRejectsWideCharacters(t *testing.T) {
	for _, input := range []string{"日本語", "emoji 🙂", "€"} {
		_, err := Encode(input)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrInvalidCharacters), "input %q: %v", input, err)
	}
}

func TestDecodeForgiving(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output string
	}{
		{Name: "padded", Input: "SGVsbG8=", Output: "Hello"},
		{Name: "unpadded", Input: "YWJjZA", Output: "abcd"},
		{Name: "whitespace", Input: " SGVs bG8= ", Output: "Hello"},
		{Name: "line breaks", Input: "SGVs\nbG8=\r\n", Output: "Hello"},
		{Name: "word that is base64", Input: "ABCD", Output: "\x00\x10\u0083"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			decoded, err := Decode(test.Input)
			require.NoError(t, err)
			require.Equal(t, test.Output, decoded)
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, input := range []string{"A", "SGVsbG8!", "====", "SGV=sbG8", "日本語"} {
		_, err := Decode(input)
		require.Error(t, err, "input %q", input)
		require.True(t, errors.Is(err, ErrInvalidBase64), "input %q: %v", input, err)
	}
}

func TestEncodeBytes(t *testing.T) {
	require.Equal(t, "AP8=", EncodeBytes([]byte{0x00, 0xff}))
	require.Equal(t, "", EncodeBytes(nil))
}
