// Package codec converts text to and from standard Base64 (RFC 4648
// section 4) the way a browser's btoa and atob do.
//
// Text is mapped one character per byte, so only characters in the
// Latin-1 range (U+0000 through U+00FF) can be encoded. Anything else
// fails with ErrInvalidCharacters instead of being silently transcoded.
//
// Decoding is forgiving:
//   - ASCII whitespace is ignored
//   - trailing padding may be omitted
//   - a stray '=' in the middle or a character outside the alphabet
//     fails with ErrInvalidBase64
//
// http://www.rfc-editor.org/rfc/rfc4648#section-4
package codec
