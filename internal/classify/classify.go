// Package classify guesses whether a piece of input is already Base64.
package classify

// Verdict is the result of inspecting one input.
type Verdict struct {
	LooksLikeBase64 bool
}

// Classify reports whether input looks like Base64: only alphabet and
// padding characters, with a length divisible by four. It is a heuristic.
// Plain words such as "ABCD" pass it and callers must cope with that.
func Classify(input string) Verdict {
	if input == "" || len(input)%4 != 0 {
		return Verdict{}
	}
	for i := 0; i < len(input); i++ {
		if !isBase64Char(input[i]) {
			return Verdict{}
		}
	}
	return Verdict{LooksLikeBase64: true}
}

func isBase64Char(c byte) bool {
	if c >= 'A' && c <= 'Z' {
		return true
	}
	if c >= 'a' && c <= 'z' {
		return true
	}
	if c >= '0' && c <= '9' {
		return true
	}
	switch c {
	case '+', '/', '=':
		return true
	default:
		return false
	}
}
