package web

import "base64-converter/internal/converter"

// PageState is what the converter page needs for its first render. Later
// updates arrive over the websocket.
type PageState struct {
	State              converter.State
	MaxImageBytes      int64
	RequireImagePrefix bool
	DefaultImageMIME   string
	UsageEnabled       bool
}

func (p PageState) TextMode() bool {
	return p.State.Mode == converter.ModeText
}
