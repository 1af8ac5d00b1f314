package web

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"base64-converter/internal/converter"
)

func TestHomeEscapesState(t *testing.T) {
	page := PageState{
		State: converter.State{
			Mode:      converter.ModeText,
			Input:     "<script>alert(1)</script>",
			Output:    "PHNjcmlwdD4=",
			CopyLabel: converter.LabelCopy,
		},
		MaxImageBytes: 1024,
	}
	var buf bytes.Buffer
	if err := Home(page).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	if strings.Contains(html, "<textarea id=\"textInput\" rows=\"10\" placeholder=\"Type text or paste Base64\"><script>") {
		t.Fatalf("expected input to be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("expected escaped input in page")
	}
	if !strings.Contains(html, `data-max-image-bytes="1024"`) {
		t.Fatalf("expected max image bytes attribute")
	}
	if !strings.Contains(html, `id="initialState"`) {
		t.Fatalf("expected initial state script")
	}
}

func TestHomeShowsActiveMode(t *testing.T) {
	page := PageState{State: converter.State{Mode: converter.ModeImage, Preview: "data:image/png;base64,AAAA"}}
	var buf bytes.Buffer
	if err := Home(page).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, `<section id="textMode" class="panel" hidden>`) {
		t.Fatalf("expected text mode hidden")
	}
	if !strings.Contains(html, `<section id="imageMode" class="panel">`) {
		t.Fatalf("expected image mode visible")
	}
	if !strings.Contains(html, `src="data:image/png;base64,AAAA"`) {
		t.Fatalf("expected preview src")
	}
}
