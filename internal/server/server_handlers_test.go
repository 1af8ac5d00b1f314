package server

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"base64-converter/internal/config"
	"base64-converter/internal/converter"
)

func TestHomePage(t *testing.T) {
	_, ts := startServer(t, config.Default())
	client := newClient(t)

	resp := doRequest(t, client, ts, http.MethodGet, "/", nil)
	expectStatus(t, resp, http.StatusOK)
	found := false
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookie && cookie.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s cookie to be set", sessionCookie)
	}
}

func TestHealth(t *testing.T) {
	_, ts := startServer(t, config.Default())
	resp := doRequest(t, newClient(t), ts, http.MethodGet, "/healthz", nil)
	expectStatus(t, resp, http.StatusOK)
	body := decodeBody(t, resp)
	if body["status"] != "ok" || body["database"] != "disabled" {
		t.Fatalf("unexpected health body %#v", body)
	}
}

func TestTextInputAutoDetect(t *testing.T) {
	_, ts := startServer(t, config.Default())
	client := newClient(t)

	resp := doRequest(t, client, ts, http.MethodPost, "/api/text/input", map[string]string{"input": "Hello"})
	expectStatus(t, resp, http.StatusOK)
	assertField(t, stateOf(t, decodeBody(t, resp)), "output", "SGVsbG8=")

	resp = doRequest(t, client, ts, http.MethodPost, "/api/text/input", map[string]string{"input": "SGVsbG8="})
	expectStatus(t, resp, http.StatusOK)
	assertField(t, stateOf(t, decodeBody(t, resp)), "output", "Hello")

	resp = doRequest(t, client, ts, http.MethodGet, "/api/state", nil)
	expectStatus(t, resp, http.StatusOK)
	state := stateOf(t, decodeBody(t, resp))
	assertField(t, state, "input", "SGVsbG8=")
	assertField(t, state, "mode", "text")
}

func TestTextInputRequiresField(t *testing.T) {
	_, ts := startServer(t, config.Default())
	resp := doRequest(t, newClient(t), ts, http.MethodPost, "/api/text/input", map[string]string{})
	expectStatus(t, resp, http.StatusBadRequest)
	body := decodeBody(t, resp)
	if body["error"] != "input is required" {
		t.Fatalf("unexpected error %#v", body["error"])
	}
	stateOf(t, body)
}

func TestManualEncodeError(t *testing.T) {
	_, ts := startServer(t, config.Default())
	client := newClient(t)

	resp := doRequest(t, client, ts, http.MethodPost, "/api/auto", map[string]bool{"enabled": false})
	expectStatus(t, resp, http.StatusOK)
	assertField(t, stateOf(t, decodeBody(t, resp)), "auto_detect", false)

	doRequest(t, client, ts, http.MethodPost, "/api/text/input", map[string]string{"input": "日本語"})
	resp = doRequest(t, client, ts, http.MethodPost, "/api/text/encode", nil)
	expectStatus(t, resp, http.StatusOK)
	state := stateOf(t, decodeBody(t, resp))
	assertField(t, state, "output", converter.EncodeErrorMessage)
	assertField(t, state, "output_failed", true)
}

func TestSetModeValidation(t *testing.T) {
	_, ts := startServer(t, config.Default())
	client := newClient(t)

	cases := []struct {
		payload map[string]string
		message string
	}{
		{payload: map[string]string{}, message: "mode is required"},
		{payload: map[string]string{"mode": "video"}, message: "mode must be text or image"},
	}
	for _, tc := range cases {
		resp := doRequest(t, client, ts, http.MethodPost, "/api/mode", tc.payload)
		expectStatus(t, resp, http.StatusBadRequest)
		body := decodeBody(t, resp)
		if body["error"] != tc.message {
			t.Fatalf("expected %q, got %#v", tc.message, body["error"])
		}
	}
}

func TestSetModeResetsState(t *testing.T) {
	_, ts := startServer(t, config.Default())
	client := newClient(t)

	doRequest(t, client, ts, http.MethodPost, "/api/text/input", map[string]string{"input": "Hello"})
	resp := doRequest(t, client, ts, http.MethodPost, "/api/mode", map[string]string{"mode": "image"})
	expectStatus(t, resp, http.StatusOK)
	state := stateOf(t, decodeBody(t, resp))
	assertField(t, state, "mode", "image")
	assertField(t, state, "input", "")
	assertField(t, state, "output", "")
}

func TestSessionsAreIsolated(t *testing.T) {
	_, ts := startServer(t, config.Default())
	alice := newClient(t)
	bob := newClient(t)

	doRequest(t, alice, ts, http.MethodPost, "/api/text/input", map[string]string{"input": "Hello"})
	resp := doRequest(t, bob, ts, http.MethodGet, "/api/state", nil)
	expectStatus(t, resp, http.StatusOK)
	assertField(t, stateOf(t, decodeBody(t, resp)), "input", "")
}

func TestImageUpload(t *testing.T) {
	_, ts := startServer(t, config.Default())
	client := newClient(t)
	raw := testImageBytes(t)

	resp := uploadFile(t, client, ts, "dot.png", raw)
	expectStatus(t, resp, http.StatusOK)
	state := stateOf(t, decodeBody(t, resp))
	preview, _ := state["preview"].(string)
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
	if preview != want {
		t.Fatalf("expected preview %q, got %q", want, preview)
	}
	assertField(t, state, "base64_output", want)
	assertField(t, state, "file_name", "dot.png")
}

func TestImageUploadRejectsNonImage(t *testing.T) {
	_, ts := startServer(t, config.Default())
	resp := uploadFile(t, newClient(t), ts, "notes.txt", []byte("just some plain text"))
	expectStatus(t, resp, http.StatusBadRequest)
	body := decodeBody(t, resp)
	if body["error"] != "Please select an image file" {
		t.Fatalf("unexpected error %#v", body["error"])
	}
	assertField(t, stateOf(t, body), "preview", "")
}

func TestImageUploadRejectsLargeFile(t *testing.T) {
	cfg := config.Default()
	cfg.MaxImageBytes = 16
	_, ts := startServer(t, cfg)

	resp := uploadFile(t, newClient(t), ts, "dot.png", testImageBytes(t))
	expectStatus(t, resp, http.StatusBadRequest)
	body := decodeBody(t, resp)
	if body["error"] != "File size should be less than 16 bytes" {
		t.Fatalf("unexpected error %#v", body["error"])
	}
}

func TestImageUploadRejectsOversizedBody(t *testing.T) {
	cfg := config.Default()
	cfg.MaxImageBytes = 16
	_, ts := startServer(t, cfg)

	content := append(testImageBytes(t), make([]byte, uploadSlack+1024)...)
	resp := uploadFile(t, newClient(t), ts, "dot.png", content)
	expectStatus(t, resp, http.StatusRequestEntityTooLarge)
	body := decodeBody(t, resp)
	if body["error"] != "File size should be less than 16 bytes" {
		t.Fatalf("unexpected error %#v", body["error"])
	}
	assertField(t, stateOf(t, body), "preview", "")
}

func TestImageInputMirrorsTextarea(t *testing.T) {
	_, ts := startServer(t, config.Default())
	client := newClient(t)
	doRequest(t, client, ts, http.MethodPost, "/api/mode", map[string]string{"mode": "image"})

	resp := doRequest(t, client, ts, http.MethodPost, "/api/image/input", map[string]string{"input": "iVBOR"})
	expectStatus(t, resp, http.StatusOK)
	state := stateOf(t, decodeBody(t, resp))
	assertField(t, state, "base64_input", "iVBOR")
	assertField(t, state, "preview", "")

	resp = doRequest(t, client, ts, http.MethodPost, "/api/image/input", map[string]string{})
	expectStatus(t, resp, http.StatusBadRequest)
	if body := decodeBody(t, resp); body["error"] != "input is required" {
		t.Fatalf("unexpected error %#v", body["error"])
	}
}

func TestImageDecode(t *testing.T) {
	_, ts := startServer(t, config.Default())
	client := newClient(t)

	resp := doRequest(t, client, ts, http.MethodPost, "/api/image/decode", map[string]string{"input": "  "})
	expectStatus(t, resp, http.StatusBadRequest)
	body := decodeBody(t, resp)
	if body["error"] != "Please enter a Base64 string" {
		t.Fatalf("unexpected error %#v", body["error"])
	}

	resp = doRequest(t, client, ts, http.MethodPost, "/api/image/decode", map[string]string{"input": "iVBORw0KGgo="})
	expectStatus(t, resp, http.StatusOK)
	assertField(t, stateOf(t, decodeBody(t, resp)), "preview", "data:image/png;base64,iVBORw0KGgo=")

	resp = doRequest(t, client, ts, http.MethodPost, "/api/image/clear", nil)
	expectStatus(t, resp, http.StatusOK)
	state := stateOf(t, decodeBody(t, resp))
	assertField(t, state, "preview", "")
	assertField(t, state, "base64_input", "")
}

func TestImageDecodeStrictPrefix(t *testing.T) {
	cfg := config.Default()
	cfg.RequireImagePrefix = true
	_, ts := startServer(t, cfg)

	resp := doRequest(t, newClient(t), ts, http.MethodPost, "/api/image/decode", map[string]string{"input": "iVBORw0KGgo="})
	expectStatus(t, resp, http.StatusBadRequest)
	body := decodeBody(t, resp)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, `It should start with "data:image/"`) {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestCopyWithoutBrowser(t *testing.T) {
	_, ts := startServer(t, config.Default())
	client := newClient(t)

	doRequest(t, client, ts, http.MethodPost, "/api/text/input", map[string]string{"input": "Hello"})
	resp := doRequest(t, client, ts, http.MethodPost, "/api/copy", map[string]string{"target": "output"})
	expectStatus(t, resp, http.StatusOK)
	body := decodeBody(t, resp)
	if body["ok"] != false {
		t.Fatalf("expected copy to fail without a browser, got %#v", body["ok"])
	}
	assertField(t, stateOf(t, body), "copy_label", converter.LabelCopyFailed)
}

func TestCopyNothing(t *testing.T) {
	_, ts := startServer(t, config.Default())
	resp := doRequest(t, newClient(t), ts, http.MethodPost, "/api/copy", map[string]string{"target": "image"})
	expectStatus(t, resp, http.StatusOK)
	body := decodeBody(t, resp)
	if body["ok"] != true {
		t.Fatalf("expected empty copy to succeed, got %#v", body["ok"])
	}
	assertField(t, stateOf(t, body), "copy_label", converter.LabelCopy)
}

func TestCopyTargetValidation(t *testing.T) {
	_, ts := startServer(t, config.Default())
	resp := doRequest(t, newClient(t), ts, http.MethodPost, "/api/copy", map[string]string{"target": "clipboard"})
	expectStatus(t, resp, http.StatusBadRequest)
	body := decodeBody(t, resp)
	if body["error"] != "target must be output or image" {
		t.Fatalf("unexpected error %#v", body["error"])
	}
}

func TestUsageWithoutDatabase(t *testing.T) {
	_, ts := startServer(t, config.Default())
	resp := doRequest(t, newClient(t), ts, http.MethodGet, "/api/usage", nil)
	expectStatus(t, resp, http.StatusServiceUnavailable)
}
