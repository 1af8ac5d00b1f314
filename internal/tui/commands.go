package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"base64-converter/internal/converter"
	"base64-converter/internal/dataurl"

	tea "github.com/charmbracelet/bubbletea"
)

type (
	stateMsg  converter.State
	ingestMsg converter.IngestResult
	copyMsg   struct{ err error }
)

// loadFile opens path and hands it to the session. Files without an
// image type are rejected before reading.
func loadFile(session *converter.Session, path string) tea.Cmd {
	return func() tea.Msg {
		path = expandHome(strings.TrimSpace(path))
		info, err := os.Stat(path)
		if err != nil {
			return ingestMsg{Err: err}
		}
		mimeType, err := dataurl.SniffFile(path)
		if err != nil {
			return ingestMsg{Err: err}
		}
		file, err := os.Open(path)
		if err != nil {
			return ingestMsg{Err: err}
		}
		results, err := session.IngestFile(context.Background(), converter.File{
			Name:     filepath.Base(path),
			MimeType: mimeType,
			Size:     info.Size(),
			Reader:   file,
		})
		if err != nil {
			_ = file.Close()
			return ingestMsg{Err: err}
		}
		return ingestMsg(<-results)
	}
}

func copyCmd(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		return copyMsg{err: <-done}
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
