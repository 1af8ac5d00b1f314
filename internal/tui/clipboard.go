package tui

import (
	"context"
	"errors"

	"base64-converter/internal/converter"

	"github.com/atotto/clipboard"
)

// systemClipboard writes through the host clipboard utilities.
func systemClipboard() converter.Clipboard {
	return converter.ClipboardFunc(func(ctx context.Context, text string) error {
		if clipboard.Unsupported {
			return errors.New("no system clipboard available")
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return clipboard.WriteAll(text)
	})
}
