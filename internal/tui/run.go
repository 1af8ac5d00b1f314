package tui

import (
	"base64-converter/internal/converter"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal UI on a new session built from opts and blocks
// until the user quits.
func Run(opts converter.Options) error {
	if opts.Clipboard == nil {
		opts.Clipboard = systemClipboard()
	}
	session := converter.NewSession(opts)
	defer session.Close()

	p := tea.NewProgram(NewModel(session), tea.WithAltScreen())
	// Updates can fire from inside Update, where a blocking Send would
	// stall the event loop.
	cancel := session.Subscribe(func(st converter.State) {
		go p.Send(stateMsg(st))
	})
	defer cancel()

	_, err := p.Run()
	return err
}
