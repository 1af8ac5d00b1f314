package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"base64-converter/internal/converter"
	"base64-converter/internal/dataurl"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focus int

const (
	focusPath focus = iota
	focusBase64
)

type Model struct {
	session *converter.Session
	state   converter.State

	input     textarea.Model
	pathInput textinput.Model
	b64Input  textarea.Model
	focus     focus

	status    string
	statusErr bool
	width     int
}

func NewModel(session *converter.Session) Model {
	input := textarea.New()
	input.Placeholder = "Type text or paste Base64"
	input.ShowLineNumbers = false
	input.SetHeight(6)
	input.Focus()

	path := textinput.New()
	path.Placeholder = "Path to an image file, then enter"
	path.Width = 64

	b64 := textarea.New()
	b64.Placeholder = "Paste Base64 or a data:image/ URL, then ctrl+d"
	b64.ShowLineNumbers = false
	b64.SetHeight(4)

	return Model{
		session:   session,
		state:     session.State(),
		input:     input,
		pathInput: path,
		b64Input:  b64,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 8 {
			m.input.SetWidth(msg.Width - 4)
			m.b64Input.SetWidth(msg.Width - 4)
		}
		return m, nil
	case stateMsg:
		if msg.Version >= m.state.Version {
			m.state = converter.State(msg)
		}
		return m, nil
	case ingestMsg:
		switch {
		case msg.Err == nil:
			m.setStatus("Loaded "+m.session.State().FileName, false)
			m.pathInput.SetValue("")
		case errors.Is(msg.Err, converter.ErrSuperseded):
		default:
			log.Printf("file load failed error=%v", msg.Err)
			m.setStatus(m.errorText(msg.Err), true)
		}
		m.state = m.session.State()
		return m, nil
	case copyMsg:
		if msg.err != nil {
			log.Printf("copy failed error=%v", msg.err)
		}
		m.state = m.session.State()
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			m.state = m.session.State()
			return m, cmd
		}
	}
	return m.updateInputs(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit, true
	case "tab":
		next := converter.ModeImage
		if m.state.Mode == converter.ModeImage {
			next = converter.ModeText
		}
		m.session.SetMode(next)
		m.resetInputs(next)
		m.setStatus("", false)
		return nil, true
	case "ctrl+l":
		m.session.ClearAll()
		m.resetInputs(m.state.Mode)
		m.setStatus("", false)
		return nil, true
	}

	if m.state.Mode == converter.ModeText {
		switch msg.String() {
		case "ctrl+e":
			m.session.Encode()
			return nil, true
		case "ctrl+d":
			m.session.Decode()
			return nil, true
		case "ctrl+a":
			m.session.SetAutoDetect(!m.state.AutoDetect)
			m.session.AutoProcess()
			return nil, true
		case "ctrl+y":
			return copyCmd(m.session.CopyOutput(context.Background())), true
		}
		return nil, false
	}

	switch msg.String() {
	case "ctrl+f":
		m.setFocus(focusPath)
		return nil, true
	case "ctrl+b":
		m.setFocus(focusBase64)
		return nil, true
	case "ctrl+y":
		return copyCmd(m.session.CopyBase64(context.Background())), true
	case "ctrl+d":
		if err := m.session.DecodeToImage(m.b64Input.Value()); err != nil {
			m.setStatus(m.errorText(err), true)
		} else {
			m.setStatus("Image decoded", false)
		}
		return nil, true
	case "enter":
		if m.focus == focusPath {
			path := m.pathInput.Value()
			if strings.TrimSpace(path) == "" {
				m.setStatus("Enter a file path", true)
				return nil, true
			}
			m.setStatus("Reading "+path+"...", false)
			return loadFile(m.session, path), true
		}
	}
	return nil, false
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.state.Mode == converter.ModeText {
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if value := m.input.Value(); value != before {
			m.session.SetInput(value)
			m.state = m.session.State()
		}
		return m, cmd
	}
	if m.focus == focusPath {
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}
	before := m.b64Input.Value()
	m.b64Input, cmd = m.b64Input.Update(msg)
	if value := m.b64Input.Value(); value != before {
		m.session.SetBase64Input(value)
		m.state = m.session.State()
	}
	return m, cmd
}

func (m *Model) resetInputs(mode converter.Mode) {
	m.input.Reset()
	m.pathInput.SetValue("")
	m.b64Input.Reset()
	if mode == converter.ModeText {
		m.input.Focus()
		m.pathInput.Blur()
		m.b64Input.Blur()
		return
	}
	m.input.Blur()
	m.setFocus(focusPath)
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusPath {
		m.b64Input.Blur()
		m.pathInput.Focus()
		return
	}
	m.pathInput.Blur()
	m.b64Input.Focus()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) errorText(err error) string {
	if errors.Is(err, converter.ErrNotAnImage) ||
		errors.Is(err, converter.ErrFileTooLarge) ||
		errors.Is(err, converter.ErrEmptyInput) ||
		errors.Is(err, converter.ErrMissingImagePrefix) {
		return m.session.UserMessage(err)
	}
	return err.Error()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Base64 Converter"))
	b.WriteString("\n\n")
	b.WriteString(m.tabs())
	b.WriteString("\n\n")
	if m.state.Mode == converter.ModeText {
		b.WriteString(m.textView())
	} else {
		b.WriteString(m.imageView())
	}
	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(okStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) tabs() string {
	text, image := activeTab, tabStyle
	if m.state.Mode == converter.ModeImage {
		text, image = tabStyle, activeTab
	}
	return text.Render("Text") + image.Render("Image")
}

func (m Model) textView() string {
	auto := "off"
	if m.state.AutoDetect {
		auto = "on"
	}
	output := m.state.Output
	if m.state.OutputFailed {
		output = errorStyle.Render(output)
	}
	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n\n%s\n",
		labelStyle.Render(fmt.Sprintf("Input (%d chars, auto-detect %s)", m.state.InputChars, auto)),
		m.input.View(),
		labelStyle.Render(fmt.Sprintf("Output (%d chars)", m.state.OutputChars)),
		boxStyle.Render(output),
		helpStyle.Render("ctrl+e encode • ctrl+d decode • ctrl+a auto-detect • ctrl+y "+m.state.CopyLabel+" • ctrl+l clear • tab image mode • esc quit"),
	)
}

func (m Model) imageView() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Image to Base64 (ctrl+f)"))
	b.WriteString("\n")
	b.WriteString(m.pathInput.View())
	b.WriteString("\n")
	if m.state.Reading {
		b.WriteString(helpStyle.Render("Reading..."))
		b.WriteString("\n")
	}
	if m.state.Base64Output != "" {
		b.WriteString(boxStyle.Render(truncate(m.state.Base64Output, 240)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Base64 to Image (ctrl+b)"))
	b.WriteString("\n")
	b.WriteString(m.b64Input.View())
	b.WriteString("\n\n")
	b.WriteString(previewSummary(m.state))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter load file • ctrl+d show image • ctrl+y " + m.state.CopyLabel + " • ctrl+l clear • tab text mode • esc quit"))
	b.WriteString("\n")
	return b.String()
}

// previewSummary describes the previewed image; terminals cannot show it.
func previewSummary(st converter.State) string {
	if st.Preview == "" {
		return helpStyle.Render("No image loaded")
	}
	payload, err := dataurl.Parse(st.Preview)
	if err != nil {
		return labelStyle.Render("Preview: " + truncate(st.Preview, 64))
	}
	name := st.FileName
	if name == "" {
		name = "pasted image"
	}
	return labelStyle.Render(fmt.Sprintf("Preview: %s (%s, %d Base64 chars)", name, payload.MimeType, len(payload.Base64Body)))
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}
