package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Veraticus/truelens/internal/common"
	"github.com/Veraticus/truelens/internal/model"
	"github.com/Veraticus/truelens/internal/predict"
	"github.com/Veraticus/truelens/internal/preview"
	"github.com/Veraticus/truelens/internal/tui/components"
	"github.com/Veraticus/truelens/internal/tui/themes"
	"github.com/Veraticus/truelens/internal/widget"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Focus is the control receiving key input.
type Focus int

const (
	FocusPicker Focus = iota
	FocusSlider
	FocusSubmit
	focusCount
)

// filepicker subtracts this from the window height when sizing itself.
const pickerMarginBottom = 5

// Model holds the main TUI state.
type Model struct {
	ctx       context.Context
	theme     themes.Theme
	predictor predict.Predictor
	previews  *preview.Registry
	widget    *widget.Widget
	config    Config
	keymap    KeyMap
	alert     string
	picker    filepicker.Model
	help      help.Model
	spinner   spinner.Model
	slider    components.SliderModel
	width     int
	height    int
	focus     Focus
	quitting  bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	picker := filepicker.New()
	picker.CurrentDirectory = cfg.StartDir
	picker.AllowedTypes = model.ImageExtensions
	picker.ShowPermissions = false

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	var store preview.Store
	if cfg.Previews != nil {
		store = cfg.Previews
	}

	m := Model{
		ctx:       ctx,
		theme:     cfg.Theme,
		predictor: cfg.Predictor,
		previews:  cfg.Previews,
		widget:    widget.New(store, cfg.Policy),
		config:    cfg,
		keymap:    DefaultKeyMap(),
		picker:    picker,
		help:      help.New(),
		spinner:   s,
		slider:    components.NewSlider(cfg.Theme),
		width:     cfg.Width,
		height:    cfg.Height,
		focus:     FocusPicker,
	}
	m.resize()
	m.syncControls()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.picker.Init()}
	if m.config.InitialImage != "" {
		cmds = append(cmds, loadImage(m.config.InitialImage))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(m.pickerSizeMsg())
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case imageLoadedMsg:
		m.handleImageLoaded(msg)
		return m, nil

	case predictionDoneMsg:
		if msg.err != nil {
			m.widget.Fail(msg.err)
		} else {
			m.widget.Resolve(msg.response)
		}
		if _, ok := m.widget.Image(); !ok {
			m.setFocus(FocusPicker)
		}
		m.syncControls()
		return m, nil

	case spinner.TickMsg:
		if m.widget.State() != widget.InFlight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Directory listings and other picker-internal messages.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.alert != "" {
		return components.RenderAlert(m.alert, m.theme, m.width, m.height)
	}
	return m.renderForm()
}

// Close releases resources held by the model.
func (m Model) Close() {
	m.widget.Close()
}

// handleKey routes key input: the alert swallows everything until
// dismissed, global keys come next, then the focused control.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.alert != "" {
		if key.Matches(msg, m.keymap.Dismiss) {
			m.alert = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.NextFocus):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case key.Matches(msg, m.keymap.PrevFocus):
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.focus {
	case FocusPicker:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			if m.widget.State() == widget.InFlight {
				return m, cmd
			}
			return m, tea.Batch(cmd, loadImage(path))
		}
		return m, cmd

	case FocusSlider:
		switch {
		case key.Matches(msg, m.keymap.Increase):
			m.widget.StepConfidence(1)
		case key.Matches(msg, m.keymap.Decrease):
			m.widget.StepConfidence(-1)
		case key.Matches(msg, m.keymap.Submit):
			return m, m.submit()
		}
		m.syncControls()
		return m, nil

	case FocusSubmit:
		if key.Matches(msg, m.keymap.Submit) {
			return m, m.submit()
		}
	}

	return m, nil
}

// submit starts a submission. Without an image it raises the alert and
// issues no request.
func (m *Model) submit() tea.Cmd {
	req, err := m.widget.Submit()
	switch {
	case errors.Is(err, common.ErrNoImage):
		m.alert = common.UserMessage(err)
		return nil
	case err != nil:
		return nil
	}

	m.syncControls()
	return tea.Batch(m.spinner.Tick, submitPrediction(m.ctx, m.predictor, req))
}

func (m *Model) handleImageLoaded(msg imageLoadedMsg) {
	if msg.err != nil {
		common.LogError(msg.err, "Failed to load image", common.Fields{"path": msg.path})
		m.alert = fmt.Sprintf("Could not open %s", filepath.Base(msg.path))
		return
	}
	if err := m.widget.SelectImage(msg.image); err != nil {
		common.LogError(err, "Failed to select image", common.Fields{"path": msg.path})
		return
	}
	m.setFocus(FocusSlider)
	m.syncControls()
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.slider.Blur()
	if f == FocusSlider {
		m.slider.Focus()
	}
}

// syncControls mirrors widget state into the view components.
func (m *Model) syncControls() {
	m.slider.SetValue(m.widget.Confidence())
	m.slider.SetEnabled(m.widget.CanAdjust())
}

func (m *Model) resize() {
	m.slider.Resize(min(m.width-4, 72))
	m.help.Width = m.width
}

func (m Model) pickerSizeMsg() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  m.width / 2,
		Height: m.config.PickerRows + pickerMarginBottom,
	}
}
