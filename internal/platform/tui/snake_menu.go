package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
)

var presetBlurbs = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "wrap on, one rival, slow start",
	config.DifficultyNormal: "the configured defaults",
	config.DifficultyHard:   "solid walls, five rivals, fast start",
	config.DifficultyFixed:  "constant speed, length does not matter",
}

// DifficultyModel lets users pick a difficulty preset before a run.
type DifficultyModel struct {
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection config.DifficultyPreset
	choosing  bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a preset picker with current preselected.
func NewDifficultyModel(width, height int, current config.DifficultyPreset) DifficultyModel {
	m := DifficultyModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	for i, p := range config.Presets {
		if p == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(config.Presets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = config.Presets[m.cursor]
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("D I F F I C U L T Y", m.width))
	b.WriteString("\n\n")

	for i, p := range config.Presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-7s %s", cursor, p, presetBlurbs[p])
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen preset, or false if still choosing.
func (m DifficultyModel) Selected() (config.DifficultyPreset, bool) {
	if m.choosing {
		return "", false
	}
	return m.selection, true
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// DifficultyResult holds the outcome of the preset picker.
type DifficultyResult struct {
	Preset config.DifficultyPreset
	Back   bool
	Quit   bool
}

// RunDifficultySelector runs the preset picker.
func RunDifficultySelector(cfg core.RuntimeConfig, current config.DifficultyPreset) (DifficultyResult, error) {
	model := NewDifficultyModel(cfg.ScreenW, cfg.ScreenH, current)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return DifficultyResult{}, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return DifficultyResult{Quit: true}, nil
	}

	switch {
	case m.IsQuitting():
		return DifficultyResult{Quit: true}, nil
	case m.WantsBack():
		return DifficultyResult{Back: true}, nil
	}
	preset, _ := m.Selected()
	return DifficultyResult{Preset: preset}, nil
}
