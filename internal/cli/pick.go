package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ltschart/pkg/errors"
	"github.com/matzehuels/ltschart/pkg/release"
)

var (
	pickSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	pickNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	pickDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	pickCheckStyle    = lipgloss.NewStyle().Foreground(colorGreen)
)

// =============================================================================
// TrackPickerModel - Interactive track selection
// =============================================================================

// TrackPickerModel is the bubbletea model for choosing which tracks to chart.
type TrackPickerModel struct {
	Tracks    []release.Track
	Cursor    int
	Checked   []bool
	Confirmed bool
}

// NewTrackPickerModel creates a picker with the tracks named in preselect
// checked, or every track when preselect is empty.
func NewTrackPickerModel(tracks []release.Track, preselect []string) TrackPickerModel {
	checked := make([]bool, len(tracks))
	for i, t := range tracks {
		checked[i] = len(preselect) == 0
		for _, name := range preselect {
			if name == t.Name || name == t.DisplayName() {
				checked[i] = true
			}
		}
	}
	return TrackPickerModel{Tracks: tracks, Checked: checked}
}

func (m TrackPickerModel) Init() tea.Cmd {
	return nil
}

func (m TrackPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Tracks)-1 {
			m.Cursor++
		}
	case " ", "x":
		if len(m.Checked) > 0 {
			m.Checked = toggled(m.Checked, m.Cursor)
		}
	case "a":
		all := !allChecked(m.Checked)
		checked := make([]bool, len(m.Checked))
		for i := range checked {
			checked[i] = all
		}
		m.Checked = checked
	case "enter":
		m.Confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m TrackPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Tracks"))
	b.WriteString("\n")
	b.WriteString(pickDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	for i, t := range m.Tracks {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Checked[i] {
			box = pickCheckStyle.Render("[x]")
		}
		ms := t.Milestones
		start := ms.ActiveStart
		if !ms.UnstableStart.IsZero() {
			start = ms.UnstableStart
		}
		span := pickDimStyle.Render(fmt.Sprintf("%s → %s", release.FormatDate(start), release.FormatDate(ms.End)))
		line := fmt.Sprintf("%s%s %-12s", cursor, box, t.Name)

		if i == m.Cursor {
			b.WriteString(pickSelectedStyle.Render(line))
		} else {
			b.WriteString(pickNormalStyle.Render(line))
		}
		b.WriteString("  " + span + "\n")
	}

	b.WriteString("\n")
	b.WriteString(pickDimStyle.Render(fmt.Sprintf("  [%d/%d selected]", len(m.Selection()), len(m.Tracks))))
	return b.String()
}

// Selection returns the names of the checked tracks in dataset order.
func (m TrackPickerModel) Selection() []string {
	var names []string
	for i, t := range m.Tracks {
		if m.Checked[i] {
			names = append(names, t.Name)
		}
	}
	return names
}

func toggled(checked []bool, i int) []bool {
	out := append([]bool(nil), checked...)
	out[i] = !out[i]
	return out
}

func allChecked(checked []bool) bool {
	for _, c := range checked {
		if !c {
			return false
		}
	}
	return true
}

// pickTracks runs the picker on the terminal. Quitting without confirming
// returns context.Canceled.
func pickTracks(ctx context.Context, ds release.Dataset, preselect []string) ([]string, error) {
	if ds.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset has no tracks to pick from")
	}
	p := tea.NewProgram(NewTrackPickerModel(ds.Tracks, preselect), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("track picker: %w", err)
	}
	m := final.(TrackPickerModel)
	if !m.Confirmed {
		return nil, context.Canceled
	}
	names := m.Selection()
	if len(names) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTrack, "no tracks selected")
	}
	return names, nil
}
