package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

const (
	profileListHeight = 10
	minWidth          = 50
	maxWidth          = 100
	nameWidth         = 24
	regionWidth       = 16
)

// ErrSelectionCancelled is returned when the user leaves the selector
// without choosing a profile.
var ErrSelectionCancelled = errors.New("selection cancelled")

// ProfileModel is the bubbletea model for choosing a profile from the config file
type ProfileModel struct {
	profiles     []pkgtypes.Profile
	filtered     []pkgtypes.Profile
	cursor       int
	offset       int
	search       string
	selected     *pkgtypes.Profile
	quitting     bool
	cancelled    bool
	termWidth    int
	contentWidth int
}

// NewProfileModel creates a profile selector. The cursor starts on the
// default profile if there is one.
func NewProfileModel(profiles []pkgtypes.Profile) ProfileModel {
	m := ProfileModel{
		profiles:  profiles,
		filtered:  profiles,
		termWidth: 80,
	}
	for i, p := range profiles {
		if p.Default {
			m.cursor = i
			break
		}
	}
	m.keepCursorVisible()
	m.calculateWidths()
	return m
}

func (m *ProfileModel) calculateWidths() {
	m.contentWidth = min(max(m.termWidth-2, minWidth), maxWidth)
}

func (m *ProfileModel) keepCursorVisible() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+profileListHeight {
		m.offset = m.cursor - profileListHeight + 1
	}
}

// Selected returns the chosen profile, or nil
func (m ProfileModel) Selected() *pkgtypes.Profile {
	return m.selected
}

// Init implements tea.Model
func (m ProfileModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.calculateWidths()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				m.selected = &m.filtered[m.cursor]
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				m.keepCursorVisible()
			}

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m.keepCursorVisible()
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.filter()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filter()
		}
	}

	return m, nil
}

// filter narrows the list to profiles whose name or region contains the search text
func (m *ProfileModel) filter() {
	if m.search == "" {
		m.filtered = m.profiles
	} else {
		query := strings.ToLower(m.search)
		m.filtered = nil
		for _, p := range m.profiles {
			if strings.Contains(strings.ToLower(p.Name), query) ||
				strings.Contains(strings.ToLower(p.Region), query) {
				m.filtered = append(m.filtered, p)
			}
		}
	}
	m.cursor = min(m.cursor, max(len(m.filtered)-1, 0))
	m.offset = 0
	m.keepCursorVisible()
}

// View implements tea.Model
func (m ProfileModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth

	line := func(content string) {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(content)
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}
	rule := func(left, right string) {
		sb.WriteString(BorderStyle.Render(left + strings.Repeat(Horizontal, w) + right))
		sb.WriteString("\n")
	}

	rule(TopLeft, TopRight)
	line(HeaderStyle.Render(padRight(" Select aec profile", w)))
	rule(LeftT, RightT)
	line(NameStyle.Render(padRight(" > "+m.search, w)))
	line(strings.Repeat(" ", w))

	end := min(m.offset+profileListHeight, len(m.filtered))
	for i := m.offset; i < end; i++ {
		line(m.renderRow(i))
	}
	for i := end - m.offset; i < profileListHeight; i++ {
		line(strings.Repeat(" ", w))
	}

	rule(BottomLeft, BottomRight)
	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

func (m ProfileModel) renderRow(idx int) string {
	p := m.filtered[idx]

	marker := "   "
	if idx == m.cursor {
		marker = " > "
	}

	name := padRight(p.Name, nameWidth)
	if p.Default {
		name = DefaultStyle.Render(name)
	} else {
		name = NameStyle.Render(name)
	}

	region := p.Region
	if region == "" {
		region = "-"
	}

	note := ""
	if p.Default {
		note = "default"
	}

	used := 3 + nameWidth + 2 + regionWidth + 2
	rest := max(m.contentWidth-used, 0)

	return marker + name + "  " +
		MutedStyle.Render(padRight(region, regionWidth)) + "  " +
		HintStyle.Render(padRight(note, rest))
}

func (m ProfileModel) renderStatusBar() string {
	w := m.contentWidth + 2

	count := fmt.Sprintf("  %d/%d profiles", len(m.filtered), len(m.profiles))
	hints := "[Enter:select] [Esc:cancel]"

	padding := max(w-runewidth.StringWidth(count)-runewidth.StringWidth(hints), 1)

	return count + strings.Repeat(" ", padding) + HintStyle.Render(hints) + "\n"
}

// SelectProfile shows an interactive selector over profiles and returns the
// one chosen
func SelectProfile(profiles []pkgtypes.Profile) (*pkgtypes.Profile, error) {
	if len(profiles) == 0 {
		return nil, errors.New("no profiles available")
	}

	p := tea.NewProgram(NewProfileModel(profiles))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run selector: %w", err)
	}

	result := finalModel.(ProfileModel)
	if result.cancelled || result.selected == nil {
		return nil, ErrSelectionCancelled
	}

	return result.selected, nil
}
