package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

var testProfiles = []pkgtypes.Profile{
	{Name: "us", Region: "us-east-1", Default: true},
	{Name: "au", Region: "ap-southeast-2"},
	{Name: "eu", Region: "eu-west-1"},
}

func press(m tea.Model, msgs ...tea.Msg) ProfileModel {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m.(ProfileModel)
}

func TestProfileModelStartsOnDefault(t *testing.T) {
	profiles := []pkgtypes.Profile{{Name: "a"}, {Name: "b", Default: true}}

	m := press(NewProfileModel(profiles), tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, m.Selected())
	assert.Equal(t, "b", m.Selected().Name)
}

func TestProfileModelNavigate(t *testing.T) {
	m := press(NewProfileModel(testProfiles),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	require.NotNil(t, m.Selected())
	assert.Equal(t, "au", m.Selected().Name)
}

func TestProfileModelSearch(t *testing.T) {
	m := press(NewProfileModel(testProfiles),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("south")},
	)

	assert.Len(t, m.filtered, 1)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Selected())
	assert.Equal(t, "au", m.Selected().Name)
}

func TestProfileModelSearchNoMatch(t *testing.T) {
	m := press(NewProfileModel(testProfiles),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zz")},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	assert.Nil(t, m.Selected())
	assert.False(t, m.quitting)

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Len(t, m.filtered, 3)
}

func TestProfileModelCancel(t *testing.T) {
	m := press(NewProfileModel(testProfiles), tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, m.cancelled)
	assert.Nil(t, m.Selected())
	assert.Empty(t, m.View())
}

func TestProfileModelView(t *testing.T) {
	view := NewProfileModel(testProfiles).View()

	assert.Contains(t, view, "Select aec profile")
	assert.Contains(t, view, "ap-southeast-2")
	assert.Contains(t, view, "3/3 profiles")
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "Error: boom", FormatError("boom", false))
	assert.Contains(t, FormatError("boom", true), "boom")
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "日本 ", padRight("日本", 5))
	assert.Equal(t, "abcdefg", padRight("abcdefg", 7))
	assert.Equal(t, "ab...", padRight("abcdefg", 5))
}
