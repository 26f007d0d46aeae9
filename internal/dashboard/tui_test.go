package dashboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/skillradar/internal/analysis"
	"github.com/amishk599/skillradar/internal/model"
)

func sampleReport() analysis.Report {
	ds := &model.Dataset{
		WithSkills: []model.Vacancy{
			{ID: "1", Skills: []string{"ПЦР", "Excel"}},
			{ID: "2", Skills: []string{"ПЦР", "ГХ"}},
		},
	}
	return analysis.Analyze(ds, analysis.DefaultOptions)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m dashboardModel, msg tea.Msg) (dashboardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	dm, ok := next.(dashboardModel)
	require.True(t, ok)
	return dm, cmd
}

func readyModel(t *testing.T) dashboardModel {
	t.Helper()
	m, _ := update(t, newModel(sampleReport(), "data"), tea.WindowSizeMsg{Width: 100, Height: 30})
	require.True(t, m.ready)
	return m
}

func TestDashboard_InitializingUntilSized(t *testing.T) {
	m := newModel(sampleReport(), "")
	assert.Equal(t, "Initializing...", m.View())
}

func TestDashboard_TabCycles(t *testing.T) {
	m := readyModel(t)
	assert.Equal(t, tabOverview, m.active)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabTopSkills, m.active)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabNetwork, m.active, "shift+tab wraps backwards")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabOverview, m.active, "right wraps forwards")
}

func TestDashboard_NumberKeysJump(t *testing.T) {
	m := readyModel(t)

	m, _ = update(t, m, runes("3"))
	assert.Equal(t, tabHeatmap, m.active)
	assert.Contains(t, m.View(), "3 Heatmap")

	m, _ = update(t, m, runes("2"))
	assert.Equal(t, tabTopSkills, m.active)
	assert.Contains(t, m.viewport.View(), "ПЦР")
}

func TestDashboard_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, readyModel(t), key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestDashboard_ViewShowsStatus(t *testing.T) {
	view := readyModel(t).View()
	assert.Contains(t, view, "2 vacancies")
	assert.Contains(t, view, "1 Overview")
	assert.Contains(t, view, "q quit")
}

func TestDashboard_ResizeKeepsTab(t *testing.T) {
	m := readyModel(t)
	m, _ = update(t, m, runes("4"))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	assert.Equal(t, tabNetwork, m.active)
	assert.Equal(t, 58, m.viewport.Width)
	assert.Equal(t, 16, m.viewport.Height)
}

func TestPicker_Navigation(t *testing.T) {
	var m tea.Model = pickerModel{title: "Pick", options: []string{"a", "b"}, chosen: -1}

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("j"))
	assert.Equal(t, 1, m.(pickerModel).cursor, "cursor stops at the last option")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.(pickerModel).chosen)
	require.NotNil(t, cmd)
}

func TestLoader_DoneQuits(t *testing.T) {
	var m tea.Model = loaderModel[int]{label: "Loading"}
	assert.Contains(t, m.View(), "Loading...")

	m, cmd := m.Update(loadDoneMsg[int]{result: 7})
	lm := m.(loaderModel[int])
	assert.True(t, lm.done)
	assert.Equal(t, 7, lm.result)
	require.NotNil(t, cmd)
	assert.Equal(t, "", lm.View())
}

func TestLoader_CtrlCCancels(t *testing.T) {
	var m tea.Model = loaderModel[int]{label: "Loading"}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.ErrorIs(t, m.(loaderModel[int]).err, ErrCancelled)
}

func TestPicker_DigitSelects(t *testing.T) {
	var m tea.Model = pickerModel{title: "Pick", options: []string{"files", "store"}, chosen: -1}

	m, cmd := m.Update(runes("2"))
	assert.Equal(t, 1, m.(pickerModel).chosen)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "2. store")

	m, _ = pickerModel{options: []string{"files"}, chosen: -1}.Update(runes("5"))
	assert.Equal(t, -1, m.(pickerModel).chosen, "out-of-range digit is ignored")
}
