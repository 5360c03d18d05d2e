package prompt

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/xsim/internal/output"
)

// pickItem implements list.Item for the picker
type pickItem struct {
	choice Choice
}

func (i pickItem) Title() string       { return i.choice.Label }
func (i pickItem) Description() string { return i.choice.Description }
func (i pickItem) FilterValue() string { return i.choice.Label + " " + i.choice.Value }

// pickModel is the bubbletea model for single-choice prompts
type pickModel struct {
	list     list.Model
	selected Choice
	quitting bool
	canceled bool
}

func newPickModel(title string, choices []Choice) pickModel {
	items := make([]list.Item, 0, len(choices))
	for _, c := range choices {
		items = append(items, pickItem{choice: c})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = output.Styles.Selected.
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(output.Styles.Selected.GetForeground()).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle.Foreground(output.Styles.Muted.GetForeground())

	l := list.New(items, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = output.Styles.Title

	return pickModel{list: l}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.canceled = true
			m.quitting = true
			return m, tea.Quit
		}
		// While the filter box is open, keys belong to it.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(pickItem); ok {
				m.selected = item.choice
				m.quitting = true
				return m, tea.Quit
			}
		case "q", "esc":
			m.canceled = true
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 2)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}
