package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/edwardstark/taglock/internal/store"
	"github.com/edwardstark/taglock/internal/ui/components"
)

// --- Messages ---

type tagAddedMsg struct {
	tag        string
	persistErr error
}

type tagRemovedMsg struct {
	tag        string
	persistErr error
}

// --- Tags Model ---

// TagsModel manages the allow-list: a scrollable tag list with add and
// remove flows. Removal sits behind a confirm dialog, as in the settings
// panel this screen descends from.
type TagsModel struct {
	store *store.Store
	list  *components.List

	adding     bool
	input      string
	confirming string // tag pending removal, empty when no dialog is open
	notice     string

	width  int
	height int
}

// NewTagsModel builds the tags screen over the given store.
func NewTagsModel(s *store.Store) TagsModel {
	m := TagsModel{
		store: s,
		list:  components.NewList(8),
	}
	m.list.SetItems(s.Tags())
	return m
}

func (m TagsModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

// refresh re-reads the list from the store.
func (m *TagsModel) refresh() {
	m.list.SetItems(m.store.Tags())
}

func (m TagsModel) Update(msg tea.Msg) (TagsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tagAddedMsg, tagRemovedMsg:
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m TagsModel) handleKeys(msg tea.KeyMsg) (TagsModel, tea.Cmd) {
	if m.adding {
		return m.handleAddKeys(msg)
	}
	if m.confirming != "" {
		return m.handleConfirmKeys(msg)
	}

	m.notice = ""
	switch {
	case isUp(msg):
		m.list.Up()
	case isDown(msg):
		m.list.Down()
	case isKey(msg, "a"):
		m.adding = true
		m.input = ""
	case isKey(msg, "d"):
		if tag, ok := m.list.SelectedItem(); ok {
			m.confirming = tag
		}
	}
	return m, nil
}

func (m TagsModel) handleAddKeys(msg tea.KeyMsg) (TagsModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.adding = false
		m.input = ""
	case isEnter(msg):
		return m.submitAdd()
	case isKey(msg, "backspace"):
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		ch := msg.String()
		if len([]rune(ch)) == 1 && ch != " " {
			m.input += ch
		}
	}
	return m, nil
}

func (m TagsModel) submitAdd() (TagsModel, tea.Cmd) {
	tag := strings.TrimSpace(m.input)
	if tag == "" {
		m.notice = "Please enter a tag ID."
		m.adding = false
		m.input = ""
		return m, nil
	}
	if m.store.Contains(tag) {
		m.notice = "This tag is already in the list."
		m.adding = false
		m.input = ""
		return m, nil
	}

	m.adding = false
	m.input = ""
	_, err := m.store.Add(tag)
	m.refresh()
	return m, func() tea.Msg {
		return tagAddedMsg{tag: tag, persistErr: err}
	}
}

func (m TagsModel) handleConfirmKeys(msg tea.KeyMsg) (TagsModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		tag := m.confirming
		m.confirming = ""
		removed, err := m.store.Remove(tag)
		m.refresh()
		if !removed {
			m.notice = "Tag was already removed."
			return m, nil
		}
		return m, func() tea.Msg {
			return tagRemovedMsg{tag: tag, persistErr: err}
		}
	case isKey(msg, "n"), isBack(msg):
		m.confirming = ""
	}
	return m, nil
}

// --- View ---

func (m TagsModel) View() string {
	if m.adding {
		return components.InputDialog("Add Tag", m.input)
	}
	if m.confirming != "" {
		return components.ConfirmDialog("Remove Tag", fmt.Sprintf("Remove tag '%s'?", m.confirming))
	}

	var b strings.Builder
	b.WriteString(components.TitledBox("Allowed Tags", m.renderList(), m.width))
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(WarningStyle.Render(m.notice))
	}
	return b.String()
}

func (m TagsModel) renderList() string {
	if len(m.list.Items) == 0 {
		return MutedStyle.Render("no tags stored")
	}
	var b strings.Builder
	for i, tag := range m.list.Visible() {
		abs := m.list.RelToAbs(i)
		if m.list.IsSelected(abs) {
			b.WriteString(SelectedStyle.Render("> " + tag))
		} else {
			b.WriteString(NormalStyle.Render("  " + tag))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(fmt.Sprintf("%d tags", len(m.list.Items))))
	return b.String()
}

func (m TagsModel) statusHints() []string {
	if m.adding {
		return []string{
			components.Hint("enter", "Submit"),
			components.Hint("esc", "Cancel"),
		}
	}
	if m.confirming != "" {
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	}
	return []string{
		components.Hint("↑/↓", "Scroll"),
		components.Hint("a", "Add"),
		components.Hint("d", "Remove"),
	}
}
