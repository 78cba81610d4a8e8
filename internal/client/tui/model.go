// Package tui renders the todo list as an interactive terminal app.
// Every key that mutates state dispatches an asynchronous command against
// the controller; several commands may be outstanding at once, and the
// list is re-read from the controller whenever one answers, so the screen
// always shows the reconciled view, including rollbacks after failed
// server calls.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/todokeeper/internal/client/controller"
	"github.com/dmitrijs2005/todokeeper/internal/client/models"
)

// listItem adapts a Todo to bubbles/list.Item.
type listItem struct {
	todo models.Todo
}

func (i listItem) titleText() string {
	box := boxUnchecked
	if i.todo.Completed {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.todo.Text)
}

func (i listItem) Title() string       { return i.titleText() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Text }

// itemDelegate renders each item on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	boxStyled := mutedStyle.Render(boxUnchecked)
	textStyled := it.todo.Text
	if it.todo.Completed {
		boxStyled = successStyle.Render(boxChecked)
		textStyled = doneStyle.Render(it.todo.Text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+boxStyled+" "+textStyled)
}

// mutationDoneMsg reports a finished controller call. The item list itself
// is not carried here; syncItems re-reads it from the controller.
type mutationDoneMsg struct {
	err error
}

type refreshedMsg struct {
	err error
}

// Model is the Bubble Tea model for the todo screen.
type Model struct {
	ctrl *controller.Controller
	ctx  context.Context

	list   list.Model
	adding bool
	input  textinput.Model

	status string

	width  int
	height int
}

// NewModel builds the initial screen around ctrl's current items. An
// initial status (such as a failed first load) is shown until the next
// action replaces it.
func NewModel(ctx context.Context, ctrl *controller.Controller, initialStatus string) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	refreshBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	extra := func() []key.Binding {
		return []key.Binding{addBind, toggleBind, deleteBind, refreshBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "New todo..."
	input.CharLimit = 200

	m := Model{
		ctrl:   ctrl,
		ctx:    ctx,
		list:   l,
		input:  input,
		status: initialStatus,
	}
	m.syncItems()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// syncItems replaces the visible list with the controller's snapshot and
// refreshes the counting header.
func (m *Model) syncItems() {
	todos := m.ctrl.Items()

	items := make([]list.Item, 0, len(todos))
	done := 0
	for _, t := range todos {
		if t.Completed {
			done++
		}
		items = append(items, listItem{todo: t})
	}
	m.list.SetItems(items)

	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(todos)-done,
		accentStyle.Render("Total"), len(todos),
	)
}

func (m *Model) selectedID() (string, bool) {
	item, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return "", false
	}
	return item.todo.ID, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-4)
		return m, nil

	case mutationDoneMsg:
		m.status = ""
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		}
		m.syncItems()
		return m, nil

	case refreshedMsg:
		m.status = ""
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		}
		m.syncItems()
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "a":
			m.adding = true
			m.input.SetValue("")
			m.input.Focus()
			return m, nil

		case " ":
			id, ok := m.selectedID()
			if !ok {
				return m, nil
			}
			m.status = mutedStyle.Render("syncing...")
			return m, func() tea.Msg {
				return mutationDoneMsg{err: m.ctrl.ToggleCompletion(m.ctx, id)}
			}

		case "d":
			id, ok := m.selectedID()
			if !ok {
				return m, nil
			}
			m.status = mutedStyle.Render("syncing...")
			return m, func() tea.Msg {
				return mutationDoneMsg{err: m.ctrl.Delete(m.ctx, id)}
			}

		case "r":
			m.status = mutedStyle.Render("refreshing...")
			return m, func() tea.Msg {
				return refreshedMsg{err: m.ctrl.Refresh(m.ctx)}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				m.status = errorStyle.Render("text cannot be empty")
				return m, nil
			}
			m.adding = false
			m.input.Blur()
			m.input.SetValue("")
			m.status = mutedStyle.Render("saving...")
			return m, func() tea.Msg {
				return mutationDoneMsg{err: m.ctrl.Create(m.ctx, text)}
			}
		case "esc":
			m.adding = false
			m.input.Blur()
			m.input.SetValue("")
			m.status = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())

	if m.adding {
		b.WriteString("\n")
		b.WriteString(inputBarStyle.Render("Add new todo\n" + m.input.View()))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	return b.String()
}
