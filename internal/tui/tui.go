package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todolite/internal/store"
)

// listItem adapts a todo to bubbles/list.Item. Identity is the todo id, so
// rows stay stable across re-renders when order or membership changes.
type listItem struct {
	ID   int64
	Text string
	Done bool
}

func (i listItem) titleText() string {
	box := boxUnchecked
	if i.Done {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.Text)
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.titleText() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	boxStyled := mutedStyle.Render(boxUnchecked)
	textStyled := it.Text
	if it.Done {
		boxStyled = successStyle.Render(boxChecked)
		textStyled = doneStyle.Render(it.Text)
	}

	line := fmt.Sprintf("%s %s", boxStyled, textStyled)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// Model is the interactive front end over the store. Every mutation goes
// through the store, which writes through to disk before the list is
// rebuilt, so quitting never loses state.
type Model struct {
	store *store.Store
	list  list.Model

	// Inline add
	adding bool
	input  textinput.Model

	width, height int
}

// New builds the TUI model over an initialized store.
func New(st *store.Store) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	// Extend help with the mutation bindings
	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	extra := func() []key.Binding { return []key.Binding{addBind, toggleBind, delBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "New item title..."
	input.CharLimit = 200

	m := Model{store: st, list: l, input: input, width: 80, height: 24}
	m.syncItems()
	return m
}

// Run starts the Bubble Tea program.
func Run(st *store.Store) error {
	p := tea.NewProgram(New(st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// syncItems rebuilds the list rows from the store, keeping the cursor on a
// valid row and refreshing the header counts.
func (m *Model) syncItems() {
	items := m.store.Items()
	rows := make([]list.Item, 0, len(items))
	done := 0
	for _, it := range items {
		if it.Completed {
			done++
		}
		rows = append(rows, listItem{ID: it.ID, Text: it.Text, Done: it.Completed})
	}
	idx := m.list.Index()
	m.list.SetItems(rows)
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.list.Select(idx)

	pending := len(items) - done
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), len(items),
	)
}

// selectedID returns the id of the row under the cursor, or false when the
// list is empty.
func (m *Model) selectedID() (int64, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return 0, false
	}
	return it.ID, true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		return m, nil
	}

	// add mode: the input owns the keyboard until enter/esc
	if m.adding {
		var cmd tea.Cmd
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "enter":
				// The store decides whether the text is acceptable; the
				// input clears either way.
				m.store.Add(m.input.Value())
				m.input.SetValue("")
				m.input.Blur()
				m.adding = false
				m.syncItems()
				return m, nil
			case "esc":
				m.adding = false
				m.input.SetValue("")
				m.input.Blur()
				return m, nil
			}
		}
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case " ":
			if id, ok := m.selectedID(); ok {
				m.store.Toggle(id)
				m.syncItems()
			}
			return m, nil
		case "d":
			if id, ok := m.selectedID(); ok {
				m.store.Delete(id)
				m.syncItems()
			}
			return m, nil
		case "a":
			m.adding = true
			m.input.SetValue("")
			m.input.Focus()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	listHeight := m.height - 4
	if m.adding {
		listHeight = m.height - 6
	}
	m.list.SetSize(m.width-2, listHeight)

	content := m.list.View()
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		content = m.list.Title + "\n\n" +
			mutedStyle.Render("Nothing to do yet. Press `a` to add your first item.")
	}
	if m.adding {
		inputLine := "Add new item\n" + m.input.View()
		content = content + "\n" + panelStyle.Render(inputLine)
	}
	return panelStyle.Render(content)
}
