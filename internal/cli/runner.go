package cli

import (
	"fmt"
	"strings"

	"todolite/internal/model"
	"todolite/internal/store"
	"todolite/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done
}

// Exit codes follow the usual CLI convention: 0 ok, 2 usage error.
const (
	ExitOK    = 0
	ExitUsage = 2
)

// List renders the whole collection in a framed panel with counts and a
// progress bar.
func List(st *store.Store, opt Options) int {
	items := st.Items()

	d, p := stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Todos"),
		ui.C(ui.Current().Success, ui.Current().SymDone), d,
		ui.C(ui.Current().Pending, ui.Current().SymUnchecked), p,
		ui.C(ui.Current().Accent, "Total"), len(items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(ui.Current().Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `todolite add \"Buy milk\"`"))
	ui.Panel(lines)
	return ExitOK
}

// Add creates a todo from the given title. The store swallows empty input;
// the CLI surface is louder about it so the user gets feedback.
func Add(st *store.Store, title string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		ui.Fail("add: empty title")
		return ExitUsage
	}
	st.Add(title)
	ui.OK("added")
	return ExitOK
}

// Toggle flips completion for the item at the 1-based list index. Indexes
// are what `ls` shows; ids stay an internal detail.
func Toggle(st *store.Store, userIndex int) int {
	id, code := resolveIndex(st, userIndex)
	if code != ExitOK {
		return code
	}
	st.Toggle(id)
	ui.OK("toggled")
	return ExitOK
}

// Remove deletes the item at the 1-based list index.
func Remove(st *store.Store, userIndex int) int {
	id, code := resolveIndex(st, userIndex)
	if code != ExitOK {
		return code
	}
	st.Delete(id)
	ui.OK("removed")
	return ExitOK
}

// resolveIndex maps a human 1-based index to the todo id at that position.
func resolveIndex(st *store.Store, userIndex int) (int64, int) {
	items := st.Items()
	if userIndex < 1 || userIndex > len(items) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(items), userIndex))
		ui.Hint("Hint: run `todolite ls` to see valid indexes")
		return 0, ExitUsage
	}
	return items[userIndex-1].ID, ExitOK
}

// -------------- rendering helpers --------------

func stats(items []model.Todo) (done, pending int) {
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(items []model.Todo) []string {
	if len(items) == 0 {
		return []string{ui.C(ui.Current().Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", i+1)
		box := ui.Current().BoxUnchecked
		color := ui.Current().Muted
		if it.Completed {
			box, color = ui.Current().BoxChecked, ui.Current().Success
		}
		text := it.Text
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s", ui.Dim(idx), ui.C(color, box), text))
	}
	return out
}

func groupLines(items []model.Todo) []string {
	var pend, done []model.Todo
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
