package tui

import (
	"fmt"
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"strings"
)

func (m *Model[T]) updateColumns(msg tea.KeyMsg) tea.Cmd {
	infos := column.Infos(m.grid.Columns())
	if m.moveCursor(msg, len(infos)) {
		return nil
	}

	switch {
	case key.Matches(msg, m.popKeys.Cancel), key.Matches(msg, m.popKeys.Apply):
		m.mode, m.cursor = modeGrid, 0
	case key.Matches(msg, m.popKeys.Toggle):
		if m.cursor >= len(infos) {
			return nil
		}
		info := infos[m.cursor]
		if info.Required {
			m.status = info.Name + " is required"
			return nil
		}
		m.grid.ToggleColumnVisibility(info.ID)
	case key.Matches(msg, m.popKeys.SelectAll):
		m.grid.SelectAllColumns()
	case key.Matches(msg, m.popKeys.ClearAll):
		m.grid.ClearAllColumns()
	}
	return nil
}

func (m Model[T]) chooserView() string {
	infos := column.Infos(m.grid.Columns())
	visible := m.grid.VisibleColumns()

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Columns (%d of %d)", len(visible), len(infos))))
	b.WriteString("\n")
	for i, info := range infos {
		box := "[ ]"
		if m.grid.IsColumnVisible(info.ID) {
			box = "[x]"
		}
		text := box + " " + info.Name
		if info.Required {
			text += " (required)"
		}
		b.WriteString(m.line(i, text))
	}
	return strings.TrimRight(b.String(), "\n")
}
