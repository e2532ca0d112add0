package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"multi-image-viewer/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	folderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	fileStyle = lipgloss.NewStyle()

	missingStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("241"))

	counterStyle = lipgloss.NewStyle().
			Bold(true)

	staleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const (
	missingMarker = "No file"
	helpLine      = "←/h prev  →/l next  g jump  r rule  a add  x remove  R rebuild  q quit"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.screen.state
	var b strings.Builder

	b.WriteString(titleStyle.Render("Multi Image Viewer"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Folders: "))
	if len(state.Folders) == 0 {
		b.WriteString(missingStyle.Render("none"))
	} else {
		b.WriteString(strings.Join(state.Folders, ", "))
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Rule:    "))
	b.WriteString(state.Rule)
	b.WriteString("\n\n")

	if state.Current != nil {
		b.WriteString(renderSlots(state.Current.Slots, m.width))
		b.WriteString("\n")
		b.WriteString(counterStyle.Render(state.Current.Counter()))
	} else if len(state.Folders) > 0 {
		b.WriteString(missingStyle.Render("No matching images"))
	} else {
		b.WriteString(missingStyle.Render("Press a to add a folder"))
	}
	if state.Stale {
		b.WriteString("  ")
		b.WriteString(staleStyle.Render("(stale, press R to rebuild)"))
	}
	b.WriteString("\n\n")

	if n := m.screen.notice; n != nil {
		b.WriteString(noticeStyle(n.Level).Render(n.Message))
	}
	b.WriteString("\n")

	if m.mode != modeNone {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("enter confirm  esc cancel"))
	} else {
		b.WriteString(footerStyle.Render(helpLine))
	}
	b.WriteString("\n")

	return b.String()
}

// renderSlots lays out one row per folder: the folder base name padded to
// a common width, then the file name or the missing marker.
func renderSlots(slots []session.Slot, width int) string {
	nameWidth := 0
	for _, s := range slots {
		if w := lipgloss.Width(s.FolderName); w > nameWidth {
			nameWidth = w
		}
	}

	var rows []string
	for _, s := range slots {
		name := folderStyle.Width(nameWidth + 2).Render(s.FolderName)
		file := missingStyle.Render(missingMarker)
		if !s.Missing {
			file = fileStyle.Render(truncate(s.Name, width-nameWidth-2))
		}
		rows = append(rows, name+file)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncate(s string, limit int) string {
	if limit <= 1 || lipgloss.Width(s) <= limit {
		return s
	}
	r := []rune(s)
	if len(r) > limit-1 {
		r = r[:limit-1]
	}
	return string(r) + "…"
}

func noticeStyle(level session.Level) lipgloss.Style {
	switch level {
	case session.LevelWarning:
		return warningStyle
	case session.LevelError:
		return errorStyle
	default:
		return infoStyle
	}
}
