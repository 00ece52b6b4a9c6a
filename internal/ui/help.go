package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	h := m.help
	h.ShowAll = true
	b.WriteString(h.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Test mode prints only the first label of a file."))

	modal := styles.Modal.Width(min(72, max(m.width-4, 20)))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// renderNotice renders the result or error dialog. Any key dismisses it.
func (m Model) renderNotice() string {
	styles := m.theme.Styles()

	title := styles.SuccessText.Render(m.notice.title)
	border := m.theme.Success
	if m.notice.err {
		title = styles.DangerText.Render(m.notice.title)
		border = m.theme.Danger
	}

	width := min(60, max(m.width-4, 20))
	body := lipgloss.NewStyle().Width(width - 6).Render(styles.Text.Render(m.notice.body))

	content := title + "\n\n" + body + "\n\n" + styles.FaintText.Render("press any key")
	modal := styles.Modal.
		BorderForeground(lipgloss.Color(border)).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
