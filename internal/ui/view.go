package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/zplpress/internal/logtail"
)

func (m Model) renderMain() string {
	styles := m.theme.Styles()

	header := m.renderHeader()
	footer := styles.Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))

	left := m.renderPrinters()
	var right string
	if m.showActivity {
		right = m.renderActivity()
	} else {
		right = m.renderFiles()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	logo := styles.Logo.Render("ZPLPRESS")

	badge := styles.AllBadge.Render("ALL LABELS")
	if m.testMode {
		badge = styles.TestBadge.Render("TEST: FIRST LABEL")
	}

	name := m.SelectedPrinter()
	printerText := styles.WarningText.Render("no printer selected")
	if name != "" {
		printerText = styles.Text.Render(truncateMiddle(name, 40))
	}

	parts := []string{logo, badge, styles.MutedText.Render("printer:") + " " + printerText}
	if m.running {
		parts = append(parts, m.spinner.View()+" "+styles.AccentText.Render("printing "+truncateMiddle(m.runningPath, 40)))
	} else if status := m.lastRunSummary(); status != "" {
		parts = append(parts, status)
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

// lastRunSummary describes the most recent run for the header.
func (m Model) lastRunSummary() string {
	styles := m.theme.Styles()
	snap := m.store.Snapshot()
	if snap.Runs == 0 {
		return ""
	}
	ago := humanizeDuration(time.Since(snap.LastUpdated))
	if snap.Failing() {
		text := fmt.Sprintf("last run failed %s ago", ago)
		if snap.ConsecutiveFailures > 1 {
			text = fmt.Sprintf("%d failed runs in a row", snap.ConsecutiveFailures)
		}
		return styles.DangerText.Render(text)
	}
	return styles.SuccessText.Render(fmt.Sprintf("%d sent %s ago", snap.Last.Sent, ago))
}

func (m Model) paneStyle(p Pane) lipgloss.Style {
	styles := m.theme.Styles()
	style := styles.Pane
	if m.focus == p {
		style = styles.PaneFocus
	}
	return style.Width(m.paneWidth()).Height(m.bodyHeight())
}

func (m Model) renderPrinters() string {
	styles := m.theme.Styles()
	var content string
	hasItems := len(m.printers.Items()) > 0
	switch {
	case m.printerErr != nil && hasItems:
		content = styles.DangerText.Render(truncate(m.printerErr.Error(), m.paneWidth())) + "\n" +
			m.printers.View()
	case m.printerErr != nil:
		content = styles.DangerText.Render("Printers") + "\n\n" +
			styles.Text.Render(m.printerErr.Error()) + "\n\n" +
			styles.FaintText.Render("press r to retry")
	case !hasItems:
		content = styles.AccentText.Bold(true).Render("Printers") + "\n\n" +
			styles.MutedText.Render("No printers found.") + "\n\n" +
			styles.FaintText.Render("Set printer in the config file or press r to retry.")
	default:
		content = m.printers.View()
	}
	return m.paneStyle(PanePrinters).Render(content)
}

func (m Model) renderFiles() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Label files")
	dir := styles.FaintText.Render(truncateMiddle(m.picker.CurrentDirectory, m.paneWidth()))
	return m.paneStyle(PaneFiles).Render(title + "\n" + dir + "\n\n" + m.picker.View())
}

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Activity")

	limit := max(m.bodyHeight()-2, 1)
	lines := m.activity
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	if len(lines) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing logged yet."))
	}
	for _, line := range lines {
		b.WriteString(m.formatLogLine(line))
		b.WriteString("\n")
	}
	return m.paneStyle(PaneFiles).Render(b.String())
}

// formatLogLine colours a console log line by level.
func (m Model) formatLogLine(line string) string {
	styles := m.theme.Styles()
	entry := logtail.Parse(line)
	width := m.paneWidth()
	if entry.Level == "" {
		return styles.FaintText.Render(truncate(entry.Raw, width))
	}

	level := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.LevelColor(entry.Level))).
		Width(6).
		Render(strings.ToUpper(entry.Level))
	text := entry.Message
	if entry.Fields != "" {
		text += " " + entry.Fields
	}
	return level + styles.Text.Render(truncate(text, width-6))
}
