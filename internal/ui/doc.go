// Package ui provides the terminal interface for zplpress.
//
// The interface is a single Bubble Tea program with two panes: the printers
// reported by the active printer.Lister on the left, and a file picker limited
// to .zpl and .txt files on the right. Choosing a file starts a print run in
// the background through labels.Service; a spinner runs in the header until
// the run reports back, and the outcome is shown in a dialog:
//
//	First label sent to Zebra_GK420d.
//	All 12 labels sent to Zebra_GK420d.
//
// A run without a selected printer is refused before the file is opened.
//
// The initial printer is the configured printer, then the last printer used,
// then the first one listed. Test mode, the theme, the printer and the last
// directory are saved to prefs after they change.
//
// # Key Bindings
//
//   - tab: Switch between printers and files
//   - enter: Print the highlighted file
//   - t: Toggle test mode (first label only)
//   - r: Reload printers
//   - a: Toggle the activity log
//   - T: Cycle theme
//   - ?: Help
//   - q or ctrl+c: Quit
package ui
