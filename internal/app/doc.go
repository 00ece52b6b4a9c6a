// Package app is the composition root for zplpress.
//
// Every entry point loads the config, builds the zap logger, and asks
// printer.Detect for the sender and lister that fit this host. Detection
// happens once per process; nothing downstream checks the operating system
// again.
//
//   - Run starts the terminal UI and logs to the configured log file.
//   - PrintFile prints one file without the UI and logs warnings to stderr.
//   - ListPrinters writes the printers the lister reports, one per line.
//
// PrintFile resolves the printer (flag, then config) before the label file is
// opened, so a missing printer is reported without touching the file.
package app
