// Package printer delivers raw ZPL bytes to printers.
//
// A Sender transmits bytes verbatim so that control sequences reach the
// printer firmware without driver reinterpretation. Detect picks the
// implementation once per process:
//
//   - SpoolerSender (Windows): OpenPrinter, a "RAW" StartDocPrinter job,
//     WritePrinter, then EndPage/EndDoc/ClosePrinter.
//   - LPSender (macOS, Linux): the bytes go to a temporary file which is
//     passed to `lp -d <printer> -o raw`. The file is removed on every path.
//   - NetSender: identifiers of the form tcp://host[:port] are written
//     straight to the printer's raw port (9100 by default).
//
// Router combines the local sender with NetSender. Nothing is retried.
// Failures are returned as *DispatchError, which keeps the printer name and,
// for lp, the utility's stderr.
//
// Listers enumerate printers: EnumPrintersW on Windows, `lpstat -p`
// elsewhere. An empty result is valid.
package printer
