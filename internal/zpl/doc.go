// Package zpl splits ZPL label files into printable blocks.
//
// # Blocks
//
// A ZPL label opens with ^XA and closes with ^XZ. Split cuts the text at
// every ^XZ and re-appends "^XZ\n" to each non-blank segment, so
//
//	"^XA foo ^XZ ^XA bar ^XZbaz"
//
// becomes
//
//	"^XA foo ^XZ\n"
//	" ^XA bar ^XZ\n"
//	"baz^XZ\n"
//
// Text after the final ^XZ is a segment like any other: it is kept when it
// has a non-whitespace character. Split never checks for ^XA. Callers check
// the whole file with HasStartMarker, and may opt into ValidateBlocks for a
// per-block check.
//
// # Batches
//
// Batch groups blocks for printers that take one job per N labels. For M
// blocks and size N it returns ceil(M/N) groups in order; only the last may
// be short.
//
// # Encoding
//
// Label files are read and written as Latin-1 (ISO 8859-1). Every byte maps
// to exactly one rune and back, so Decode followed by Encode reproduces the
// input byte for byte and control sequences reach the printer firmware
// unchanged.
package zpl
