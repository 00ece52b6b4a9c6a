// Package labels runs a print: read a label file, split it, send the jobs.
//
// Print checks, in order: a printer is selected (ErrNoPrinter, before any
// file I/O), the file can be read (*ReadError), the file contains ^XA
// (ErrNoStartMarker) and splitting yields at least one label (ErrNoLabels).
// Only then is the Sender called.
//
// ModeTest sends exactly the first label. ModeAll sends every label, one job
// each, or, with BatchSize > 1, one job per batch of labels. Jobs go out
// sequentially and the first failure stops the run with a *JobError; later
// jobs are never attempted and nothing is retried.
//
// Files are decoded as Latin-1 and jobs encoded back to Latin-1, so the
// bytes the printer receives are the bytes in the file.
package labels
