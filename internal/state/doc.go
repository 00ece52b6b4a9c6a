// Package state keeps the print history of a zplpress session.
//
// The TUI runs each print inside a Bubble Tea command, which executes on its
// own goroutine, and renders from the model loop. Store sits between the
// two: the command records the outcome with Record, the view reads a copy
// with Snapshot.
//
// Snapshot carries the last labels.Result, the last error (nil after a
// successful run), the number of runs and labels printed so far, and how
// many runs in a row have failed. Labels that went out before a failure
// still count as printed, since the printer already has them.
//
// Nothing is persisted; the history starts empty with every process.
package state
