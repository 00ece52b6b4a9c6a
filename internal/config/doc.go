// Package config loads the zplpress settings file.
//
// # Overview
//
// zplpress works without any configuration: the operator picks a printer
// and a file and prints. The settings file exists for stations that always
// print to the same thermal printer, often in large batches, and for hosts
// where lp/lpstat live outside PATH.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/zplpress/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	printer = "ZDesigner GC420t"   # fixed printer, skips the selector
//	batch_size = 50                # labels per job when printing everything
//	test_mode = true               # start in test mode (first label only)
//	strict = false                 # require ^XA in every label
//	lp_command = "lp"
//	lpstat_command = "lpstat"
//	log_level = "info"
//	log_file = "~/.local/state/zplpress/zplpress.log"
//
// All fields are optional. A tcp://host:port printer sends straight to a
// network printer's raw port. batch_size of 0 or 1 sends one job per label;
// negative values are rejected.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and invalid values. A missing file is
// not an error.
package config
