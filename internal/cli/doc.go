// Package cli implements the spikehound command-line interface.
//
// Commands:
//
//	import   - load cluster and similarity metrics into a SQLite store
//	best     - rank clusters by quality under a profile
//	similar  - rank clusters by similarity to a pivot
//	run      - execute an operation script as a recorded session
//	validate - check a CUE profile without running anything
//	test     - run scenario files against golden traces
//
// All commands share --format (text|json) and --verbose. Errors carry
// exit codes through ExitError: 0 success, 1 test/validation failure,
// 2 command error.
package cli
