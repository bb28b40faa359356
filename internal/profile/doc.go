// Package profile compiles CUE curation profiles.
//
// A profile decides how stored metrics feed the wizard: which metric
// column drives the quality ranking, whether similarity is symmetrized,
// the default list limit, and an optional quality floor. Profiles are
// deploy-time configuration - a `.cue` file per recording rig or per
// curation workflow - so ranking behavior can be tuned without code
// changes.
//
// Example profile:
//
//	name:           "dense-probe"
//	quality_metric: "quality"
//	similarity:     "max_sym"
//	list_limit:     20
//	min_quality:    0.05
//
// Compilation uses the CUE Go API directly (not a CLI subprocess) and
// reports errors with source positions via CompileError.
package profile
