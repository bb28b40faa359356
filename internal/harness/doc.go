// Package harness provides a scenario testing framework for the curation
// wizard.
//
// Scenarios are YAML files bundling a cluster set, score tables, an
// operation script, and assertions on the resulting navigation state.
// Each scenario runs against a fresh wizard with a fixed session token
// and a deterministic logical clock, so the recorded trace is identical
// on every run and can be compared against a golden file.
//
// Execution flow:
//  1. Build a wizard from the scenario's clusters and score tables
//  2. Open a session with the scenario's fixed token
//  3. Apply the operation script in order
//  4. Evaluate assertions against the final state and trace
//  5. Optionally compare the canonical-JSON trace against a golden file
//
// Golden files live in testdata/golden/{scenario}.golden and are
// regenerated with:
//
//	go test ./internal/harness -update
package harness
