package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one wizard test scenario.
// Scenarios exercise the navigation state machine by scripting operations
// over a fixed score table and asserting on the resulting state and trace.
type Scenario struct {
	// Name uniquely identifies this scenario. Also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Clusters is the working cluster set, in any order.
	Clusters []int64 `yaml:"clusters"`

	// Quality maps cluster IDs to quality scores. Unlisted clusters
	// score 0.
	Quality map[int64]float64 `yaml:"quality,omitempty"`

	// Similarity lists oriented pairwise scores. Unlisted orientations
	// score 0.
	Similarity []SimilarityEntry `yaml:"similarity,omitempty"`

	// Ops is the operation script, one op per entry in the session
	// script syntax ("start", "next", "ignore 2 1", ...).
	Ops []string `yaml:"ops"`

	// Assertions validate the final state and trace.
	// Supported types: selection_is, list_is, count_is, index_is,
	// running_is, pinned_is.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// Token is an optional fixed session token.
	// Defaults to "test-session-default" for deterministic golden files.
	Token string `yaml:"token,omitempty"`
}

// SimilarityEntry is one oriented pairwise score.
type SimilarityEntry struct {
	A     int64   `yaml:"a"`
	B     int64   `yaml:"b"`
	Score float64 `yaml:"score"`
}

// Assertion validates the final navigation state or a trace event.
type Assertion struct {
	// Type selects the assertion:
	//   - "selection_is": final selection renders as Selection
	//   - "list_is":      final materialized list equals List
	//   - "count_is":     final list length equals Count
	//   - "index_is":     final cursor position equals Index
	//   - "running_is":   final running flag equals Running
	//   - "pinned_is":    final pinned cluster renders as Pinned
	Type string `yaml:"type"`

	// Seq restricts selection_is to the trace event with that seq
	// instead of the final state. 0 means final state.
	Seq int64 `yaml:"seq,omitempty"`

	Selection string  `yaml:"selection,omitempty"`
	List      []int64 `yaml:"list,omitempty"`
	Count     *int    `yaml:"count,omitempty"`
	Index     *int    `yaml:"index,omitempty"`
	Running   *bool   `yaml:"running,omitempty"`
	Pinned    string  `yaml:"pinned,omitempty"`
}

// LoadScenario parses a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadScenarios loads every *.yaml scenario in a directory, sorted by
// file name for deterministic test order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Ops) == 0 {
		return fmt.Errorf("ops must not be empty")
	}
	for i, a := range s.Assertions {
		switch a.Type {
		case "selection_is", "list_is", "count_is", "index_is", "running_is", "pinned_is":
		default:
			return fmt.Errorf("assertion %d: unknown type %q", i, a.Type)
		}
	}
	return nil
}

// token returns the scenario's session token, defaulted for golden
// determinism.
func (s *Scenario) token() string {
	if s.Token != "" {
		return s.Token
	}
	return "test-session-default"
}
