package profile

import (
	"fmt"
	"math"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/spikehound/wizard/internal/metrics"
	"github.com/spikehound/wizard/internal/wizard"
)

// QualityMetric names the metrics column driving the quality ranking.
type QualityMetric string

const (
	// MetricQuality ranks by the stored quality score.
	MetricQuality QualityMetric = "quality"
	// MetricNSpikes ranks by cluster size (spike count).
	MetricNSpikes QualityMetric = "n_spikes"
)

// SimilarityMode controls how stored pairwise scores are combined.
type SimilarityMode string

const (
	// SimilarityRaw uses the stored orientation as-is.
	SimilarityRaw SimilarityMode = "raw"
	// SimilarityMaxSym symmetrizes by taking the larger of the two
	// orientations.
	SimilarityMaxSym SimilarityMode = "max_sym"
)

// Profile is a compiled curation profile.
type Profile struct {
	// Name identifies the profile (required).
	Name string

	// QualityMetric selects the quality column. Default: quality.
	QualityMetric QualityMetric

	// Similarity selects the similarity mode. Default: raw.
	Similarity SimilarityMode

	// ListLimit is the default truncation for ranked lists; 0 means
	// unlimited.
	ListLimit int

	// MinQuality is a quality floor: clusters scoring below it sink to
	// the bottom of quality rankings. Meaningful only when HasMinQuality
	// is true.
	MinQuality    float64
	HasMinQuality bool
}

// Default returns the profile used when no CUE file is given: rank by
// quality, raw similarity, unlimited lists, no floor.
func Default() *Profile {
	return &Profile{
		Name:          "default",
		QualityMetric: MetricQuality,
		Similarity:    SimilarityRaw,
	}
}

// Apply binds the profile to a loaded metrics table, yielding the scoring
// functions the wizard consumes.
//
// The quality floor is applied as a wrapper: below-floor clusters score
// negative infinity, so they sink below every scored cluster while
// remaining navigable (use Ignore to remove them outright).
func (p *Profile) Apply(t *metrics.Table) (wizard.QualityFunc, wizard.SimilarityFunc) {
	var quality wizard.QualityFunc
	switch p.QualityMetric {
	case MetricNSpikes:
		quality = t.NSpikesFunc()
	default:
		quality = t.QualityFunc()
	}

	if p.HasMinQuality {
		floor := p.MinQuality
		base := quality
		quality = func(id wizard.ClusterID) float64 {
			if t.Quality(id) < floor {
				return math.Inf(-1)
			}
			return base(id)
		}
	}

	var similarity wizard.SimilarityFunc
	switch p.Similarity {
	case SimilarityMaxSym:
		similarity = func(pivot, other wizard.ClusterID) float64 {
			return math.Max(t.Similarity(pivot, other), t.Similarity(other, pivot))
		}
	default:
		similarity = t.SimilarityFunc()
	}

	return quality, similarity
}

// CompileProfile parses a CUE value into a Profile.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the profile struct itself:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`name: "default", ...`)
//	p, err := profile.CompileProfile(v)
func CompileProfile(v cue.Value) (*Profile, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	p := Default()

	// Parse name (required)
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	p.Name = name

	// Parse quality_metric (optional enum)
	metricVal := v.LookupPath(cue.ParsePath("quality_metric"))
	if metricVal.Exists() {
		metric, err := metricVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		switch QualityMetric(metric) {
		case MetricQuality, MetricNSpikes:
			p.QualityMetric = QualityMetric(metric)
		default:
			return nil, &CompileError{
				Field:   "quality_metric",
				Message: fmt.Sprintf("invalid quality_metric %q, must be %q or %q", metric, MetricQuality, MetricNSpikes),
				Pos:     metricVal.Pos(),
			}
		}
	}

	// Parse similarity (optional enum)
	simVal := v.LookupPath(cue.ParsePath("similarity"))
	if simVal.Exists() {
		mode, err := simVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		switch SimilarityMode(mode) {
		case SimilarityRaw, SimilarityMaxSym:
			p.Similarity = SimilarityMode(mode)
		default:
			return nil, &CompileError{
				Field:   "similarity",
				Message: fmt.Sprintf("invalid similarity %q, must be %q or %q", mode, SimilarityRaw, SimilarityMaxSym),
				Pos:     simVal.Pos(),
			}
		}
	}

	// Parse list_limit (optional non-negative int)
	limitVal := v.LookupPath(cue.ParsePath("list_limit"))
	if limitVal.Exists() {
		limit, err := limitVal.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if limit < 0 {
			return nil, &CompileError{
				Field:   "list_limit",
				Message: fmt.Sprintf("list_limit must be >= 0, got %d", limit),
				Pos:     limitVal.Pos(),
			}
		}
		p.ListLimit = int(limit)
	}

	// Parse min_quality (optional float)
	floorVal := v.LookupPath(cue.ParsePath("min_quality"))
	if floorVal.Exists() {
		floor, err := floorVal.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		p.MinQuality = floor
		p.HasMinQuality = true
	}

	return p, nil
}

// LoadProfile compiles a profile from a CUE file on disk.
func LoadProfile(path string) (*Profile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(path))
	return CompileProfile(v)
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
