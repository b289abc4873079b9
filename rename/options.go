package rename

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mna/jsrename/dossier"
	"github.com/mna/jsrename/planner"
)

// Options configures one call to Rename (§6's configuration record).
type Options struct {
	// ContextWindowSize is the byte budget for each dossier's declaration
	// snippet (§6); chunk summaries are not bounded by it. 0 means
	// dossier.DefaultContextWindowSize.
	ContextWindowSize int `yaml:"context_window_size"`

	// MaxSymbolsPerJob bounds how many bindings may share one oracle
	// request (§6). 0 means 1.
	MaxSymbolsPerJob int `yaml:"max_symbols_per_job"`

	// MaxInputTokens bounds the measured size of one oracle request (§6).
	// 0 means only requests measured as 0 fit; with a nil MeasureTokens
	// every request measures 0, so every request fits.
	MaxInputTokens int `yaml:"max_input_tokens"`

	// OracleConcurrency is the max number of in-flight oracle jobs (§6,
	// §5's "bounded fan-out parameter"). 0 means DefaultOracleConcurrency.
	OracleConcurrency int `yaml:"oracle_concurrency"`

	// MaxCandidates is the max candidate list length requested per symbol.
	// 0 means DefaultMaxCandidates.
	MaxCandidates int `yaml:"max_candidates"`

	// MeasureTokens is the pure callback planner.Plan uses to measure a
	// prospective request (§6's measure_tokens). It has no YAML
	// representation; callers set it directly after loading the rest of
	// Options from config.
	MeasureTokens planner.TokenMeasurer `yaml:"-"`
}

// DefaultOracleConcurrency is the bounded fan-out parameter's default
// (§5: "default small integer, e.g. 4-8").
const DefaultOracleConcurrency = 4

// DefaultMaxCandidates is the default candidate-list length requested per
// symbol when Options.MaxCandidates is unset.
const DefaultMaxCandidates = 3

// OptionsFromYAML decodes Options from YAML config (§6's configuration
// record). MeasureTokens is never set by this function since it has no
// textual representation; the caller must assign it afterward.
func OptionsFromYAML(r io.Reader) (Options, error) {
	var opts Options
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return Options{}, fmt.Errorf("rename: decoding options: %w", err)
	}
	return opts, nil
}

func (o Options) dossierOptions() dossier.Options {
	return dossier.Options{ContextWindowSize: o.ContextWindowSize}
}

func (o Options) plannerOptions() planner.Options {
	measure := o.MeasureTokens
	if measure == nil {
		measure = func(planner.Request) int { return 0 }
	}
	return planner.Options{
		MaxSymbolsPerJob: o.MaxSymbolsPerJob,
		MaxInputTokens:   o.MaxInputTokens,
		MeasureTokens:    measure,
	}
}

func (o Options) oracleConcurrency() int {
	if o.OracleConcurrency <= 0 {
		return DefaultOracleConcurrency
	}
	return o.OracleConcurrency
}

func (o Options) maxCandidates() int {
	if o.MaxCandidates <= 0 {
		return DefaultMaxCandidates
	}
	return o.MaxCandidates
}

// symbolID renders an opaque, stable wire identifier for a binding (§6's
// symbol_id), so the oracle package never needs to know about scope.BindingID.
func symbolID(id int) string {
	return fmt.Sprintf("b%d", id)
}
