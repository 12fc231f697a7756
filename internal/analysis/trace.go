package analysis

import "sort"

// OutcomeKind is the stable discriminator for per-symbol resolution
// outcomes.
type OutcomeKind string

const (
	OutcomeResolvedLocal     OutcomeKind = "ResolvedLocal"
	OutcomeResolvedModule    OutcomeKind = "ResolvedModule"
	OutcomeResolvedForeign   OutcomeKind = "ResolvedForeign"
	OutcomeEmbeddedPrimitive OutcomeKind = "EmbeddedPrimitive"
	OutcomeSkippedUnknown    OutcomeKind = "SkippedUnknown"
)

// Outcome records what resolution decided for one symbol reference.
type Outcome struct {
	Symbol string
	Kind   OutcomeKind
}

// Trace is the observational record of one resolution pass. Skips are
// first-class outcomes here so callers can assert on exactly what was
// left out, rather than inferring it from absence. The trace never
// affects resolution behavior.
type Trace struct {
	outcomes []Outcome
}

// NewTrace creates an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Record appends one outcome.
func (t *Trace) Record(symbol string, kind OutcomeKind) {
	if t == nil {
		return
	}
	t.outcomes = append(t.outcomes, Outcome{Symbol: symbol, Kind: kind})
}

// Outcomes returns the canonical outcome list: sorted by symbol then
// kind, deduplicated.
func (t *Trace) Outcomes() []Outcome {
	out := append([]Outcome(nil), t.outcomes...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].Kind < out[j].Kind
	})
	dedup := out[:0]
	var prev Outcome
	for i, o := range out {
		if i > 0 && o == prev {
			continue
		}
		dedup = append(dedup, o)
		prev = o
	}
	return dedup
}

// Skipped returns the sorted set of references resolution could not tie
// to a declaration or import.
func (t *Trace) Skipped() []string {
	var skipped []string
	for _, o := range t.Outcomes() {
		if o.Kind == OutcomeSkippedUnknown {
			skipped = append(skipped, o.Symbol)
		}
	}
	return skipped
}
