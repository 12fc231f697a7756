package analysis

import "sort"

// Resolver computes the import closure of a symbol: the deduplicated,
// lexicographically sorted set of import lines its dependency walk
// discovers. A Resolver carries the trace and dependency graph of one
// resolution pass; do not reuse one across unrelated saves.
type Resolver struct {
	Classifier *Classifier
	Trace      *Trace
	Graph      *Graph
}

// NewResolver creates a resolver with a fresh trace and graph.
func NewResolver(c *Classifier) *Resolver {
	return &Resolver{
		Classifier: c,
		Trace:      NewTrace(),
		Graph:      NewGraph(),
	}
}

// Resolve walks target's dependencies with refUnit as the reference scope
// and returns the sorted import lines. Each call starts from a cold
// visited-set, so resolving the same symbol twice yields identical
// results.
func (r *Resolver) Resolve(target *Symbol, refUnit *Unit) []string {
	visited := make(map[string]bool)
	return r.resolve(target, refUnit, visited)
}

func (r *Resolver) resolve(sym *Symbol, refUnit *Unit, visited map[string]bool) []string {
	// Marked before any recursion: the visited-set only grows, which is
	// what guarantees termination under self- and mutual recursion.
	visited[sym.Key()] = true
	r.Graph.AddNode(sym.Key())

	var lines []string

	// A type's reachable members are its methods; each contributes its
	// own dependencies.
	if sym.Kind == SymbolType {
		for _, m := range sym.Unit.MethodsOf(sym.Name) {
			if visited[m.Key()] {
				continue
			}
			r.Graph.AddEdge(sym.Key(), m.Key())
			lines = append(lines, r.resolve(m, refUnit, visited)...)
		}
	}

	// Foreign to the reference scope: it will be imported, not inlined,
	// so its internals are irrelevant to the output.
	if sym.Unit != refUnit {
		imp := sym.Unit.selfRef()
		lines = append(lines, imp.Line())
		r.Trace.Record(sym.Key(), OutcomeResolvedForeign)
		return dedupeSorted(lines)
	}

	for _, ref := range FreeRefs(sym) {
		cls := r.Classifier.Classify(ref, sym.Unit)
		switch cls.Class {
		case ClassModule:
			lines = append(lines, cls.Import.Line())
			r.Trace.Record(cls.Import.Path, OutcomeResolvedModule)
		case ClassPrimitive:
			// Embedded as a literal by the source builder; nothing
			// to import.
			r.Graph.AddEdge(sym.Key(), cls.Symbol.Key())
			r.Trace.Record(cls.Symbol.Key(), OutcomeEmbeddedPrimitive)
		case ClassLocal:
			r.Graph.AddEdge(sym.Key(), cls.Symbol.Key())
			r.Trace.Record(cls.Symbol.Key(), OutcomeResolvedLocal)
			if !visited[cls.Symbol.Key()] {
				lines = append(lines, r.resolve(cls.Symbol, refUnit, visited)...)
			}
		case ClassForeign:
			lines = append(lines, cls.Import.Line())
			r.Trace.Record(ref.String(), OutcomeResolvedForeign)
		default:
			r.Trace.Record(ref.String(), OutcomeSkippedUnknown)
		}
	}

	return dedupeSorted(lines)
}

// dedupeSorted returns the unique lines in lexicographic order.
// Uniqueness is by exact string match.
func dedupeSorted(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// MergeImports unions several already-resolved import line sets (plus any
// caller-supplied literal lines) into one deduplicated sorted set.
func MergeImports(sets ...[]string) []string {
	var all []string
	for _, s := range sets {
		all = append(all, s...)
	}
	return dedupeSorted(all)
}
