// Package analysis resolves the dependency closure of a figure-creation
// function by static inspection of its source unit.
//
// A unit is a parsed package directory: a symbol table mapping each
// top-level name to its declaration, plus per-file import tables. The
// classifier decides, per reference, whether a symbol is a primitive
// constant (embedded as a literal), an imported package (emits an import
// line), local to the unit (inlined by the source builder), or foreign
// (imported from its home package). The resolver walks references
// recursively under a visited-set, so resolution terminates even for
// self-referential or mutually-recursive functions, and every symbol is
// processed at most once.
//
// Resolution is deliberately best-effort: references that cannot be tied
// to a declaration or import are skipped, not failed, and each skip is
// recorded in a Trace so callers and tests can observe exactly what was
// left out.
package analysis
