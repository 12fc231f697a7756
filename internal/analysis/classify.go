package analysis

import (
	"go/ast"
	"go/token"
)

// Class is the classification of one referenced symbol.
type Class int

const (
	// ClassUnknown marks references with no discoverable declaration or
	// import; they are skipped, never surfaced as errors.
	ClassUnknown Class = iota

	// ClassPrimitive marks local constants and variables bound to basic
	// literals; they are embedded as literal declarations.
	ClassPrimitive

	// ClassModule marks references to an imported package; they emit an
	// import line, aliased when the local name differs from the
	// package's own name.
	ClassModule

	// ClassLocal marks symbols declared in the reference unit; they are
	// inlined, never imported.
	ClassLocal

	// ClassForeign marks symbols whose home is another unit; they emit
	// an import of that home and are not descended into.
	ClassForeign
)

func (c Class) String() string {
	switch c {
	case ClassPrimitive:
		return "primitive"
	case ClassModule:
		return "module"
	case ClassLocal:
		return "local"
	case ClassForeign:
		return "foreign"
	}
	return "unknown"
}

// Classification pairs the class with whichever of symbol or import the
// class implies.
type Classification struct {
	Class  Class
	Symbol *Symbol
	Import ImportRef
}

// Classifier decides the class of a reference within a unit. The set of
// literal kinds treated as primitive is fixed at construction.
type Classifier struct {
	primitiveLits   map[token.Token]bool
	primitiveIdents map[string]bool
}

// NewClassifier creates a classifier with the standard primitive set:
// string, numeric, and rune literals, plus true, false, and nil.
func NewClassifier() *Classifier {
	return &Classifier{
		primitiveLits: map[token.Token]bool{
			token.STRING: true,
			token.INT:    true,
			token.FLOAT:  true,
			token.CHAR:   true,
		},
		primitiveIdents: map[string]bool{
			"true":  true,
			"false": true,
			"nil":   true,
		},
	}
}

// Classify resolves one reference against the unit it was seen in.
func (c *Classifier) Classify(ref Ref, unit *Unit) Classification {
	if ref.Pkg != "" {
		// Package-qualified use: the base name must be an import of
		// the referencing file.
		if imp, ok := unit.ImportsOf(ref.File)[ref.Pkg]; ok {
			return Classification{Class: ClassModule, Import: imp}
		}
		return Classification{}
	}

	if sym, ok := unit.Lookup(ref.Name); ok {
		if c.IsPrimitive(sym) {
			return Classification{Class: ClassPrimitive, Symbol: sym}
		}
		return Classification{Class: ClassLocal, Symbol: sym}
	}

	// A bare exported name can reach this unit through a single
	// dot-import; that is the one case a foreign symbol is referenced
	// without qualification.
	if ast.IsExported(ref.Name) {
		if dots := unit.DotImportsOf(ref.File); len(dots) == 1 {
			return Classification{Class: ClassForeign, Import: dots[0]}
		}
	}

	return Classification{}
}

// IsPrimitive reports whether the symbol is a const or var bound to a
// single basic literal (possibly negated) or to true, false, or nil.
func (c *Classifier) IsPrimitive(sym *Symbol) bool {
	if sym.Kind != SymbolConst && sym.Kind != SymbolVar {
		return false
	}
	spec, ok := sym.Spec.(*ast.ValueSpec)
	if !ok || len(spec.Names) != 1 || len(spec.Values) != 1 {
		return false
	}
	return c.isPrimitiveExpr(spec.Values[0])
}

func (c *Classifier) isPrimitiveExpr(expr ast.Expr) bool {
	switch v := expr.(type) {
	case *ast.BasicLit:
		return c.primitiveLits[v.Kind]
	case *ast.Ident:
		return c.primitiveIdents[v.Name]
	case *ast.UnaryExpr:
		if v.Op == token.SUB || v.Op == token.ADD {
			return c.isPrimitiveExpr(v.X)
		}
	}
	return false
}
