// Package source renders the literal source fragments embedded in a
// reproduction script: a target function's own declaration text, preceded
// by fragments for every locally-declared symbol it depends on.
package source

import (
	"fmt"
	"strings"

	"reprofig/internal/analysis"
)

// Builder renders source fragments. It keeps a rendered-set across calls,
// distinct from the resolver's visited-set, so a symbol's fragment appears
// at most once per assembled script no matter how many targets share it.
// Use one Builder per script.
type Builder struct {
	classifier *analysis.Classifier

	// renderAllTypeDeps switches off the historical early-return on the
	// first local type dependency and renders every type a pass
	// discovers. Off by default for output compatibility.
	renderAllTypeDeps bool

	rendered map[string]bool
}

// NewBuilder creates a builder with the historical type-dependency
// behavior.
func NewBuilder(c *analysis.Classifier) *Builder {
	return &Builder{
		classifier: c,
		rendered:   make(map[string]bool),
	}
}

// RenderAllTypeDeps enables the corrected mode: every local type
// dependency of a pass is rendered, not just the first.
func (b *Builder) RenderAllTypeDeps(on bool) {
	b.renderAllTypeDeps = on
}

// Render produces the fragment for a function or method symbol: fragments
// for its locally-declared dependencies, a blank line, then the symbol's
// own source text.
func (b *Builder) Render(sym *analysis.Symbol) (string, error) {
	if sym.Kind == analysis.SymbolType {
		return b.RenderType(sym)
	}
	if sym.Fn == nil {
		return "", fmt.Errorf("render %q: not a function", sym.Name)
	}

	b.rendered[sym.Key()] = true

	src, err := b.renderGlobals(sym)
	if err != nil {
		return "", err
	}
	if src != "" {
		src += "\n"
	}

	own, err := sym.Unit.SourceOf(sym)
	if err != nil {
		return "", err
	}
	return src + own, nil
}

// renderGlobals renders fragments for the free bindings of one function:
// primitives as literal declarations, local functions recursively, local
// types via RenderType.
//
// Historical behavior, preserved: the first local type dependency renders
// the type and returns immediately, dropping any remaining bindings of
// this pass. RenderAllTypeDeps(true) renders them all instead.
func (b *Builder) renderGlobals(sym *analysis.Symbol) (string, error) {
	var buf strings.Builder

	for _, ref := range analysis.FreeRefs(sym) {
		cls := b.classifier.Classify(ref, sym.Unit)
		if cls.Symbol == nil || b.rendered[cls.Symbol.Key()] {
			continue
		}

		switch cls.Class {
		case analysis.ClassPrimitive:
			b.rendered[cls.Symbol.Key()] = true
			text, err := sym.Unit.SourceOf(cls.Symbol)
			if err != nil {
				return "", err
			}
			buf.WriteString(text)
			buf.WriteString("\n\n")

		case analysis.ClassLocal:
			dep := cls.Symbol
			switch dep.Kind {
			case analysis.SymbolFunc:
				if dep.Key() == sym.Key() {
					continue
				}
				frag, err := b.Render(dep)
				if err != nil {
					return "", err
				}
				buf.WriteString(frag)
				buf.WriteString("\n\n")

			case analysis.SymbolType:
				frag, err := b.RenderType(dep)
				if err != nil {
					return "", err
				}
				buf.WriteString(frag)
				buf.WriteString("\n\n")
				if !b.renderAllTypeDeps {
					return buf.String(), nil
				}

			default:
				// Non-primitive consts and vars (composite
				// values) are left out, like any other
				// reference that cannot be embedded safely.
			}
		}
	}

	return buf.String(), nil
}

// RenderType produces the fragment for a named type: the external
// dependencies of its methods hoisted first, then the type declaration
// and all its methods. Method bodies travel with the type, so methods are
// never re-rendered individually.
func (b *Builder) RenderType(sym *analysis.Symbol) (string, error) {
	b.rendered[sym.Key()] = true

	var buf strings.Builder
	methods := sym.Unit.MethodsOf(sym.Name)

	for _, m := range methods {
		b.rendered[m.Key()] = true
	}
	for _, m := range methods {
		hoisted, err := b.renderGlobals(m)
		if err != nil {
			return "", err
		}
		if hoisted != "" {
			buf.WriteString(hoisted)
			buf.WriteString("\n")
		}
	}

	decl, err := sym.Unit.SourceOf(sym)
	if err != nil {
		return "", err
	}
	buf.WriteString(decl)
	for _, m := range methods {
		text, err := sym.Unit.SourceOf(m)
		if err != nil {
			return "", err
		}
		buf.WriteString("\n\n")
		buf.WriteString(text)
	}

	return buf.String(), nil
}
