package analysis

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"path"
)

// SymbolKind discriminates the top-level declaration forms a symbol table
// entry can have.
type SymbolKind int

const (
	SymbolFunc SymbolKind = iota
	SymbolMethod
	SymbolType
	SymbolConst
	SymbolVar
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunc:
		return "func"
	case SymbolMethod:
		return "method"
	case SymbolType:
		return "type"
	case SymbolConst:
		return "const"
	case SymbolVar:
		return "var"
	}
	return "unknown"
}

// Symbol is one top-level declaration of a unit: a function, method, named
// type, constant, or variable.
type Symbol struct {
	// Name is the declared identifier. For methods it is the bare method
	// name; Recv carries the receiver's base type name.
	Name string

	Kind SymbolKind

	// Recv is the receiver base type name for methods, empty otherwise.
	Recv string

	// Unit is the home scope the symbol is declared in.
	Unit *Unit

	// File is the file the declaration appears in; references inside the
	// symbol resolve against this file's imports.
	File *ast.File

	// Fn is set for functions and methods.
	Fn *ast.FuncDecl

	// Gen and Spec are set for consts, vars, and types. Spec is the
	// specific entry within the (possibly grouped) declaration.
	Gen  *ast.GenDecl
	Spec ast.Spec
}

// Key is the symbol's identity for visited-set membership: home import
// path plus qualified name.
func (s *Symbol) Key() string {
	if s.Recv != "" {
		return s.Unit.ImportPath + "." + s.Recv + "." + s.Name
	}
	return s.Unit.ImportPath + "." + s.Name
}

// ImportRef is one import of a file: the local name a package is known
// under, and its path.
type ImportRef struct {
	// Name is the identifier the importing file uses. For unaliased
	// imports this is a best-effort guess (the last path element), which
	// is the same information a reader of the file has.
	Name string

	Path string

	// Aliased is true when the file gave the package an explicit name
	// different from the path's base.
	Aliased bool

	// Dot is true for dot-imports, whose exported names enter the file
	// scope directly.
	Dot bool
}

// Line renders the reference as an import-block line. Uniqueness of import
// statements is by exact string match on this form.
func (r ImportRef) Line() string {
	switch {
	case r.Dot:
		return `. "` + r.Path + `"`
	case r.Aliased:
		return r.Name + ` "` + r.Path + `"`
	default:
		return `"` + r.Path + `"`
	}
}

// Unit is a parsed source unit: every top-level symbol of one package
// directory, with per-file import tables.
type Unit struct {
	// Dir is the absolute directory the unit was parsed from.
	Dir string

	// ImportPath is the unit's import path, derived from the enclosing
	// module. Falls back to the package name when no module is found.
	ImportPath string

	// PackageName is the declared package name of the unit's files.
	PackageName string

	Fset *token.FileSet

	files       []*ast.File
	symbols     map[string]*Symbol
	methods     map[string][]*Symbol
	fileImports map[*ast.File]map[string]ImportRef
	dotImports  map[*ast.File][]ImportRef
}

// Lookup returns the top-level symbol declared under name.
func (u *Unit) Lookup(name string) (*Symbol, bool) {
	s, ok := u.symbols[name]
	return s, ok
}

// MethodsOf returns the methods declared on the named type, in source
// order.
func (u *Unit) MethodsOf(typeName string) []*Symbol {
	return u.methods[typeName]
}

// ImportsOf returns the import table of the given file.
func (u *Unit) ImportsOf(f *ast.File) map[string]ImportRef {
	return u.fileImports[f]
}

// DotImportsOf returns the dot-imports of the given file, in source order.
func (u *Unit) DotImportsOf(f *ast.File) []ImportRef {
	return u.dotImports[f]
}

// SourceOf renders the literal source text of a symbol's declaration,
// including its doc comment. Grouped const/var/type declarations are
// narrowed to the symbol's own spec.
func (u *Unit) SourceOf(sym *Symbol) (string, error) {
	var node ast.Node
	switch {
	case sym.Fn != nil:
		node = sym.Fn
	case sym.Gen != nil && sym.Spec != nil:
		node = &ast.GenDecl{
			Doc:   sym.Gen.Doc,
			Tok:   sym.Gen.Tok,
			Specs: []ast.Spec{sym.Spec},
		}
	default:
		return "", fmt.Errorf("symbol %q has no declaration node", sym.Name)
	}

	var buf bytes.Buffer
	if err := printer.Fprint(&buf, u.Fset, node); err != nil {
		return "", fmt.Errorf("print %q: %w", sym.Name, err)
	}
	return buf.String(), nil
}

// selfRef is the import reference a foreign unit is brought in under.
func (u *Unit) selfRef() ImportRef {
	return ImportRef{Name: path.Base(u.ImportPath), Path: u.ImportPath}
}
