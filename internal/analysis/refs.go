package analysis

import (
	"go/ast"
	"go/token"
)

// Ref is one free reference seen inside a function: either a bare
// identifier (Pkg empty) or a package-qualified selection Pkg.Name.
type Ref struct {
	Pkg  string
	Name string
	File *ast.File
}

func (r Ref) String() string {
	if r.Pkg != "" {
		return r.Pkg + "." + r.Name
	}
	return r.Name
}

// FreeRefs collects the free references of a function or method symbol:
// identifiers used in its declaration (signature included) that are not
// bound within it and are not universe names. Order is first appearance,
// deduplicated.
//
// Binding is approximate on purpose: a name counts as bound if it is
// declared anywhere inside the function, without modeling block-precise
// shadowing. References reached only through dynamic means are invisible
// here, matching the declared best-effort contract.
func FreeRefs(sym *Symbol) []Ref {
	if sym.Fn == nil {
		return nil
	}

	bound := boundNames(sym.Fn)
	seen := make(map[Ref]bool)
	var refs []Ref

	add := func(pkg, name string) {
		r := Ref{Pkg: pkg, Name: name, File: sym.File}
		if seen[r] {
			return
		}
		seen[r] = true
		refs = append(refs, r)
	}

	var visit func(n ast.Node) bool
	visit = func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.SelectorExpr:
			if x, ok := v.X.(*ast.Ident); ok {
				if bound[x.Name] || x.Name == "_" {
					return false
				}
				if _, isImport := sym.Unit.ImportsOf(sym.File)[x.Name]; isImport {
					add(x.Name, v.Sel.Name)
				} else {
					// Selection off a non-package name: the base
					// itself may be a top-level symbol.
					add("", x.Name)
				}
				return false
			}
			// Complex base: descend into it, never into the
			// selected field name.
			ast.Inspect(v.X, visit)
			return false
		case *ast.KeyValueExpr:
			// Keys in composite literals are usually field names;
			// skipping them loses the rare map-literal key that
			// names a global, a tolerated blind spot.
			ast.Inspect(v.Value, visit)
			return false
		case *ast.LabeledStmt:
			ast.Inspect(v.Stmt, visit)
			return false
		case *ast.BranchStmt:
			return false
		case *ast.StructType:
			for _, field := range v.Fields.List {
				ast.Inspect(field.Type, visit)
			}
			return false
		case *ast.InterfaceType:
			for _, method := range v.Methods.List {
				ast.Inspect(method.Type, visit)
			}
			return false
		case *ast.Ident:
			name := v.Name
			if name == "_" || bound[name] || universeNames[name] {
				return true
			}
			add("", name)
		}
		return true
	}

	ast.Inspect(sym.Fn, visit)
	return refs
}

// boundNames gathers every name bound anywhere inside the function:
// receiver, parameters, results, type parameters, and all local
// declarations including those of nested function literals.
func boundNames(fn *ast.FuncDecl) map[string]bool {
	bound := make(map[string]bool)

	addIdent := func(id *ast.Ident) {
		if id != nil && id.Name != "_" {
			bound[id.Name] = true
		}
	}
	addFieldList := func(fl *ast.FieldList) {
		if fl == nil {
			return
		}
		for _, f := range fl.List {
			for _, name := range f.Names {
				addIdent(name)
			}
		}
	}

	addFieldList(fn.Recv)
	addFieldList(fn.Type.TypeParams)
	addFieldList(fn.Type.Params)
	addFieldList(fn.Type.Results)

	ast.Inspect(fn, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.AssignStmt:
			if v.Tok == token.DEFINE {
				for _, lhs := range v.Lhs {
					if id, ok := lhs.(*ast.Ident); ok {
						addIdent(id)
					}
				}
			}
		case *ast.RangeStmt:
			if v.Tok == token.DEFINE {
				if id, ok := v.Key.(*ast.Ident); ok {
					addIdent(id)
				}
				if id, ok := v.Value.(*ast.Ident); ok {
					addIdent(id)
				}
			}
		case *ast.GenDecl:
			for _, spec := range v.Specs {
				switch s := spec.(type) {
				case *ast.ValueSpec:
					for _, name := range s.Names {
						addIdent(name)
					}
				case *ast.TypeSpec:
					addIdent(s.Name)
				}
			}
		case *ast.FuncLit:
			addFieldList(v.Type.Params)
			addFieldList(v.Type.Results)
		}
		return true
	})

	return bound
}

// universeNames are predeclared identifiers that are never dependencies.
var universeNames = map[string]bool{
	"bool": true, "byte": true, "complex64": true, "complex128": true,
	"error": true, "float32": true, "float64": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"rune": true, "string": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true,
	"uint64": true, "uintptr": true,
	"any": true, "comparable": true,
	"true": true, "false": true, "iota": true, "nil": true,
	"append": true, "cap": true, "clear": true, "close": true,
	"complex": true, "copy": true, "delete": true, "imag": true,
	"len": true, "make": true, "max": true, "min": true, "new": true,
	"panic": true, "print": true, "println": true, "real": true,
	"recover": true,
}
