package analysis

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/mod/modfile"
)

// defaultCacheSize bounds the number of parsed units kept in memory.
// Units are immutable once built, so sharing them across saves is safe.
const defaultCacheSize = 16

// Loader parses package directories into Units, memoizing results in an
// LRU cache keyed by absolute directory.
type Loader struct {
	cache *lru.Cache[string, *Unit]
}

// NewLoader creates a Loader with the default cache capacity.
func NewLoader() *Loader {
	cache, err := lru.New[string, *Unit](defaultCacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	return &Loader{cache: cache}
}

// Load parses the package directory at dir, or returns the cached unit.
//
// Every .go file in the directory is included, test files too: figure
// targets routinely live in test files, and the directory is the unit of
// "home scope" here.
func (l *Loader) Load(dir string) (*Unit, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", dir, err)
	}
	if u, ok := l.cache.Get(abs); ok {
		return u, nil
	}
	u, err := parseUnit(abs)
	if err != nil {
		return nil, err
	}
	l.cache.Add(abs, u)
	return u, nil
}

func parseUnit(dir string) (*Unit, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read unit dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") {
			continue
		}
		names = append(names, e.Name())
	}
	// Symbol tables are built in strictly sorted file order so a unit is
	// identical regardless of directory listing order.
	sort.Strings(names)
	if len(names) == 0 {
		return nil, notFoundf("no Go files in %q", dir)
	}

	u := &Unit{
		Dir:         dir,
		Fset:        token.NewFileSet(),
		symbols:     make(map[string]*Symbol),
		methods:     make(map[string][]*Symbol),
		fileImports: make(map[*ast.File]map[string]ImportRef),
		dotImports:  make(map[*ast.File][]ImportRef),
	}

	for _, name := range names {
		f, err := parser.ParseFile(u.Fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", name, err)
		}
		u.files = append(u.files, f)
		if u.PackageName == "" {
			u.PackageName = strings.TrimSuffix(f.Name.Name, "_test")
		}
		indexFile(u, f)
	}

	u.ImportPath = importPathFor(dir, u.PackageName)
	return u, nil
}

// indexFile records the file's imports and top-level declarations into the
// unit's tables.
func indexFile(u *Unit, f *ast.File) {
	imports := make(map[string]ImportRef)
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		ref := ImportRef{Name: path.Base(p), Path: p}
		if spec.Name != nil {
			switch spec.Name.Name {
			case "_":
				continue
			case ".":
				ref.Dot = true
				u.dotImports[f] = append(u.dotImports[f], ref)
				continue
			default:
				ref.Name = spec.Name.Name
				ref.Aliased = ref.Name != path.Base(p)
			}
		}
		imports[ref.Name] = ref
	}
	u.fileImports[f] = imports

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			sym := &Symbol{Name: d.Name.Name, Unit: u, File: f, Fn: d}
			if d.Recv != nil && len(d.Recv.List) > 0 {
				sym.Kind = SymbolMethod
				sym.Recv = recvTypeName(d.Recv.List[0].Type)
				if sym.Recv != "" {
					u.methods[sym.Recv] = append(u.methods[sym.Recv], sym)
				}
				continue
			}
			sym.Kind = SymbolFunc
			u.symbols[sym.Name] = sym
		case *ast.GenDecl:
			indexGenDecl(u, f, d)
		}
	}
}

func indexGenDecl(u *Unit, f *ast.File, d *ast.GenDecl) {
	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			u.symbols[s.Name.Name] = &Symbol{
				Name: s.Name.Name,
				Kind: SymbolType,
				Unit: u,
				File: f,
				Gen:  d,
				Spec: s,
			}
		case *ast.ValueSpec:
			kind := SymbolVar
			if d.Tok == token.CONST {
				kind = SymbolConst
			}
			for _, name := range s.Names {
				if name.Name == "_" {
					continue
				}
				u.symbols[name.Name] = &Symbol{
					Name: name.Name,
					Kind: kind,
					Unit: u,
					File: f,
					Gen:  d,
					Spec: s,
				}
			}
		}
	}
}

// recvTypeName extracts the base type name from a method receiver
// expression, unwrapping pointers and type parameters.
func recvTypeName(expr ast.Expr) string {
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// importPathFor derives the unit's import path from the enclosing module's
// go.mod. Without one, the package name stands in.
func importPathFor(dir, pkgName string) string {
	root := dir
	for {
		data, err := os.ReadFile(filepath.Join(root, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				break
			}
			rel, err := filepath.Rel(root, dir)
			if err != nil || rel == "." {
				return modPath
			}
			return modPath + "/" + filepath.ToSlash(rel)
		}
		parent := filepath.Dir(root)
		if parent == root {
			break
		}
		root = parent
	}
	return pkgName
}
