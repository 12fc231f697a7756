package analysis

import (
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"strings"
)

// Target identifies the declaration behind a live function value: its
// bare symbol name and the directory of the source unit that declares it.
// This is the only reflective step in the pipeline; everything downstream
// works on parsed source.
type Target struct {
	// Name is the bare top-level identifier, e.g. "CreateFigure".
	Name string

	// Raw is the full runtime name, e.g. "reprofig/figure.CreateFigure".
	Raw string

	// File is the absolute path of the defining source file.
	File string

	// Dir is the defining unit's directory.
	Dir string
}

// closurePattern matches the synthesized names of function literals:
// func1, func2.1, and so on.
var closurePattern = regexp.MustCompile(`^func\d+(\.\d+)*$`)

// TargetOf locates the declaration of fn.
//
// Function literals and method values have no independent top-level
// identity; for those the returned error wraps ErrAnonymousFunction and
// the caller falls back to explicitly supplied imports and functions.
func TargetOf(fn any) (Target, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Target{}, &ResolveError{Kind: ErrNotAFunction, Msg: fmt.Sprintf("%T", fn)}
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return Target{}, notFoundf("no runtime information for function value")
	}

	raw := rf.Name()
	file, _ := rf.FileLine(rf.Entry())

	name := raw[strings.LastIndex(raw, ".")+1:]
	// Method values are reported as Name-fm.
	name = strings.TrimSuffix(name, "-fm")

	if closurePattern.MatchString(name) {
		return Target{}, anonymousf("%s", raw)
	}

	return Target{
		Name: name,
		Raw:  raw,
		File: file,
		Dir:  filepath.Dir(file),
	}, nil
}
