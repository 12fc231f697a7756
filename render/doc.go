// Package render is the plotting collaborator used by figure-creation
// functions and by generated reproduction scripts.
//
// It wraps gonum.org/v1/plot behind a small, error-accumulating surface:
// plotting calls on a Figure never return errors; the first failure is
// remembered and surfaced by Save. The package also keeps an ambient
// "current figure", so a figure-creation function that returns nil can
// still have its work saved by the caller.
package render
