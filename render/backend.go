package render

import "sync"

// DefaultDPI is the raster resolution used when SaveOptions.DPI is unset.
const DefaultDPI = 1000

var (
	mu        sync.Mutex
	backend   = "pdf"
	current   *Figure
	fontScale float64 = 1.0
	preamble  string
)

// SetBackend selects the default output format used when a save path or
// SaveOptions carries no explicit format. Generated scripts call this once,
// before any figure is created.
func SetBackend(name string) {
	mu.Lock()
	defer mu.Unlock()
	if name != "" {
		backend = name
	}
}

// Backend returns the current default output format.
func Backend() string {
	mu.Lock()
	defer mu.Unlock()
	return backend
}

// Current returns the most recently created figure that has not been
// closed, or nil. This is the fallback used when a figure-creation
// function draws on a figure but returns nothing.
func Current() *Figure {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// CloseAll forgets the current figure.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	current = nil
}

func setCurrent(f *Figure) {
	mu.Lock()
	defer mu.Unlock()
	current = f
}

// SetFontScale scales the title, label, and tick fonts of figures created
// afterwards. The style package calls this; figures pick the value up at
// creation time.
func SetFontScale(scale float64) {
	mu.Lock()
	defer mu.Unlock()
	if scale > 0 {
		fontScale = scale
	}
}

// SetLaTeXPreamble records the TeX preamble advertised in artifacts saved
// with the tex backend.
func SetLaTeXPreamble(p string) {
	mu.Lock()
	defer mu.Unlock()
	preamble = p
}

func currentFontScale() float64 {
	mu.Lock()
	defer mu.Unlock()
	return fontScale
}

func currentPreamble() string {
	mu.Lock()
	defer mu.Unlock()
	return preamble
}
