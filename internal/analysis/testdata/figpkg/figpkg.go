package figpkg

import (
	"fmt"
	st "sort"
)

const scale = 2.5

const label = "energy"

var banner = fmt.Sprintf("## %s ##", label)

func double(x float64) float64 {
	return x * scale
}

func scaled(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = double(v)
	}
	return out
}

func describe(n int) string {
	return fmt.Sprintf("%s: %d points", label, n)
}

func sortNames(names []string) {
	st.Strings(names)
}

func countdown(n int) {
	if n > 0 {
		countdown(n - 1)
	}
}

func isEven(n int) bool {
	if n == 0 {
		return true
	}
	return isOdd(n - 1)
}

func isOdd(n int) bool {
	if n == 0 {
		return false
	}
	return isEven(n - 1)
}

func mystery() int {
	return undeclaredThing
}
