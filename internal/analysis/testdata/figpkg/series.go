package figpkg

import "fmt"

type series struct {
	name   string
	values []float64
}

func (s series) total() float64 {
	t := 0.0
	for _, v := range s.values {
		t += v
	}
	return t * scale
}

func (s series) title() string {
	return fmt.Sprintf("%s (%d)", s.name, len(s.values))
}

func totalOf(s series) float64 {
	return s.total()
}

func report(s series, values []float64) float64 {
	return s.total() + sum(values)
}

func sum(values []float64) float64 {
	t := 0.0
	for _, v := range values {
		t += v
	}
	return t
}
