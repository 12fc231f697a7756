package figpkg

func testOnlyHelper(x float64) float64 {
	return double(x)
}
