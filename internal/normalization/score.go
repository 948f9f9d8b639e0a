package normalization

// NormalizeScore clamps a numeric value into [0,100]. Non-numeric input yields
// nil; never errors.
func NormalizeScore(value interface{}) *float64 {
	f, ok := asFloat(value)
	if !ok {
		return nil
	}
	if f < 0 {
		f = 0
	}
	if f > 100 {
		f = 100
	}
	return &f
}

// NormalizeLevel clamps a numeric value into the 1-10 competency scale used by
// profile level fields. Non-numeric input yields nil.
func NormalizeLevel(value interface{}) *int {
	f, ok := asFloat(value)
	if !ok {
		return nil
	}
	n := int(f + 0.5)
	if n < 1 {
		n = 1
	}
	if n > 10 {
		n = 10
	}
	return &n
}
