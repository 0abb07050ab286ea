package models

// CategoryScore is a bounded composite score with its component
// breakdown, so every value is traceable to its inputs.
type CategoryScore struct {
	Value      int            `json:"value" toon:"value"`
	Components map[string]int `json:"components,omitempty" toon:"components,omitempty"`
}

// NewCategoryScore creates a score with an initialized component map.
func NewCategoryScore(value int) CategoryScore {
	return CategoryScore{
		Value:      Clamp(value, 0, 100),
		Components: make(map[string]int),
	}
}

// SetComponent records one named contribution to the score.
func (s *CategoryScore) SetComponent(name string, value int) {
	if s.Components == nil {
		s.Components = make(map[string]int)
	}
	s.Components[name] = value
}

// Clamp bounds value to [lo, hi].
func Clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// ClampFloat bounds value to [lo, hi].
func ClampFloat(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// ClampConfidence bounds a detector confidence to [0, 1].
func ClampConfidence(v float64) float64 {
	return ClampFloat(v, 0, 1)
}
