// Package embedding holds helpers shared by the embedding adapters.
package embedding

import "math"

// NormalizeL2 scales v to unit length in place.
// Returns false and leaves v untouched if it has zero norm.
func NormalizeL2(v []float32) bool {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return false
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
	return true
}

// FromFloat64 converts an API response vector to a normalised float32 vector.
func FromFloat64(src []float64) []float32 {
	out := make([]float32, len(src))
	for i, x := range src {
		out[i] = float32(x)
	}
	NormalizeL2(out)
	return out
}
