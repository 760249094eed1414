// Package vecmath provides the small set of vector primitives shared by the
// embedding engine, community detector, and link predictor.
package vecmath

import "math"

// Dot returns the dot product of a and b. Returns 0 for mismatched lengths.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the Euclidean norm of v.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns the cosine similarity of a and b in [-1, 1].
// Returns 0 for mismatched lengths, empty vectors, or zero magnitude.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	na := Norm(a)
	nb := Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// ClampUnit clamps x to [0, 1]. Cosine similarity of embeddings can dip
// below zero; link scores are reported on a [0, 1] scale.
func ClampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
