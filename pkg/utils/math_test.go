package utils

import (
	"math"
	"testing"
)

func TestNormalizeL2(t *testing.T) {
	v := []float32{3, 4}
	NormalizeL2(v)
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("normalized vector=%v", v)
	}
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("norm squared=%f, want 1", sum)
	}
}

func TestNormalizeL2_zeroVector(t *testing.T) {
	v := []float32{0, 0, 0}
	NormalizeL2(v)
	for i, x := range v {
		if x != 0 {
			t.Errorf("v[%d]=%f, want 0", i, x)
		}
	}
}

func TestInnerProduct(t *testing.T) {
	a := []float32{1, 0, 2}
	b := []float32{3, 5, 1}
	if got := InnerProduct(a, b); got != 5 {
		t.Errorf("InnerProduct=%f, want 5", got)
	}
	if got := InnerProduct(a, []float32{1}); got != 0 {
		t.Errorf("mismatched lengths should return 0, got %f", got)
	}
	if got := InnerProduct(nil, nil); got != 0 {
		t.Errorf("empty vectors should return 0, got %f", got)
	}
}
