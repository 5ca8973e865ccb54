package tensor

import (
	"testing"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{1}, 1},
		{Shape{4}, 4},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("NumElements(%v) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate({2,3}) = %v, want nil", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Validate({2,0}) should fail")
	}
	if err := (Shape{-1}).Validate(); err == nil {
		t.Error("Validate({-1}) should fail")
	}
}

func TestShape_Equal(t *testing.T) {
	if !(Shape{2, 3}).Equal(Shape{2, 3}) {
		t.Error("{2,3} should equal {2,3}")
	}
	if (Shape{2, 3}).Equal(Shape{3, 2}) {
		t.Error("{2,3} should not equal {3,2}")
	}
	if (Shape{2, 3}).Equal(Shape{2, 3, 1}) {
		t.Error("{2,3} should not equal {2,3,1}")
	}
}

func TestShape_Clone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 9
	if s[0] != 2 {
		t.Error("Clone() should not share memory with the original")
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	strides := (Shape{2, 3, 4}).ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("ComputeStrides({2,3,4}) = %v, want %v", strides, want)
			break
		}
	}
}

func TestShape_IsPrefixOf(t *testing.T) {
	tests := []struct {
		s, other Shape
		want     bool
	}{
		{Shape{2}, Shape{2, 3}, true},
		{Shape{2, 3}, Shape{2, 3}, true},
		{Shape{2, 3}, Shape{2, 3, 4}, true},
		{Shape{}, Shape{2, 3}, true},
		{Shape{3}, Shape{2, 3}, false},
		{Shape{2, 3, 4}, Shape{2, 3}, false},
	}
	for _, tt := range tests {
		if got := tt.s.IsPrefixOf(tt.other); got != tt.want {
			t.Errorf("IsPrefixOf(%v, %v) = %v, want %v", tt.s, tt.other, got, tt.want)
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	// Same shapes: no broadcast needed.
	result, needed, err := BroadcastShapes(Shape{3, 5}, Shape{3, 5})
	if err != nil {
		t.Fatalf("BroadcastShapes failed: %v", err)
	}
	if !result.Equal(Shape{3, 5}) || needed {
		t.Errorf("got %v (needed=%v), want {3,5} (needed=false)", result, needed)
	}

	// Singleton expansion.
	result, needed, err = BroadcastShapes(Shape{3, 1}, Shape{3, 5})
	if err != nil {
		t.Fatalf("BroadcastShapes failed: %v", err)
	}
	if !result.Equal(Shape{3, 5}) || !needed {
		t.Errorf("got %v (needed=%v), want {3,5} (needed=true)", result, needed)
	}

	// Rank extension, right-aligned.
	result, _, err = BroadcastShapes(Shape{2, 3, 4}, Shape{4})
	if err != nil {
		t.Fatalf("BroadcastShapes failed: %v", err)
	}
	if !result.Equal(Shape{2, 3, 4}) {
		t.Errorf("got %v, want {2,3,4}", result)
	}

	// Incompatible.
	_, _, err = BroadcastShapes(Shape{3, 4}, Shape{3, 5})
	if err == nil {
		t.Error("BroadcastShapes({3,4}, {3,5}) should fail")
	}
}
