package fonts

import (
	"math"
	"testing"
)

func TestFace(t *testing.T) {
	a, err := Face(15)
	if err != nil {
		t.Fatalf("Face() error: %v", err)
	}
	b, err := Face(15)
	if err != nil {
		t.Fatalf("Face() error: %v", err)
	}
	if a != b {
		t.Error("faces of the same size should be cached")
	}
	if m := a.Metrics(); m.Height <= 0 {
		t.Errorf("face height = %v, want > 0", m.Height)
	}
}

func TestTextWidth(t *testing.T) {
	if got := TextWidth("abc", 10); math.Abs(got-18) > 1e-9 {
		t.Errorf("TextWidth() = %v, want 18", got)
	}
	if got := TextWidth("ää", 10); math.Abs(got-12) > 1e-9 {
		t.Errorf("TextWidth() = %v, want 12 (runes, not bytes)", got)
	}
}
