package navigator

import (
	"testing"
)

func TestSeek_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		start int
		seek  int
		want  int
	}{
		{"negative", 60, -5, 0},
		{"beyond end", 60, 500, 119},
		{"in range", 0, 42, 42},
		{"last", 0, 119, 119},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(120, tt.start)
			n.Seek(tt.seek)
			if n.Index() != tt.want {
				t.Errorf("Expected index %d, got %d", tt.want, n.Index())
			}
		})
	}
}

func TestPrevNext_NoWrap(t *testing.T) {
	n := New(120, 0)
	if n.Prev() {
		t.Error("Expected Prev at 0 to report no change")
	}
	if n.Index() != 0 {
		t.Errorf("Expected index 0, got %d", n.Index())
	}

	n.Last()
	if n.Next() {
		t.Error("Expected Next at last slice to report no change")
	}
	if n.Index() != 119 {
		t.Errorf("Expected index 119, got %d", n.Index())
	}
}

func TestAdvance_Wraps(t *testing.T) {
	n := New(120, 119)
	n.Advance()
	if n.Index() != 0 {
		t.Errorf("Expected wrap to 0, got %d", n.Index())
	}
	n.Advance()
	if n.Index() != 1 {
		t.Errorf("Expected 1, got %d", n.Index())
	}
}

func TestStepByWheel(t *testing.T) {
	n := New(10, 5)
	n.StepByWheel(120)
	if n.Index() != 6 {
		t.Errorf("Expected 6 after positive delta, got %d", n.Index())
	}
	n.StepByWheel(-3)
	n.StepByWheel(-3)
	if n.Index() != 4 {
		t.Errorf("Expected 4 after two negative deltas, got %d", n.Index())
	}
	if n.StepByWheel(0) {
		t.Error("Expected zero delta to be a no-op")
	}
}

func TestOnChange_FiresOnlyOnEffectiveChange(t *testing.T) {
	n := New(5, 0)
	var seen []int
	n.OnChange(func(i int) { seen = append(seen, i) })

	n.Prev()
	n.Next()
	n.Next()
	n.Seek(2)
	n.Last()
	n.Advance()

	want := []int{1, 2, 4, 0}
	if len(seen) != len(want) {
		t.Fatalf("Expected %d change notifications, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Notification %d: expected %d, got %d", i, want[i], seen[i])
		}
	}
}

func TestSingleSlice(t *testing.T) {
	n := New(1, 3)
	if n.Index() != 0 {
		t.Errorf("Expected start clamped to 0, got %d", n.Index())
	}
	if n.Advance() {
		t.Error("Expected Advance on a single slice to report no change")
	}
}
