package windowlevel

import (
	"testing"

	"github.com/mrsinham/sliceview/internal/dicom/modalities"
	"github.com/mrsinham/sliceview/internal/series"
)

func TestResetFrom_DiscardsOverride(t *testing.T) {
	m := New(series.SliceMetadata{WindowCenter: 35, WindowWidth: 80})
	m.Set(100, 500)

	if v := m.Current(); v.Center != 100 || v.Width != 500 || !v.Overridden {
		t.Errorf("Expected override 100/500, got %+v", v)
	}

	m.ResetFrom(series.SliceMetadata{WindowCenter: 36, WindowWidth: 81})
	if v := m.Current(); v.Center != 36 || v.Width != 81 || v.Overridden {
		t.Errorf("Expected slice values 36/81, got %+v", v)
	}
}

func TestSet_KeepsWidthPositive(t *testing.T) {
	m := New(series.SliceMetadata{WindowCenter: 40, WindowWidth: 400})
	m.AdjustBy(10, -1000)
	if v := m.Current(); v.Width != MinWidth || v.Center != 50 {
		t.Errorf("Expected center 50 width %v, got %+v", MinWidth, v)
	}
}

func TestFilter(t *testing.T) {
	f := Values{Center: 400, Width: 2000}.Filter()
	if f.Contrast != 2 || f.Brightness != 1 {
		t.Errorf("Expected contrast 2 brightness 1, got %+v", f)
	}
}

func TestMap(t *testing.T) {
	v := Values{Center: 100, Width: 200}
	tests := []struct {
		raw  float64
		want uint8
	}{
		{-50, 0},
		{0, 0},
		{100, 128},
		{200, 255},
		{1e6, 255},
	}
	for _, tt := range tests {
		if got := v.Map(tt.raw); got != tt.want {
			t.Errorf("Map(%v): expected %d, got %d", tt.raw, tt.want, got)
		}
	}
}

func TestPresets(t *testing.T) {
	p, err := FindPreset(modalities.CT, "bone")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.Center != 400 || p.Width != 2000 {
		t.Errorf("Expected BONE 400/2000, got %+v", p)
	}

	if _, err := FindPreset(modalities.MR, "lung"); err == nil {
		t.Error("Expected error for a preset the modality does not define")
	}

	m := New(series.SliceMetadata{WindowCenter: 1, WindowWidth: 2})
	m.ApplyPreset(p)
	if v := m.Current(); v.Center != 400 || !v.Overridden {
		t.Errorf("Expected preset to override, got %+v", v)
	}
}
