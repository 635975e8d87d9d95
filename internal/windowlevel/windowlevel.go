// Package windowlevel maps stored intensities to display brightness using a
// window center and width.
//
// The values are re-derived from slice metadata on every slice change; a user
// override only lasts until the next change.
package windowlevel

import (
	"fmt"
	"math"
	"strings"

	"github.com/mrsinham/sliceview/internal/dicom/modalities"
	"github.com/mrsinham/sliceview/internal/series"
)

// MinWidth is the smallest window width accepted.
const MinWidth = 1.0

// Values is a window center/width pair.
type Values struct {
	Center     float64
	Width      float64
	Overridden bool
}

// Filter is the display contract consumed by render sinks: contrast and
// brightness multipliers where 1 is unchanged.
type Filter struct {
	Contrast   float64
	Brightness float64
}

// Filter derives the contrast/brightness multipliers for these values.
func (v Values) Filter() Filter {
	return Filter{Contrast: v.Width / 1000, Brightness: v.Center / 400}
}

// Range returns the lowest and highest intensity inside the window.
func (v Values) Range() (lo, hi float64) {
	return v.Center - v.Width/2, v.Center + v.Width/2
}

// Map returns the 8-bit display value for a stored intensity.
func (v Values) Map(raw float64) uint8 {
	lo, hi := v.Range()
	switch {
	case raw <= lo:
		return 0
	case raw >= hi:
		return 255
	}
	return uint8(math.Round((raw - lo) / (hi - lo) * 255))
}

// Mapper owns the current window/level.
type Mapper struct {
	v Values
}

// New returns a mapper initialized from slice.
func New(slice series.SliceMetadata) *Mapper {
	m := &Mapper{}
	m.ResetFrom(slice)
	return m
}

// ResetFrom overwrites the window with the slice's own values, discarding any
// override.
func (m *Mapper) ResetFrom(slice series.SliceMetadata) {
	m.v = Values{Center: slice.WindowCenter, Width: math.Max(slice.WindowWidth, MinWidth)}
}

// Set overrides the window until the next ResetFrom.
func (m *Mapper) Set(center, width float64) {
	m.v = Values{Center: center, Width: math.Max(width, MinWidth), Overridden: true}
}

// AdjustBy shifts the current window, as a window/level drag does.
func (m *Mapper) AdjustBy(dCenter, dWidth float64) {
	m.Set(m.v.Center+dCenter, m.v.Width+dWidth)
}

// ApplyPreset overrides the window with a preset.
func (m *Mapper) ApplyPreset(p modalities.WindowPreset) {
	m.Set(p.Center, p.Width)
}

// Current returns the active values.
func (m *Mapper) Current() Values { return m.v }

// Presets returns the window presets for a modality.
func Presets(mod modalities.Modality) []modalities.WindowPreset {
	return modalities.GetGenerator(mod).WindowPresets()
}

// FindPreset looks up a preset by case-insensitive name.
func FindPreset(mod modalities.Modality, name string) (modalities.WindowPreset, error) {
	names := make([]string, 0)
	for _, p := range Presets(mod) {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
		names = append(names, p.Name)
	}
	return modalities.WindowPreset{}, fmt.Errorf("invalid preset: %s (valid: %s)", name, strings.Join(names, ", "))
}
