// Package modalities describes imaging modalities: scanners, acquisition
// protocols, window presets and the modality-specific DICOM elements of a
// series.
package modalities

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/suyashkumar/dicom"
)

// Modality represents a DICOM imaging modality type.
type Modality string

const (
	MR Modality = "MR" // Magnetic Resonance
	CT Modality = "CT" // Computed Tomography
)

// AllModalities returns all supported modalities.
func AllModalities() []Modality {
	return []Modality{MR, CT}
}

// IsValid checks if a modality string is valid.
func IsValid(m string) bool {
	for _, valid := range AllModalities() {
		if string(valid) == m {
			return true
		}
	}
	return false
}

// Parse converts a string to a Modality, ignoring case.
func Parse(s string) (Modality, error) {
	m := strings.ToUpper(strings.TrimSpace(s))
	if IsValid(m) {
		return Modality(m), nil
	}
	return "", fmt.Errorf("invalid modality: %s (valid: MR, CT)", s)
}

// Scanner represents an imaging device.
type Scanner struct {
	Manufacturer string
	Model        string
	// MR-specific
	FieldStrength float64 // Tesla
	// CT-specific
	DetectorRows int
}

// Protocol is a named acquisition protocol. Its window is the default the
// scanner stores on each image.
type Protocol struct {
	Name         string
	WindowCenter float64
	WindowWidth  float64

	// MR-specific
	EchoTime       float64 // ms
	RepetitionTime float64 // ms
	FlipAngle      float64 // degrees

	// CT-specific
	KVP    float64
	Kernel string
}

// SeriesParams holds the per-series geometry and acquisition settings.
type SeriesParams struct {
	Modality Modality
	Scanner  Scanner
	Protocol Protocol

	PixelSpacing         float64 // mm, isotropic in-plane
	SliceThickness       float64 // mm
	SpacingBetweenSlices float64 // mm

	// Stored window values drift slice to slice by up to these amounts.
	CenterDrift int
	WidthDrift  int

	// CT-specific
	RescaleIntercept float64
	RescaleSlope     float64
}

// PixelConfig holds pixel data configuration for a modality.
type PixelConfig struct {
	BitsAllocated       uint16
	BitsStored          uint16
	HighBit             uint16
	PixelRepresentation uint16 // 0 = unsigned, 1 = signed
	MinValue            int
	MaxValue            int
	BaseValue           int
}

// WindowPreset is a named window/level.
type WindowPreset struct {
	Name   string
	Center float64
	Width  float64
}

// Generator defines the behaviour of one modality.
type Generator interface {
	Modality() Modality

	// SOPClassUID returns the image storage SOP Class UID.
	SOPClassUID() string

	Scanners() []Scanner
	Protocols() []Protocol

	// GenerateSeriesParams draws series parameters for a scanner.
	GenerateSeriesParams(scanner Scanner, rng *rand.Rand) SeriesParams

	PixelConfig() PixelConfig

	// AppendModalityElements appends modality-specific elements to ds.
	AppendModalityElements(ds *dicom.Dataset, params SeriesParams)

	WindowPresets() []WindowPreset
}

// GetGenerator returns the generator for the specified modality. Unknown
// modalities get MR.
func GetGenerator(m Modality) Generator {
	switch m {
	case CT:
		return &CTGenerator{}
	case MR:
		fallthrough
	default:
		return &MRGenerator{}
	}
}
