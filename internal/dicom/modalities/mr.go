package modalities

import (
	"math/rand/v2"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// MRGenerator describes MR (Magnetic Resonance) series.
type MRGenerator struct{}

// Modality returns the MR modality type.
func (g *MRGenerator) Modality() Modality {
	return MR
}

// SOPClassUID returns the MR Image Storage SOP Class UID.
func (g *MRGenerator) SOPClassUID() string {
	return "1.2.840.10008.5.1.4.1.1.4"
}

// Scanners returns available MR scanner configurations.
func (g *MRGenerator) Scanners() []Scanner {
	return []Scanner{
		{Manufacturer: "SIEMENS", Model: "Avanto", FieldStrength: 1.5},
		{Manufacturer: "SIEMENS", Model: "Skyra", FieldStrength: 3.0},
		{Manufacturer: "GE MEDICAL SYSTEMS", Model: "Discovery MR750", FieldStrength: 3.0},
		{Manufacturer: "PHILIPS", Model: "Ingenia", FieldStrength: 3.0},
	}
}

// Protocols returns the MR protocols. The first one is the axial T2 turbo
// spin echo used by the demo series.
func (g *MRGenerator) Protocols() []Protocol {
	return []Protocol{
		{Name: "T2 TSE TRA", EchoTime: 90, RepetitionTime: 4000, FlipAngle: 150, WindowCenter: 35, WindowWidth: 80},
		{Name: "T1 SE SAG", EchoTime: 15, RepetitionTime: 500, FlipAngle: 90, WindowCenter: 500, WindowWidth: 1000},
		{Name: "T2 FLAIR TRA", EchoTime: 120, RepetitionTime: 9000, FlipAngle: 150, WindowCenter: 600, WindowWidth: 1200},
		{Name: "T1 MPRAGE SAG", EchoTime: 3, RepetitionTime: 2300, FlipAngle: 9, WindowCenter: 300, WindowWidth: 600},
	}
}

// GenerateSeriesParams draws MR series parameters.
func (g *MRGenerator) GenerateSeriesParams(scanner Scanner, rng *rand.Rand) SeriesParams {
	protocols := g.Protocols()
	params := SeriesParams{
		Modality:       MR,
		Scanner:        scanner,
		Protocol:       protocols[rng.IntN(len(protocols))],
		PixelSpacing:   0.4 + rng.Float64()*1.1, // 0.4-1.5 mm
		SliceThickness: 1.0 + rng.Float64()*4.0, // 1.0-5.0 mm
		CenterDrift:    5,
		WidthDrift:     10,
	}
	params.SpacingBetweenSlices = params.SliceThickness
	return params
}

// PixelConfig returns MR pixel data configuration.
func (g *MRGenerator) PixelConfig() PixelConfig {
	return PixelConfig{
		BitsAllocated:       16,
		BitsStored:          12,
		HighBit:             11,
		PixelRepresentation: 0,
		MinValue:            0,
		MaxValue:            4095,
		BaseValue:           2048,
	}
}

// AppendModalityElements appends MR-specific DICOM elements to a dataset.
func (g *MRGenerator) AppendModalityElements(ds *dicom.Dataset, params SeriesParams) {
	p := params.Protocol
	elements := []*dicom.Element{
		mustNewElement(tag.MagneticFieldStrength, []string{floatToDS(params.Scanner.FieldStrength)}),
		mustNewElement(tag.ImagingFrequency, []string{floatToDS(params.Scanner.FieldStrength * 42.58)}),
		mustNewElement(tag.EchoTime, []string{floatToDS(p.EchoTime)}),
		mustNewElement(tag.RepetitionTime, []string{floatToDS(p.RepetitionTime)}),
		mustNewElement(tag.FlipAngle, []string{floatToDS(p.FlipAngle)}),
		mustNewElement(tag.SequenceName, []string{p.Name}),
	}
	ds.Elements = append(ds.Elements, elements...)
}

// WindowPresets returns MR window presets.
func (g *MRGenerator) WindowPresets() []WindowPreset {
	return []WindowPreset{
		{Name: "T2", Center: 35, Width: 80},
		{Name: "DEFAULT", Center: 500, Width: 1000},
		{Name: "BRIGHT", Center: 300, Width: 600},
		{Name: "CONTRAST", Center: 600, Width: 1200},
	}
}
