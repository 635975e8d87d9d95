package modalities

import (
	"math/rand/v2"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// CTGenerator describes CT (Computed Tomography) series.
type CTGenerator struct{}

// Modality returns the CT modality type.
func (g *CTGenerator) Modality() Modality {
	return CT
}

// SOPClassUID returns the CT Image Storage SOP Class UID.
func (g *CTGenerator) SOPClassUID() string {
	return "1.2.840.10008.5.1.4.1.1.2"
}

// Scanners returns available CT scanner configurations.
func (g *CTGenerator) Scanners() []Scanner {
	return []Scanner{
		{Manufacturer: "SIEMENS", Model: "SOMATOM Force", DetectorRows: 192},
		{Manufacturer: "GE MEDICAL SYSTEMS", Model: "Revolution CT", DetectorRows: 256},
		{Manufacturer: "PHILIPS", Model: "Brilliance iCT", DetectorRows: 256},
		{Manufacturer: "CANON", Model: "Aquilion ONE", DetectorRows: 320},
	}
}

// Protocols returns CT protocols; the reconstruction kernel decides the
// stored window.
func (g *CTGenerator) Protocols() []Protocol {
	return []Protocol{
		{Name: "HEAD AXIAL", KVP: 120, Kernel: "SOFT", WindowCenter: 40, WindowWidth: 80},
		{Name: "CHEST AXIAL", KVP: 120, Kernel: "LUNG", WindowCenter: -600, WindowWidth: 1500},
		{Name: "ABDOMEN AXIAL", KVP: 100, Kernel: "STANDARD", WindowCenter: 40, WindowWidth: 400},
		{Name: "SPINE AXIAL", KVP: 140, Kernel: "BONE", WindowCenter: 400, WindowWidth: 1800},
	}
}

// GenerateSeriesParams draws CT series parameters.
func (g *CTGenerator) GenerateSeriesParams(scanner Scanner, rng *rand.Rand) SeriesParams {
	protocols := g.Protocols()
	params := SeriesParams{
		Modality:         CT,
		Scanner:          scanner,
		Protocol:         protocols[rng.IntN(len(protocols))],
		PixelSpacing:     0.5 + rng.Float64()*0.5, // 0.5-1.0 mm
		SliceThickness:   0.5 + rng.Float64()*2.5, // 0.5-3.0 mm
		RescaleIntercept: -1024,
		RescaleSlope:     1,
	}
	params.SpacingBetweenSlices = params.SliceThickness
	return params
}

// PixelConfig returns CT pixel data configuration.
func (g *CTGenerator) PixelConfig() PixelConfig {
	return PixelConfig{
		BitsAllocated:       16,
		BitsStored:          16,
		HighBit:             15,
		PixelRepresentation: 1,
		MinValue:            -1024,
		MaxValue:            3071,
		BaseValue:           1024,
	}
}

// AppendModalityElements appends CT-specific DICOM elements to a dataset.
func (g *CTGenerator) AppendModalityElements(ds *dicom.Dataset, params SeriesParams) {
	elements := []*dicom.Element{
		mustNewElement(tag.KVP, []string{floatToDS(params.Protocol.KVP)}),
		mustNewElement(tag.ConvolutionKernel, []string{params.Protocol.Kernel}),
		mustNewElement(tag.RescaleIntercept, []string{floatToDS(params.RescaleIntercept)}),
		mustNewElement(tag.RescaleSlope, []string{floatToDS(params.RescaleSlope)}),
		mustNewElement(tag.RescaleType, []string{"HU"}),
	}
	ds.Elements = append(ds.Elements, elements...)
}

// WindowPresets returns CT window presets.
func (g *CTGenerator) WindowPresets() []WindowPreset {
	return []WindowPreset{
		{Name: "BRAIN", Center: 40, Width: 80},
		{Name: "SUBDURAL", Center: 75, Width: 215},
		{Name: "ABDOMEN", Center: 40, Width: 400},
		{Name: "MEDIASTINUM", Center: 50, Width: 350},
		{Name: "LUNG", Center: -600, Width: 1500},
		{Name: "BONE", Center: 400, Width: 2000},
	}
}
