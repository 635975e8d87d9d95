// Package series models an ordered stack of slices and the study it belongs
// to. Only metadata is held here; pixel data is never loaded.
package series

import (
	"errors"
	"fmt"
)

// Validation errors returned by New.
var (
	ErrEmptySeries    = errors.New("series has no slices")
	ErrIndexGap       = errors.New("slice indices are not contiguous")
	ErrInvalidSpacing = errors.New("pixel spacing must be positive")
)

// SliceMetadata is the calibration and display metadata of one slice.
type SliceMetadata struct {
	Index            int
	InstanceNumber   int
	SeriesNumber     int
	Description      string
	PixelSpacingMM   float64
	SliceThicknessMM float64
	SliceLocationMM  float64
	WindowCenter     float64
	WindowWidth      float64
	// AcquisitionTime is a DICOM TM value (HHMMSS.FFF).
	AcquisitionTime  string
	Rows             int
	Columns          int
	EchoTimeMS       float64
	RepetitionTimeMS float64
	FlipAngleDeg     float64
}

// Series is an immutable, non-empty, index-addressable slice stack.
type Series struct {
	slices []SliceMetadata
}

// New validates slices and returns a series. Slice i must carry Index i.
func New(slices []SliceMetadata) (*Series, error) {
	if len(slices) == 0 {
		return nil, ErrEmptySeries
	}
	for i, s := range slices {
		if s.Index != i {
			return nil, fmt.Errorf("slice %d has index %d: %w", i, s.Index, ErrIndexGap)
		}
		if s.PixelSpacingMM <= 0 {
			return nil, fmt.Errorf("slice %d spacing %v: %w", i, s.PixelSpacingMM, ErrInvalidSpacing)
		}
	}
	return &Series{slices: append([]SliceMetadata(nil), slices...)}, nil
}

// Len returns the number of slices.
func (s *Series) Len() int { return len(s.slices) }

// At returns slice i. i must be in [0, Len()).
func (s *Series) At(i int) SliceMetadata { return s.slices[i] }

// Slices returns a copy of all slices.
func (s *Series) Slices() []SliceMetadata {
	return append([]SliceMetadata(nil), s.slices...)
}

// Middle returns the index of the middle slice.
func (s *Series) Middle() int { return len(s.slices) / 2 }

// Study is the descriptive record a series is displayed under.
type Study struct {
	ID              string `yaml:"id"`
	PatientName     string `yaml:"patient_name"`
	PatientID       string `yaml:"patient_id"`
	StudyDate       string `yaml:"study_date"`
	StudyTime       string `yaml:"study_time"`
	Description     string `yaml:"description"`
	Modality        string `yaml:"modality"`
	AccessionNumber string `yaml:"accession_number"`
	Instances       int    `yaml:"instances"`
}
