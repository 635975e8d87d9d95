package edgecases

import (
	"math/rand/v2"

	"github.com/mrsinham/sliceview/internal/series"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// OptionalTags groups the tags a series may be written without. Tags in one
// group are dropped together.
var OptionalTags = [][]tag.Tag{
	{tag.WindowCenter, tag.WindowWidth},
	{tag.PixelSpacing},
	{tag.SliceLocation},
	{tag.StudyDescription},
	{tag.SeriesDescription},
	{tag.AcquisitionTime},
	{tag.AccessionNumber},
}

// Applicator applies the configured edge cases to one series.
type Applicator struct {
	config Config
	rng    *rand.Rand
}

// NewApplicator creates an applicator drawing from rng.
func NewApplicator(config Config, rng *rand.Rand) *Applicator {
	return &Applicator{config: config, rng: rng}
}

// ApplyToStudy returns study with its patient name and ID varied.
func (a *Applicator) ApplyToStudy(study series.Study) series.Study {
	if a.config.HasType(SpecialChars) {
		study.PatientName = SpecialCharName(a.rng)
	}
	if a.config.HasType(VariedIDs) {
		study.PatientID = VariedPatientID(a.rng)
	}
	return study
}

// TagsToOmit returns the tags to leave out of every file of the series: one
// to three groups of OptionalTags.
func (a *Applicator) TagsToOmit() []tag.Tag {
	if !a.config.HasType(MissingTags) {
		return nil
	}
	count := 1 + a.rng.IntN(3)
	var omit []tag.Tag
	for _, i := range a.rng.Perm(len(OptionalTags))[:count] {
		omit = append(omit, OptionalTags[i]...)
	}
	return omit
}
