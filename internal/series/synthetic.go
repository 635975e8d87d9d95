package series

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"

	"github.com/mrsinham/sliceview/internal/dicom/modalities"
	"github.com/mrsinham/sliceview/internal/util"
)

// Defaults for synthetic series.
const (
	DefaultSyntheticSlices = 120
	DefaultMatrix          = 512
)

// SyntheticOptions configures Synthetic.
type SyntheticOptions struct {
	NumSlices int
	Modality  modalities.Modality
	// Seed makes the series reproducible. Zero derives a seed from Name.
	Seed int64
	Name string
	Rows int
	Cols int
}

// Synthetic generates a plausible series: scanner, protocol and geometry are
// drawn from the modality, and the stored window drifts slice to slice the way
// scanners with automatic windowing do.
func Synthetic(opts SyntheticOptions) (Study, *Series, error) {
	if opts.NumSlices <= 0 {
		return Study{}, nil, fmt.Errorf("number of slices must be > 0, got %d", opts.NumSlices)
	}
	if opts.Modality == "" {
		opts.Modality = modalities.MR
	}
	if opts.Rows <= 0 {
		opts.Rows = DefaultMatrix
	}
	if opts.Cols <= 0 {
		opts.Cols = DefaultMatrix
	}

	seed := opts.Seed
	if seed == 0 {
		h := fnv.New64a()
		_, _ = h.Write([]byte(opts.Name)) // hash.Write never returns an error
		seed = int64(h.Sum64())
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))

	gen := modalities.GetGenerator(opts.Modality)
	scanners := gen.Scanners()
	params := gen.GenerateSeriesParams(scanners[rng.IntN(len(scanners))], rng)

	sex := "M"
	if rng.IntN(2) == 0 {
		sex = "F"
	}
	studyDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rng.IntN(365))
	hour, minute := 8+rng.IntN(10), rng.IntN(60)

	study := Study{
		ID:              util.GenerateDeterministicUID(fmt.Sprintf("%d_study", seed)),
		PatientName:     util.GeneratePatientName(sex, rng),
		PatientID:       fmt.Sprintf("PID%06d", rng.IntN(1000000)),
		StudyDate:       studyDate.Format("20060102"),
		StudyTime:       fmt.Sprintf("%02d%02d00", hour, minute),
		Description:     params.Protocol.Name,
		Modality:        string(opts.Modality),
		AccessionNumber: fmt.Sprintf("AN%08d", rng.IntN(100000000)),
		Instances:       opts.NumSlices,
	}

	slices := buildSlices(opts.NumSlices, params, opts.Rows, opts.Cols, hour, minute)
	s, err := New(slices)
	if err != nil {
		return Study{}, nil, fmt.Errorf("build synthetic series: %w", err)
	}
	return study, s, nil
}

// Demo returns the fixed 120-slice axial T2 series the viewer opens with when
// no data is given.
func Demo() (Study, *Series) {
	gen := modalities.GetGenerator(modalities.MR)
	params := modalities.SeriesParams{
		Modality:             modalities.MR,
		Scanner:              gen.Scanners()[1],
		Protocol:             gen.Protocols()[0],
		PixelSpacing:         0.488,
		SliceThickness:       3.0,
		SpacingBetweenSlices: 1.0,
		CenterDrift:          5,
		WidthDrift:           10,
	}

	study := Study{
		ID:              "1",
		PatientName:     "DOE^JANE",
		PatientID:       "PID_MR",
		StudyDate:       "20240115",
		StudyTime:       "143200",
		Description:     "MRI BRAIN WITHOUT CONTRAST",
		Modality:        string(modalities.MR),
		AccessionNumber: "AN_MR",
		Instances:       DefaultSyntheticSlices,
	}

	s, err := New(buildSlices(DefaultSyntheticSlices, params, DefaultMatrix, DefaultMatrix, 14, 32))
	if err != nil {
		panic(fmt.Sprintf("demo series: %v", err))
	}
	return study, s
}

// buildSlices lays out n slices centered on location 0. Window values cycle
// around the protocol window by up to CenterDrift and WidthDrift.
func buildSlices(n int, p modalities.SeriesParams, rows, cols, hour, minute int) []SliceMetadata {
	slices := make([]SliceMetadata, n)
	start := -float64(n) / 2 * p.SpacingBetweenSlices
	for i := range slices {
		center, width := p.Protocol.WindowCenter, p.Protocol.WindowWidth
		if p.CenterDrift > 0 {
			center += float64(i%(2*p.CenterDrift) - p.CenterDrift)
		}
		if p.WidthDrift > 0 {
			width += float64(i%(2*p.WidthDrift) - p.WidthDrift)
		}
		slices[i] = SliceMetadata{
			Index:            i,
			InstanceNumber:   i + 1,
			SeriesNumber:     1,
			Description:      fmt.Sprintf("%s - Slice %d", p.Protocol.Name, i+1),
			PixelSpacingMM:   p.PixelSpacing,
			SliceThicknessMM: p.SliceThickness,
			SliceLocationMM:  start + float64(i)*p.SpacingBetweenSlices,
			WindowCenter:     center,
			WindowWidth:      width,
			AcquisitionTime:  fmt.Sprintf("%02d%02d%02d.%03d", hour, minute, (i/2)%60, (i%2)*500),
			Rows:             rows,
			Columns:          cols,
			EchoTimeMS:       p.Protocol.EchoTime,
			RepetitionTimeMS: p.Protocol.RepetitionTime,
			FlipAngleDeg:     p.Protocol.FlipAngle,
		}
	}
	return slices
}
