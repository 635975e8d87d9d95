// Package dicom reads slice metadata from DICOM files and writes synthetic
// series to disk.
package dicom

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/mrsinham/sliceview/internal/series"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// DefaultPixelSpacingMM is assumed for images without PixelSpacing.
const DefaultPixelSpacingMM = 1.0

// LoadOptions configures LoadSeries.
type LoadOptions struct {
	// SeriesUID selects a series when the directory holds several. Empty picks
	// the series with the most images.
	SeriesUID string
	Workers   int
	Quiet     bool
}

// instance is the metadata parsed from one file.
type instance struct {
	path      string
	seriesUID string
	study     series.Study
	slice     series.SliceMetadata
}

// LoadSeries walks dir, parses every DICOM file's header (pixel data is
// skipped) and returns one series ordered by instance number, then slice
// location.
func LoadSeries(dir string, opts LoadOptions) (series.Study, *series.Series, error) {
	paths, err := listFiles(dir)
	if err != nil {
		return series.Study{}, nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return series.Study{}, nil, fmt.Errorf("no files in %s", dir)
	}

	instances := parseAll(paths, opts.Workers)
	if len(instances) == 0 {
		return series.Study{}, nil, fmt.Errorf("no readable DICOM images in %s", dir)
	}

	bySeries := make(map[string][]instance)
	for _, in := range instances {
		bySeries[in.seriesUID] = append(bySeries[in.seriesUID], in)
	}

	uid := opts.SeriesUID
	if uid == "" {
		uid = largestSeries(bySeries)
	}
	group, ok := bySeries[uid]
	if !ok {
		return series.Study{}, nil, fmt.Errorf("series %s not found in %s", uid, dir)
	}

	sort.SliceStable(group, func(i, j int) bool {
		a, b := group[i].slice, group[j].slice
		if a.InstanceNumber != b.InstanceNumber {
			return a.InstanceNumber < b.InstanceNumber
		}
		return a.SliceLocationMM < b.SliceLocationMM
	})

	slices := make([]series.SliceMetadata, len(group))
	for i, in := range group {
		slices[i] = in.slice
		slices[i].Index = i
	}
	s, err := series.New(slices)
	if err != nil {
		return series.Study{}, nil, fmt.Errorf("series %s: %w", uid, err)
	}

	study := group[0].study
	study.Instances = len(group)

	if !opts.Quiet {
		fmt.Printf("Loaded %d images from series %s (%d files scanned)\n", len(group), uid, len(paths))
	}
	return study, s, nil
}

// listFiles returns every regular file under dir except DICOMDIR indexes.
func listFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.EqualFold(d.Name(), "DICOMDIR") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

// parseAll parses headers in parallel. Files that are not DICOM images are
// skipped.
func parseAll(paths []string, workers int) []instance {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	pathChan := make(chan string, len(paths))
	resultChan := make(chan instance, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range pathChan {
				in, err := parseInstance(p)
				if err != nil {
					continue
				}
				resultChan <- in
			}
		}()
	}

	for _, p := range paths {
		pathChan <- p
	}
	close(pathChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var out []instance
	for in := range resultChan {
		out = append(out, in)
	}
	// deterministic order regardless of worker scheduling
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out
}

func parseInstance(path string) (instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return instance{}, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return instance{}, err
	}

	ds, err := dicom.Parse(f, info.Size(), nil, dicom.SkipPixelData())
	if err != nil {
		return instance{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return instanceFromDataset(path, ds)
}

func instanceFromDataset(path string, ds dicom.Dataset) (instance, error) {
	seriesUID := stringValue(ds, tag.SeriesInstanceUID)
	if seriesUID == "" {
		return instance{}, fmt.Errorf("%s: missing SeriesInstanceUID", path)
	}

	rows := intValue(ds, tag.Rows)
	cols := intValue(ds, tag.Columns)
	if rows == 0 {
		rows = series.DefaultMatrix
	}
	if cols == 0 {
		cols = series.DefaultMatrix
	}

	spacing := floatValue(ds, tag.PixelSpacing)
	if spacing <= 0 {
		spacing = DefaultPixelSpacingMM
	}

	center := floatValue(ds, tag.WindowCenter)
	width := floatValue(ds, tag.WindowWidth)
	if width <= 0 {
		// no stored window: fall back to a soft-tissue window
		center, width = 40, 400
	}

	return instance{
		path:      path,
		seriesUID: seriesUID,
		study: series.Study{
			ID:              stringValue(ds, tag.StudyInstanceUID),
			PatientName:     stringValue(ds, tag.PatientName),
			PatientID:       stringValue(ds, tag.PatientID),
			StudyDate:       stringValue(ds, tag.StudyDate),
			StudyTime:       stringValue(ds, tag.StudyTime),
			Description:     stringValue(ds, tag.StudyDescription),
			Modality:        stringValue(ds, tag.Modality),
			AccessionNumber: stringValue(ds, tag.AccessionNumber),
		},
		slice: series.SliceMetadata{
			InstanceNumber:   intValue(ds, tag.InstanceNumber),
			SeriesNumber:     intValue(ds, tag.SeriesNumber),
			Description:      stringValue(ds, tag.SeriesDescription),
			PixelSpacingMM:   spacing,
			SliceThicknessMM: floatValue(ds, tag.SliceThickness),
			SliceLocationMM:  floatValue(ds, tag.SliceLocation),
			WindowCenter:     center,
			WindowWidth:      width,
			AcquisitionTime:  stringValue(ds, tag.AcquisitionTime),
			Rows:             rows,
			Columns:          cols,
			EchoTimeMS:       floatValue(ds, tag.EchoTime),
			RepetitionTimeMS: floatValue(ds, tag.RepetitionTime),
			FlipAngleDeg:     floatValue(ds, tag.FlipAngle),
		},
	}, nil
}

func largestSeries(bySeries map[string][]instance) string {
	var best string
	for uid, group := range bySeries {
		if len(group) > len(bySeries[best]) || (len(group) == len(bySeries[best]) && uid < best) {
			best = uid
		}
	}
	return best
}

// stringValue returns the first string value of t, or "".
func stringValue(ds dicom.Dataset, t tag.Tag) string {
	elem, err := ds.FindElementByTag(t)
	if err != nil || elem == nil {
		return ""
	}
	switch v := elem.Value.GetValue().(type) {
	case []string:
		if len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
	case []int:
		if len(v) > 0 {
			return strconv.Itoa(v[0])
		}
	}
	return ""
}

// floatValue parses the first value of a DS element, or 0.
func floatValue(ds dicom.Dataset, t tag.Tag) float64 {
	f, err := strconv.ParseFloat(stringValue(ds, t), 64)
	if err != nil {
		return 0
	}
	return f
}

// intValue reads an IS or US element, or 0.
func intValue(ds dicom.Dataset, t tag.Tag) int {
	s := stringValue(ds, t)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
