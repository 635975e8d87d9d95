package dicom

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"math"
	randv2 "math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/mrsinham/sliceview/internal/dicom/edgecases"
	"github.com/mrsinham/sliceview/internal/dicom/modalities"
	"github.com/mrsinham/sliceview/internal/series"
	"github.com/mrsinham/sliceview/internal/util"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// WriteOptions configures WriteSeries.
type WriteOptions struct {
	OutputDir string
	Study     series.Study
	Series    *series.Series
	Workers   int
	Quiet     bool
	// EdgeCases varies patient identity and drops optional tags from every
	// file of the series.
	EdgeCases edgecases.Config
	// ProgressCallback is called after each file with (completed, total).
	ProgressCallback func(completed, total int)
}

// sliceTask contains all data needed to write one file
type sliceTask struct {
	index     int
	filePath  string
	label     string
	pixelSeed uint64
	rows      int
	cols      int
	pixels    modalities.PixelConfig
	metadata  []*dicom.Element
}

// WriteSeries writes one DICOM file per slice into OutputDir. Pixel data is a
// noisy synthetic phantom with the slice number burned in. It returns the
// written paths in slice order.
func WriteSeries(opts WriteOptions) ([]string, error) {
	if opts.Series == nil || opts.Series.Len() == 0 {
		return nil, fmt.Errorf("write series: %w", series.ErrEmptySeries)
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	gen := modalities.GetGenerator(modalities.Modality(opts.Study.Modality))
	seed := opts.Study.ID + opts.Study.PatientID

	var omit []tag.Tag
	if opts.EdgeCases.IsEnabled() {
		h := fnv.New64a()
		_, _ = fmt.Fprintf(h, "%s_edgecases", seed)
		app := edgecases.NewApplicator(opts.EdgeCases, randv2.New(randv2.NewPCG(h.Sum64(), h.Sum64())))
		opts.Study = app.ApplyToStudy(opts.Study)
		omit = app.TagsToOmit()
		if !opts.Quiet {
			fmt.Printf("Edge cases %v: patient %s (%s), %d tags omitted\n", opts.EdgeCases.Types, opts.Study.PatientName, opts.Study.PatientID, len(omit))
		}
	}
	studyUID := opts.Study.ID
	if studyUID == "" {
		studyUID = util.GenerateDeterministicUID(seed + "_study")
	}
	seriesUID := util.GenerateDeterministicUID(seed + "_series")
	frameUID := util.GenerateDeterministicUID(seed + "_frame")

	n := opts.Series.Len()
	tasks := make([]sliceTask, n)
	for i := 0; i < n; i++ {
		slice := opts.Series.At(i)
		sopUID := util.GenerateDeterministicUID(fmt.Sprintf("%s_sop_%d", seed, i))

		metadata := []*dicom.Element{
			mustNewElement(tag.TransferSyntaxUID, []string{"1.2.840.10008.1.2.1"}),
			mustNewElement(tag.MediaStorageSOPClassUID, []string{gen.SOPClassUID()}),
			mustNewElement(tag.MediaStorageSOPInstanceUID, []string{sopUID}),
			mustNewElement(tag.PatientName, []string{opts.Study.PatientName}),
			mustNewElement(tag.PatientID, []string{opts.Study.PatientID}),
			mustNewElement(tag.StudyInstanceUID, []string{studyUID}),
			mustNewElement(tag.StudyDate, []string{opts.Study.StudyDate}),
			mustNewElement(tag.StudyTime, []string{opts.Study.StudyTime}),
			mustNewElement(tag.StudyDescription, []string{opts.Study.Description}),
			mustNewElement(tag.AccessionNumber, []string{opts.Study.AccessionNumber}),
			mustNewElement(tag.SeriesInstanceUID, []string{seriesUID}),
			mustNewElement(tag.SeriesNumber, []string{fmt.Sprintf("%d", slice.SeriesNumber)}),
			mustNewElement(tag.SeriesDescription, []string{slice.Description}),
			mustNewElement(tag.Modality, []string{string(gen.Modality())}),
			mustNewElement(tag.SOPInstanceUID, []string{sopUID}),
			mustNewElement(tag.SOPClassUID, []string{gen.SOPClassUID()}),
			mustNewElement(tag.InstanceNumber, []string{fmt.Sprintf("%d", slice.InstanceNumber)}),
			mustNewElement(tag.AcquisitionTime, []string{slice.AcquisitionTime}),
			mustNewElement(tag.PixelSpacing, []string{floatToDS(slice.PixelSpacingMM), floatToDS(slice.PixelSpacingMM)}),
			mustNewElement(tag.SliceThickness, []string{floatToDS(slice.SliceThicknessMM)}),
			mustNewElement(tag.SliceLocation, []string{floatToDS(slice.SliceLocationMM)}),
			mustNewElement(tag.ImagePositionPatient, []string{"0", "0", floatToDS(slice.SliceLocationMM)}),
			mustNewElement(tag.ImageOrientationPatient, []string{"1", "0", "0", "0", "1", "0"}),
			mustNewElement(tag.FrameOfReferenceUID, []string{frameUID}),
			mustNewElement(tag.WindowCenter, []string{floatToDS(slice.WindowCenter)}),
			mustNewElement(tag.WindowWidth, []string{floatToDS(slice.WindowWidth)}),
		}
		metadata = append(dropTags(metadata, omit), pixelModule(gen.PixelConfig(), slice.Rows, slice.Columns)...)

		ds := dicom.Dataset{Elements: metadata}
		gen.AppendModalityElements(&ds, paramsForSlice(gen, slice))

		h := fnv.New64a()
		_, _ = fmt.Fprintf(h, "%s_pixel_%d", seed, i)

		tasks[i] = sliceTask{
			index:     i,
			filePath:  filepath.Join(opts.OutputDir, fmt.Sprintf("IMG%04d.dcm", i+1)),
			label:     fmt.Sprintf("%d/%d", i+1, n),
			pixelSeed: h.Sum64(),
			rows:      slice.Rows,
			cols:      slice.Columns,
			pixels:    gen.PixelConfig(),
			metadata:  ds.Elements,
		}
	}

	if err := runTasks(tasks, opts); err != nil {
		return nil, err
	}

	paths := make([]string, n)
	for i, t := range tasks {
		paths[i] = t.filePath
	}
	if !opts.Quiet {
		fmt.Printf("\n✓ %d DICOM files created in: %s/\n", n, opts.OutputDir)
	}
	return paths, nil
}

// dropTags removes the elements whose tag is in omit.
func dropTags(elems []*dicom.Element, omit []tag.Tag) []*dicom.Element {
	if len(omit) == 0 {
		return elems
	}
	kept := elems[:0]
	for _, e := range elems {
		drop := false
		for _, t := range omit {
			if e.Tag == t {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, e)
		}
	}
	return kept
}

func runTasks(tasks []sliceTask, opts WriteOptions) error {
	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(tasks) {
		numWorkers = len(tasks)
	}

	taskChan := make(chan sliceTask, len(tasks))
	resultChan := make(chan struct {
		index int
		err   error
	}, len(tasks))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				err := writeSlice(task)
				resultChan <- struct {
					index int
					err   error
				}{task.index, err}
			}
		}()
	}

	for _, task := range tasks {
		taskChan <- task
	}
	close(taskChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	completed := 0
	var firstErr error
	for result := range resultChan {
		if result.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("write slice %d: %w", result.index, result.err)
		}
		completed++
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(completed, len(tasks))
		}
		if !opts.Quiet && (completed%10 == 0 || completed == len(tasks)) {
			fmt.Printf("  Progress: %d/%d (%.0f%%)\n", completed, len(tasks), float64(completed)/float64(len(tasks))*100)
		}
	}
	return firstErr
}

func writeSlice(task sliceTask) error {
	nf := phantomFrame(task)
	drawLabel(nf, task.cols, task.rows, task.label, uint16(task.pixels.MaxValue))

	pixelData := dicom.PixelDataInfo{
		Frames: []*frame.Frame{
			{
				Encapsulated: false,
				NativeData:   nf,
			},
		},
	}
	elements := make([]*dicom.Element, len(task.metadata)+1)
	copy(elements, task.metadata)
	elements[len(task.metadata)] = mustNewElement(tag.PixelData, pixelData)

	f, err := os.Create(task.filePath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return dicom.Write(f, dicom.Dataset{Elements: elements})
}

// phantomFrame fills a frame with a bright disc fading to the edges plus
// deterministic noise.
func phantomFrame(task sliceTask) *frame.NativeFrame[uint16] {
	w, h := task.cols, task.rows
	cfg := task.pixels
	nf := frame.NewNativeFrame[uint16](16, h, w, w*h, 1)
	rng := randv2.New(randv2.NewPCG(task.pixelSeed, task.pixelSeed))

	valueRange := float64(cfg.MaxValue - cfg.MinValue)
	maxVal := float64(int(1)<<cfg.BitsStored - 1)
	cx, cy := float64(w)/2, float64(h)/2
	maxDist := math.Hypot(cx, cy)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
			v := float64(cfg.BaseValue) + (1-d)*valueRange*0.3 + (rng.Float64()-0.5)*valueRange*0.1
			nf.RawData[y*w+x] = uint16(math.Max(0, math.Min(maxVal, v)))
		}
	}
	return nf
}

// drawLabel burns text into the bottom-left corner of the frame at maxValue.
func drawLabel(nf *frame.NativeFrame[uint16], width, height int, text string, maxValue uint16) {
	face := basicfont.Face7x13
	tw := font.MeasureString(face, text).Ceil()
	th := 13

	textImg := image.NewRGBA(image.Rect(0, 0, tw, th))
	d := &font.Drawer{
		Dst:  textImg,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.Point26_6{Y: fixed.I(11)},
	}
	d.DrawString(text)

	scale := math.Max(2, float64(width)*0.15/float64(tw))
	sw, sh := int(float64(tw)*scale), int(float64(th)*scale)
	scaled := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), textImg, textImg.Bounds(), draw.Over, nil)

	ox, oy := width/40, height-sh-height/40
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			_, _, _, a := scaled.At(x, y).RGBA()
			dx, dy := ox+x, oy+y
			if a > 0x8000 && dx >= 0 && dx < width && dy >= 0 && dy < height {
				nf.RawData[dy*width+dx] = maxValue
			}
		}
	}
}

func pixelModule(cfg modalities.PixelConfig, rows, cols int) []*dicom.Element {
	return []*dicom.Element{
		mustNewElement(tag.Rows, []int{rows}),
		mustNewElement(tag.Columns, []int{cols}),
		mustNewElement(tag.BitsAllocated, []int{int(cfg.BitsAllocated)}),
		mustNewElement(tag.BitsStored, []int{int(cfg.BitsStored)}),
		mustNewElement(tag.HighBit, []int{int(cfg.HighBit)}),
		mustNewElement(tag.PixelRepresentation, []int{int(cfg.PixelRepresentation)}),
		mustNewElement(tag.SamplesPerPixel, []int{1}),
		mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
	}
}

// paramsForSlice rebuilds the modality parameters a slice was acquired with.
func paramsForSlice(gen modalities.Generator, slice series.SliceMetadata) modalities.SeriesParams {
	p := modalities.SeriesParams{
		Modality:         gen.Modality(),
		Scanner:          gen.Scanners()[0],
		Protocol:         gen.Protocols()[0],
		PixelSpacing:     slice.PixelSpacingMM,
		SliceThickness:   slice.SliceThicknessMM,
		RescaleIntercept: -1024,
		RescaleSlope:     1,
	}
	p.Protocol.EchoTime = slice.EchoTimeMS
	p.Protocol.RepetitionTime = slice.RepetitionTimeMS
	p.Protocol.FlipAngle = slice.FlipAngleDeg
	p.Protocol.WindowCenter = slice.WindowCenter
	p.Protocol.WindowWidth = slice.WindowWidth
	return p
}

// mustNewElement creates a new DICOM element, panicking on error.
func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}

// floatToDS converts a float64 to a DICOM Decimal String.
func floatToDS(f float64) string {
	return fmt.Sprintf("%.6g", f)
}
