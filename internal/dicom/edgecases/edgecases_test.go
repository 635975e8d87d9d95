package edgecases

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/mrsinham/sliceview/internal/series"
	"github.com/suyashkumar/dicom/pkg/tag"
)

func TestParseTypes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"special-chars", 1, false},
		{"special-chars, missing-tags", 2, false},
		{"all", 3, false},
		{"long-names", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			types, err := ParseTypes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTypes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if len(types) != tt.want {
				t.Errorf("Expected %d types, got %d", tt.want, len(types))
			}
		})
	}
}

func TestSpecialCharName_Format(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	for i := 0; i < 50; i++ {
		name := SpecialCharName(rng)
		if len(strings.Split(name, "^")) != 2 {
			t.Fatalf("Expected FAMILY^GIVEN, got %s", name)
		}
	}
}

func TestVariedPatientID_FitsLO(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 100; i++ {
		id := VariedPatientID(rng)
		if id == "" || len(id) > 64 {
			t.Fatalf("Expected a 1-64 character ID, got %q", id)
		}
	}
}

func TestApplicator_Study(t *testing.T) {
	study := series.Study{PatientName: "DOE^JANE", PatientID: "PID000001"}

	a := NewApplicator(Config{Types: []Type{VariedIDs}}, rand.New(rand.NewPCG(3, 3)))
	got := a.ApplyToStudy(study)
	if got.PatientName != "DOE^JANE" {
		t.Errorf("Expected name untouched, got %s", got.PatientName)
	}
	if got.PatientID == "PID000001" {
		t.Error("Expected patient ID to be varied")
	}

	a = NewApplicator(Config{Types: []Type{SpecialChars}}, rand.New(rand.NewPCG(3, 3)))
	if got := a.ApplyToStudy(study); got.PatientName == "DOE^JANE" {
		t.Error("Expected patient name to be varied")
	}
}

func TestApplicator_TagsToOmit(t *testing.T) {
	a := NewApplicator(Config{Types: []Type{SpecialChars}}, rand.New(rand.NewPCG(5, 5)))
	if omit := a.TagsToOmit(); omit != nil {
		t.Errorf("Expected no omitted tags without missing-tags, got %v", omit)
	}

	a = NewApplicator(Config{Types: []Type{MissingTags}}, rand.New(rand.NewPCG(5, 5)))
	for i := 0; i < 20; i++ {
		omit := a.TagsToOmit()
		if len(omit) == 0 {
			t.Fatal("Expected at least one omitted tag")
		}
		// window center and width always leave together
		hasCenter, hasWidth := false, false
		for _, tg := range omit {
			hasCenter = hasCenter || tg == tag.WindowCenter
			hasWidth = hasWidth || tg == tag.WindowWidth
		}
		if hasCenter != hasWidth {
			t.Errorf("Expected window tags omitted together, got %v", omit)
		}
	}
}
