package edgecases

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

var specialGivenNames = []string{
	"Jean-Pierre", "François", "José", "Søren", "Łukasz", "Jürgen",
	"Marie-Claire", "Éléonore", "María", "Siân", "Zoë", "Hélène",
}

var specialFamilyNames = []string{
	"Müller-Schmidt", "O'Connor", "D'Agostino", "García-López",
	"Østergaard", "Çelik", "Škvorecký", "Pérez-Rodríguez",
}

// SpecialCharName returns a DICOM person name with accents, hyphens or
// apostrophes.
func SpecialCharName(rng *rand.Rand) string {
	return specialFamilyNames[rng.IntN(len(specialFamilyNames))] + "^" +
		specialGivenNames[rng.IntN(len(specialGivenNames))]
}

// VariedPatientID returns a patient ID in one of several site formats:
// dashed, interleaved letters, embedded spaces or mixed.
func VariedPatientID(rng *rand.Rand) string {
	switch rng.IntN(4) {
	case 0:
		return fmt.Sprintf("%03d-%03d-%03d", rng.IntN(1000), rng.IntN(1000), rng.IntN(1000))
	case 1:
		const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		var sb strings.Builder
		for i := 0; i < 10; i++ {
			if i%2 == 0 {
				sb.WriteByte(letters[rng.IntN(len(letters))])
			} else {
				sb.WriteByte('0' + byte(rng.IntN(10)))
			}
		}
		return sb.String()
	case 2:
		return fmt.Sprintf("PAT %05d %02d", rng.IntN(100000), rng.IntN(100))
	default:
		return fmt.Sprintf("PT-%04d-%c%c %03d",
			rng.IntN(10000), 'A'+byte(rng.IntN(26)), 'A'+byte(rng.IntN(26)), rng.IntN(1000))
	}
}
