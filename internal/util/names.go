package util

import (
	"fmt"
	"math/rand/v2"
)

// AnonymizedProbability is the share of synthetic studies whose patient name
// is replaced by an anonymized placeholder, as in studies exported for
// teaching or research.
const AnonymizedProbability = 0.25

var (
	maleFirstNames = []string{
		"James", "John", "Robert", "Michael", "David", "Thomas", "Daniel", "Paul",
		"Pierre", "Nicolas", "Julien", "Antoine", "Hugo", "Louis",
	}
	femaleFirstNames = []string{
		"Mary", "Sarah", "Emily", "Laura", "Anna", "Grace", "Olivia", "Alice",
		"Camille", "Claire", "Léa", "Hélène", "Juliette", "Manon",
	}
	lastNames = []string{
		"Smith", "Johnson", "Brown", "Taylor", "Walker", "Young", "Carter", "Evans",
		"Martin", "Dubois", "Moreau", "Lefebvre", "Fontaine", "Chevalier",
	}
)

// GeneratePatientName draws a patient name for a synthetic study in DICOM
// person-name form, "FAMILY^GIVEN". Sex "M" draws a male given name, anything
// else a female one. Some names come out anonymized as "ANONYMIZED^NNNN".
func GeneratePatientName(sex string, rng *rand.Rand) string {
	if rng.Float64() < AnonymizedProbability {
		return fmt.Sprintf("ANONYMIZED^%04d", rng.IntN(10000))
	}

	given := femaleFirstNames
	if sex == "M" {
		given = maleFirstNames
	}
	return lastNames[rng.IntN(len(lastNames))] + "^" + given[rng.IntN(len(given))]
}
