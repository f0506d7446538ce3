package composite

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/stretchr/testify/assert"
)

func allTypes() []domain.ProjectType {
	out := make([]domain.ProjectType, 0, len(domain.ProjectTypes))
	for _, info := range domain.ProjectTypes {
		out = append(out, info.Type)
	}
	return out
}

func TestColor_SingleTypeIsBaseColor(t *testing.T) {
	for _, info := range domain.ProjectTypes {
		assert.Equal(t, info.Color, Color([]domain.ProjectType{info.Type}), info.Type)
		assert.Equal(t, info.Color, Color([]domain.ProjectType{info.Type, info.Type, info.Type}), "duplicates of %s", info.Type)
	}
}

func TestColor_MaintenanceAndInstallationBlend(t *testing.T) {
	got := Color([]domain.ProjectType{domain.TypeMaintenance, domain.TypeInstallation})
	assert.Equal(t, "#8b5cf6", got)
}

func TestColor_PairIsSymmetric(t *testing.T) {
	types := allTypes()
	for _, a := range types {
		for _, b := range types {
			assert.Equal(t,
				Color([]domain.ProjectType{a, b}),
				Color([]domain.ProjectType{b, a}),
				"%s/%s", a, b)
		}
	}
}

func TestColor_EveryPairHasBlend(t *testing.T) {
	types := allTypes()
	for i, a := range types {
		for _, b := range types[i+1:] {
			assert.NotEqual(t, Neutral, Color([]domain.ProjectType{a, b}), "%s/%s", a, b)
		}
	}
	assert.Len(t, Blends(), 15)
}

func TestColor_ThreeOrMoreFallsBackToNeutral(t *testing.T) {
	got := Color([]domain.ProjectType{domain.TypeMaintenance, domain.TypeInstallation, domain.TypeSafety})
	assert.Equal(t, Neutral, got)
}

func TestColor_UnknownAndEmpty(t *testing.T) {
	assert.Equal(t, Neutral, Color(nil))
	assert.Equal(t, Neutral, Color([]domain.ProjectType{"painting"}))
	assert.Equal(t, Neutral, Color([]domain.ProjectType{"painting", domain.TypeSafety}))
}

// TestColor_PermutationInvariant shuffles random multisets of tags and
// checks the colour never changes.
func TestColor_PermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	types := allTypes()

	for trial := 0; trial < 300; trial++ {
		n := rng.Intn(6) + 1
		input := make([]domain.ProjectType, n)
		for i := range input {
			input[i] = types[rng.Intn(len(types))]
		}
		want := Color(input)

		shuffled := append([]domain.ProjectType(nil), input...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, Color(shuffled), "trial %d: %v vs %v", trial, input, shuffled)
	}
}

func TestKeyString_SortedAndDeduplicated(t *testing.T) {
	got := KeyString([]domain.ProjectType{domain.TypeSafety, domain.TypeMaintenance, domain.TypeSafety})
	assert.Equal(t, "maintenance,safety", got)
}
