package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionsCoverCoreCategories(t *testing.T) {
	sugg := Suggestions()
	require.NotEmpty(t, sugg)

	categories := make(map[string]bool)
	for _, s := range sugg {
		categories[s.Category] = true
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Standards)
	}
	assert.True(t, categories["Method Selection"])
	assert.True(t, categories["Safety"])
}

func TestSearchStandardsRanking(t *testing.T) {
	results := SearchStandards("ultrasonic")
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 10)

	// High-relevance hits come before medium ones.
	seenMedium := false
	for _, r := range results {
		if r.Relevance == "medium" {
			seenMedium = true
		}
		if seenMedium {
			assert.NotEqual(t, "high", r.Relevance)
		}
	}
}

func TestSearchStandardsByCode(t *testing.T) {
	results := SearchStandards("E709")
	require.NotEmpty(t, results)
	assert.Equal(t, "high", results[0].Relevance)
	assert.Equal(t, "ASTM", results[0].Organization)
	assert.Equal(t, "E709", results[0].Code)
}

func TestSearchStandardsEmptyQuery(t *testing.T) {
	assert.Nil(t, SearchStandards("   "))
}

func TestSearchStandardsNoMatch(t *testing.T) {
	assert.Empty(t, SearchStandards("zzzznothing"))
}

func TestMethodDetails(t *testing.T) {
	name, m, ok := MethodDetails("eddy current")
	require.True(t, ok)
	assert.Equal(t, "Eddy Current Testing (ET)", name)
	assert.NotEmpty(t, m.Applications)

	_, _, ok = MethodDetails("quantum testing")
	assert.False(t, ok)
}

func TestDefectInterpretation(t *testing.T) {
	guide, ok := DefectInterpretation("  Crack ")
	require.True(t, ok)
	assert.Contains(t, guide.DetectionMethods, "UT")

	_, ok = DefectInterpretation("discoloration")
	assert.False(t, ok)
}

func TestInspectionPlanPrompt(t *testing.T) {
	prompt := InspectionPlanPrompt("pressure vessel", "carbon steel", "25mm", "high temperature")
	assert.Contains(t, prompt, "pressure vessel")
	assert.Contains(t, prompt, "carbon steel")
	assert.Contains(t, prompt, "25mm")
	assert.Contains(t, prompt, "Acceptance criteria")
}
