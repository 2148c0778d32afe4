package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanForSpeechExpandsAbbreviations(t *testing.T) {
	got := CleanForSpeech("UT and RT are NDE methods")
	assert.Equal(t, "U T and R T are N D E methods", got)
}

func TestCleanForSpeechLeavesEmbeddedLettersAlone(t *testing.T) {
	// Word-boundary match only: "BUTTER" must not become "B U T TER".
	got := CleanForSpeech("BUTTER joint")
	assert.Equal(t, "BUTTER joint", got)
}

func TestCleanForSpeechStripsMarkdown(t *testing.T) {
	got := CleanForSpeech("**Important:** see `code` [here]")
	assert.NotContains(t, got, "*")
	assert.NotContains(t, got, "`")
	assert.NotContains(t, got, "[")
}

func TestCleanForSpeechExpandsUnits(t *testing.T) {
	got := CleanForSpeech("probe at 5 MHz, gain 6 dB")
	assert.Contains(t, got, "megahertz")
	assert.Contains(t, got, "decibels")
}
