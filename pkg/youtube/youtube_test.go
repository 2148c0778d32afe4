package youtube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
)

func TestSearchWithoutKey(t *testing.T) {
	c := NewClient("", logging.NewTestLogger())

	_, err := c.Search(context.Background(), "ultrasonic testing")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = c.Details(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestIsEducational(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        bool
	}{
		{
			name:  "tutorial with nde terms",
			title: "Ultrasonic Testing Tutorial for Beginners",
			want:  true,
		},
		{
			name:        "educational term only in description",
			title:       "Weld Inspection",
			description: "A training course on magnetic particle methods",
			want:        true,
		},
		{
			name:  "educational but not nde",
			title: "How to bake bread - complete guide",
			want:  false,
		},
		{
			name:  "nde but not educational",
			title: "Radiographic equipment unboxing vlog",
			want:  false,
		},
		{
			name: "neither",
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsEducational(tc.title, tc.description))
		})
	}
}
