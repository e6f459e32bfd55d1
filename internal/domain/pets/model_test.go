package pets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTags_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		tags []string
	}{
		{"empty", []string{}},
		{"simple", []string{"a", "b"}},
		{"single", []string{"friendly"}},
		{"with spaces", []string{"needs meds", "outdoor cat"}},
		{"with delimiter", []string{"a,b", "c"}},
		{"with backslash", []string{`a\b`, `c\,d`}},
		{"empty tag", []string{"", "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := EncodeTags(tc.tags)
			assert.Equal(t, tc.tags, DecodeTags(encoded))
		})
	}
}

func TestEncodeTags_Plain(t *testing.T) {
	assert.Equal(t, "a,b", EncodeTags([]string{"a", "b"}))
	assert.Equal(t, "", EncodeTags(nil))
}

func TestDecodeTags_Empty(t *testing.T) {
	assert.Equal(t, []string{}, DecodeTags(""))
}
