package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCloseMisspellingOfRebuild(t *testing.T) {
	word, ok := Suggest("--reubild")
	assert.True(t, ok)
	assert.Equal(t, "--rebuild", word)
}

func TestSuggestFarTokenDoesNotSuggest(t *testing.T) {
	_, ok := Suggest("--xyz123")
	assert.False(t, ok)
}

func TestSuggestExactMatch(t *testing.T) {
	word, ok := Suggest("build")
	assert.True(t, ok)
	assert.Equal(t, "build", word)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("-j"))
	assert.False(t, Known("-z"))
}
