package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDisplayName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts NormalizeOptions
		want string
	}{
		{"defaults", "  Jane Doe ", NormalizeOptions{}, "janedoe"},
		{"keep spaces", " Jane  Doe", NormalizeOptions{KeepSpaces: true}, "jane  doe"},
		{"keep case", "Jane Doe", NormalizeOptions{KeepCase: true}, "JaneDoe"},
		{"strip specials", "Jane_Doe!", NormalizeOptions{RemoveSpecialChars: true}, "janedoe"},
		{"empty", "   ", NormalizeOptions{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDisplayName(tt.in, tt.opts))
		})
	}
}

func TestGenerateUsername(t *testing.T) {
	assert.Equal(t, "@janedoe", GenerateUsername("Jane Doe"))
	assert.Equal(t, "@user", GenerateUsername("  "))
}

func TestMatchesSearch(t *testing.T) {
	assert.True(t, MatchesSearch("  SAFETY tips", "Dating safety tips"))
	assert.True(t, MatchesSearch("red flag", "title", "Spotting a Red Flag early"))
	assert.False(t, MatchesSearch("missing", "title", "body"))
}

func TestValidation(t *testing.T) {
	assert.Error(t, NewPost{Title: "t"}.Validate())
	assert.NoError(t, NewPost{Title: "t", Text: "x", Category: "safety"}.Validate())
	assert.Error(t, NewComment{AuthorID: "u1", Text: "x"}.Validate())
	assert.NoError(t, NewComment{AuthorID: "u1", Text: "x", ProfileID: "p1"}.Validate())
	assert.Error(t, NewMessage{SenderID: "a", RecipientID: "a", Text: "hi"}.Validate())
	assert.Error(t, NewProfile{Name: "x", CreatedBy: "u", Age: -1}.Validate())
}
