package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "duplicates survive for tallying",
			in:   []string{"Fantasy", "to-read", "Fantasy"},
			want: []string{"fantasy", "fantasy"},
		},
		{
			name: "formats and shelves dropped",
			in:   []string{"Kindle", "Science Fiction", "Audiobook", "Currently Reading", "Classics"},
			want: []string{"science fiction", "classics"},
		},
		{
			name: "whitespace and empty tags",
			in:   []string{"  Horror ", "", "   "},
			want: []string{"horror"},
		},
		{
			name: "nothing left",
			in:   []string{"Owned", "Favorites"},
			want: []string{},
		},
		{
			name: "nil input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestClean_NoStopwordSurvives(t *testing.T) {
	// Feed every stopword back through Clean in mixed casing.
	var tags []string
	for _, w := range Stoplist() {
		tags = append(tags, w, "  "+w+"  ")
	}
	tags = append(tags, "Mystery")

	cleaned := Clean(tags)
	for _, tag := range cleaned {
		assert.False(t, IsStopword(tag), "stopword %q survived", tag)
	}
	assert.Equal(t, []string{"mystery"}, cleaned)
}

func TestNormalize_UnicodeForms(t *testing.T) {
	composed := "Fantas\u00eda"
	decomposed := "Fantasi\u0301a"

	assert.Equal(t, Normalize(composed), Normalize(decomposed))
}

func TestIsStopword_SpaceOrHyphen(t *testing.T) {
	assert.True(t, IsStopword("to read"))
	assert.True(t, IsStopword("to-read"))
	assert.False(t, IsStopword("young adult"))
}
