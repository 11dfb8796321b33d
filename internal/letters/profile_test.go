package letters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	p := Of("Banana!")
	assert.Equal(t, 3, p[0], "a")
	assert.Equal(t, 1, p[1], "b")
	assert.Equal(t, 2, p['n'-'a'], "n")
}

func TestOfIgnoresNonLetters(t *testing.T) {
	assert.Equal(t, Profile{}, Of("123 -_\r\n"))
}

func TestSubsetOf(t *testing.T) {
	tests := []struct {
		word, master string
		want         bool
	}{
		{"cat", "cats", true},
		{"act", "cats", true},
		{"cats", "cats", true},
		{"CAT", "cats", true},
		{"dog", "cats", false},
		{"tact", "cats", false}, // needs two t's
		{"", "cats", true},
		{"cats", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.word+"/"+tt.master, func(t *testing.T) {
			assert.Equal(t, tt.want, Of(tt.word).SubsetOf(Of(tt.master)))
		})
	}
}

func TestSubsetOfMatchesPerLetterCounts(t *testing.T) {
	words := []string{"alert", "alter", "later", "rattle", "tale", "teal", "ratel", "letter", "a", "zz"}
	master := "alterate"
	m := Of(master)
	for _, w := range words {
		p := Of(w)
		want := true
		for i := 0; i < Alphabet; i++ {
			if p[i] > m[i] {
				want = false
			}
		}
		assert.Equal(t, want, p.SubsetOf(m), w)
	}
}
