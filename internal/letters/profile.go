// internal/letters/profile.go
//
// Letter-frequency profiles used to decide which dictionary words can be
// spelled from the letters of a master word.
//
// A Profile counts occurrences of A–Z, case-insensitively. Anything that is
// not an ASCII letter is ignored.

package letters

// Alphabet is the number of tracked letters (A–Z).
const Alphabet = 26

// Profile is a per-letter occurrence count indexed 0 (A) .. 25 (Z).
type Profile [Alphabet]int

// Of returns the letter profile of word.
func Of(word string) Profile {
	var p Profile
	for i := 0; i < len(word); i++ {
		if j := idx(word[i]); j >= 0 {
			p[j]++
		}
	}
	return p
}

// SubsetOf reports whether every letter count in p is at most the matching
// count in of, i.e. p's word can be spelled from of's letters.
func (p Profile) SubsetOf(of Profile) bool {
	for i := 0; i < Alphabet; i++ {
		if p[i] > of[i] {
			return false
		}
	}
	return true
}

// idx maps an ASCII letter of either case to 0..25, or -1.
func idx(c byte) int {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	}
	return -1
}
