// Package suggest answers "did you mean" queries against Fortuna's
// fixed CLI vocabulary using Levenshtein edit distance.
package suggest

import "github.com/agext/levenshtein"

// Vocabulary is the fixed set of recognized commands and flags. An
// unrecognized token is checked against exactly this list.
var Vocabulary = []string{
	"new", "build", "run", "clean",
	"--lib", "--bin", "--rebuild", "-r", "-j",
}

const maxDistance = 3

// Suggest returns the closest vocabulary word to token and true if
// its edit distance is within the threshold; otherwise "", false.
// An exact match returns the word itself with distance 0.
func Suggest(token string) (string, bool) {
	best := ""
	bestDist := maxDistance + 1

	for _, word := range Vocabulary {
		d := levenshtein.Distance(token, word, nil)
		if d < bestDist {
			bestDist = d
			best = word
		}
	}

	if bestDist <= maxDistance {
		return best, true
	}
	return "", false
}

// Known reports whether token is an exact vocabulary match.
func Known(token string) bool {
	for _, word := range Vocabulary {
		if word == token {
			return true
		}
	}
	return false
}
