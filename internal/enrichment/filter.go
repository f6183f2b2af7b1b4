package enrichment

import (
	"strings"
	"unicode/utf8"
)

// blockedTerms mark results that are not a primary game release. A
// normalized name containing any of them is rejected.
var blockedTerms = []string{
	"dlc",
	"expansion",
	"expansion pack",
	"season pass",
	"soundtrack",
	"ost",
	"bundle",
	"pack",
	"collection",
	"beta",
	"alpha",
	"demo",
	"trailer",
	"episode",
	"chapter",
	"skin",
	"cosmetic",
	"test server",
	"public test",
	"prototype",
	"mod",
	"development",
	"impact",
	"history of",
	"list of",
	"characters of",
	"soundtrack of",
	"music of",
}

// minQueryGuardLen is the normalized query length from which a result must
// contain the query to be accepted.
const minQueryGuardLen = 3

// IsPrimaryCandidate reports whether a result named name looks like the
// primary release a user searching for queryTitle wants.
func IsPrimaryCandidate(name, queryTitle string) bool {
	normalizedName := Normalize(name)
	if containsBlockedTerm(normalizedName) {
		return false
	}

	normalizedQuery := Normalize(queryTitle)
	if utf8.RuneCountInString(normalizedQuery) >= minQueryGuardLen &&
		!strings.Contains(normalizedName, normalizedQuery) {
		return false
	}

	return true
}

// IsVideoGameCategorized reports whether encyclopedia category text places a
// page in a video games category.
func IsVideoGameCategorized(categoryText string) bool {
	return strings.Contains(Normalize(categoryText), "video games")
}

func containsBlockedTerm(normalizedName string) bool {
	for _, term := range blockedTerms {
		if strings.Contains(normalizedName, term) {
			return true
		}
	}
	return false
}
