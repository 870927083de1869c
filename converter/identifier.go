package converter

import "regexp"

// Legal identifier characters are letters, digits, underscore, and period,
// with the extra restriction that periods may not repeat.
var (
	illegalIdentifierRuns = regexp.MustCompile(`[^A-Za-z0-9_.]+|\.{2,}`)
	illegalFirstCharacter = regexp.MustCompile(`^[^A-Za-z_]`)
)

// SanitizeIdentifier turns arbitrary text into a legal symbolic identifier.
// Every maximal run of illegal characters, and every run of two or more
// consecutive periods, collapses to a single underscore. If the original
// text does not start with a letter or underscore, an underscore is
// prepended.
//
// Example: "My File!.txt" -> "My_File_.txt"
// Example: "3Setup" -> "_3Setup"
func SanitizeIdentifier(name string) string {
	id := illegalIdentifierRuns.ReplaceAllString(name, "_")
	if illegalFirstCharacter.MatchString(name) {
		id = "_" + id
	}
	return id
}
