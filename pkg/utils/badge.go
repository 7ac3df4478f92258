package utils

import "regexp"

// Badge codes are four alphabetic words joined by hyphens, e.g.
// "give-seven-food-trade".
var badgeCodeRegex = regexp.MustCompile(`^[A-Za-z]+-[A-Za-z]+-[A-Za-z]+-[A-Za-z]+$`)

// ValidateBadgeCode reports whether a badge code has the required
// four-word hyphenated shape.
func ValidateBadgeCode(badgeCode string) bool {
	return badgeCodeRegex.MatchString(badgeCode)
}
