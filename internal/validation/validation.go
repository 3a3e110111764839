package validation

import (
	"regexp"
	"strings"
)

// MaxQueriesPerRequest bounds how many series one API call may request.
const MaxQueriesPerRequest = 50

// countyFIPSPattern matches a 5-digit county FIPS code.
var countyFIPSPattern = regexp.MustCompile(`^[0-9]{5}$`)

// stateFIPSPattern matches a 1- or 2-digit state FIPS code.
var stateFIPSPattern = regexp.MustCompile(`^[0-9]{1,2}$`)

// ValidateCountyFIPS checks the 5-digit county FIPS format.
func ValidateCountyFIPS(code string) bool {
	return countyFIPSPattern.MatchString(code)
}

// ValidateStateFIPS checks the state FIPS format (zero-padding is applied
// during resolution).
func ValidateStateFIPS(code string) bool {
	return stateFIPSPattern.MatchString(code)
}

// ValidateYearRange checks that a requested year range is ordered and within
// plausible publication bounds. Zero values mean "use defaults" and pass.
func ValidateYearRange(startYear, endYear int) (bool, string) {
	if startYear == 0 && endYear == 0 {
		return true, ""
	}
	if startYear < 0 || endYear < 0 {
		return false, "years must be positive"
	}
	if startYear != 0 && (startYear < 1900 || startYear > 2100) {
		return false, "start_year out of range"
	}
	if endYear != 0 && (endYear < 1900 || endYear > 2100) {
		return false, "end_year out of range"
	}
	if startYear != 0 && endYear != 0 && startYear > endYear {
		return false, "start_year must not be after end_year"
	}
	return true, ""
}

// NormalizeKey lowercases and trims an indicator or measure key so lookups
// are case-insensitive.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
