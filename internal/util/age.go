package util

// Age brackets are fixed for fair competition. Users outside 6-18 are
// excluded from bracket views but still rank globally.
type AgeBracket struct {
	Key   string
	Label string
	Min   int
	Max   int
}

var AgeBrackets = []AgeBracket{
	{Key: "elementary", Label: "Elementary", Min: 6, Max: 8},
	{Key: "middle", Label: "Middle School", Min: 9, Max: 12},
	{Key: "high", Label: "High School", Min: 13, Max: 18},
}

func BracketByKey(key string) (AgeBracket, bool) {
	for _, b := range AgeBrackets {
		if b.Key == key {
			return b, true
		}
	}
	return AgeBracket{}, false
}

// AgeGroupFor maps an age to the catalog age-group label used by
// adventures ("6-8", "9-12", "13-18"). Ages outside the brackets fall
// into the nearest group so every account gets an adventure track.
func AgeGroupFor(age int) string {
	switch {
	case age <= 8:
		return "6-8"
	case age <= 12:
		return "9-12"
	default:
		return "13-18"
	}
}

// ValidAgeGroup reports whether the label is one of the three
// adventure age groups.
func ValidAgeGroup(group string) bool {
	return group == "6-8" || group == "9-12" || group == "13-18"
}

// AgeFromDateOfBirth derives a whole-year age from a YYYY-MM-DD string
// relative to the given year.
func AgeFromDateOfBirth(dateOfBirth string, currentYear int) int {
	if len(dateOfBirth) < 4 {
		return 0
	}
	year := 0
	for _, ch := range dateOfBirth[:4] {
		if ch < '0' || ch > '9' {
			return 0
		}
		year = year*10 + int(ch-'0')
	}
	return currentYear - year
}
