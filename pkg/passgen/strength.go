package passgen

import (
	"strings"
	"unicode"
)

// Rating buckets a strength score.
type Rating string

const (
	RatingVeryWeak   Rating = "very weak"
	RatingWeak       Rating = "weak"
	RatingModerate   Rating = "moderate"
	RatingStrong     Rating = "strong"
	RatingVeryStrong Rating = "very strong"
)

// MaxScore is the highest score Analyze can assign: three length
// milestones, one point per basic class, two for specials.
const MaxScore = 8

// Analysis is the result of a password strength check.
type Analysis struct {
	Length       int    `json:"length"`
	HasUppercase bool   `json:"has_uppercase"`
	HasLowercase bool   `json:"has_lowercase"`
	HasDigit     bool   `json:"has_digit"`
	HasSpecial   bool   `json:"has_special"`
	Score        int    `json:"score"`
	Rating       Rating `json:"rating"`
}

// Analyze scores a password on length milestones (8, 12, 16) and
// character class coverage, with special characters weighted double.
func Analyze(password string) Analysis {
	a := Analysis{Length: len([]rune(password))}

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			a.HasUppercase = true
		case unicode.IsLower(c):
			a.HasLowercase = true
		case unicode.IsDigit(c):
			a.HasDigit = true
		case unicode.IsPunct(c) || unicode.IsSymbol(c) || strings.ContainsRune(DefaultSpecial, c):
			a.HasSpecial = true
		}
	}

	score := 0
	if a.Length >= 8 {
		score++
	}
	if a.Length >= 12 {
		score++
	}
	if a.Length >= 16 {
		score++
	}
	if a.HasUppercase {
		score++
	}
	if a.HasLowercase {
		score++
	}
	if a.HasDigit {
		score++
	}
	if a.HasSpecial {
		score += 2
	}

	a.Score = score
	a.Rating = rate(score)
	return a
}

func rate(score int) Rating {
	switch {
	case score <= 2:
		return RatingVeryWeak
	case score <= 4:
		return RatingWeak
	case score <= 6:
		return RatingModerate
	case score <= 7:
		return RatingStrong
	default:
		return RatingVeryStrong
	}
}
