package passgen

import (
	"strings"
	"testing"
	"unicode"
)

func TestGenerate_Length(t *testing.T) {
	for _, length := range []int{4, 16, 64} {
		config := DefaultConfig()
		config.Length = length

		g, err := NewGenerator(config)
		if err != nil {
			t.Fatalf("NewGenerator() failed: %v", err)
		}
		password, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() failed: %v", err)
		}
		if len(password) != length {
			t.Errorf("len(password) = %d, want %d", len(password), length)
		}
	}
}

func TestGenerate_CoversEnabledClasses(t *testing.T) {
	g, err := NewGenerator(DefaultConfig())
	if err != nil {
		t.Fatalf("NewGenerator() failed: %v", err)
	}

	// Class coverage is guaranteed, not probabilistic, so a small
	// sample suffices.
	for i := 0; i < 20; i++ {
		password, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() failed: %v", err)
		}

		var hasUpper, hasLower, hasDigit, hasSpecial bool
		for _, c := range password {
			switch {
			case unicode.IsUpper(c):
				hasUpper = true
			case unicode.IsLower(c):
				hasLower = true
			case unicode.IsDigit(c):
				hasDigit = true
			default:
				hasSpecial = true
			}
		}
		if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
			t.Errorf("password %q missing a required class", password)
		}
	}
}

func TestGenerate_RestrictedClasses(t *testing.T) {
	config := Config{Length: 12, Digits: true}
	g, err := NewGenerator(config)
	if err != nil {
		t.Fatalf("NewGenerator() failed: %v", err)
	}

	password, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	for _, c := range password {
		if !unicode.IsDigit(c) {
			t.Fatalf("password %q contains non-digit %q", password, c)
		}
	}
}

func TestGenerate_ExcludeAmbiguous(t *testing.T) {
	config := DefaultConfig()
	config.ExcludeAmbiguous = true

	g, err := NewGenerator(config)
	if err != nil {
		t.Fatalf("NewGenerator() failed: %v", err)
	}

	for i := 0; i < 20; i++ {
		password, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() failed: %v", err)
		}
		if strings.ContainsAny(password, "l1IO0") {
			t.Errorf("password %q contains an ambiguous character", password)
		}
	}
}

func TestNewGenerator_Invalid(t *testing.T) {
	if _, err := NewGenerator(Config{Length: 0, Lowercase: true}); err == nil {
		t.Error("zero length accepted")
	}
	if _, err := NewGenerator(Config{Length: 16}); err == nil {
		t.Error("empty charset accepted")
	}
	if _, err := NewGenerator(Config{Length: 2, Lowercase: true, Uppercase: true, Digits: true, Special: true}); err == nil {
		t.Error("length below class count accepted")
	}
}

func TestGenerateMultiple(t *testing.T) {
	g, err := NewGenerator(DefaultConfig())
	if err != nil {
		t.Fatalf("NewGenerator() failed: %v", err)
	}

	passwords, err := g.GenerateMultiple(5)
	if err != nil {
		t.Fatalf("GenerateMultiple() failed: %v", err)
	}
	if len(passwords) != 5 {
		t.Fatalf("len(passwords) = %d, want 5", len(passwords))
	}

	seen := make(map[string]bool)
	for _, p := range passwords {
		if seen[p] {
			t.Errorf("duplicate password %q", p)
		}
		seen[p] = true
	}

	if _, err := g.GenerateMultiple(0); err == nil {
		t.Error("zero count accepted")
	}
}

func TestGeneratePassphrase(t *testing.T) {
	phrase, err := GeneratePassphrase(4, "-")
	if err != nil {
		t.Fatalf("GeneratePassphrase() failed: %v", err)
	}

	parts := strings.Split(phrase, "-")
	if len(parts) != 5 {
		t.Fatalf("len(parts) = %d, want 4 words + suffix", len(parts))
	}
	for _, word := range parts[:4] {
		if word == "" || !unicode.IsUpper(rune(word[0])) {
			t.Errorf("word %q is not capitalized", word)
		}
	}

	suffix := parts[4]
	for _, c := range suffix {
		if !unicode.IsDigit(c) {
			t.Errorf("suffix %q is not numeric", suffix)
		}
	}

	if _, err := GeneratePassphrase(0, "-"); err == nil {
		t.Error("zero word count accepted")
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		password string
		score    int
		rating   Rating
	}{
		{"abc", 1, RatingVeryWeak},
		{"abcdefgh", 2, RatingVeryWeak},
		{"Abcdefg1", 4, RatingWeak},
		{"Abcdefg1!}pq", 7, RatingStrong},
		{"Abcdefg1!}pqrstu", 8, RatingVeryStrong},
		{"aB3!aB3!aB3!", 7, RatingStrong},
	}

	for _, tt := range tests {
		a := Analyze(tt.password)
		if a.Score != tt.score {
			t.Errorf("Analyze(%q).Score = %d, want %d", tt.password, a.Score, tt.score)
		}
		if a.Rating != tt.rating {
			t.Errorf("Analyze(%q).Rating = %q, want %q", tt.password, a.Rating, tt.rating)
		}
	}
}

func TestAnalyze_ClassFlags(t *testing.T) {
	a := Analyze("aA1!")
	if !a.HasLowercase || !a.HasUppercase || !a.HasDigit || !a.HasSpecial {
		t.Errorf("Analyze(\"aA1!\") flags = %+v, want all true", a)
	}

	a = Analyze("0000")
	if a.HasLowercase || a.HasUppercase || !a.HasDigit || a.HasSpecial {
		t.Errorf("Analyze(\"0000\") flags = %+v, want only digits", a)
	}
}
