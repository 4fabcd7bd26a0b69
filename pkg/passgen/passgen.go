// Package passgen generates passwords and passphrases using the
// platform's cryptographic random source, and analyzes password
// strength.
package passgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"

	// DefaultSpecial is the special-character set used when no
	// custom set is configured.
	DefaultSpecial = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// ambiguous characters are visually confusable and excluded on
	// request (lowercase L, one, uppercase I and O, zero).
	ambiguous = "l1IO0"
)

// Config controls password generation.
type Config struct {
	Length           int
	Uppercase        bool
	Lowercase        bool
	Digits           bool
	Special          bool
	ExcludeAmbiguous bool
	CustomSpecial    string
}

// DefaultConfig enables every character class with a 16-character
// length.
func DefaultConfig() Config {
	return Config{
		Length:    16,
		Uppercase: true,
		Lowercase: true,
		Digits:    true,
		Special:   true,
	}
}

// Generator produces passwords for a fixed configuration.
type Generator struct {
	config  Config
	classes []string // enabled classes, each guaranteed one character
	charset string
}

// NewGenerator validates the configuration and builds the working
// character set.
func NewGenerator(config Config) (*Generator, error) {
	if config.Length < 1 {
		return nil, fmt.Errorf("password length must be at least 1, got %d", config.Length)
	}

	var classes []string
	if config.Lowercase {
		classes = append(classes, lowercase)
	}
	if config.Uppercase {
		classes = append(classes, uppercase)
	}
	if config.Digits {
		classes = append(classes, digits)
	}
	if config.Special {
		special := config.CustomSpecial
		if special == "" {
			special = DefaultSpecial
		}
		classes = append(classes, special)
	}

	if config.ExcludeAmbiguous {
		filtered := classes[:0]
		for _, class := range classes {
			class = stripAmbiguous(class)
			if class != "" {
				filtered = append(filtered, class)
			}
		}
		classes = filtered
	}

	if len(classes) == 0 {
		return nil, fmt.Errorf("at least one character class must be enabled")
	}
	if config.Length < len(classes) {
		return nil, fmt.Errorf("length %d cannot cover %d enabled character classes", config.Length, len(classes))
	}

	return &Generator{
		config:  config,
		classes: classes,
		charset: strings.Join(classes, ""),
	}, nil
}

// Generate produces one password. Every enabled character class is
// represented at least once.
func (g *Generator) Generate() (string, error) {
	chars := make([]byte, 0, g.config.Length)

	// One mandatory character per class.
	for _, class := range g.classes {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	for len(chars) < g.config.Length {
		c, err := pick(g.charset)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	if err := shuffle(chars); err != nil {
		return "", err
	}
	return string(chars), nil
}

// GenerateMultiple produces count independent passwords.
func (g *Generator) GenerateMultiple(count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", count)
	}
	passwords := make([]string, count)
	for i := range passwords {
		p, err := g.Generate()
		if err != nil {
			return nil, err
		}
		passwords[i] = p
	}
	return passwords, nil
}

func stripAmbiguous(class string) string {
	var sb strings.Builder
	for _, c := range class {
		if !strings.ContainsRune(ambiguous, c) {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// pick selects one byte from set uniformly at random.
func pick(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, fmt.Errorf("random source failed: %w", err)
	}
	return set[n.Int64()], nil
}

// shuffle performs a Fisher-Yates shuffle with crypto/rand so the
// mandatory class characters do not cluster at the front.
func shuffle(chars []byte) error {
	for i := len(chars) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("random source failed: %w", err)
		}
		j := n.Int64()
		chars[i], chars[j] = chars[j], chars[i]
	}
	return nil
}
