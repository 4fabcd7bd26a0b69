package passgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// wordlist backs passphrase generation. Small by design; entropy
// comes from the word count and the numeric suffix.
var wordlist = []string{
	"apple", "banana", "cherry", "dragon", "eagle", "forest",
	"galaxy", "harbor", "island", "jungle", "knight", "lemon",
	"mountain", "nebula", "ocean", "phoenix", "quantum", "river",
	"sunset", "thunder", "unicorn", "volcano", "whisper", "xenon",
	"yellow", "zenith", "anchor", "breeze", "castle", "diamond",
	"ember", "falcon", "glacier", "horizon", "ivory", "jasmine",
	"karma", "lantern", "marble", "neptune", "orbit", "puzzle",
	"quartz", "raven", "silver", "tiger", "ultra", "velvet",
	"willow", "xray", "yoga", "zephyr",
}

// GeneratePassphrase joins wordCount random capitalized words with
// separator and appends a random two-digit suffix, e.g.
// "Falcon-Marble-Ocean-Zenith-42".
func GeneratePassphrase(wordCount int, separator string) (string, error) {
	if wordCount < 1 {
		return "", fmt.Errorf("word count must be at least 1, got %d", wordCount)
	}

	words := make([]string, wordCount+1)
	for i := 0; i < wordCount; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(wordlist))))
		if err != nil {
			return "", fmt.Errorf("random source failed: %w", err)
		}
		word := wordlist[n.Int64()]
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	suffix, err := rand.Int(rand.Reader, big.NewInt(100))
	if err != nil {
		return "", fmt.Errorf("random source failed: %w", err)
	}
	words[wordCount] = suffix.String()

	return strings.Join(words, separator), nil
}
