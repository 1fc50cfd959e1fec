package nmea

import (
	"fmt"
	"strings"
)

// Checksum computes the NMEA-0183 checksum of a sentence: the XOR of all
// byte values strictly between the leading '$' and the '*' delimiter (or
// the end of the sentence when no '*' is present), rendered as two
// uppercase hex digits.
func Checksum(sentence string) string {
	var sum byte
	for i := 1; i < len(sentence); i++ {
		if sentence[i] == '*' {
			break
		}
		sum ^= sentence[i]
	}
	return fmt.Sprintf("%02X", sum)
}

// ValidChecksum reports whether the hex digits after the '*' delimiter
// match the computed checksum. The sentence must contain exactly one '*';
// the comparison is case-insensitive. Sentences without a '*' are not
// valid here; the engine treats those as "checksum absent" and lets them
// through without calling this.
func ValidChecksum(sentence string) bool {
	parts := strings.Split(sentence, "*")
	if len(parts) != 2 {
		return false
	}
	received := strings.ToUpper(strings.TrimSpace(parts[1]))
	return received == Checksum(sentence)
}
