package nmea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestChecksumEmptyPayload(t *testing.T) {
	assert.Equal(t, "56", Checksum("$GPGGA,,,,,,,,,,,,,,"))
	assert.Equal(t, "56", Checksum("$GPGGA,,,,,,,,,,,,,,*56"))
}

func TestChecksumStopsAtStar(t *testing.T) {
	// Bytes after '*' must not contribute.
	assert.Equal(t, Checksum("$GPGGA,123519*00"), Checksum("$GPGGA,123519*FF"))
}

func TestValidChecksum(t *testing.T) {
	assert.True(t, ValidChecksum("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"))
	assert.True(t, ValidChecksum("$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"))

	// Case-insensitive hex.
	assert.True(t, ValidChecksum("$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6a"))
}

func TestValidChecksumRejects(t *testing.T) {
	// Mismatch.
	assert.False(t, ValidChecksum("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*00"))
	// No delimiter at all: "checksum absent" is the engine's call, not a pass here.
	assert.False(t, ValidChecksum("$GPGGA,123519"))
	// More than one delimiter.
	assert.False(t, ValidChecksum("$GPGGA,12*35*47"))
	// Garbage digits.
	assert.False(t, ValidChecksum("$GPGGA,123519*ZZ"))
}

func TestChecksumRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.StringMatching(`GP[A-Z]{3}(,[0-9A-Za-z.]{0,8}){1,12}`).Draw(t, "payload")
		s := sentence(payload)
		if !ValidChecksum(s) {
			t.Fatalf("round trip failed for %q", s)
		}
	})
}
