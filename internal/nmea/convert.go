package nmea

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoordinateToDecimal converts an NMEA coordinate token in ddmm.mmmm form
// (dddmm.mmmm for longitude) to unsigned decimal degrees, rounded to six
// decimal places. For example "4807.038" -> 48 + 7.038/60 = 48.1173.
// The hemisphere sign is not applied here: callers negate the result for
// S or W. The second return value is false on empty or unparseable input.
func CoordinateToDecimal(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	raw, err := strconv.ParseFloat(token, 64)
	if err != nil || raw < 0 {
		return 0, false
	}
	deg := math.Floor(raw / 100)
	minutes := raw - deg*100
	return math.Round((deg+minutes/60)*1e6) / 1e6, true
}

// KnotsToKmh converts a speed over ground in knots to km/h, rounded to
// two decimal places.
func KnotsToKmh(knots float64) float64 {
	return math.Round(knots*1.852*100) / 100
}

// NoTime is what UTCToLocal returns for tokens it cannot interpret.
const NoTime = "--:--:--"

// UTCToLocal formats an NMEA HHMMSS[.fff] UTC time token as HH:MM:SS in
// a timezone offsetHours ahead of UTC (negative for west of Greenwich).
func UTCToLocal(token string, offsetHours int) string {
	token = strings.TrimSpace(token)
	if dot := strings.IndexByte(token, '.'); dot != -1 {
		token = token[:dot]
	}
	if len(token) != 6 {
		return NoTime
	}
	for i := 0; i < 6; i++ {
		if token[i] < '0' || token[i] > '9' {
			return NoTime
		}
	}
	h, _ := strconv.Atoi(token[0:2])
	m, _ := strconv.Atoi(token[2:4])
	s, _ := strconv.Atoi(token[4:6])
	if h > 23 || m > 59 || s > 59 {
		return NoTime
	}
	h = ((h+offsetHours)%24 + 24) % 24
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// parseFloat is the lenient field parser: empty or garbage tokens yield
// no value, never an error.
func parseFloat(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(token string) (int, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseNonNegative accepts only unsigned decimal numerals: digits with at
// most one '.'. Used by VTG, which must leave a field untouched unless
// the token is a plain non-negative number.
func parseNonNegative(token string) (float64, bool) {
	if token == "" {
		return 0, false
	}
	dots := 0
	for i := 0; i < len(token); i++ {
		switch {
		case token[i] == '.':
			dots++
			if dots > 1 {
				return 0, false
			}
		case token[i] < '0' || token[i] > '9':
			return 0, false
		}
	}
	return parseFloat(token)
}

// stripChecksum drops a trailing *HH from a token. The last field of a
// sentence still carries the checksum suffix because fields are split
// before the checksum is removed.
func stripChecksum(token string) string {
	value, _, _ := strings.Cut(token, "*")
	return value
}
