package nmea

// applyGGA merges a $GPGGA (GPS fix data) sentence.
//
//	1: UTC time      2/3: latitude, N/S   4/5: longitude, E/W
//	6: fix quality   7: satellites used   9: altitude above MSL (m)
//
// A missing altitude token leaves the field unset, not zero. Tokens that
// fail to parse are skipped individually; the sentence still counts.
func (e *Engine) applyGGA(fields []string) bool {
	if len(fields) < 15 {
		return false
	}
	if fields[1] != "" {
		e.fix.Timestamp = fields[1]
	}
	if lat, ok := CoordinateToDecimal(fields[2]); ok {
		if fields[3] == "S" {
			lat = -lat
		}
		e.fix.Latitude = &lat
	}
	if lon, ok := CoordinateToDecimal(fields[4]); ok {
		if fields[5] == "W" {
			lon = -lon
		}
		e.fix.Longitude = &lon
	}
	if fields[6] != "" {
		e.fix.FixQuality = fields[6]
	}
	if used, ok := parseInt(fields[7]); ok {
		e.fix.SatellitesUsed = &used
	}
	if alt, ok := parseFloat(fields[9]); ok {
		e.fix.AltitudeM = &alt
	}
	return true
}
