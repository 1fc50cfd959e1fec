package nmea

// applyGLL merges a $GPGLL (geographic position) sentence.
//
//	1/2: latitude, N/S   3/4: longitude, E/W   5: UTC time
//
// Same hemisphere sign convention as GGA. On short sentences the time
// token can be the last field and still carry the *checksum suffix.
func (e *Engine) applyGLL(fields []string) bool {
	if len(fields) < 6 {
		return false
	}
	if lat, ok := CoordinateToDecimal(fields[1]); ok {
		if fields[2] == "S" {
			lat = -lat
		}
		e.fix.Latitude = &lat
	}
	if lon, ok := CoordinateToDecimal(fields[3]); ok {
		if fields[4] == "W" {
			lon = -lon
		}
		e.fix.Longitude = &lon
	}
	if t := stripChecksum(fields[5]); t != "" {
		e.fix.Timestamp = t
	}
	return true
}
