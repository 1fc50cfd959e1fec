package nmea

// applyVTG merges a $GPVTG (track made good and ground speed) sentence.
//
//	1: course over ground, true (deg)
//	7: speed over ground (km/h, already converted by the receiver)
//
// A field is assigned only when its token is a plain non-negative decimal
// numeral; anything else leaves the prior value standing.
func (e *Engine) applyVTG(fields []string) bool {
	if len(fields) < 8 {
		return false
	}
	if course, ok := parseNonNegative(fields[1]); ok {
		e.fix.CourseDeg = &course
	}
	if speed, ok := parseNonNegative(stripChecksum(fields[7])); ok {
		e.fix.SpeedKmh = &speed
	}
	return true
}
