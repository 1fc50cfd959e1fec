package nmea

// applyRMC merges a $GPRMC (recommended minimum) sentence.
//
//	1: UTC time   7: speed over ground (knots)   8: course (deg)
//
// Speed is converted to km/h on the way in. Speed and course are left
// untouched when their token is empty, not coerced to zero.
func (e *Engine) applyRMC(fields []string) bool {
	if len(fields) < 9 {
		return false
	}
	if fields[1] != "" {
		e.fix.Timestamp = fields[1]
	}
	if knots, ok := parseFloat(fields[7]); ok {
		kmh := KnotsToKmh(knots)
		e.fix.SpeedKmh = &kmh
	}
	if course, ok := parseFloat(stripChecksum(fields[8])); ok {
		e.fix.CourseDeg = &course
	}
	return true
}
