package nmea

// applyGSV merges one $GPGSV (satellites in view) sentence of a
// multi-message group.
//
//	1: messages in group   2: message number   3: satellites visible
//	4+4i .. 7+4i: satellite ID, elevation (deg), azimuth (deg), SNR (dB),
//	              up to four slots per sentence
//
// Message number 1 starts a new group: the visible count is taken and the
// accumulated in-view list is rebuilt from scratch. Later messages append
// in arrival order; groups are not reordered. Non-numeric per-satellite
// sub-fields default to 0 rather than failing the sentence, and the last
// SNR may carry the *checksum suffix.
func (e *Engine) applyGSV(fields []string) bool {
	if len(fields) < 4 {
		return false
	}
	msgNum, _ := parseInt(fields[2])
	if msgNum == 1 {
		if visible, ok := parseInt(fields[3]); ok {
			e.fix.SatellitesVisible = &visible
		}
		e.fix.SatellitesInView = e.fix.SatellitesInView[:0]
	}
	for i := 0; i < 4; i++ {
		idx := 4 + i*4
		if idx >= len(fields) || fields[idx] == "" {
			continue
		}
		sat := Satellite{ID: stripChecksum(fields[idx])}
		if idx+1 < len(fields) {
			sat.ElevationDeg, _ = parseInt(fields[idx+1])
		}
		if idx+2 < len(fields) {
			sat.AzimuthDeg, _ = parseInt(fields[idx+2])
		}
		if idx+3 < len(fields) {
			sat.SNRDb, _ = parseInt(stripChecksum(fields[idx+3]))
		}
		e.fix.SatellitesInView = append(e.fix.SatellitesInView, sat)
	}
	return true
}
