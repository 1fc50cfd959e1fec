package nmea

import "strings"

// applyGSA merges a $GPGSA (DOP and active satellites) sentence.
//
//	3..14: IDs of the satellites used in the solution
//	15: PDOP   16: HDOP   17: VDOP
//
// Each DOP is assigned independently: an absent one does not block the
// others. VDOP is the last token on the line, so it may still carry the
// *checksum suffix.
func (e *Engine) applyGSA(fields []string) bool {
	if len(fields) < 18 {
		return false
	}
	used := 0
	for _, id := range fields[3:15] {
		if strings.TrimSpace(id) != "" {
			used++
		}
	}
	if used > 0 {
		e.fix.SatellitesUsed = &used
	}
	if pdop, ok := parseFloat(fields[15]); ok {
		e.fix.PDOP = &pdop
	}
	if hdop, ok := parseFloat(fields[16]); ok {
		e.fix.HDOP = &hdop
	}
	if vdop, ok := parseFloat(stripChecksum(fields[17])); ok {
		e.fix.VDOP = &vdop
	}
	return true
}
