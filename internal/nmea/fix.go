// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea

// Satellite is one satellite in view, as reported by a GSV group.
type Satellite struct {
	ID           string `json:"id"`
	ElevationDeg int    `json:"elevation_deg"`
	AzimuthDeg   int    `json:"azimuth_deg"`
	SNRDb        int    `json:"snr_db"`
}

// Fix is the fused "current fix" record, suitable for JSON and MQTT.
// Successive sentences mutate it in place; it is never replaced wholesale.
// Pointer fields are optional: nil means the owning sentence type has not
// yet supplied a value. Only GSV resets anything (the in-view list, at the
// start of each group); every other field is overwritten, never cleared.
type Fix struct {
	Timestamp          string      `json:"timestamp,omitempty"` // raw UTC token, HHMMSS[.fff]
	Latitude           *float64    `json:"lat,omitempty"`       // decimal degrees, negative = S
	Longitude          *float64    `json:"lon,omitempty"`       // decimal degrees, negative = W
	AltitudeM          *float64    `json:"altitude_m,omitempty"`
	SpeedKmh           *float64    `json:"speed_kmh,omitempty"`
	CourseDeg          *float64    `json:"course_deg,omitempty"`
	FixQuality         string      `json:"fix_quality,omitempty"` // "0".."8"
	SatellitesUsed     *int        `json:"satellites_used,omitempty"`
	SatellitesVisible  *int        `json:"satellites_visible,omitempty"`
	HDOP               *float64    `json:"hdop,omitempty"`
	PDOP               *float64    `json:"pdop,omitempty"`
	VDOP               *float64    `json:"vdop,omitempty"`
	SatellitesInView   []Satellite `json:"satellites_in_view,omitempty"`
	SentencesProcessed uint64      `json:"sentences_processed"`
}

// Clone returns a deep, independent copy. Snapshots handed to update
// callbacks go through here so a collaborator never observes a merge in
// progress and cannot reach back into the live record.
func (f Fix) Clone() Fix {
	out := f
	out.Latitude = cloneFloat(f.Latitude)
	out.Longitude = cloneFloat(f.Longitude)
	out.AltitudeM = cloneFloat(f.AltitudeM)
	out.SpeedKmh = cloneFloat(f.SpeedKmh)
	out.CourseDeg = cloneFloat(f.CourseDeg)
	out.HDOP = cloneFloat(f.HDOP)
	out.PDOP = cloneFloat(f.PDOP)
	out.VDOP = cloneFloat(f.VDOP)
	out.SatellitesUsed = cloneInt(f.SatellitesUsed)
	out.SatellitesVisible = cloneInt(f.SatellitesVisible)
	if f.SatellitesInView != nil {
		out.SatellitesInView = make([]Satellite, len(f.SatellitesInView))
		copy(out.SatellitesInView, f.SatellitesInView)
	}
	return out
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
