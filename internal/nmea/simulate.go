// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea

import (
	"fmt"
	"math"
	"time"
)

// Simulator generates plausible NMEA sentences for a slowly wandering
// position, for bring-up and demos without a receiver attached. The
// sentences carry real checksums and exercise the same decode path as
// live serial data.
type Simulator struct {
	start time.Time
	now   func() time.Time
}

func NewSimulator() *Simulator {
	return &Simulator{start: time.Now(), now: time.Now}
}

// Next returns the next batch of sentences, one of each supported type.
func (s *Simulator) Next() []string {
	now := s.now()
	elapsed := now.Sub(s.start).Seconds()
	t := now.UTC().Format("150405")

	latMin := 7.038 + 0.5*math.Sin(elapsed/30)
	lonMin := 31.0 + 0.5*math.Cos(elapsed/30)
	lat := fmt.Sprintf("48%07.4f", latMin)  // ddmm.mmmm
	lon := fmt.Sprintf("011%07.4f", lonMin) // dddmm.mmmm
	knots := 5.0 + 2.0*math.Sin(elapsed/10)
	course := math.Mod(elapsed*3, 360)
	alt := 545.4 + 5.0*math.Sin(elapsed/60)

	return []string{
		sentence(fmt.Sprintf("GPGGA,%s,%s,N,%s,E,1,08,0.9,%.1f,M,46.9,M,,", t, lat, lon, alt)),
		sentence("GPGSA,A,3,04,05,09,12,24,25,29,31,,,,,1.8,0.9,1.5"),
		sentence("GPGSV,2,1,08,04,77,023,44,05,52,201,39,09,15,120,31,12,34,310,28"),
		sentence("GPGSV,2,2,08,24,08,045,22,25,63,284,41,29,41,157,35,31,22,339,30"),
		sentence(fmt.Sprintf("GPGLL,%s,N,%s,E,%s,A", lat, lon, t)),
		sentence(fmt.Sprintf("GPRMC,%s,A,%s,N,%s,E,%05.1f,%05.1f,230394,003.1,W", t, lat, lon, knots, course)),
		sentence(fmt.Sprintf("GPVTG,%05.1f,T,034.4,M,%05.1f,N,%06.2f,K,A", course, knots, KnotsToKmh(knots))),
	}
}

func sentence(payload string) string {
	framed := "$" + payload
	return framed + "*" + Checksum(framed)
}
