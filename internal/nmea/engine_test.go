package nmea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineGGA(t *testing.T) {
	e := New()
	updated := e.ProcessLine(sentence("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"))
	require.True(t, updated)

	fix := e.Snapshot()
	assert.Equal(t, "123519", fix.Timestamp)
	require.NotNil(t, fix.Latitude)
	assert.InDelta(t, 48.1173, *fix.Latitude, 1e-6)
	require.NotNil(t, fix.Longitude)
	assert.InDelta(t, 11.516667, *fix.Longitude, 1e-6)
	assert.Equal(t, "1", fix.FixQuality)
	require.NotNil(t, fix.SatellitesUsed)
	assert.Equal(t, 8, *fix.SatellitesUsed)
	require.NotNil(t, fix.AltitudeM)
	assert.InDelta(t, 545.4, *fix.AltitudeM, 1e-9)
	assert.Equal(t, uint64(1), fix.SentencesProcessed)
}

func TestEngineGGASouthWest(t *testing.T) {
	e := New()
	require.True(t, e.ProcessLine(sentence("GPGGA,123519,0215.87414,S,07959.84216,W,1,06,1.2,12.3,M,8.1,M,,")))

	fix := e.Snapshot()
	require.NotNil(t, fix.Latitude)
	assert.InDelta(t, -2.264569, *fix.Latitude, 1e-6)
	require.NotNil(t, fix.Longitude)
	assert.InDelta(t, -79.997369, *fix.Longitude, 1e-6)
}

func TestEngineGGAMissingFieldsStayUnset(t *testing.T) {
	e := New()
	require.True(t, e.ProcessLine(sentence("GPGGA,123519,4807.038,N,01131.000,E,1,,0.9,,M,46.9,M,,")))

	fix := e.Snapshot()
	assert.Nil(t, fix.AltitudeM, "missing altitude must stay unset, not zero")
	assert.Nil(t, fix.SatellitesUsed)
	require.NotNil(t, fix.Latitude)
}

func TestEngineVTG(t *testing.T) {
	e := New()
	require.True(t, e.ProcessLine(sentence("GPVTG,054.7,T,034.4,M,005.5,N,010.2,K,A")))

	fix := e.Snapshot()
	require.NotNil(t, fix.CourseDeg)
	assert.InDelta(t, 54.7, *fix.CourseDeg, 1e-9)
	require.NotNil(t, fix.SpeedKmh)
	assert.InDelta(t, 10.2, *fix.SpeedKmh, 1e-9)

	// Non-numeric tokens leave the prior values standing; the sentence
	// still counts.
	require.True(t, e.ProcessLine(sentence("GPVTG,nan,T,034.4,M,005.5,N,-1.0,K,A")))
	fix = e.Snapshot()
	assert.InDelta(t, 54.7, *fix.CourseDeg, 1e-9)
	assert.InDelta(t, 10.2, *fix.SpeedKmh, 1e-9)
	assert.Equal(t, uint64(2), fix.SentencesProcessed)
}

func TestEngineVTGTooShort(t *testing.T) {
	e := New()
	assert.False(t, e.ProcessLine(sentence("GPVTG,054.7,T,034.4,M")))
	assert.Equal(t, uint64(0), e.Snapshot().SentencesProcessed)
}

func TestEngineGSA(t *testing.T) {
	e := New()
	require.True(t, e.ProcessLine(sentence("GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1")))

	fix := e.Snapshot()
	require.NotNil(t, fix.PDOP)
	assert.InDelta(t, 2.5, *fix.PDOP, 1e-9)
	require.NotNil(t, fix.HDOP)
	assert.InDelta(t, 1.3, *fix.HDOP, 1e-9)
	require.NotNil(t, fix.VDOP, "VDOP must parse with the *checksum suffix stripped")
	assert.InDelta(t, 2.1, *fix.VDOP, 1e-9)
	require.NotNil(t, fix.SatellitesUsed)
	assert.Equal(t, 5, *fix.SatellitesUsed)
}

func TestEngineGSADOPsIndependent(t *testing.T) {
	e := New()
	// PDOP and VDOP tokens missing: HDOP must still land.
	require.True(t, e.ProcessLine(sentence("GPGSA,A,2,04,05,,,,,,,,,,,,1.3,")))

	fix := e.Snapshot()
	assert.Nil(t, fix.PDOP)
	require.NotNil(t, fix.HDOP)
	assert.InDelta(t, 1.3, *fix.HDOP, 1e-9)
	assert.Nil(t, fix.VDOP)
}

func TestEngineGSVGroup(t *testing.T) {
	e := New()
	require.True(t, e.ProcessLine(sentence("GPGSV,2,1,08,01,40,083,46,02,17,308,41,12,07,344,39,14,22,228,45")))
	require.True(t, e.ProcessLine(sentence("GPGSV,2,2,08,18,09,113,25,19,36,334,28,22,06,040,17,24,03,060,13")))

	fix := e.Snapshot()
	require.NotNil(t, fix.SatellitesVisible)
	assert.Equal(t, 8, *fix.SatellitesVisible)
	require.Len(t, fix.SatellitesInView, 8)
	assert.Equal(t, Satellite{ID: "01", ElevationDeg: 40, AzimuthDeg: 83, SNRDb: 46}, fix.SatellitesInView[0])
	// Last slot of the second message carries the checksum on its SNR.
	assert.Equal(t, Satellite{ID: "24", ElevationDeg: 3, AzimuthDeg: 60, SNRDb: 13}, fix.SatellitesInView[7])

	// A new group's first message rebuilds the list from scratch.
	require.True(t, e.ProcessLine(sentence("GPGSV,1,1,02,05,52,201,39,09,15,120,31")))
	fix = e.Snapshot()
	require.NotNil(t, fix.SatellitesVisible)
	assert.Equal(t, 2, *fix.SatellitesVisible)
	require.Len(t, fix.SatellitesInView, 2)
	assert.Equal(t, "05", fix.SatellitesInView[0].ID)
}

func TestEngineGSVAppendsWithoutReset(t *testing.T) {
	e := New()
	// A message number other than 1 appends blindly, never clears.
	require.True(t, e.ProcessLine(sentence("GPGSV,2,2,08,18,09,113,25")))
	require.Len(t, e.Snapshot().SatellitesInView, 1)
	assert.Nil(t, e.Snapshot().SatellitesVisible, "visible count only comes from message 1")

	require.True(t, e.ProcessLine(sentence("GPGSV,2,2,08,19,36,334,28")))
	require.Len(t, e.Snapshot().SatellitesInView, 2)
}

func TestEngineGSVNonNumericDefaultsToZero(t *testing.T) {
	e := New()
	require.True(t, e.ProcessLine(sentence("GPGSV,1,1,01,07,xx,,yy")))

	fix := e.Snapshot()
	require.Len(t, fix.SatellitesInView, 1)
	assert.Equal(t, Satellite{ID: "07"}, fix.SatellitesInView[0])
}

func TestEngineGLL(t *testing.T) {
	e := New()
	require.True(t, e.ProcessLine(sentence("GPGLL,4916.45,N,12311.12,W,225444,A")))

	fix := e.Snapshot()
	require.NotNil(t, fix.Latitude)
	assert.InDelta(t, 49.274167, *fix.Latitude, 1e-6)
	require.NotNil(t, fix.Longitude)
	assert.InDelta(t, -123.185333, *fix.Longitude, 1e-6)
	assert.Equal(t, "225444", fix.Timestamp)
}

func TestEngineGLLTimeAsLastField(t *testing.T) {
	e := New()
	// Short form: the time token is the last field and carries the
	// checksum suffix.
	require.True(t, e.ProcessLine(sentence("GPGLL,4916.45,N,12311.12,W,225444")))
	assert.Equal(t, "225444", e.Snapshot().Timestamp)
}

func TestEngineRMC(t *testing.T) {
	e := New()
	require.True(t, e.ProcessLine(sentence("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W")))

	fix := e.Snapshot()
	assert.Equal(t, "123519", fix.Timestamp)
	require.NotNil(t, fix.SpeedKmh)
	assert.InDelta(t, 41.48, *fix.SpeedKmh, 1e-9) // 22.4 kt * 1.852, 2 dp
	require.NotNil(t, fix.CourseDeg)
	assert.InDelta(t, 84.4, *fix.CourseDeg, 1e-9)
}

func TestEngineRMCEmptySpeedCourseUntouched(t *testing.T) {
	e := New()
	require.True(t, e.ProcessLine(sentence("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W")))
	require.True(t, e.ProcessLine(sentence("GPRMC,123520,A,4807.038,N,01131.000,E,,,230394,003.1,W")))

	fix := e.Snapshot()
	assert.Equal(t, "123520", fix.Timestamp)
	require.NotNil(t, fix.SpeedKmh)
	assert.InDelta(t, 41.48, *fix.SpeedKmh, 1e-9)
	require.NotNil(t, fix.CourseDeg)
	assert.InDelta(t, 84.4, *fix.CourseDeg, 1e-9)
}

func TestEngineDropsMalformedInput(t *testing.T) {
	e := New()

	assert.False(t, e.ProcessLine(""))
	assert.False(t, e.ProcessLine("   \r\n"))
	assert.False(t, e.ProcessLine("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"))
	assert.False(t, e.ProcessLine("garbage before $GPGGA"))
	// Valid sentence with a corrupted checksum.
	assert.False(t, e.ProcessLine("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*00"))
	// Unknown sentence types are ignored, not errors.
	assert.False(t, e.ProcessLine(sentence("GPZDA,160012.71,11,03,2004,-1,00")))

	fix := e.Snapshot()
	assert.Equal(t, uint64(0), fix.SentencesProcessed)
	assert.Nil(t, fix.Latitude)
	assert.Nil(t, fix.Longitude)
	assert.Equal(t, "", fix.Timestamp)
}

func TestEngineAcceptsChecksumlessSentence(t *testing.T) {
	e := New()
	// Some receivers omit the checksum; those sentences pass through.
	assert.True(t, e.ProcessLine("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"))
	assert.Equal(t, uint64(1), e.Snapshot().SentencesProcessed)
}

func TestEngineScenarioGGAThenVTG(t *testing.T) {
	e := New()
	require.True(t, e.ProcessLine("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"))
	require.True(t, e.ProcessLine("$GPVTG,054.7,T,034.4,M,005.5,N,010.2,K*48"))

	fix := e.Snapshot()
	require.NotNil(t, fix.Latitude)
	assert.InDelta(t, 48.1173, *fix.Latitude, 1e-6)
	require.NotNil(t, fix.Longitude)
	assert.InDelta(t, 11.516667, *fix.Longitude, 1e-6)
	assert.Equal(t, "1", fix.FixQuality)
	require.NotNil(t, fix.SpeedKmh)
	assert.InDelta(t, 10.2, *fix.SpeedKmh, 1e-9)
	require.NotNil(t, fix.CourseDeg)
	assert.InDelta(t, 54.7, *fix.CourseDeg, 1e-9)
	assert.Equal(t, uint64(2), fix.SentencesProcessed)
}

func TestEngineIdempotentPerLine(t *testing.T) {
	e := New()
	line := sentence("GPVTG,054.7,T,034.4,M,005.5,N,010.2,K,A")
	require.True(t, e.ProcessLine(line))
	require.True(t, e.ProcessLine(line))

	fix := e.Snapshot()
	assert.Equal(t, uint64(2), fix.SentencesProcessed)
	assert.InDelta(t, 10.2, *fix.SpeedKmh, 1e-9)
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	e := New()
	require.True(t, e.ProcessLine(sentence("GPGSV,1,1,01,04,77,023,44")))
	require.True(t, e.ProcessLine(sentence("GPGSA,A,3,04,,,,,,,,,,,,2.5,1.3,2.1")))

	snap := e.Snapshot()
	snap.SatellitesInView[0].ID = "tampered"
	*snap.HDOP = -1
	snap.Timestamp = "tampered"

	fresh := e.Snapshot()
	assert.Equal(t, "04", fresh.SatellitesInView[0].ID)
	assert.InDelta(t, 1.3, *fresh.HDOP, 1e-9)
	assert.NotEqual(t, "tampered", fresh.Timestamp)
}

func TestEngineOnUpdate(t *testing.T) {
	e := New()
	var got []Fix
	e.OnUpdate(func(f Fix) { got = append(got, f) })

	require.True(t, e.ProcessLine(sentence("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")))
	assert.False(t, e.ProcessLine("not a sentence"))
	require.True(t, e.ProcessLine(sentence("GPVTG,054.7,T,034.4,M,005.5,N,010.2,K,A")))

	require.Len(t, got, 2, "one notification per successful merge")
	assert.Equal(t, uint64(1), got[0].SentencesProcessed)
	assert.Equal(t, uint64(2), got[1].SentencesProcessed)

	// The callback may call Snapshot without deadlocking.
	e.OnUpdate(func(Fix) { _ = e.Snapshot() })
	require.True(t, e.ProcessLine(sentence("GPVTG,054.7,T,034.4,M,005.5,N,010.2,K,A")))
}
