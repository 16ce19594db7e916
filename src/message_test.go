package rtcm104

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// encode_decode runs one message through the wire form and back.
func encode_decode(t interface {
	require.TestingT
	Helper()
}, words []RTCMWORD) *Message {
	t.Helper()

	var checked, checkErr = CheckWords(words)
	require.NoError(t, checkErr)

	var msg, decodeErr = DecodeMessage(checked)
	require.NoError(t, decodeErr)
	return msg
}

func TestType1KnownValues(t *testing.T) {
	// Small-scale pseudorange raw 10 is 0.20 m; large-scale range
	// rate raw 5 is 0.16 m/s.
	var enc Encoder
	var words = enc.EncodeType1(1, 503, 60.0, 2, 0, []Correction{
		{Satellite: 3, UDRE: 1, PRC: 10 * PCSMALL, RRC: 2 * RRSMALL, IOD: 7},
		{Satellite: 19, UDRE: 0, LargeScale: true, PRC: 4 * PCLARGE, RRC: 5 * RRLARGE, IOD: 9},
	})

	var msg = encode_decode(t, words)

	assert.Equal(t, 1, msg.Type)
	assert.Equal(t, 503, msg.StationID)
	assert.Equal(t, 2, msg.SeqNum)
	assert.InDelta(t, 60.0, msg.ZCount, 1e-9)
	assert.Equal(t, KindCorrections, msg.Kind)

	require.Len(t, msg.Corrections, 2)

	var c0 = msg.Corrections[0]
	assert.Equal(t, 3, c0.Satellite)
	assert.Equal(t, 1, c0.UDRE)
	assert.False(t, c0.LargeScale)
	assert.InDelta(t, 0.20, c0.PRC, 1e-9)
	assert.InDelta(t, 0.004, c0.RRC, 1e-9)
	assert.Equal(t, 7, c0.IOD)

	var c1 = msg.Corrections[1]
	assert.Equal(t, 19, c1.Satellite)
	assert.True(t, c1.LargeScale)
	assert.InDelta(t, 1.28, c1.PRC, 1e-9)
	assert.InDelta(t, 0.16, c1.RRC, 1e-9)
	assert.Equal(t, 9, c1.IOD)
}

func TestZCountScale(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeMessage(6, 1, 100*ZCOUNT_SCALE, 0, 0, nil)

	var msg = encode_decode(t, words)

	assert.InDelta(t, 60.0, msg.ZCount, 1e-9)
}

func TestType1ClumpSlots(t *testing.T) {
	// The frame length, not a sentinel, decides how many slots of
	// the last clump are real: 3 satellites fill five words, 2 stop
	// after four, 1 after two.
	var cases = []struct {
		satellites int
		frmlen     int
	}{
		{1, 2},
		{2, 4},
		{3, 5},
		{4, 7},
		{5, 9},
		{6, 10},
	}

	for _, tc := range cases {
		var corrections = make([]Correction, tc.satellites)
		for i := range corrections {
			corrections[i] = Correction{
				Satellite: i + 1,
				PRC:       float64(i+1) * PCSMALL,
				RRC:       float64(i+1) * RRSMALL,
				IOD:       i,
			}
		}

		var enc Encoder
		var words = enc.EncodeType1(1, 1, 0, 0, 0, corrections)
		require.Len(t, words, 2+tc.frmlen, "satellites=%d", tc.satellites)

		var msg = encode_decode(t, words)
		require.Len(t, msg.Corrections, tc.satellites, "satellites=%d", tc.satellites)

		for i, c := range msg.Corrections {
			assert.Equal(t, i+1, c.Satellite)
			assert.InDelta(t, float64(i+1)*PCSMALL, c.PRC, 1e-9)
			assert.InDelta(t, float64(i+1)*RRSMALL, c.RRC, 1e-9)
			assert.Equal(t, i, c.IOD)
		}
	}
}

func TestType9SameShapeAsType1(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeType1(9, 22, 6.0, 1, 0, []Correction{
		{Satellite: 7, PRC: -1.50, RRC: -0.012, IOD: 44},
	})

	var msg = encode_decode(t, words)

	assert.Equal(t, 9, msg.Type)
	assert.Equal(t, KindCorrections, msg.Kind)
	require.Len(t, msg.Corrections, 1)
	assert.InDelta(t, -1.50, msg.Corrections[0].PRC, 1e-9)
	assert.InDelta(t, -0.012, msg.Corrections[0].RRC, 1e-9)
}

func TestPRN32EncodesAsZero(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeType1(1, 1, 0, 0, 0, []Correction{
		{Satellite: 32, PRC: 0.02, RRC: 0.002, IOD: 1},
	})

	var msg = encode_decode(t, words)

	require.Len(t, msg.Corrections, 1)
	assert.Equal(t, 32, msg.Corrections[0].Satellite)
}

func TestSatelliteProblemSentinelSkipped(t *testing.T) {
	// PRC raw -32768 flags a satellite the station cannot track.
	var enc Encoder
	var words = enc.EncodeType1(1, 1, 0, 0, 0, []Correction{
		{Satellite: 5, PRC: -32768 * PCSMALL, RRC: 0, IOD: 1},
		{Satellite: 6, PRC: 0.20, RRC: 0.002, IOD: 2},
	})

	var msg = encode_decode(t, words)

	require.Len(t, msg.Corrections, 1)
	assert.Equal(t, 6, msg.Corrections[0].Satellite)
}

func TestType3ReferencePosition(t *testing.T) {
	var pos = [3]float64{3980581.12, -99.88, 4966824.57}

	var enc Encoder
	var words = enc.EncodeType3(250, 12.0, 3, 0, pos)

	var msg = encode_decode(t, words)

	assert.Equal(t, 3, msg.Type)
	assert.Equal(t, KindRefPos, msg.Kind)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, pos[i], msg.RefPos[i], 1e-6)
	}
}

func TestType14GPSTime(t *testing.T) {
	// week(10) hour(8) leap(6) fills exactly one data block.
	var block = uint32(1337)<<14 | uint32(13)<<6 | uint32(18)

	var enc Encoder
	var words = enc.EncodeMessage(14, 1, 0, 0, 0, []uint32{block})

	var msg = encode_decode(t, words)

	assert.Equal(t, KindGPSTime, msg.Kind)
	assert.Equal(t, 1337, msg.Week)
	assert.Equal(t, 13, msg.Hour)
	assert.Equal(t, 18, msg.LeapSecs)
}

func TestType16SpecialMessage(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeType16(17, 0.6, 0, 0, "BEACON OFF AIR 1200-1300Z")

	var msg = encode_decode(t, words)

	assert.Equal(t, 16, msg.Type)
	assert.Equal(t, KindText, msg.Kind)
	assert.Equal(t, "BEACON OFF AIR 1200-1300Z", msg.Text)
}

func TestUnsupportedTypeIsRawNotError(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeMessage(5, 88, 1.2, 0, 0, []uint32{0xABCDEF, 0x123456})

	var msg = encode_decode(t, words)

	assert.Equal(t, 5, msg.Type)
	assert.Equal(t, KindRaw, msg.Kind)
	assert.Len(t, msg.Words, 4)
}

func TestDecodeErrors(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeMessage(6, 1, 0, 0, 0, nil)
	var checked, err = CheckWords(words)
	require.NoError(t, err)

	var _, shortErr = DecodeMessage(checked[:1])
	assert.ErrorIs(t, shortErr, ErrBadFrameLength)

	var oversized = make([]RTCMWORD, RTCM_WORDS_MAX+1)
	copy(oversized, checked)
	var _, longErr = DecodeMessage(oversized)
	assert.ErrorIs(t, longErr, ErrBadFrameLength)

	// Frame length field disagreeing with the buffer.
	var _, lenErr = DecodeMessage(append(append([]RTCMWORD(nil), checked...), 0))
	assert.ErrorIs(t, lenErr, ErrBadFrameLength)

	// Type 0 is outside the defined range.
	var zero = []RTCMWORD{
		RTCMWORD((PREAMBLE_PATTERN << 16) << 6),
		checked[1],
	}
	var _, typeErr = DecodeMessage(zero)
	assert.ErrorIs(t, typeErr, ErrUnknownType)
}

func TestDecodedMessageOwnsItsWords(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeType1(1, 1, 0, 0, 0, []Correction{
		{Satellite: 2, PRC: 0.04, RRC: 0.004, IOD: 5},
	})

	var checked, err = CheckWords(words)
	require.NoError(t, err)

	var msg, decodeErr = DecodeMessage(checked)
	require.NoError(t, decodeErr)

	checked[0] = 0
	assert.NotZero(t, msg.Words[0], "decoded record must not alias the caller's buffer")
}

func TestCorrectionRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var n = rapid.IntRange(1, 9).Draw(t, "n")

		var corrections = make([]Correction, n)
		for i := range corrections {
			var scale = rapid.Bool().Draw(t, "scale")
			var pcscale, rrscale = PCSMALL, RRSMALL
			if scale {
				pcscale, rrscale = PCLARGE, RRLARGE
			}
			corrections[i] = Correction{
				Satellite:  rapid.IntRange(1, 32).Draw(t, "prn"),
				UDRE:       rapid.IntRange(0, 3).Draw(t, "udre"),
				LargeScale: scale,
				PRC:        float64(rapid.IntRange(-32767, 32767).Draw(t, "prc")) * pcscale,
				RRC:        float64(rapid.IntRange(-127, 127).Draw(t, "rrc")) * rrscale,
				IOD:        rapid.IntRange(0, 255).Draw(t, "iod"),
			}
		}

		var enc Encoder
		var words = enc.EncodeType1(1, 503, 0, 0, 0, corrections)
		var msg = encode_decode(t, words)

		require.Len(t, msg.Corrections, n)
		for i, c := range msg.Corrections {
			assert.Equal(t, corrections[i].Satellite, c.Satellite)
			assert.Equal(t, corrections[i].UDRE, c.UDRE)
			assert.Equal(t, corrections[i].LargeScale, c.LargeScale)
			assert.InDelta(t, corrections[i].PRC, c.PRC, 1e-9)
			assert.InDelta(t, corrections[i].RRC, c.RRC, 1e-9)
			assert.Equal(t, corrections[i].IOD, c.IOD)
		}
	})
}
