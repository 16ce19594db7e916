package rtcm104

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpCorrections(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeType1(1, 503, 60.0, 2, 0, []Correction{
		{Satellite: 3, UDRE: 1, PRC: 0.20, RRC: 0.004, IOD: 7},
		{Satellite: 19, UDRE: 0, LargeScale: true, PRC: 1.28, RRC: 0.16, IOD: 9},
	})
	var msg = encode_decode(t, words)

	var out = msg.Dump()
	var lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "H\t 1\t 503\t   60.0\t2\t 4\t0", lines[0])
	assert.Equal(t, "S\t 3\t1\tS\t  7\t    0.200\t  0.0040", lines[1])
	assert.Equal(t, "S\t19\t0\tL\t  9\t    1.280\t  0.1600", lines[2])
}

func TestDumpHeaderOnly(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeMessage(6, 1, 0, 0, 0, nil)
	var msg = encode_decode(t, words)

	var out = msg.Dump()
	assert.Equal(t, 1, strings.Count(out, "\n"), "null frame dumps as a single header line")
	assert.True(t, strings.HasPrefix(out, "H\t"))
}

func TestDumpUndecodedPayload(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeMessage(5, 1, 0, 0, 0, []uint32{0xABCDEF, 0x000001})
	var msg = encode_decode(t, words)

	var out = msg.Dump()
	assert.Contains(t, out, "U\t0x")
	assert.Equal(t, 2, strings.Count(out, "\nU\t"))
}

func TestDumpGPSTime(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeMessage(14, 1, 0, 0, 0, []uint32{uint32(1337)<<14 | 13<<6 | 18})
	var msg = encode_decode(t, words)

	assert.Contains(t, msg.Dump(), "T\t1337\t13\t18")
}

func TestDumpTextSanitized(t *testing.T) {
	var enc Encoder
	var words = enc.EncodeType16(17, 0, 0, 0, "OK\x1b[31m")
	var msg = encode_decode(t, words)

	var out = msg.Dump()
	assert.Contains(t, out, "M\t\"OK.[31m\"")
	assert.NotContains(t, out, "\x1b")
}
