package rtcm104

/*------------------------------------------------------------------
 *
 * Purpose:	Build transmittable RTCM-104 word streams.
 *
 * Description:	The mirror image of the decoder, in the same spirit as
 *		keeping a packet generator next to a packet receiver:
 *		without one there is no way to exercise the
 *		synchronizer against known-good input.  Fields are
 *		packed most significant bit first into 24-bit data
 *		blocks, each block gets its parity appended with the
 *		D29* and D30* carry chained from the previous word, and the
 *		result can be serialized as single bits or as the
 *		"6 of 8" transport bytes beacon receivers emit.
 *
 *------------------------------------------------------------------*/

import "math"

// bitpacker accumulates fields MSB first and hands them out again as
// 24-bit data blocks, zero filled at the tail.
type bitpacker struct {
	bits []byte /* one element per bit, 0 or 1 */
}

func (p *bitpacker) put(value uint, width uint) {
	for i := int(width) - 1; i >= 0; i-- {
		p.bits = append(p.bits, byte(value>>uint(i))&1)
	}
}

func (p *bitpacker) putsigned(value int, width uint) {
	p.put(uint(value)&((1<<width)-1), width)
}

// blocks returns the packed bits as right-justified 24-bit values.
func (p *bitpacker) blocks() []uint32 {
	var n = (len(p.bits) + 23) / 24
	var out = make([]uint32, n)
	for i, b := range p.bits {
		out[i/24] |= uint32(b) << (23 - uint(i%24))
	}
	return out
}

// Encoder turns data blocks into parity-carrying words.  The carry
// chains across every word of the stream, messages included, so one
// Encoder per output stream.
type Encoder struct {
	carry uint32 /* last two transmitted bits */
}

func (e *Encoder) word(data uint32) RTCMWORD {
	var w = make_parity(data, e.carry)
	e.carry = uint32(w) & 0x3
	return w
}

/*-------------------------------------------------------------------
 *
 * Name:	EncodeMessage
 *
 * Purpose:	Frame one message: two header words followed by the
 *		given 24-bit data blocks.
 *
 * Inputs:	msgtype	- 1..63.
 *		staid	- reference station, 0..1023.
 *		zcount	- timestamp in seconds, rounded to 0.6 s units.
 *		seq	- 3-bit sequence number.
 *		health	- 3-bit station health.
 *		data	- payload blocks, at most 31.
 *
 * Returns:	2 + len(data) transmittable 30-bit words.
 *
 *--------------------------------------------------------------------*/

func (e *Encoder) EncodeMessage(msgtype int, staid int, zcount float64, seq int, health int, data []uint32) []RTCMWORD {
	Assert(msgtype >= 1 && msgtype <= 63)
	Assert(len(data) <= RTCM_WORDS_MAX-2)

	var zcnt = uint(math.Round(zcount/ZCOUNT_SCALE)) & 0x1FFF

	var hw1 bitpacker
	hw1.put(PREAMBLE_PATTERN, 8)
	hw1.put(uint(msgtype), 6)
	hw1.put(uint(staid), 10)

	var hw2 bitpacker
	hw2.put(zcnt, 13)
	hw2.put(uint(seq), 3)
	hw2.put(uint(len(data)), 5)
	hw2.put(uint(health), 3)

	var words = make([]RTCMWORD, 0, 2+len(data))
	words = append(words, e.word(hw1.blocks()[0]))
	words = append(words, e.word(hw2.blocks()[0]))
	for _, d := range data {
		words = append(words, e.word(d))
	}
	return words
}

/*-------------------------------------------------------------------
 *
 * Name:	EncodeType1
 *
 * Purpose:	Pack satellite corrections into the continuous 40-bit
 *		records of a type 1 (or type 9) message and frame it.
 *
 * Description:	Physical values are quantized with the scale each
 *		correction selects.  The tail is zero filled to a word
 *		boundary, which the decoder recognizes as absent slots.
 *
 *--------------------------------------------------------------------*/

func (e *Encoder) EncodeType1(msgtype int, staid int, zcount float64, seq int, health int, corrections []Correction) []RTCMWORD {
	var p bitpacker
	for _, c := range corrections {
		var pcscale, rrscale = PCSMALL, RRSMALL
		var scalebit uint
		if c.LargeScale {
			pcscale, rrscale = PCLARGE, RRLARGE
			scalebit = 1
		}
		var sat = c.Satellite & 0x1F /* PRN 32 encodes as 0 */

		p.put(scalebit, 1)
		p.put(uint(c.UDRE), 2)
		p.put(uint(sat), 5)
		p.putsigned(int(math.Round(c.PRC/pcscale)), 16)
		p.putsigned(int(math.Round(c.RRC/rrscale)), 8)
		p.put(uint(c.IOD), 8)
	}
	return e.EncodeMessage(msgtype, staid, zcount, seq, health, p.blocks())
}

// EncodeType3 frames a reference station ECEF position.
func (e *Encoder) EncodeType3(staid int, zcount float64, seq int, health int, pos [3]float64) []RTCMWORD {
	var p bitpacker
	for i := 0; i < 3; i++ {
		p.putsigned(int(math.Round(pos[i]/XYZ_SCALE)), 32)
	}
	return e.EncodeMessage(3, staid, zcount, seq, health, p.blocks())
}

// EncodeType16 frames a special ASCII message, truncated to the 90
// characters that fit in 31 data words.
func (e *Encoder) EncodeType16(staid int, zcount float64, seq int, health int, text string) []RTCMWORD {
	if len(text) > 90 {
		text = text[:90]
	}
	var p bitpacker
	for _, ch := range []byte(text) {
		p.put(uint(ch), 8)
	}
	return e.EncodeMessage(16, staid, zcount, seq, health, p.blocks())
}

// WordsToBits flattens words into the bit sequence a receiver would
// deliver, first transmitted bit first.
func WordsToBits(words []RTCMWORD) []int {
	var bits = make([]int, 0, len(words)*30)
	for _, w := range words {
		for i := 29; i >= 0; i-- {
			bits = append(bits, int(w>>uint(i))&1)
		}
	}
	return bits
}

// WordsToBytes serializes words in the 6-of-8 transport: six stream
// bits per byte, LSB first, upper bits fixed at 01.
func WordsToBytes(words []RTCMWORD) []byte {
	var bits = WordsToBits(words)
	Assert(len(bits)%6 == 0)

	var out = make([]byte, 0, len(bits)/6)
	for i := 0; i < len(bits); i += 6 {
		var b byte = 0x40
		for j := 0; j < 6; j++ {
			b |= byte(bits[i+j]) << uint(j)
		}
		out = append(out, b)
	}
	return out
}
