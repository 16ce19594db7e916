package rtcm104

/*------------------------------------------------------------------
 *
 * Purpose:	Layouts and scale factors for the 30-bit words in an
 *		RTCM-104 (version 2) message.
 *
 * Description:	RTCM-104 is an obscure and complicated serial protocol
 *		used for broadcasting pseudorange corrections from
 *		differential-GPS reference stations.  Words are 30 bits:
 *		24 data bits followed by 6 parity bits.  We keep them
 *		low-end justified in a uint32, after parity checking and
 *		with the D30* inversion removed.
 *
 *		The original C used bit-field overlay structs.  Those
 *		depend on the compiler's bit allocation order, so here
 *		every word shape is a small pure extraction function
 *		built from explicit shifts and masks instead.
 *
 *------------------------------------------------------------------*/

// RTCMWORD is one 30-bit word, low-end justified, inversion removed.
// Bits 0..5 are the parity field, bits 6..29 the data bits in wire
// order (first transmitted bit is bit 29).
type RTCMWORD uint32

const PREAMBLE_PATTERN = 0x66 /* 01100110, start of header word 1 */

// "The maximum number of data words allowed by the format is 31, so
// that the longest possible message will have a total of 33 words."
const RTCM_WORDS_MAX = 33

/* Scale factors.  These must match the wire format exactly. */
const (
	ZCOUNT_SCALE = 0.6   /* sec */
	PCSMALL      = 0.02  /* metres */
	PCLARGE      = 0.32  /* metres */
	RRSMALL      = 0.002 /* metres/sec */
	RRLARGE      = 0.032 /* metres/sec */

	XYZ_SCALE   = 0.01            /* metres */
	DXYZ_SCALE  = 0.1             /* metres */
	LA_SCALE    = 90.0 / 32767.0  /* degrees */
	LO_SCALE    = 180.0 / 32767.0 /* degrees */
	FREQ_SCALE  = 0.1             /* kHz */
	FREQ_OFFSET = 190.0           /* kHz */
	CNR_OFFSET  = 24              /* dB */
	TU_SCALE    = 5               /* minutes */
)

// ubits extracts an unsigned field of the given width whose least
// significant bit sits at the given offset from the word's low end.
func ubits(w RTCMWORD, offset uint, width uint) uint {
	return uint(w>>offset) & ((1 << width) - 1)
}

// sbits is ubits with two's complement sign extension.
func sbits(w RTCMWORD, offset uint, width uint) int {
	var v = ubits(w, offset, width)
	if v&(1<<(width-1)) != 0 {
		return int(v) - (1 << width)
	}
	return int(v)
}

/*
 * Header word 1: preamble(8) msgtype(6) refstaid(10) parity(6).
 */

type msghw1 struct {
	preamble uint /* fixed at 01100110 */
	msgtype  uint /* RTCM message type */
	refstaid uint /* reference station ID */
}

func decode_hw1(w RTCMWORD) msghw1 {
	return msghw1{
		preamble: ubits(w, 22, 8),
		msgtype:  ubits(w, 16, 6),
		refstaid: ubits(w, 6, 10),
	}
}

/*
 * Header word 2: zcnt(13) sqnum(3) frmlen(5) stathlth(3) parity(6).
 */

type msghw2 struct {
	zcnt     uint /* modified z-count, units of 0.6 sec */
	sqnum    uint
	frmlen   uint /* data words beyond the two header words */
	stathlth uint /* station health */
}

func decode_hw2(w RTCMWORD) msghw2 {
	return msghw2{
		zcnt:     ubits(w, 17, 13),
		sqnum:    ubits(w, 14, 3),
		frmlen:   ubits(w, 9, 5),
		stathlth: ubits(w, 6, 3),
	}
}

/*
 * Message 1 (and 9) payload words.  Corrections come in clumps of
 * five words carrying up to three satellites; a 40-bit satellite
 * record may straddle a word boundary.
 *
 * w3: scale1(1) udre1(2) satident1(5) pc1(16) parity(6)
 * w4: rangerate1(8) issuedata1(8) scale2(1) udre2(2) satident2(5) parity(6)
 * w5: pc2(16) rangerate2(8) parity(6)
 * w6: issuedata2(8) scale3(1) udre3(2) satident3(5) pc3_h(8) parity(6)
 * w7: pc3_l(8) rangerate3(8) issuedata3(8) parity(6)
 */

type msg1w3 struct {
	scale1    uint
	udre1     uint
	satident1 uint
	pc1       int
}

func decode_m1w3(w RTCMWORD) msg1w3 {
	return msg1w3{
		scale1:    ubits(w, 29, 1),
		udre1:     ubits(w, 27, 2),
		satident1: ubits(w, 22, 5),
		pc1:       sbits(w, 6, 16),
	}
}

type msg1w4 struct {
	rangerate1 int
	issuedata1 uint
	scale2     uint
	udre2      uint
	satident2  uint
}

func decode_m1w4(w RTCMWORD) msg1w4 {
	return msg1w4{
		rangerate1: sbits(w, 22, 8),
		issuedata1: ubits(w, 14, 8),
		scale2:     ubits(w, 13, 1),
		udre2:      ubits(w, 11, 2),
		satident2:  ubits(w, 6, 5),
	}
}

type msg1w5 struct {
	pc2        int
	rangerate2 int
}

func decode_m1w5(w RTCMWORD) msg1w5 {
	return msg1w5{
		pc2:        sbits(w, 14, 16),
		rangerate2: sbits(w, 6, 8),
	}
}

type msg1w6 struct {
	issuedata2 uint
	scale3     uint
	udre3      uint
	satident3  uint
	pc3_h      uint /* high byte, sign bit of the 16-bit value */
}

func decode_m1w6(w RTCMWORD) msg1w6 {
	return msg1w6{
		issuedata2: ubits(w, 22, 8),
		scale3:     ubits(w, 21, 1),
		udre3:      ubits(w, 19, 2),
		satident3:  ubits(w, 14, 5),
		pc3_h:      ubits(w, 6, 8),
	}
}

type msg1w7 struct {
	pc3_l      uint /* unsigned low byte */
	rangerate3 int
	issuedata3 uint
}

func decode_m1w7(w RTCMWORD) msg1w7 {
	return msg1w7{
		pc3_l:      ubits(w, 22, 8),
		rangerate3: sbits(w, 14, 8),
		issuedata3: ubits(w, 6, 8),
	}
}

// pc3value joins the straddled pseudorange correction of the third
// satellite in a clump: signed high byte from w6, unsigned low byte
// from w7.
func pc3value(hi uint, lo uint) int {
	var v = uint16(hi)<<8 | uint16(lo)
	return int(int16(v))
}
