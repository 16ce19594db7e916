package rtcm104

/*------------------------------------------------------------------
 *
 * Purpose:	Parity for 30-bit RTCM-104 / GPS navigation words.
 *
 * Description:	Each word carries 6 parity bits computed over its 24
 *		data bits plus the last two bits (D29*, D30*) of the
 *		previous word.  When D30* is 1 the data bits (but not
 *		the parity bits) are transmitted inverted.  See
 *		ICD-GPS-200 20.3.5.2, "user parity algorithm".
 *
 *		Words arrive here as 2 carry bits above a 30-bit
 *		candidate: bit 31 = D29*, bit 30 = D30*, bits 29..0 the
 *		word under test.
 *
 *------------------------------------------------------------------*/

import (
	"errors"
	"math/bits"
)

// ErrParity reports a word that failed its parity check.
var ErrParity = errors.New("rtcm104: parity check failed")

// One mask per parity bit D25..D30.  The masks cover the carry bits
// and the 24 data bits; the low 6 bits of the word never participate.
var parity_mask = [6]uint32{
	0xBB1F3480,
	0x5D8F9A40,
	0xAEC7CD00,
	0x5763E680,
	0x6BB1F340,
	0x8B7A89C0,
}

// compute_parity returns the 6 parity bits for a word whose data bits
// are already in true (uninverted) form, carry bits included.
func compute_parity(word uint32) uint32 {
	var parity uint32
	for i := 0; i < 6; i++ {
		parity <<= 1
		parity |= uint32(bits.OnesCount32(word&parity_mask[i]) & 1)
	}
	return parity
}

/*-------------------------------------------------------------------
 *
 * Name:	check_parity
 *
 * Purpose:	Validate one received word.
 *
 * Inputs:	word	- 2 carry bits + 30 received bits.
 *
 * Returns:	The 30-bit word with inversion removed, and whether
 *		the parity field matched.  The returned word is only
 *		meaningful when the check passed.
 *
 *--------------------------------------------------------------------*/

func check_parity(word uint32) (RTCMWORD, bool) {
	if word&0x40000000 != 0 {
		word ^= 0x3FFFFFC0 /* remove D30* inversion of the data bits */
	}
	if compute_parity(word) != word&0x3F {
		return 0, false
	}
	return RTCMWORD(word & 0x3FFFFFFF), true
}

/*-------------------------------------------------------------------
 *
 * Name:	CheckWords
 *
 * Purpose:	Validate a transmitted word sequence and strip the
 *		inversion, producing the form DecodeMessage expects.
 *		For callers that receive whole 30-bit words from their
 *		demodulator instead of single bits.
 *
 * Inputs:	tx	- words as transmitted.  The first is assumed
 *			  to follow an idle line (carry bits 00).
 *
 *--------------------------------------------------------------------*/

func CheckWords(tx []RTCMWORD) ([]RTCMWORD, error) {
	var out = make([]RTCMWORD, 0, len(tx))
	var carry uint32
	for _, w := range tx {
		var word, ok = check_parity(carry<<30 | uint32(w)&0x3FFFFFFF)
		if !ok {
			return nil, ErrParity
		}
		out = append(out, word)
		carry = uint32(w) & 0x3
	}
	return out, nil
}

/*-------------------------------------------------------------------
 *
 * Name:	make_parity
 *
 * Purpose:	Build one transmittable word.  Inverse of check_parity,
 *		used by the generator side and by the tests.
 *
 * Inputs:	data	- 24 true data bits, right justified.
 *		carry	- last two bits of the previously transmitted
 *			  word (bit 1 = D29*, bit 0 = D30*).
 *
 * Returns:	The 30 bits to put on the wire.  The caller chains the
 *		low two bits of the result into the next word's carry.
 *
 *--------------------------------------------------------------------*/

func make_parity(data uint32, carry uint32) RTCMWORD {
	data &= 0xFFFFFF
	carry &= 0x3

	var parity = compute_parity(carry<<30 | data<<6)

	var tx = data
	if carry&1 != 0 {
		tx ^= 0xFFFFFF /* D30* inverts the data bits on the wire */
	}
	return RTCMWORD(tx<<6 | parity)
}
