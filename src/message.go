package rtcm104

/*------------------------------------------------------------------
 *
 * Purpose:	Interpret a complete, parity-checked word buffer as a
 *		semantic RTCM-104 record.
 *
 * Description:	Message types 1 and 9 (differential corrections, the
 *		reason this protocol exists) are decoded in full.
 *		Types 3, 14 and 16 are simple enough to decode too.
 *		Everything else that the protocol defines is reported
 *		as a raw word buffer rather than an error, so framing
 *		stays useful even where the semantics are not
 *		implemented.
 *
 *------------------------------------------------------------------*/

import "errors"

var (
	ErrUnknownType    = errors.New("rtcm104: message type outside the protocol's defined range")
	ErrBadFrameLength = errors.New("rtcm104: frame length inconsistent with word buffer")
)

// MessageKind tags which payload fields of a Message are meaningful.
type MessageKind int

const (
	KindHeaderOnly MessageKind = iota /* e.g. type 6 null frame, frmlen 0 */
	KindCorrections                   /* types 1 and 9 */
	KindRefPos                        /* type 3 */
	KindGPSTime                       /* type 14 */
	KindText                          /* type 16 */
	KindRaw                           /* recognized, payload not decoded */
)

// Correction is one satellite's worth of a type 1/9 message, already
// converted to physical units.
type Correction struct {
	Satellite  int     /* PRN, 1..32 */
	UDRE       int     /* user differential range error code */
	LargeScale bool    /* which scale pair the station selected */
	PRC        float64 /* pseudorange correction, metres */
	RRC        float64 /* range rate correction, metres/sec */
	IOD        int     /* issue of data */
}

// Message is one decoded frame.  Header fields are always valid;
// payload fields are selected by Kind.  Words is an independent copy
// of the 30-bit word buffer, inversion removed.
type Message struct {
	Type          int
	StationID     int
	StationHealth int
	SeqNum        int
	FrameLen      int
	ZCount        float64 /* seconds */

	Kind        MessageKind
	Corrections []Correction /* KindCorrections */
	RefPos      [3]float64   /* KindRefPos: ECEF X, Y, Z in metres */
	Week        int          /* KindGPSTime */
	Hour        int          /* KindGPSTime */
	LeapSecs    int          /* KindGPSTime */
	Text        string       /* KindText */

	Words []RTCMWORD
}

/*-------------------------------------------------------------------
 *
 * Name:	DecodeMessage
 *
 * Purpose:	Decode a complete message from its word buffer.
 *
 * Inputs:	words	- 2 header words plus frmlen data words, each
 *			  parity checked with inversion removed.
 *
 * Returns:	The decoded message, or ErrUnknownType for a message
 *		type the protocol does not define, or ErrBadFrameLength
 *		when the buffer disagrees with the header's frame
 *		length or exceeds the 33 word bound.
 *
 *--------------------------------------------------------------------*/

func DecodeMessage(words []RTCMWORD) (*Message, error) {
	if len(words) < 2 || len(words) > RTCM_WORDS_MAX {
		return nil, ErrBadFrameLength
	}

	var hw1 = decode_hw1(words[0])
	var hw2 = decode_hw2(words[1])

	if hw1.msgtype == 0 {
		return nil, ErrUnknownType
	}
	if len(words) != int(2+hw2.frmlen) {
		return nil, ErrBadFrameLength
	}

	var msg = &Message{
		Type:          int(hw1.msgtype),
		StationID:     int(hw1.refstaid),
		StationHealth: int(hw2.stathlth),
		SeqNum:        int(hw2.sqnum),
		FrameLen:      int(hw2.frmlen),
		ZCount:        float64(hw2.zcnt) * ZCOUNT_SCALE,
		Words:         append([]RTCMWORD(nil), words...),
	}

	var payload = msg.Words[2:]
	switch msg.Type {
	case 1, 9:
		msg.Kind = KindCorrections
		msg.Corrections = decode_corrections(payload)
	case 3:
		decode_refpos(msg, payload)
	case 14:
		decode_gpstime(msg, payload)
	case 16:
		msg.Kind = KindText
		msg.Text = decode_text(payload)
	default:
		if len(payload) == 0 {
			msg.Kind = KindHeaderOnly
		} else {
			msg.Kind = KindRaw
		}
	}
	return msg, nil
}

/*
 * Types 1 and 9: N clumps of five words, up to three 40-bit satellite
 * records per clump.  The frame length, not any sentinel value, says
 * how many trailing slots of the last clump are real: a tail of 2
 * words holds one record, 4 words hold two, 5 hold three.  Tails of 1
 * or 3 words cannot hold a complete record and are fill.
 */

func decode_corrections(payload []RTCMWORD) []Correction {
	var corrections []Correction

	for base := 0; base < len(payload); base += 5 {
		var tail = len(payload) - base

		if tail >= 2 {
			var a = decode_m1w3(payload[base])
			var b = decode_m1w4(payload[base+1])
			corrections = append_correction(corrections,
				a.satident1, a.udre1, a.scale1, a.pc1, b.rangerate1, b.issuedata1)
		}
		if tail >= 4 {
			var b = decode_m1w4(payload[base+1])
			var c = decode_m1w5(payload[base+2])
			var d = decode_m1w6(payload[base+3])
			corrections = append_correction(corrections,
				b.satident2, b.udre2, b.scale2, c.pc2, c.rangerate2, d.issuedata2)
		}
		if tail >= 5 {
			var d = decode_m1w6(payload[base+3])
			var e = decode_m1w7(payload[base+4])
			corrections = append_correction(corrections,
				d.satident3, d.udre3, d.scale3, pc3value(d.pc3_h, e.pc3_l), e.rangerate3, e.issuedata3)
		}
	}
	return corrections
}

func append_correction(list []Correction, satident uint, udre uint, scale uint, pc int, rr int, iod uint) []Correction {
	/* PRC of -32768 or RRC of -128 marks a satellite the station
	 * could not track.  Same policy as RTKLIB: skip it. */
	if pc == -32768 || rr == -128 {
		return list
	}

	var c = Correction{
		Satellite:  int(satident),
		UDRE:       int(udre),
		LargeScale: scale != 0,
		IOD:        int(iod),
	}
	if c.Satellite == 0 {
		c.Satellite = 32
	}
	if c.LargeScale {
		c.PRC = float64(pc) * PCLARGE
		c.RRC = float64(rr) * RRLARGE
	} else {
		c.PRC = float64(pc) * PCSMALL
		c.RRC = float64(rr) * RRSMALL
	}
	return append(list, c)
}

/* Type 3: reference station ECEF position, three signed 32-bit words
 * at 0.01 metre resolution, packed across four data words. */

func decode_refpos(msg *Message, payload []RTCMWORD) {
	if len(payload) < 4 {
		msg.Kind = KindRaw
		return
	}
	msg.Kind = KindRefPos
	for i := 0; i < 3; i++ {
		msg.RefPos[i] = float64(payload_sbits(payload, uint(i)*32, 32)) * XYZ_SCALE
	}
}

/* Type 14: GPS time: week(10) hour(8) leap seconds(6). */

func decode_gpstime(msg *Message, payload []RTCMWORD) {
	if len(payload) < 1 {
		msg.Kind = KindRaw
		return
	}
	msg.Kind = KindGPSTime
	msg.Week = int(payload_ubits(payload, 0, 10))
	msg.Hour = int(payload_ubits(payload, 10, 8))
	msg.LeapSecs = int(payload_ubits(payload, 18, 6))
}

/* Type 16: special message, plain ASCII bytes filling the payload. */

func decode_text(payload []RTCMWORD) string {
	var text = make([]byte, 0, len(payload)*3)
	for _, w := range payload {
		for _, shift := range []uint{22, 14, 6} {
			var ch = byte(ubits(w, shift, 8))
			if ch == 0 {
				continue /* null fill at the end of the last word */
			}
			text = append(text, ch)
		}
	}
	return string(text)
}

/*
 * Fields in types 3 and 14 ignore word boundaries entirely, so view
 * the payload as one continuous string of 24-bit data blocks.  Bit 0
 * is the first transmitted data bit of the first payload word.
 */

func payload_ubits(payload []RTCMWORD, offset uint, width uint) uint {
	var v uint
	for i := uint(0); i < width; i++ {
		var bit = offset + i
		var w = payload[bit/24]
		v = v<<1 | ubits(w, 29-(bit%24), 1)
	}
	return v
}

func payload_sbits(payload []RTCMWORD, offset uint, width uint) int {
	var v = payload_ubits(payload, offset, width)
	if v&(1<<(width-1)) != 0 {
		return int(v) - (1 << width)
	}
	return int(v)
}
