package rtcm104

/*------------------------------------------------------------------
 *
 * Purpose:	Recover word framing and assemble complete messages
 *		from an unsynchronized RTCM-104 bit stream.
 *
 * Description:	A reference station transmits at 50 bits per second
 *		with no byte framing of any kind.  The only structure
 *		is the fixed 8-bit preamble at the start of each
 *		message and the 6 parity bits at the end of each
 *		30-bit word.  So we shift the incoming bits through a
 *		rolling accumulator and test every position until a
 *		preamble with valid parity shows up, then count off 30
 *		bits per word for as long as parity keeps validating.
 *
 *		A single parity failure while locked drops us straight
 *		back to the search state.  The wire format is fragile
 *		enough that anything cleverer just decodes garbage.
 *
 *------------------------------------------------------------------*/

// Event classifies the outcome of feeding one bit (or transport
// byte).  A Message is attached only to RTCM_COMPLETE.
type Event int

const (
	RTCM_INCOMPLETE Event = iota /* nothing finished yet, keep feeding */
	RTCM_RESYNC                  /* parity failed while locked, searching again */
	RTCM_VIOLATION               /* header field outside the legal range */
	RTCM_COMPLETE                /* a whole message was assembled */
)

func (e Event) String() string {
	switch e {
	case RTCM_INCOMPLETE:
		return "INCOMPLETE"
	case RTCM_RESYNC:
		return "RESYNC"
	case RTCM_VIOLATION:
		return "VIOLATION"
	case RTCM_COMPLETE:
		return "COMPLETE"
	}
	return "?"
}

// Context is the complete decoder state for one input stream.  Create
// one per receiver and do not share it between goroutines; every call
// is synchronous and the caller serializes bit delivery.
type Context struct {
	locked      bool
	curr_offset int    /* bits accumulated since the last word boundary */
	curr_word   uint32 /* rolling: 2 carry bits above the 30-bit candidate */
	buf         [RTCM_WORDS_MAX]RTCMWORD
	bufindex    int

	/* Stashed from the header words of the message in progress. */
	msgtype uint
	frmlen  uint
}

func NewContext() *Context {
	var ctx = new(Context)
	ctx.Init()
	return ctx
}

// Init resets everything, including lock state.  Equivalent to the
// state at stream start.
func (ctx *Context) Init() {
	ctx.locked = false
	ctx.curr_offset = 0
	ctx.curr_word = 0
	ctx.bufindex = 0
	ctx.msgtype = 0
	ctx.frmlen = 0
}

// Locked reports whether word boundaries are currently trusted.
func (ctx *Context) Locked() bool {
	return ctx.locked
}

/*-------------------------------------------------------------------
 *
 * Name:	FeedBit
 *
 * Purpose:	Process one demodulated bit.
 *
 * Inputs:	bit	- 0 or 1.  Anything nonzero counts as 1.
 *
 * Returns:	Event, plus the decoded message for RTCM_COMPLETE.
 *
 * Description:	While unlocked, every bit position is a candidate word
 *		boundary: if the top byte of the 30-bit window matches
 *		the preamble (allowing for D30* inversion) and parity
 *		validates, that window becomes header word 1 and we are
 *		locked.  While locked, words are taken every 30 bits
 *		and handed to the assembler.
 *
 *--------------------------------------------------------------------*/

func (ctx *Context) FeedBit(bit int) (Event, *Message) {
	var b uint32
	if bit != 0 {
		b = 1
	}
	ctx.curr_word = ctx.curr_word<<1 | b

	if !ctx.locked {
		var preamble = uint8(ctx.curr_word >> 22)
		if ctx.curr_word&0x40000000 != 0 {
			preamble ^= 0xFF
		}
		if preamble != PREAMBLE_PATTERN {
			return RTCM_INCOMPLETE, nil
		}
		var word, ok = check_parity(ctx.curr_word)
		if !ok {
			return RTCM_INCOMPLETE, nil
		}
		ctx.locked = true
		ctx.curr_offset = 0
		ctx.bufindex = 0
		return ctx.accept_word(word)
	}

	if ctx.curr_offset++; ctx.curr_offset < 30 {
		return RTCM_INCOMPLETE, nil
	}
	ctx.curr_offset = 0

	var word, ok = check_parity(ctx.curr_word)
	if !ok {
		/* Desynchronized.  Drop any partial message and search
		 * from scratch; the carry bits stay in the accumulator
		 * so the preamble test keeps working bit by bit. */
		ctx.locked = false
		ctx.bufindex = 0
		return RTCM_RESYNC, nil
	}
	return ctx.accept_word(word)
}

/*-------------------------------------------------------------------
 *
 * Name:	FeedByte
 *
 * Purpose:	Process one byte of the "6 of 8" transport used by
 *		DGPS beacon receivers (Magnavox format): the upper two
 *		bits are 01 and the low six bits carry the word stream,
 *		least significant bit first.
 *
 * Returns:	The most interesting Event among the six bits.  Two
 *		messages can never complete within one byte since the
 *		shortest message is 60 bits.
 *
 *--------------------------------------------------------------------*/

func (ctx *Context) FeedByte(data byte) (Event, *Message) {
	if data&0xC0 != 0x40 {
		return RTCM_INCOMPLETE, nil /* not a 6-of-8 byte, discard */
	}

	var event = RTCM_INCOMPLETE
	var msg *Message
	for i := 0; i < 6; i, data = i+1, data>>1 {
		var e, m = ctx.FeedBit(int(data & 1))
		if e != RTCM_INCOMPLETE {
			event = e
			msg = m
		}
	}
	return event, msg
}

/*-------------------------------------------------------------------
 *
 * Name:	accept_word
 *
 * Purpose:	Message assembler.  Called with each parity-checked
 *		word while locked.
 *
 * Description:	The first word after a fresh lock is header word 1
 *		(message type, station).  The second gives the frame
 *		length: how many data words follow the header, 0..31.
 *		When the buffer holds 2 + frmlen words the message is
 *		complete; decode it, clear the buffer and stay locked
 *		for the next one.
 *
 *		A message type of zero is not defined by the protocol.
 *		The header cannot be trusted, and a bogus header means
 *		the frame length cannot be trusted either, so treat it
 *		like a loss of sync.
 *
 *--------------------------------------------------------------------*/

func (ctx *Context) accept_word(word RTCMWORD) (Event, *Message) {
	Assert(ctx.bufindex < RTCM_WORDS_MAX)
	ctx.buf[ctx.bufindex] = word
	ctx.bufindex++

	switch ctx.bufindex {
	case 1:
		var hw1 = decode_hw1(word)
		if hw1.msgtype == 0 {
			ctx.locked = false
			ctx.bufindex = 0
			return RTCM_VIOLATION, nil
		}
		ctx.msgtype = hw1.msgtype
		return RTCM_INCOMPLETE, nil
	case 2:
		ctx.frmlen = decode_hw2(word).frmlen
	}

	if uint(ctx.bufindex) < 2+ctx.frmlen {
		return RTCM_INCOMPLETE, nil
	}

	/* Complete.  Decode a private copy and recycle the buffer. */
	var msg, err = DecodeMessage(ctx.buf[:ctx.bufindex])
	ctx.bufindex = 0
	if err != nil {
		ctx.locked = false
		return RTCM_VIOLATION, nil
	}
	return RTCM_COMPLETE, msg
}
