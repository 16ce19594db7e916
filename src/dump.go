package rtcm104

/*------------------------------------------------------------------
 *
 * Purpose:	Render a decoded message in a fixed diagnostic form.
 *
 * Description:	One tab-separated line per record, tagged by a single
 *		letter, in the style gpsd used for its RTCM monitor
 *		output.  Pure formatting: no state, no failures.  A
 *		message of a type we merely frame shows its payload
 *		words as hex.
 *
 *			H  header of every message
 *			S  one satellite correction
 *			R  reference station position
 *			T  GPS time
 *			M  special message text
 *			U  undecoded payload word
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"strings"
)

func (msg *Message) Dump() string {
	var b strings.Builder

	fmt.Fprintf(&b, "H\t%2d\t%4d\t%7.1f\t%d\t%2d\t%d\n",
		msg.Type, msg.StationID, msg.ZCount, msg.SeqNum, msg.FrameLen, msg.StationHealth)

	switch msg.Kind {
	case KindHeaderOnly:
		/* nothing beyond the header */
	case KindCorrections:
		for _, c := range msg.Corrections {
			fmt.Fprintf(&b, "S\t%2d\t%d\t%s\t%3d\t%9.3f\t%8.4f\n",
				c.Satellite, c.UDRE, IfThenElse(c.LargeScale, "L", "S"), c.IOD, c.PRC, c.RRC)
		}
	case KindRefPos:
		fmt.Fprintf(&b, "R\t%.2f\t%.2f\t%.2f\n",
			msg.RefPos[0], msg.RefPos[1], msg.RefPos[2])
	case KindGPSTime:
		fmt.Fprintf(&b, "T\t%4d\t%2d\t%2d\n", msg.Week, msg.Hour, msg.LeapSecs)
	case KindText:
		fmt.Fprintf(&b, "M\t\"%s\"\n", printable(msg.Text))
	default:
		for _, w := range msg.Words[2:] {
			fmt.Fprintf(&b, "U\t0x%08x\n", uint32(w))
		}
	}
	return b.String()
}

// printable substitutes a placeholder for anything that would mangle
// a terminal.  Special messages are supposed to be plain ASCII but
// there is no guarantee the station agrees.
func printable(s string) string {
	var out = []byte(s)
	for i, ch := range out {
		if ch < 0x20 || ch > 0x7E {
			out[i] = '.'
		}
	}
	return string(out)
}
