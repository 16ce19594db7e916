package rtcm104

/*------------------------------------------------------------------
 *
 * Purpose:	Main program logic for "rtcmgen": produce a synthetic,
 *		parity-valid RTCM-104 byte stream.
 *
 * Description:	The counterpart of rtcmdump, in the same way a packet
 *		generator accompanies a packet receiver: without known
 *		good input there is no way to test a decoder, a cable,
 *		or someone else's receiver.  Repeats a type 1
 *		correction block (and optionally a type 16 text
 *		message) with advancing z-count and sequence number.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func RTCMGenMain() {
	var station = pflag.IntP("station", "S", 1, "Reference station ID, 0..1023.")
	var count = pflag.IntP("count", "n", 1, "Number of correction messages to generate.")
	var zcount = pflag.Float64P("zcount", "z", 0, "Starting z-count in seconds.")
	var health = pflag.Int("health", 0, "Station health, 0..7.")
	var msgtype = pflag.Int("type", 1, "Correction message type, 1 or 9.")
	var sats = pflag.StringArrayP("sat", "p", nil,
		"Satellite correction as prn,prc,rrc[,iod[,udre[,L]]] with prc in metres and rrc in m/s.  Repeatable.")
	var text = pflag.String("text", "", "Also send a type 16 special message with this text.")
	var output = pflag.StringP("output", "o", "", "Output file.  Default is stdout.")
	var version = pflag.Bool("version", false, "Print version and exit.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Generate a synthetic RTCM-104 correction stream.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}
	if *version {
		PrintVersion(false)
		os.Exit(0)
	}
	if *msgtype != 1 && *msgtype != 9 {
		log.Fatal("Correction message type must be 1 or 9", "type", *msgtype)
	}

	var corrections []Correction
	for _, s := range *sats {
		var c, err = parse_sat(s)
		if err != nil {
			log.Fatal("Bad --sat value", "value", s, "error", err)
		}
		corrections = append(corrections, c)
	}
	if len(corrections) == 0 {
		corrections = append(corrections, Correction{Satellite: 3, PRC: 0.20, RRC: 0.010, IOD: 1})
	}

	var out = os.Stdout
	if *output != "" {
		var f, err = os.Create(*output)
		if err != nil {
			log.Fatal("Could not create output", "file", *output, "error", err)
		}
		defer f.Close()
		out = f
	}

	var enc Encoder
	var z = *zcount
	var seq = 0
	for i := 0; i < *count; i++ {
		var words = enc.EncodeType1(*msgtype, *station, z, seq, *health, corrections)
		out.Write(WordsToBytes(words))
		z += float64(len(words)) * 30.0 / 50.0 /* 50 bits per second on the air */
		seq = (seq + 1) & 0x7

		if *text != "" {
			words = enc.EncodeType16(*station, z, seq, *health, *text)
			out.Write(WordsToBytes(words))
			z += float64(len(words)) * 30.0 / 50.0
			seq = (seq + 1) & 0x7
		}
	}
}

func parse_sat(s string) (Correction, error) {
	var c Correction
	var parts = strings.Split(s, ",")
	if len(parts) < 3 {
		return c, fmt.Errorf("want prn,prc,rrc[,iod[,udre[,L]]], got %q", s)
	}

	var prn, prnErr = strconv.Atoi(parts[0])
	if prnErr != nil || prn < 1 || prn > 32 {
		return c, fmt.Errorf("bad PRN %q", parts[0])
	}
	c.Satellite = prn

	var prc, prcErr = strconv.ParseFloat(parts[1], 64)
	if prcErr != nil {
		return c, prcErr
	}
	c.PRC = prc

	var rrc, rrcErr = strconv.ParseFloat(parts[2], 64)
	if rrcErr != nil {
		return c, rrcErr
	}
	c.RRC = rrc

	if len(parts) > 3 {
		var iod, iodErr = strconv.Atoi(parts[3])
		if iodErr != nil {
			return c, iodErr
		}
		c.IOD = iod
	}
	if len(parts) > 4 {
		var udre, udreErr = strconv.Atoi(parts[4])
		if udreErr != nil {
			return c, udreErr
		}
		c.UDRE = udre
	}
	if len(parts) > 5 {
		c.LargeScale = parts[5] == "L"
	}
	return c, nil
}
