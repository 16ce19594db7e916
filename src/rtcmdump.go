package rtcm104

/*------------------------------------------------------------------
 *
 * Purpose:	Main program logic for "rtcmdump": read the byte
 *		stream from a DGPS beacon receiver (serial port, file,
 *		or stdin), run the decoder over it, and print each
 *		message in the dump format.
 *
 * Description:	Everything interesting happens in the decoder; this is
 *		the glue between device I/O and the Context.  Sync
 *		losses and protocol violations are reported through the
 *		logger so a quiet run means a clean stream.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
)

func RTCMDumpMain() {
	var device = pflag.StringP("device", "d", "", "Serial port of the beacon receiver, e.g. /dev/ttyUSB0.  Reads stdin or the named file when omitted.")
	var speed = pflag.IntP("speed", "b", 4800, "Serial port speed.")
	var stationsFile = pflag.StringP("stations", "s", "", "Station listing (yaml) for annotating reference station IDs.")
	var timestampFormat = pflag.StringP("timestamp", "T", "", "Precede each message with current time, strftime format, e.g. %H:%M:%S.")
	var colorLevel = pflag.IntP("color", "t", 1, "Text colors.  0 to disable.")
	var verbose = pflag.BoolP("verbose", "v", false, "Verbose.  Report every resync and violation.")
	var version = pflag.Bool("version", false, "Print version and exit.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Decode an RTCM-104 correction stream.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}
	if *version {
		PrintVersion(*verbose)
		os.Exit(0)
	}

	text_color_init(*colorLevel)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	var input io.Reader
	switch {
	case *device != "":
		var fd = SerialPortOpen(*device, *speed)
		if fd == nil {
			os.Exit(1)
		}
		defer SerialPortClose(fd)
		input = fd
	case pflag.NArg() > 0:
		var f, err = os.Open(pflag.Arg(0))
		if err != nil {
			log.Fatal("Could not open input", "file", pflag.Arg(0), "error", err)
		}
		defer f.Close()
		input = f
	default:
		input = os.Stdin
	}

	LoadStations(*stationsFile)

	dump_stream(bufio.NewReader(input), *timestampFormat)
}

func dump_stream(r io.ByteReader, timestampFormat string) {
	var ctx = NewContext()
	var seen = make(map[int]bool)

	for {
		var b, err = r.ReadByte()
		if err != nil {
			if err != io.EOF {
				log.Error("Read failed", "error", err)
			}
			return
		}

		var event, msg = ctx.FeedByte(b)
		switch event {
		case RTCM_INCOMPLETE:
		case RTCM_RESYNC:
			log.Debug("Lost word sync, searching for preamble")
		case RTCM_VIOLATION:
			log.Warn("Protocol violation in header, discarding message")
		case RTCM_COMPLETE:
			if name, operator := StationName(msg.StationID); name != "" && !seen[msg.StationID] {
				seen[msg.StationID] = true
				log.Info("Reference station identified",
					"id", msg.StationID, "name", name, "operator", operator)
			}
			if msg.Kind == KindRefPos {
				var latlng, height = msg.RefPosLatLng()
				log.Info("Reference station position",
					"id", msg.StationID,
					"lat", fmt.Sprintf("%.6f", latlng.Lat.Degrees()),
					"lon", fmt.Sprintf("%.6f", latlng.Lng.Degrees()),
					"height", fmt.Sprintf("%.1f", height),
					"utm", UTMString(latlng))
			}
			text_color_set(COLOR_DECODED)
			if timestampFormat != "" {
				var formattedTime, _ = strftime.Format(timestampFormat, time.Now())
				dw_printf("[%s]\n", formattedTime)
			}
			dw_printf("%s", msg.Dump())
			text_color_set(COLOR_INFO)
		}
	}
}
