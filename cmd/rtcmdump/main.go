package main

/*------------------------------------------------------------------
 *
 * Name:        main
 *
 * Purpose:     Decode an RTCM-104 differential GPS correction stream
 *		from a beacon receiver, a file, or stdin, and print
 *		each message in a readable diagnostic form.
 *
 *----------------------------------------------------------------*/

import (
	rtcm104 "github.com/doismellburning/laika/src"
)

func main() {
	rtcm104.RTCMDumpMain()
}
