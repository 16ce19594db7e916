package main

/*------------------------------------------------------------------
 *
 * Name:        main
 *
 * Purpose:     Generate a synthetic, parity-valid RTCM-104 stream
 *		for exercising decoders and receivers.
 *
 *----------------------------------------------------------------*/

import (
	rtcm104 "github.com/doismellburning/laika/src"
)

func main() {
	rtcm104.RTCMGenMain()
}
