package rtcm104

/*------------------------------------------------------------------
 *
 * Purpose:   	Interface to the serial port of a DGPS beacon
 *		receiver, hiding operating system differences.
 *
 *---------------------------------------------------------------*/

import (
	"github.com/pkg/term"
)

/*-------------------------------------------------------------------
 *
 * Name:	SerialPortOpen
 *
 * Purpose:	Open the receiver's serial port.
 *
 * Inputs:	devicename	- Usually /dev/tty...
 *				  Could be /dev/rfcomm0 for Bluetooth.
 *
 *		baud		- Speed.  Beacon receivers are nearly
 *				  always 4800 or 9600 bps.
 *				  If 0, leave it alone.
 *
 * Returns 	Handle for serial port, or nil for failure.
 *
 *---------------------------------------------------------------*/

func SerialPortOpen(devicename string, baud int) *term.Term {

	var fd, err = term.Open(devicename, term.RawMode)

	if err != nil {
		text_color_set(COLOR_ERROR)
		dw_printf("ERROR - Could not open serial port %s: %s.\n", devicename, err)
		return nil
	}

	switch baud {
	case 0: /* Leave it alone. */
	case 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200:
		fd.SetSpeed(baud)
	default:
		text_color_set(COLOR_ERROR)
		dw_printf("SerialPortOpen: Unsupported speed %d.  Using 4800.\n", baud)
		fd.SetSpeed(4800)
	}

	return (fd)
}

/*-------------------------------------------------------------------
 *
 * Name:        SerialPortGet1
 *
 * Purpose:     Get one byte from the serial port.  Wait if not ready.
 *
 * Inputs:	fd	- Handle from open.
 *
 * Returns:	Value of byte in range of 0 to 255.
 *
 *--------------------------------------------------------------------*/

func SerialPortGet1(fd *term.Term) (byte, error) {

	var bytes = make([]byte, 1)
	var n, err = fd.Read(bytes)

	if n != 1 {
		return 0, err
	}

	return bytes[0], nil
}

/*-------------------------------------------------------------------
 *
 * Name:        SerialPortClose
 *
 * Purpose:     Close the device.
 *
 * Inputs:	fd	- Handle from open.
 *
 * Returns:	None.
 *
 *--------------------------------------------------------------------*/

func SerialPortClose(fd *term.Term) {
	if fd == nil {
		return
	}
	fd.Close()
}
