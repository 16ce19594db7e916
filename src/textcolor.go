package rtcm104

// Console colouring in the spirit of Dire Wolf's textcolor.c: callers
// declare the kind of output and the escape codes stay in one place.
// Level 0 means plain output.

import "fmt"

type color_e int

const (
	COLOR_INFO    color_e = iota /* default */
	COLOR_ERROR                  /* red */
	COLOR_DECODED                /* blue */
	COLOR_DEBUG                  /* dark green */
)

var _text_color_level int

var color_codes = map[color_e]string{
	COLOR_INFO:    "\033[0m",
	COLOR_ERROR:   "\033[1;31m",
	COLOR_DECODED: "\033[0;34m",
	COLOR_DEBUG:   "\033[0;32m",
}

func text_color_init(level int) {
	_text_color_level = level
}

func text_color_set(c color_e) {
	if _text_color_level == 0 {
		return
	}

	fmt.Print(color_codes[c])
}
