package rtcm104

/*------------------------------------------------------------------
 *
 * Purpose:	Look up a human name for a reference station ID.
 *
 * Description:	The header of every message carries a 10-bit station
 *		ID and nothing else about the station.  Coast guard
 *		beacon listings map those IDs to names and operators;
 *		we read such a listing from a yaml file at run time
 *		rather than compiling it in, so users can keep their
 *		own regional lists current.
 *
 *------------------------------------------------------------------*/

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type station struct {
	id       int
	name     string
	operator string
}

var pstations []*station

var station_search_locations = []string{
	"stations.yaml",         // Current working directory
	"data/stations.yaml",    // Windows with CMake
	"../data/stations.yaml", // Source tree
	"/usr/local/share/laika/stations.yaml",
	"/usr/share/laika/stations.yaml",
}

/*------------------------------------------------------------------
 *
 * Function:	stations_init
 *
 * Purpose:	Called once at startup to read the station listing,
 *		searching the usual locations or the explicit path
 *		given on the command line.
 *
 * Inputs:	path	- File name, or "" to search the defaults.
 *
 * Outputs:	pstations.
 *
 *------------------------------------------------------------------*/

func stations_init(path string) {

	var fp *os.File
	if path != "" {
		var err error
		fp, err = os.Open(path)
		if err != nil {
			text_color_set(COLOR_ERROR)
			dw_printf("Could not open station listing %s: %s\n", path, err)
			return
		}
	} else {
		for _, location := range station_search_locations {
			var err error
			fp, err = os.Open(location)
			if err == nil {
				break
			}
		}
	}

	if fp == nil {
		// Not an error: the decoder works fine without names.
		return
	}
	defer fp.Close()

	var loadErr = stations_load(fp)
	if loadErr != nil {
		text_color_set(COLOR_ERROR)
		dw_printf("Error reading station listing %s: %s\n", fp.Name(), loadErr)
	}
}

func stations_load(r io.Reader) error {
	var data, readErr = io.ReadAll(r)
	if readErr != nil {
		return readErr
	}

	// Some shenanigans to map this all to the right data types...
	// Could probably do something with fancy struct tagging etc.

	var stationsConfig map[string]interface{}

	var unmarshallErr = yaml.Unmarshal(data, &stationsConfig)
	if unmarshallErr != nil {
		return unmarshallErr
	}

	var stationsSection, _ = stationsConfig["stations"].([]interface{})
	for _, _entry := range stationsSection {
		var entry, _ = _entry.(map[string]interface{})
		var s = new(station)

		s.id, _ = entry["id"].(int)
		s.name, _ = entry["name"].(string)
		s.operator, _ = entry["operator"].(string)

		pstations = append(pstations, s)
	}
	return nil
}

/*------------------------------------------------------------------
 *
 * Function:	StationName
 *
 * Purpose:	Find the listed name for a reference station ID.
 *
 * Returns:	Name and operator, or "" for an unlisted station.
 *
 *------------------------------------------------------------------*/

func StationName(id int) (string, string) {
	for _, s := range pstations {
		if s.id == id {
			return s.name, s.operator
		}
	}
	return "", ""
}

// LoadStations reads a station listing for callers that manage their
// own files.  Used by rtcmdump when --stations is given.
func LoadStations(path string) {
	stations_init(path)
}
