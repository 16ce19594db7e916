package rtcm104

/*------------------------------------------------------------------
 *
 * Purpose:	Turn a type 3 reference position into coordinates a
 *		human can check against a beacon listing.
 *
 * Description:	The message carries earth centred earth fixed metres.
 *		Convert to WGS-84 geodetic by the usual fixed point
 *		iteration on the prime vertical radius, then hand the
 *		result to coordconv for the UTM form that beacon
 *		listings print.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/coordconv"
)

const (
	wgs84_a = 6378137.0           /* semi major axis, metres */
	wgs84_f = 1.0 / 298.257223563 /* flattening */
)

/*-------------------------------------------------------------------
 *
 * Name:	ecef_to_geodetic
 *
 * Purpose:	WGS-84 ECEF to latitude / longitude / ellipsoid height.
 *
 * Inputs:	x, y, z	- metres.
 *
 * Returns:	Degrees, degrees, metres.
 *
 *--------------------------------------------------------------------*/

func ecef_to_geodetic(x float64, y float64, z float64) (float64, float64, float64) {
	var e2 = wgs84_f * (2.0 - wgs84_f)
	var r2 = x*x + y*y
	var v = wgs84_a
	var zk float64

	for zc := z; math.Abs(zc-zk) >= 1e-4; {
		zk = zc
		var sinp = zc / math.Sqrt(r2+zc*zc)
		v = wgs84_a / math.Sqrt(1.0-e2*sinp*sinp)
		zc = z + v*e2*sinp
	}

	var lat = math.Pi / 2.0
	if z < 0 {
		lat = -math.Pi / 2.0
	}
	var lon float64
	if r2 > 1e-12 {
		lat = math.Atan(zk / math.Sqrt(r2))
		lon = math.Atan2(y, x)
	}
	var height = math.Sqrt(r2+zk*zk) - v

	return lat * 180.0 / math.Pi, lon * 180.0 / math.Pi, height
}

// RefPosLatLng converts a KindRefPos message to geodetic coordinates.
func (msg *Message) RefPosLatLng() (s2.LatLng, float64) {
	var lat, lon, height = ecef_to_geodetic(msg.RefPos[0], msg.RefPos[1], msg.RefPos[2])
	return s2.LatLng{Lat: s1.Angle(lat * math.Pi / 180.0), Lng: s1.Angle(lon * math.Pi / 180.0)}, height
}

func hemisphere_rune(h coordconv.Hemisphere) rune {
	switch h {
	case coordconv.HemisphereNorth:
		return 'N'
	case coordconv.HemisphereSouth:
		return 'S'
	default:
		return '?'
	}
}

// UTMString renders a position the way coast guard beacon listings do.
func UTMString(latlng s2.LatLng) string {
	var utm, err = coordconv.DefaultUTMConverter.ConvertFromGeodetic(latlng, 0)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d%c %.0f %.0f", utm.Zone, hemisphere_rune(utm.Hemisphere), utm.Easting, utm.Northing)
}
