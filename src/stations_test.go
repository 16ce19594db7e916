package rtcm104

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var test_station_listing = `
stations:
  - id: 503
    name: "Sandy Hook"
    operator: "USCG"
  - id: 808
    name: "Point Loma"
    operator: "USCG"
`

func TestStationsLoad(t *testing.T) {
	pstations = nil

	var err = stations_load(strings.NewReader(test_station_listing))
	require.NoError(t, err)
	require.Len(t, pstations, 2)

	var name, operator = StationName(503)
	assert.Equal(t, "Sandy Hook", name)
	assert.Equal(t, "USCG", operator)

	name, operator = StationName(1)
	assert.Equal(t, "", name)
	assert.Equal(t, "", operator)
}

func TestStationsLoadRejectsGarbage(t *testing.T) {
	pstations = nil

	var err = stations_load(strings.NewReader("stations: [not: [valid"))
	assert.Error(t, err)
	assert.Empty(t, pstations)
}

func TestStationsLoadTolerantOfMissingFields(t *testing.T) {
	pstations = nil

	var err = stations_load(strings.NewReader("stations:\n  - id: 77\n"))
	require.NoError(t, err)
	require.Len(t, pstations, 1)

	var name, operator = StationName(77)
	assert.Equal(t, "", name)
	assert.Equal(t, "", operator)
}
