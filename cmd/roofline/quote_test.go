package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItem(t *testing.T) {
	li, err := parseItem("shingleMetalBase.gaf.7-8_1layer=24")
	require.NoError(t, err)
	assert.Equal(t, "shingleMetalBase", li.Category)
	assert.Equal(t, "gaf", li.Table)
	assert.Equal(t, "7-8_1layer", li.Key)
	assert.InDelta(t, 24.0, li.Quantity, 0.0001)

	// Dotted rate keys keep their tail intact.
	li, err = parseItem("penetrations.pipes.1.5_iron=3")
	require.NoError(t, err)
	assert.Equal(t, "pipes", li.Table)
	assert.Equal(t, "1.5_iron", li.Key)

	_, err = parseItem("trimEdges.standard.ridge")
	assert.Error(t, err, "missing quantity")

	_, err = parseItem("ridge=10")
	assert.Error(t, err, "path too short")

	_, err = parseItem("trimEdges.standard.ridge=abc")
	assert.Error(t, err, "non-numeric quantity")
}

func TestParseSkylight(t *testing.T) {
	li, err := parseSkylight("C06:vented:2:9-10")
	require.NoError(t, err)
	assert.Equal(t, "skylights", li.Category)
	assert.Equal(t, "models", li.Table)
	assert.Equal(t, "C06_vented", li.Key)
	assert.Equal(t, "9-10", li.PitchBand)
	assert.InDelta(t, 2.0, li.Quantity, 0.0001)

	li, err = parseSkylight("2234:fixed:1")
	require.NoError(t, err)
	assert.Equal(t, "2234_fixed", li.Key)
	assert.Empty(t, li.PitchBand)

	_, err = parseSkylight("C06:vented")
	assert.Error(t, err, "missing quantity")

	_, err = parseSkylight("C06:vented:two")
	assert.Error(t, err, "non-numeric quantity")
}
