package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStores(t *testing.T) {
	seeds, err := parseStores(" Corner Shop:0.03, Kiosk:0 ,")
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "Corner Shop", seeds[0].Name)
	assert.True(t, seeds[0].FeeC.Equal(decimal.RequireFromString("0.03")))
	assert.Equal(t, "Kiosk", seeds[1].Name)

	empty, err := parseStores("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = parseStores("NoRate")
	assert.Error(t, err)
	_, err = parseStores("Shop:abc")
	assert.Error(t, err)
}
