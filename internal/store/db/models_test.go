package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeerType_StringAndParse(t *testing.T) {
	for _, name := range BeerTypeNames() {
		t.Run(name, func(t *testing.T) {
			bt := ParseBeerType(name)
			assert.NotEqual(t, BeerTypeUnknown, bt)
			assert.Equal(t, name, bt.String())
		})
	}
}

func TestBeerType_Edges(t *testing.T) {
	assert.Equal(t, BeerTypeLager, ParseBeerType(" lager "))
	assert.Equal(t, BeerTypeUnknown, ParseBeerType("PILSNER"))
	assert.Equal(t, BeerTypeUnknown, ParseBeerType(""))
	assert.Equal(t, "", BeerTypeUnknown.String())
	assert.Equal(t, "", BeerType(42).String())
	assert.Equal(t, "", BeerType(-1).String())
	assert.Equal(t, BeerType(1), BeerTypeLager)
	assert.Equal(t, BeerType(7), BeerTypeStout)
	assert.Len(t, BeerTypeNames(), 7)
}
