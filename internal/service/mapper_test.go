package service

import (
	"testing"

	"github.com/abgdnv/beerstock/internal/store/db"
	"github.com/stretchr/testify/assert"
)

func TestMapper_RoundTrip(t *testing.T) {
	for _, typeName := range db.BeerTypeNames() {
		t.Run(typeName, func(t *testing.T) {
			beer := db.Beer{ID: 3, Name: "Brahma", Brand: "Ambev", Type: db.ParseBeerType(typeName), MaxCapacity: 50, Quantity: 10}

			dto := ToDto(&beer)

			assert.Equal(t, typeName, dto.Type)
			assert.Equal(t, beer, ToEntity(dto))
		})
	}
}

func TestMapper_FieldForField(t *testing.T) {
	dto := BeerDto{ID: 1, Name: "Guinness", Brand: "Diageo", Type: "STOUT", MaxCapacity: 20, Quantity: 5}

	beer := ToEntity(dto)

	assert.Equal(t, db.Beer{ID: 1, Name: "Guinness", Brand: "Diageo", Type: db.BeerTypeStout, MaxCapacity: 20, Quantity: 5}, beer)
	assert.Equal(t, dto, ToDto(&beer))
}

func TestMapper_UnknownType(t *testing.T) {
	beer := ToEntity(BeerDto{Name: "X", Type: "PILSNER"})
	assert.Equal(t, db.BeerTypeUnknown, beer.Type)
	assert.Equal(t, "", ToDto(&beer).Type)
}
