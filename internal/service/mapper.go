package service

import "github.com/abgdnv/beerstock/internal/store/db"

// ToEntity converts a BeerDto to the persisted model. It does not validate:
// an unknown type name becomes db.BeerTypeUnknown.
func ToEntity(dto BeerDto) db.Beer {
	return db.Beer{
		ID:          dto.ID,
		Name:        dto.Name,
		Brand:       dto.Brand,
		Type:        db.ParseBeerType(dto.Type),
		MaxCapacity: int32(dto.MaxCapacity),
		Quantity:    int32(dto.Quantity),
	}
}

// ToDto converts a persisted beer to a BeerDto.
func ToDto(beer *db.Beer) BeerDto {
	return BeerDto{
		ID:          beer.ID,
		Name:        beer.Name,
		Brand:       beer.Brand,
		Type:        beer.Type.String(),
		MaxCapacity: int(beer.MaxCapacity),
		Quantity:    int(beer.Quantity),
	}
}
