// Package db holds the persisted beer model shared by every store implementation.
package db

import "strings"

// BeerType is the numeric classification stored in beers.type.
type BeerType int16

const (
	BeerTypeUnknown BeerType = iota
	BeerTypeLager
	BeerTypeMalzbier
	BeerTypeWitbier
	BeerTypeWeiss
	BeerTypeAle
	BeerTypeIPA
	BeerTypeStout
)

var beerTypeNames = [...]string{
	BeerTypeLager:    "LAGER",
	BeerTypeMalzbier: "MALZBIER",
	BeerTypeWitbier:  "WITBIER",
	BeerTypeWeiss:    "WEISS",
	BeerTypeAle:      "ALE",
	BeerTypeIPA:      "IPA",
	BeerTypeStout:    "STOUT",
}

// String returns the upper-case name of the type, or "" for values outside the enumeration.
func (t BeerType) String() string {
	if t <= BeerTypeUnknown || int(t) >= len(beerTypeNames) {
		return ""
	}
	return beerTypeNames[t]
}

// ParseBeerType is the inverse of String. Matching is case-insensitive;
// unknown names yield BeerTypeUnknown.
func ParseBeerType(name string) BeerType {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range beerTypeNames {
		if n != "" && n == name {
			return BeerType(i)
		}
	}
	return BeerTypeUnknown
}

// BeerTypeNames lists the valid type names in enumeration order.
func BeerTypeNames() []string {
	return append([]string(nil), beerTypeNames[1:]...)
}

type Beer struct {
	ID          int64    `db:"id"`
	Name        string   `db:"name"`
	Brand       string   `db:"brand"`
	Type        BeerType `db:"type"`
	MaxCapacity int32    `db:"max_capacity"`
	Quantity    int32    `db:"quantity"`
}
