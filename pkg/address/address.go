package address

// Field is a component label in the parser vocabulary. Matching is exact and
// case-sensitive.
type Field string

const (
	FieldHouseNumber   Field = "house_number"
	FieldRoad          Field = "road"
	FieldUnit          Field = "unit"
	FieldHouse         Field = "house"
	FieldLevel         Field = "level"
	FieldStaircase     Field = "staircase"
	FieldEntrance      Field = "entrance"
	FieldPoBox         Field = "po_box"
	FieldPostcode      Field = "postcode"
	FieldSuburb        Field = "suburb"
	FieldCity          Field = "city"
	FieldCityDistrict  Field = "city_district"
	FieldIsland        Field = "island"
	FieldState         Field = "state"
	FieldStateDistrict Field = "state_district"
	FieldCountry       Field = "country"
	FieldCountryRegion Field = "country_region"
	FieldWorldRegion   Field = "world_region"
	FieldNeighbourhood Field = "neighbourhood"
	FieldCategory      Field = "category"
	FieldNear          Field = "near"
)

var vocabulary = []Field{
	FieldHouseNumber, FieldRoad, FieldUnit, FieldHouse, FieldLevel,
	FieldStaircase, FieldEntrance, FieldPoBox, FieldPostcode, FieldSuburb,
	FieldCity, FieldCityDistrict, FieldIsland, FieldState, FieldStateDistrict,
	FieldCountry, FieldCountryRegion, FieldWorldRegion, FieldNeighbourhood,
	FieldCategory, FieldNear,
}

// Fields returns the recognized vocabulary.
func Fields() []Field {
	out := make([]Field, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// Known reports whether f is in the vocabulary.
func (f Field) Known() bool {
	_, ok := fieldTable[f]
	return ok
}

// Address is a parsed postal address. A nil field is absent; nothing is
// defaulted and no cross-field consistency is enforced.
type Address struct {
	HouseNumber   *string   `json:"house_number,omitempty"`
	Road          *string   `json:"road,omitempty"`
	Unit          *string   `json:"unit,omitempty"`
	House         *string   `json:"house,omitempty"`
	Level         *string   `json:"level,omitempty"`
	Staircase     *string   `json:"staircase,omitempty"`
	Entrance      *string   `json:"entrance,omitempty"`
	PoBox         *string   `json:"po_box,omitempty"`
	Postcode      *Postcode `json:"postcode,omitempty"`
	Suburb        *string   `json:"suburb,omitempty"`
	City          *string   `json:"city,omitempty"`
	CityDistrict  *string   `json:"city_district,omitempty"`
	Island        *string   `json:"island,omitempty"`
	State         *State    `json:"state,omitempty"`
	StateDistrict *string   `json:"state_district,omitempty"`
	Country       *Country  `json:"country,omitempty"`
	CountryRegion *string   `json:"country_region,omitempty"`
	WorldRegion   *string   `json:"world_region,omitempty"`
	Neighbourhood *string   `json:"neighbourhood,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Near          *string   `json:"near,omitempty"`
}

// Component is one labelled span of parser output.
type Component struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type fieldAccess struct {
	set func(a *Address, value string)
	get func(a *Address) (string, bool)
}

func text(ref func(a *Address) **string) fieldAccess {
	return fieldAccess{
		set: func(a *Address, value string) { *ref(a) = &value },
		get: func(a *Address) (string, bool) {
			if p := *ref(a); p != nil {
				return *p, true
			}
			return "", false
		},
	}
}

var fieldTable = map[Field]fieldAccess{
	FieldHouseNumber:   text(func(a *Address) **string { return &a.HouseNumber }),
	FieldRoad:          text(func(a *Address) **string { return &a.Road }),
	FieldUnit:          text(func(a *Address) **string { return &a.Unit }),
	FieldHouse:         text(func(a *Address) **string { return &a.House }),
	FieldLevel:         text(func(a *Address) **string { return &a.Level }),
	FieldStaircase:     text(func(a *Address) **string { return &a.Staircase }),
	FieldEntrance:      text(func(a *Address) **string { return &a.Entrance }),
	FieldPoBox:         text(func(a *Address) **string { return &a.PoBox }),
	FieldSuburb:        text(func(a *Address) **string { return &a.Suburb }),
	FieldCity:          text(func(a *Address) **string { return &a.City }),
	FieldCityDistrict:  text(func(a *Address) **string { return &a.CityDistrict }),
	FieldIsland:        text(func(a *Address) **string { return &a.Island }),
	FieldStateDistrict: text(func(a *Address) **string { return &a.StateDistrict }),
	FieldCountryRegion: text(func(a *Address) **string { return &a.CountryRegion }),
	FieldWorldRegion:   text(func(a *Address) **string { return &a.WorldRegion }),
	FieldNeighbourhood: text(func(a *Address) **string { return &a.Neighbourhood }),
	FieldCategory:      text(func(a *Address) **string { return &a.Category }),
	FieldNear:          text(func(a *Address) **string { return &a.Near }),
	FieldPostcode: {
		set: func(a *Address, value string) {
			a.Postcode = nil
			if pc, ok := NewPostcode(value); ok {
				a.Postcode = &pc
			}
		},
		get: func(a *Address) (string, bool) {
			if a.Postcode == nil {
				return "", false
			}
			return a.Postcode.String(), true
		},
	},
	FieldState: {
		set: func(a *Address, value string) {
			st := ClassifyState(value)
			a.State = &st
		},
		get: func(a *Address) (string, bool) {
			if a.State == nil {
				return "", false
			}
			return a.State.String(), true
		},
	},
	FieldCountry: {
		set: func(a *Address, value string) {
			c := ClassifyCountry(value)
			a.Country = &c
		},
		get: func(a *Address) (string, bool) {
			if a.Country == nil {
				return "", false
			}
			return a.Country.String(), true
		},
	},
}

// FromParsed builds an Address from a label → value mapping. Unknown labels
// are dropped, free-text values are copied verbatim, and state, country and
// postcode go through their classifiers. It never fails.
func FromParsed(parsed map[string]string) Address {
	var a Address
	for label, value := range parsed {
		a.Set(Field(label), value)
	}
	return a
}

// FromComponents builds an Address from ordered parser output. When a label
// repeats, the last value wins.
func FromComponents(components []Component) Address {
	var a Address
	for _, c := range components {
		a.Set(Field(c.Label), c.Value)
	}
	return a
}

// Set assigns value to field f as FromParsed would. It reports false, leaving
// a untouched, when f is outside the vocabulary.
func (a *Address) Set(f Field, value string) bool {
	access, ok := fieldTable[f]
	if !ok {
		return false
	}
	access.set(a, value)
	return true
}

// Get returns the canonical text of field f.
func (a Address) Get(f Field) (string, bool) {
	access, ok := fieldTable[f]
	if !ok {
		return "", false
	}
	return access.get(&a)
}

// Components projects a back onto the raw vocabulary using canonical text.
// Kinds are not carried: an Iso2 country whose uppercase form is one rune
// ("ſ" becomes "S") reclassifies as a name. Keep the kinds alongside and
// restore with ParseState and ParseCountry when the exact variant matters.
func (a Address) Components() map[string]string {
	out := make(map[string]string)
	for _, f := range vocabulary {
		if v, ok := a.Get(f); ok {
			out[string(f)] = v
		}
	}
	return out
}

// IsEmpty reports whether every field is absent.
func (a Address) IsEmpty() bool {
	for _, f := range vocabulary {
		if _, ok := a.Get(f); ok {
			return false
		}
	}
	return true
}
