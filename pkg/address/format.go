package address

import "strings"

// SingleLine renders the primary line: house number, road, unit as "#<unit>",
// city, state, postcode and country, space separated. Absent components are
// skipped and every other field is left out.
func (a Address) SingleLine() string {
	parts := make([]string, 0, 7)

	if a.HouseNumber != nil {
		parts = append(parts, *a.HouseNumber)
	}
	if a.Road != nil {
		parts = append(parts, *a.Road)
	}
	if a.Unit != nil {
		parts = append(parts, "#"+*a.Unit)
	}
	if a.City != nil {
		parts = append(parts, *a.City)
	}
	if a.State != nil {
		parts = append(parts, a.State.String())
	}
	if a.Postcode != nil {
		parts = append(parts, a.Postcode.String())
	}
	if a.Country != nil {
		parts = append(parts, a.Country.String())
	}

	return strings.Join(parts, " ")
}
