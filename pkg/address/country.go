package address

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// CountryKind identifies which variant of Country is held.
type CountryKind uint8

const (
	CountryIso2 CountryKind = iota + 1
	CountryIso3
	CountryFreeform
)

func (k CountryKind) String() string {
	switch k {
	case CountryIso2:
		return "iso2"
	case CountryIso3:
		return "iso3"
	case CountryFreeform:
		return "name"
	default:
		return ""
	}
}

func parseCountryKind(s string) (CountryKind, error) {
	for _, k := range []CountryKind{CountryIso2, CountryIso3, CountryFreeform} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown country kind %q", s)
}

// Country is a country reference: something shaped like an ISO 3166-1 alpha-2
// or alpha-3 code, or a free-form name. The zero value holds no variant.
type Country struct {
	kind CountryKind
	text string
}

func Iso2(code string) Country {
	return Country{kind: CountryIso2, text: strings.ToUpper(code)}
}

func Iso3(code string) Country {
	return Country{kind: CountryIso3, text: strings.ToUpper(code)}
}

func CountryName(name string) Country {
	return Country{kind: CountryFreeform, text: name}
}

// ClassifyCountry picks the Country variant from byte length and character
// class only. An all-caps three-letter place name comes out as Iso3.
func ClassifyCountry(s string) Country {
	switch len(s) {
	case 2:
		return Iso2(s)
	case 3:
		if isASCIIUpperOrDigit(s[0]) && isASCIIUpperOrDigit(s[1]) && isASCIIUpperOrDigit(s[2]) {
			return Iso3(s)
		}
		return CountryName(s)
	default:
		return CountryName(s)
	}
}

func (c Country) Kind() CountryKind {
	return c.kind
}

func (c Country) String() string {
	return c.text
}

func (c Country) MarshalJSON() ([]byte, error) {
	if c.kind == 0 {
		return nil, fmt.Errorf("cannot encode empty country")
	}
	return json.Marshal(taggedValue{Kind: c.kind.String(), Value: c.text})
}

func (c *Country) UnmarshalJSON(data []byte) error {
	var tv taggedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return err
	}
	country, err := ParseCountry(tv.Kind, tv.Value)
	if err != nil {
		return err
	}
	*c = country
	return nil
}

// ParseCountry rebuilds a Country from its kind name and canonical text
// without reclassifying. Iso2 text may be one or two runes: uppercasing a
// two-byte input can shorten it ("ſ" becomes "S").
func ParseCountry(kind, value string) (Country, error) {
	k, err := parseCountryKind(kind)
	if err != nil {
		return Country{}, err
	}

	switch k {
	case CountryIso2:
		if n := utf8.RuneCountInString(value); n < 1 || n > 2 {
			return Country{}, fmt.Errorf("iso2 country %q must be 1 or 2 characters", value)
		}
		return Iso2(value), nil
	case CountryIso3:
		if ClassifyCountry(strings.ToUpper(value)).Kind() != CountryIso3 {
			return Country{}, fmt.Errorf("iso3 country %q must be 3 letters or digits", value)
		}
		return Iso3(value), nil
	default:
		return CountryName(value), nil
	}
}
