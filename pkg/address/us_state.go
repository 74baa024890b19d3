package address

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStateCode is returned by ParseUsStateCode for text outside the
// 51-entry table.
var ErrUnknownStateCode = errors.New("not a recognized US state code")

// UsStateCode is one of the 50 US states or the District of Columbia.
// The zero value is not a valid code.
type UsStateCode uint8

const (
	AL UsStateCode = iota + 1
	AK
	AZ
	AR
	CA
	CO
	CT
	DE
	FL
	GA
	HI
	ID
	IL
	IN
	IA
	KS
	KY
	LA
	ME
	MD
	MA
	MI
	MN
	MS
	MO
	MT
	NE
	NV
	NH
	NJ
	NM
	NY
	NC
	ND
	OH
	OK
	OR
	PA
	RI
	SC
	SD
	TN
	TX
	UT
	VT
	VA
	WA
	WV
	WI
	WY
	DC // Washington D.C.
)

var usStateCodeText = [...]string{
	AL: "AL", AK: "AK", AZ: "AZ", AR: "AR", CA: "CA", CO: "CO", CT: "CT",
	DE: "DE", FL: "FL", GA: "GA", HI: "HI", ID: "ID", IL: "IL", IN: "IN",
	IA: "IA", KS: "KS", KY: "KY", LA: "LA", ME: "ME", MD: "MD", MA: "MA",
	MI: "MI", MN: "MN", MS: "MS", MO: "MO", MT: "MT", NE: "NE", NV: "NV",
	NH: "NH", NJ: "NJ", NM: "NM", NY: "NY", NC: "NC", ND: "ND", OH: "OH",
	OK: "OK", OR: "OR", PA: "PA", RI: "RI", SC: "SC", SD: "SD", TN: "TN",
	TX: "TX", UT: "UT", VT: "VT", VA: "VA", WA: "WA", WV: "WV", WI: "WI",
	WY: "WY", DC: "DC",
}

var usStateByText = func() map[string]UsStateCode {
	m := make(map[string]UsStateCode, len(usStateCodeText))
	for code := AL; code <= DC; code++ {
		m[usStateCodeText[code]] = code
	}
	return m
}()

// UsStateCodes returns all 51 codes in declaration order.
func UsStateCodes() []UsStateCode {
	codes := make([]UsStateCode, 0, int(DC))
	for code := AL; code <= DC; code++ {
		codes = append(codes, code)
	}
	return codes
}

// Valid reports whether c is one of the 51 table entries.
func (c UsStateCode) Valid() bool {
	return c >= AL && c <= DC
}

// String returns the uppercase two-letter code, or "" for an invalid value.
func (c UsStateCode) String() string {
	if !c.Valid() {
		return ""
	}
	return usStateCodeText[c]
}

// ParseUsStateCode decodes a two-letter code in any letter case.
func ParseUsStateCode(s string) (UsStateCode, error) {
	if code, ok := usStateByText[strings.ToUpper(s)]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStateCode, s)
}

func (c UsStateCode) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid US state code value %d", uint8(c))
	}
	return []byte(c.String()), nil
}

func (c *UsStateCode) UnmarshalText(text []byte) error {
	code, err := ParseUsStateCode(string(text))
	if err != nil {
		return err
	}
	*c = code
	return nil
}
