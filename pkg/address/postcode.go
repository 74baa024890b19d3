package address

import (
	"encoding/json"
	"errors"
	"strings"
)

var errBlankPostcode = errors.New("postcode cannot be blank")

// Postcode is a postal or ZIP code. The stored text is never blank.
type Postcode struct {
	code string
}

// NewPostcode wraps code unless it is empty or whitespace only. The text is
// stored as given: no trimming, case folding or separator rewriting.
func NewPostcode(code string) (Postcode, bool) {
	if strings.TrimSpace(code) == "" {
		return Postcode{}, false
	}
	return Postcode{code: code}, true
}

func (p Postcode) String() string {
	return p.code
}

func (p Postcode) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.code)
}

func (p *Postcode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	pc, ok := NewPostcode(s)
	if !ok {
		return errBlankPostcode
	}
	*p = pc
	return nil
}
