package address

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StateKind identifies which variant of State is held.
type StateKind uint8

const (
	StateUsCode StateKind = iota + 1
	StateCanadianProvince
	StateOther
)

func (k StateKind) String() string {
	switch k {
	case StateUsCode:
		return "us_state_code"
	case StateCanadianProvince:
		return "canadian_province"
	case StateOther:
		return "other"
	default:
		return ""
	}
}

func parseStateKind(s string) (StateKind, error) {
	for _, k := range []StateKind{StateUsCode, StateCanadianProvince, StateOther} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown state kind %q", s)
}

// State is a state, province or region. Exactly one variant is active; the
// zero value holds none and renders as "".
type State struct {
	kind StateKind
	code UsStateCode
	text string
}

func UsState(code UsStateCode) State {
	return State{kind: StateUsCode, code: code}
}

// CanadianProvince holds a two-letter province code, uppercased.
func CanadianProvince(code string) State {
	return State{kind: StateCanadianProvince, text: strings.ToUpper(code)}
}

// OtherState holds any other region text as given.
func OtherState(name string) State {
	return State{kind: StateOther, text: name}
}

// ClassifyState picks the State variant for raw parser text. First match wins:
// a US code in any case, then any two ASCII letters as a Canadian province,
// then the text unchanged as Other.
func ClassifyState(s string) State {
	if code, err := ParseUsStateCode(s); err == nil {
		return UsState(code)
	}
	if len(s) == 2 && isASCIILetter(s[0]) && isASCIILetter(s[1]) {
		return CanadianProvince(s)
	}
	return OtherState(s)
}

func (s State) Kind() StateKind {
	return s.kind
}

// UsStateCode returns the code when s is the US variant.
func (s State) UsStateCode() (UsStateCode, bool) {
	return s.code, s.kind == StateUsCode
}

func (s State) String() string {
	switch s.kind {
	case StateUsCode:
		return s.code.String()
	case StateCanadianProvince, StateOther:
		return s.text
	default:
		return ""
	}
}

func (s State) MarshalJSON() ([]byte, error) {
	if s.kind == 0 {
		return nil, fmt.Errorf("cannot encode empty state")
	}
	return json.Marshal(taggedValue{Kind: s.kind.String(), Value: s.String()})
}

func (s *State) UnmarshalJSON(data []byte) error {
	var tv taggedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return err
	}
	state, err := ParseState(tv.Kind, tv.Value)
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// ParseState rebuilds a State from its kind name and canonical text.
func ParseState(kind, value string) (State, error) {
	k, err := parseStateKind(kind)
	if err != nil {
		return State{}, err
	}

	switch k {
	case StateUsCode:
		code, err := ParseUsStateCode(value)
		if err != nil {
			return State{}, err
		}
		return UsState(code), nil
	case StateCanadianProvince:
		if ClassifyState(value).Kind() != StateCanadianProvince {
			return State{}, fmt.Errorf("%q is not a Canadian province code", value)
		}
		return CanadianProvince(value), nil
	default:
		return OtherState(value), nil
	}
}

// taggedValue is the JSON shape shared by State and Country.
type taggedValue struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isASCIIUpperOrDigit(b byte) bool {
	return ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
