package model

import (
	"postaladdr/pkg/address"
	"postaladdr/pkg/sanitizer"
	"time"
)

// AddressRecord is the stored form of a normalized address. The canonical
// components are the source of truth; Address is rebuilt from them on read
// and the remaining fields are denormalized for querying.
type AddressRecord struct {
	ID          string            `bson:"_id,omitempty" json:"id,omitempty" validate:"omitempty,mongodb"`
	Components  map[string]string `bson:"components" json:"-" validate:"required"`
	Address     address.Address   `bson:"-" json:"address"`
	SingleLine  string            `bson:"single_line" json:"single_line"`
	CityKey     string            `bson:"city_key,omitempty" json:"-"`
	StateKind   string            `bson:"state_kind,omitempty" json:"-" validate:"omitempty,oneof=us_state_code canadian_province other"`
	CountryKind string            `bson:"country_kind,omitempty" json:"-" validate:"omitempty,oneof=iso2 iso3 name"`
	Source      string            `bson:"source,omitempty" json:"source,omitempty" validate:"omitempty,max=64"`
	CreatedAt   time.Time         `bson:"created_at" json:"created_at"`
}

func NewAddressRecord(a address.Address, source string) *AddressRecord {
	rec := &AddressRecord{
		Components: a.Components(),
		Address:    a,
		SingleLine: a.SingleLine(),
		Source:     source,
	}
	if a.City != nil {
		rec.CityKey = sanitizer.PlaceKey(*a.City)
	}
	if a.State != nil {
		rec.StateKind = a.State.Kind().String()
	}
	if a.Country != nil {
		rec.CountryKind = a.Country.Kind().String()
	}
	return rec
}

// Hydrate rebuilds Address from the stored components. State and country
// are restored from their stored kinds so the variant that was indexed is the
// one returned.
func (r *AddressRecord) Hydrate() {
	r.Address = address.FromParsed(r.Components)

	if v, ok := r.Components["state"]; ok && r.StateKind != "" {
		if st, err := address.ParseState(r.StateKind, v); err == nil {
			r.Address.State = &st
		}
	}
	if v, ok := r.Components["country"]; ok && r.CountryKind != "" {
		if c, err := address.ParseCountry(r.CountryKind, v); err == nil {
			r.Address.Country = &c
		}
	}
}

type NormalizeRequest struct {
	Components map[string]string `json:"components" validate:"required,max=64,dive,keys,required,max=64,endkeys,max=1024"`
	// Strict rejects component labels outside the vocabulary instead of dropping them.
	Strict bool `json:"strict,omitempty"`
}

type BatchNormalizeRequest struct {
	Items []NormalizeRequest `json:"items" validate:"required,min=1,dive"`
}

type CreateAddressRequest struct {
	NormalizeRequest
	Source string `json:"source,omitempty" validate:"omitempty,max=64"`
}

type NormalizedAddress struct {
	Address    address.Address `json:"address"`
	SingleLine string          `json:"single_line"`
}

func NewNormalizedAddress(a address.Address) NormalizedAddress {
	return NormalizedAddress{Address: a, SingleLine: a.SingleLine()}
}

type AddressFilter struct {
	CityKeys    []string `validate:"max=20,dive,placekey"`
	StateKind   string   `validate:"omitempty,oneof=us_state_code canadian_province other"`
	CountryKind string   `validate:"omitempty,oneof=iso2 iso3 name"`
}

type BatchNormalizeResponse struct {
	BatchID string              `json:"batch_id"`
	Items   []NormalizedAddress `json:"items"`
}

type BatchCreateRequest struct {
	Items []CreateAddressRequest `json:"items" validate:"required,min=1,dive"`
}
