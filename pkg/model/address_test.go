package model

import (
	"postaladdr/pkg/address"
	"reflect"
	"testing"
)

func TestNewAddressRecord(t *testing.T) {
	a := address.FromParsed(map[string]string{
		"house_number": "781",
		"road":         "Franklin Ave",
		"city":         "  New  York ",
		"state":        "ny",
		"postcode":     "11216",
		"country":      "USA",
		"zip":          "ignored",
	})

	rec := NewAddressRecord(a, "crm-import")

	if rec.SingleLine != "781 Franklin Ave   New  York  NY 11216 USA" {
		t.Errorf("SingleLine = %q", rec.SingleLine)
	}
	if rec.CityKey != "new_york" {
		t.Errorf("CityKey = %q, want new_york", rec.CityKey)
	}
	if rec.StateKind != "us_state_code" {
		t.Errorf("StateKind = %q", rec.StateKind)
	}
	if rec.CountryKind != "iso3" {
		t.Errorf("CountryKind = %q", rec.CountryKind)
	}
	if rec.Components["state"] != "NY" {
		t.Errorf("components should hold canonical state, got %q", rec.Components["state"])
	}
	if _, ok := rec.Components["zip"]; ok {
		t.Error("unknown labels must not be stored")
	}
	if rec.Source != "crm-import" {
		t.Errorf("Source = %q", rec.Source)
	}
}

func TestAddressRecord_Hydrate(t *testing.T) {
	a := address.FromParsed(map[string]string{"city": "Toronto", "state": "on", "country": "ca", "unit": "12"})
	rec := NewAddressRecord(a, "")

	stored := &AddressRecord{Components: rec.Components}
	stored.Hydrate()

	if !reflect.DeepEqual(stored.Address, a) {
		t.Errorf("Hydrate() = %+v, want %+v", stored.Address, a)
	}
}

func TestAddressRecord_HydrateKeepsStoredKinds(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		wantText string
	}{
		{name: "long s uppercases to one rune", country: "ſ", wantText: "S"},
		{name: "dotless i uppercases to one rune", country: "ı", wantText: "I"},
		{name: "plain iso2", country: "fr", wantText: "FR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := address.FromParsed(map[string]string{"country": tt.country, "state": "qc"})
			rec := NewAddressRecord(a, "")
			if rec.CountryKind != "iso2" {
				t.Fatalf("CountryKind = %q, want iso2", rec.CountryKind)
			}

			stored := &AddressRecord{
				Components:  rec.Components,
				StateKind:   rec.StateKind,
				CountryKind: rec.CountryKind,
			}
			stored.Hydrate()

			if stored.Address.Country == nil {
				t.Fatal("country lost on hydrate")
			}
			if got := stored.Address.Country.Kind().String(); got != stored.CountryKind {
				t.Errorf("hydrated country kind = %q, stored %q", got, stored.CountryKind)
			}
			if got := stored.Address.Country.String(); got != tt.wantText {
				t.Errorf("hydrated country = %q, want %q", got, tt.wantText)
			}
			if !reflect.DeepEqual(stored.Address, a) {
				t.Errorf("Hydrate() = %+v, want %+v", stored.Address, a)
			}
		})
	}
}

func TestAddressRecord_HydrateIgnoresBadKind(t *testing.T) {
	stored := &AddressRecord{
		Components:  map[string]string{"country": "Canada"},
		CountryKind: "iso3",
	}
	stored.Hydrate()

	if stored.Address.Country == nil || stored.Address.Country.Kind() != address.CountryFreeform {
		t.Errorf("expected classifier result when stored kind does not fit, got %+v", stored.Address.Country)
	}
}

func TestNewAddressRecord_EmptyAddress(t *testing.T) {
	rec := NewAddressRecord(address.Address{}, "")
	if rec.SingleLine != "" || rec.CityKey != "" || rec.StateKind != "" || rec.CountryKind != "" {
		t.Errorf("empty address produced %+v", rec)
	}
	if rec.Components == nil || len(rec.Components) != 0 {
		t.Errorf("Components = %v, want empty non-nil map", rec.Components)
	}
}
