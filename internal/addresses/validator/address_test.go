package validator

import (
	"errors"
	"fmt"
	"postaladdr/pkg/address"
	"postaladdr/pkg/logger"
	"postaladdr/pkg/model"
	"strings"
	"testing"
)

func newTestValidator() *AddressValidator {
	return NewAddressValidator(logger.Discard())
}

func TestValidate_NormalizeRequest(t *testing.T) {
	v := newTestValidator()

	tooMany := make(map[string]string)
	for i := 0; i < 65; i++ {
		tooMany[fmt.Sprintf("k%d", i)] = "v"
	}

	tests := []struct {
		name      string
		req       model.NormalizeRequest
		wantError bool
		contains  string
	}{
		{
			name: "valid request",
			req:  model.NormalizeRequest{Components: map[string]string{"road": "Main St", "city": "Springfield"}},
		},
		{
			name: "empty components allowed",
			req:  model.NormalizeRequest{Components: map[string]string{}},
		},
		{
			name: "unknown labels allowed when not strict",
			req:  model.NormalizeRequest{Components: map[string]string{"zip": "90210"}},
		},
		{
			name:      "missing components",
			req:       model.NormalizeRequest{},
			wantError: true,
			contains:  "components is required",
		},
		{
			name:      "empty label",
			req:       model.NormalizeRequest{Components: map[string]string{"": "x"}},
			wantError: true,
		},
		{
			name:      "value too long",
			req:       model.NormalizeRequest{Components: map[string]string{"road": strings.Repeat("a", 1025)}},
			wantError: true,
			contains:  "at most 1024 characters",
		},
		{
			name:      "too many components",
			req:       model.NormalizeRequest{Components: tooMany},
			wantError: true,
			contains:  "at most 64 entries",
		},
		{
			name:      "strict rejects unknown labels",
			req:       model.NormalizeRequest{Strict: true, Components: map[string]string{"zip": "1", "road": "x", "Street": "y"}},
			wantError: true,
			contains:  "unknown component labels: Street,zip",
		},
		{
			name: "strict accepts vocabulary",
			req: model.NormalizeRequest{Strict: true, Components: map[string]string{
				string(address.FieldHouseNumber): "1",
				string(address.FieldNear):        "park",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if (err != nil) != tt.wantError {
				t.Fatalf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
			if err == nil {
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestValidate_BatchAppliesStrictPerItem(t *testing.T) {
	v := newTestValidator()
	req := &model.BatchNormalizeRequest{Items: []model.NormalizeRequest{
		{Components: map[string]string{"zip": "1"}},
		{Strict: true, Components: map[string]string{"zip": "1"}},
	}}

	err := v.Validate(req)
	if err == nil {
		t.Fatal("expected strict item to fail")
	}
	if !strings.Contains(err.Error(), "items[1]") {
		t.Errorf("error should point at items[1]: %v", err)
	}

	if err := v.Validate(&model.BatchNormalizeRequest{}); err == nil {
		t.Error("empty batch should fail")
	}
}

func TestValidate_CreateRequest(t *testing.T) {
	v := newTestValidator()

	ok := &model.CreateAddressRequest{
		NormalizeRequest: model.NormalizeRequest{Components: map[string]string{"city": "Austin"}},
		Source:           "crm",
	}
	if err := v.Validate(ok); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	bad := &model.CreateAddressRequest{
		NormalizeRequest: model.NormalizeRequest{Components: map[string]string{"city": "Austin"}},
		Source:           strings.Repeat("s", 65),
	}
	if err := v.Validate(bad); err == nil {
		t.Error("long source should fail")
	}
}

func TestValidate_Filter(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		filter    model.AddressFilter
		wantError bool
	}{
		{name: "empty filter", filter: model.AddressFilter{}},
		{name: "sanitized city keys", filter: model.AddressFilter{CityKeys: []string{"new_york", "boston"}}},
		{name: "raw city text", filter: model.AddressFilter{CityKeys: []string{"New York"}}, wantError: true},
		{name: "empty city key", filter: model.AddressFilter{CityKeys: []string{""}}, wantError: true},
		{name: "state kind", filter: model.AddressFilter{StateKind: "canadian_province"}},
		{name: "bad state kind", filter: model.AddressFilter{StateKind: "province"}, wantError: true},
		{name: "bad country kind", filter: model.AddressFilter{CountryKind: "alpha2"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.filter)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidate_Record(t *testing.T) {
	v := newTestValidator()

	rec := model.NewAddressRecord(address.FromParsed(map[string]string{"state": "ny"}), "")
	if err := v.Validate(rec); err != nil {
		t.Errorf("Validate(record) error = %v", err)
	}

	rec.ID = "not-an-object-id"
	if err := v.Validate(rec); err == nil {
		t.Error("invalid object id should fail")
	}
}
