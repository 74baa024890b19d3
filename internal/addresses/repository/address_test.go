package repository

import (
	"context"
	"postaladdr/pkg/model"
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter model.AddressFilter
		want   bson.M
	}{
		{
			name:   "empty",
			filter: model.AddressFilter{},
			want:   bson.M{},
		},
		{
			name:   "single city",
			filter: model.AddressFilter{CityKeys: []string{"austin"}},
			want:   bson.M{"city_key": "austin"},
		},
		{
			name:   "several cities",
			filter: model.AddressFilter{CityKeys: []string{"austin", "dallas"}},
			want:   bson.M{"city_key": bson.M{"$in": []string{"austin", "dallas"}}},
		},
		{
			name:   "kinds",
			filter: model.AddressFilter{StateKind: "us_state_code", CountryKind: "iso2"},
			want:   bson.M{"state_kind": "us_state_code", "country_kind": "iso2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildFilter(tt.filter)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithTimeout(t *testing.T) {
	t.Run("no deadline uses timeout", func(t *testing.T) {
		ctx, cancel := withTimeout(context.Background(), time.Second)
		defer cancel()

		deadline, ok := ctx.Deadline()
		if !ok {
			t.Fatal("expected a deadline")
		}
		if time.Until(deadline) > time.Second {
			t.Errorf("deadline too far: %v", time.Until(deadline))
		}
	})

	t.Run("shorter parent deadline wins", func(t *testing.T) {
		parent, cancelParent := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancelParent()

		ctx, cancel := withTimeout(parent, time.Hour)
		defer cancel()

		deadline, _ := ctx.Deadline()
		if time.Until(deadline) > 50*time.Millisecond {
			t.Errorf("expected parent deadline to bound context, got %v", time.Until(deadline))
		}
	})
}
