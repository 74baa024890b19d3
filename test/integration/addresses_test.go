//go:build integration

package integration

import (
	"net/http"
	"net/url"
	"testing"

	"postaladdr/pkg/address"
	"postaladdr/pkg/model"
	"postaladdr/test/integration/testutil"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalize_USAddress(t *testing.T) {
	s := testutil.Start(t)

	res := s.API.Normalize(t, model.NormalizeRequest{Components: testutil.USComponents()}).Expect(t, http.StatusOK)
	out := testutil.Data[model.NormalizedAddress](t, res)

	if want := "123 Main St #4B Springfield IL 62704 US"; out.SingleLine != want {
		t.Errorf("single_line = %q, want %q", out.SingleLine, want)
	}
	if st := out.Address.State; st == nil || st.Kind() != address.StateUsCode || st.String() != "IL" {
		t.Errorf("state = %v", st)
	}
	if n := s.Store.Count(t, nil); n != 0 {
		t.Errorf("normalize must not persist, found %d documents", n)
	}
}

func TestNormalize_StrictRejectsUnknownLabels(t *testing.T) {
	s := testutil.Start(t)

	components := testutil.USComponents()
	components["Street"] = "Main"
	s.API.Normalize(t, model.NormalizeRequest{Components: components, Strict: true}).
		Expect(t, http.StatusUnprocessableEntity).
		ExpectBodyContains(t, "Street")
}

func TestNormalizeBatch_PreservesOrder(t *testing.T) {
	s := testutil.Start(t)

	res := s.API.NormalizeBatch(t,
		model.NormalizeRequest{Components: testutil.USComponents()},
		model.NormalizeRequest{Components: testutil.CanadianComponents()},
	).Expect(t, http.StatusOK)
	out := testutil.Data[model.BatchNormalizeResponse](t, res)

	if out.BatchID == "" {
		t.Error("expected a batch id")
	}
	if len(out.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out.Items))
	}
	if want := "5 Rue X Montréal QC Canada"; out.Items[1].SingleLine != want {
		t.Errorf("items[1].single_line = %q, want %q", out.Items[1].SingleLine, want)
	}
}

func TestCreateGetDelete(t *testing.T) {
	s := testutil.Start(t)

	created := testutil.Data[model.AddressRecord](t,
		s.API.Create(t, testutil.ValidCreateRequest("integration"), "").Expect(t, http.StatusCreated))
	if created.ID == "" {
		t.Fatal("expected an id")
	}

	fetched := testutil.Data[model.AddressRecord](t, s.API.Get(t, created.ID).Expect(t, http.StatusOK))
	if fetched.SingleLine != created.SingleLine {
		t.Errorf("single_line = %q, want %q", fetched.SingleLine, created.SingleLine)
	}
	if fetched.Source != "integration" {
		t.Errorf("source = %q, want integration", fetched.Source)
	}

	s.API.Delete(t, created.ID).Expect(t, http.StatusNoContent)
	s.API.Get(t, created.ID).Expect(t, http.StatusNotFound)
}

func TestCreateGet_ShortIso2CountrySurvives(t *testing.T) {
	s := testutil.Start(t)

	req := testutil.ValidCreateRequest("integration")
	req.Components["country"] = "ſ"
	created := testutil.Data[model.AddressRecord](t, s.API.Create(t, req, "").Expect(t, http.StatusCreated))

	fetched := testutil.Data[model.AddressRecord](t, s.API.Get(t, created.ID).Expect(t, http.StatusOK))
	if c := fetched.Address.Country; c == nil || c.Kind() != address.CountryIso2 || c.String() != "S" {
		t.Errorf("country = %v, want iso2 S", c)
	}
}

func TestGetByID_InvalidID(t *testing.T) {
	s := testutil.Start(t)
	s.API.Get(t, "not-an-id").Expect(t, http.StatusBadRequest)
}

func TestCreateBatch_AndListByCity(t *testing.T) {
	s := testutil.Start(t)

	canadian := model.CreateAddressRequest{
		NormalizeRequest: model.NormalizeRequest{Components: testutil.CanadianComponents()},
		Source:           "batch",
	}
	s.API.CreateBatch(t, testutil.ValidCreateRequest("batch"), canadian).Expect(t, http.StatusCreated)

	if n := s.Store.Count(t, bson.M{"source": "batch"}); n != 2 {
		t.Fatalf("expected 2 documents, got %d", n)
	}

	byCity := testutil.Paged[model.AddressRecord](t,
		s.API.List(t, url.Values{"city": {"springfield"}, "limit": {"10"}}).Expect(t, http.StatusOK))
	if byCity.TotalCount != 1 || len(byCity.Data) != 1 {
		t.Fatalf("expected 1 match, got total=%d len=%d", byCity.TotalCount, len(byCity.Data))
	}
	if byCity.Limit != 10 {
		t.Errorf("limit = %d, want 10", byCity.Limit)
	}

	byKind := testutil.Paged[model.AddressRecord](t,
		s.API.List(t, url.Values{"state_kind": {"canadian_province"}}).Expect(t, http.StatusOK))
	if byKind.TotalCount != 1 {
		t.Errorf("expected 1 canadian province, got %d", byKind.TotalCount)
	}
}

func TestIdempotentCreate(t *testing.T) {
	s := testutil.Start(t)

	// The server's idempotency store outlives the collection reset.
	key := uuid.NewString()
	s.API.Create(t, testutil.ValidCreateRequest("idem"), key).Expect(t, http.StatusCreated)
	second := s.API.Create(t, testutil.ValidCreateRequest("idem"), key).Expect(t, http.StatusCreated)

	if second.Header.Get("Idempotent-Replayed") != "true" {
		t.Error("expected replayed response")
	}
	if n := s.Store.Count(t, nil); n != 1 {
		t.Errorf("expected 1 document, got %d", n)
	}
}
