package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"postaladdr/internal/addresses/service"
	httputil "postaladdr/pkg/http"
	"postaladdr/pkg/logger"
	"postaladdr/pkg/model"
)

type AddressHandler struct {
	service service.AddressService
	log     *logger.Logger
}

func NewAddressHandler(service service.AddressService, log *logger.Logger) *AddressHandler {
	return &AddressHandler{
		service: service,
		log:     log,
	}
}

// decode reads the JSON body into v and answers 400 on failure.
func (h *AddressHandler) decode(w http.ResponseWriter, r *http.Request, handler string, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.log.Debug("Rejected request body", "handler", handler, "error", err)
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", handler, "operation", "WriteJSON", "error", writeErr)
		}
		return false
	}
	return true
}

func (h *AddressHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AddressHandler) requireID(w http.ResponseWriter, ps httprouter.Params, handler string) (string, bool) {
	id := ps.ByName("id")
	if id == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", handler, "operation", "WriteJSON", "error", err)
		}
		return "", false
	}
	return id, true
}

func (h *AddressHandler) Normalize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.NormalizeRequest
	if !h.decode(w, r, "Normalize", &req) {
		return
	}

	out, err := h.service.Normalize(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Normalize", err)
		return
	}

	if err := httputil.WriteSuccess(w, out); err != nil {
		h.log.Error("failed to write success response", "handler", "Normalize", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AddressHandler) NormalizeBatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BatchNormalizeRequest
	if !h.decode(w, r, "NormalizeBatch", &req) {
		return
	}

	out, err := h.service.NormalizeBatch(r.Context(), &req)
	if err != nil {
		h.writeError(w, "NormalizeBatch", err)
		return
	}

	if err := httputil.WriteSuccess(w, out); err != nil {
		h.log.Error("failed to write success response", "handler", "NormalizeBatch", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateAddressRequest
	if !h.decode(w, r, "Create", &req) {
		return
	}

	rec, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, rec); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *AddressHandler) CreateBatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BatchCreateRequest
	if !h.decode(w, r, "CreateBatch", &req) {
		return
	}

	recs, err := h.service.CreateBatch(r.Context(), &req)
	if err != nil {
		h.writeError(w, "CreateBatch", err)
		return
	}

	if err := httputil.WriteCreated(w, recs); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateBatch", "operation", "WriteCreated", "error", err)
	}
}

func (h *AddressHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := h.requireID(w, ps, "GetByID")
	if !ok {
		return
	}

	rec, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, rec); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	query := r.URL.Query()
	filter := model.AddressFilter{
		CityKeys:    httputil.ExtractList(r, "city"),
		StateKind:   query.Get("state_kind"),
		CountryKind: query.Get("country_kind"),
	}

	records, totalCount, err := h.service.List(r.Context(), limit, int(offset), filter)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, records, totalCount, limit, int(offset)); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := h.requireID(w, ps, "Delete")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AddressHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/addresses/normalize", h.Normalize)
	router.POST("/api/v1/addresses/normalize/batch", h.NormalizeBatch)
	router.POST("/api/v1/addresses", h.Create)
	router.POST("/api/v1/addresses/batch", h.CreateBatch)
	router.GET("/api/v1/addresses", h.List)
	router.GET("/api/v1/addresses/:id", h.GetByID)
	router.DELETE("/api/v1/addresses/:id", h.Delete)
}
