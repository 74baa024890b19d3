package service

import (
	"context"
	"errors"
	"fmt"
	addresserrors "postaladdr/internal/addresses/errors"
	"postaladdr/internal/addresses/repository"
	"postaladdr/internal/addresses/validator"
	"postaladdr/pkg/address"
	"postaladdr/pkg/config"
	apperrors "postaladdr/pkg/errors"
	"postaladdr/pkg/model"
	"postaladdr/pkg/sanitizer"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

type AddressService interface {
	Normalize(ctx context.Context, req *model.NormalizeRequest) (*model.NormalizedAddress, error)
	NormalizeBatch(ctx context.Context, req *model.BatchNormalizeRequest) (*model.BatchNormalizeResponse, error)

	Create(ctx context.Context, req *model.CreateAddressRequest) (*model.AddressRecord, error)
	CreateBatch(ctx context.Context, req *model.BatchCreateRequest) ([]*model.AddressRecord, error)
	GetByID(ctx context.Context, id string) (*model.AddressRecord, error)
	List(ctx context.Context, limit int, offset int, filter model.AddressFilter) ([]*model.AddressRecord, int64, error)
	Delete(ctx context.Context, id string) error
}

type addressService struct {
	repo      repository.AddressRepository
	validator *validator.AddressValidator
	cfg       *config.Config
}

func NewAddressService(
	repo repository.AddressRepository,
	validator *validator.AddressValidator,
	cfg *config.Config,
) AddressService {
	return &addressService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *addressService) validate(what string, v any) error {
	if err := s.validator.Validate(v); err != nil {
		s.cfg.Log.Warn(what+" validation failed", "error", err)
		return apperrors.Validation(what+" validation failed", map[string]any{
			"error": err.Error(),
		})
	}
	return nil
}

func (s *addressService) checkBatchSize(size int) error {
	if s.cfg.MaxBatchSize > 0 && size > s.cfg.MaxBatchSize {
		s.cfg.Log.Warn("Batch rejected",
			"size", size,
			"limit", s.cfg.MaxBatchSize,
		)
		return apperrors.BatchTooLarge(size, s.cfg.MaxBatchSize)
	}
	return nil
}

func (s *addressService) Normalize(ctx context.Context, req *model.NormalizeRequest) (*model.NormalizedAddress, error) {
	if err := s.validate("Address", req); err != nil {
		return nil, err
	}

	out := model.NewNormalizedAddress(address.FromParsed(req.Components))
	s.cfg.Log.Debug("Address normalized",
		"components", len(req.Components),
		"single_line", out.SingleLine,
	)
	return &out, nil
}

// NormalizeBatch converts every item concurrently. Results keep the order of
// the request items.
func (s *addressService) NormalizeBatch(ctx context.Context, req *model.BatchNormalizeRequest) (*model.BatchNormalizeResponse, error) {
	if err := s.checkBatchSize(len(req.Items)); err != nil {
		return nil, err
	}
	if err := s.validate("Batch", req); err != nil {
		return nil, err
	}

	resp := &model.BatchNormalizeResponse{
		BatchID: uuid.NewString(),
		Items:   make([]model.NormalizedAddress, len(req.Items)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range req.Items {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resp.Items[i] = model.NewNormalizedAddress(address.FromParsed(req.Items[i].Components))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.cfg.Log.Warn("Batch normalization aborted",
			"batch_id", resp.BatchID,
			"error", err,
		)
		return nil, apperrors.Timeout("Batch normalization did not complete")
	}

	s.cfg.Log.Info("Batch normalized",
		"batch_id", resp.BatchID,
		"items", len(resp.Items),
	)
	return resp, nil
}

func (s *addressService) Create(ctx context.Context, req *model.CreateAddressRequest) (*model.AddressRecord, error) {
	if err := s.validate("Address", req); err != nil {
		return nil, err
	}

	rec := s.newRecord(req)
	if err := s.repo.Create(ctx, rec); err != nil {
		s.cfg.Log.Error("Failed to create address",
			"single_line", rec.SingleLine,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create address", err)
	}

	s.cfg.Log.Info("Address created successfully",
		"id", rec.ID,
		"single_line", rec.SingleLine,
		"source", rec.Source,
	)
	return rec, nil
}

// CreateBatch stores all items or none of them.
func (s *addressService) CreateBatch(ctx context.Context, req *model.BatchCreateRequest) ([]*model.AddressRecord, error) {
	if err := s.checkBatchSize(len(req.Items)); err != nil {
		return nil, err
	}
	if err := s.validate("Batch", req); err != nil {
		return nil, err
	}

	records := make([]*model.AddressRecord, len(req.Items))
	for i := range req.Items {
		records[i] = s.newRecord(&req.Items[i])
	}

	// The driver re-runs the callback on transient errors; ids from an
	// aborted attempt must not be sent again.
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		for _, rec := range records {
			rec.ID = ""
		}
		for i, rec := range records {
			if err := s.repo.Create(sessCtx, rec); err != nil {
				return fmt.Errorf("failed to create address %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create address batch",
			"items", len(records),
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("Failed to create addresses", err)
	}

	s.cfg.Log.Info("Address batch created successfully", "items", len(records))
	return records, nil
}

func (s *addressService) newRecord(req *model.CreateAddressRequest) *model.AddressRecord {
	source := sanitizer.TrimAndNormalize(req.Source)
	return model.NewAddressRecord(address.FromParsed(req.Components), source)
}

func (s *addressService) GetByID(ctx context.Context, id string) (*model.AddressRecord, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Address ID cannot be empty")
	}

	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, addresserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Address", id)
		}
		if errors.Is(err, addresserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid address ID format")
		}
		s.cfg.Log.Error("Failed to get address by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve address", err)
	}

	return rec, nil
}

func (s *addressService) List(ctx context.Context, limit int, offset int, filter model.AddressFilter) ([]*model.AddressRecord, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = int(config.NormalizeOffset(int64(offset)))

	rawCities := filter.CityKeys
	filter.CityKeys = sanitizer.SanitizeSlice(filter.CityKeys, sanitizer.PlaceKey)
	if len(rawCities) > 0 && len(filter.CityKeys) == 0 {
		return nil, 0, apperrors.InvalidInput("City filter resulted in no valid items after normalization")
	}
	filter.StateKind = sanitizer.TrimAndNormalize(filter.StateKind)
	filter.CountryKind = sanitizer.TrimAndNormalize(filter.CountryKind)

	if err := s.validate("Filter", &filter); err != nil {
		return nil, 0, err
	}

	var count int64
	var records []*model.AddressRecord
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		count, err = s.repo.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count addresses", "error", err)
			errCount = apperrors.Internal("Failed to count addresses", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		records, err = s.repo.FindAll(ctx, limit, offset, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to list addresses",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve addresses", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return records, count, nil
}

func (s *addressService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Address ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, addresserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Address", id)
		}
		if errors.Is(err, addresserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid address ID format")
		}
		s.cfg.Log.Error("Failed to delete address",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete address", err)
	}

	s.cfg.Log.Info("Address deleted successfully", "id", id)

	return nil
}
