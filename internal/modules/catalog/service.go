package catalog

import (
	"context"
	"errors"
	"fmt"

	"soccerspot/internal/domain"
	"soccerspot/internal/pkg/validator"
	"soccerspot/internal/pricing"
	"soccerspot/internal/repository"

	"go.uber.org/zap"
)

const (
	MinDurationMinutes  = 30
	MaxDurationMinutes  = 600
	DurationStepMinutes = 30
)

// ValidateDuration accepts half-hour multiples between 30 minutes and 10 hours.
func ValidateDuration(minutes int) error {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes || minutes%DurationStepMinutes != 0 {
		return fmt.Errorf("%w: %d minutes", ErrInvalidDuration, minutes)
	}
	return nil
}

type Service struct {
	fields FieldRepository
	conv   *pricing.Converter
	log    *zap.Logger
}

func NewService(fields FieldRepository, conv *pricing.Converter, log *zap.Logger) *Service {
	if conv == nil {
		conv = pricing.DefaultConverter()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{fields: fields, conv: conv, log: log}
}

func (s *Service) Converter() *pricing.Converter {
	return s.conv
}

func (s *Service) getField(ctx context.Context, fieldID int64) (*domain.Field, error) {
	f, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, fmt.Errorf("load field %d: %w", fieldID, err)
	}
	if !f.IsActive {
		return nil, ErrFieldNotFound
	}
	return f, nil
}

// ResolveNet returns the field and the owner's net price for the duration.
func (s *Service) ResolveNet(ctx context.Context, fieldID int64, minutes int) (*domain.Field, pricing.Money, error) {
	if err := ValidateDuration(minutes); err != nil {
		return nil, 0, err
	}
	f, err := s.getField(ctx, fieldID)
	if err != nil {
		return nil, 0, err
	}
	net, ok := f.Rates.EffectiveNetPrice(s.conv, minutes)
	if !ok {
		return f, 0, ErrPriceNotConfigured
	}
	return f, net, nil
}

func (s *Service) Quote(ctx context.Context, fieldID int64, minutes int) (*FieldQuote, error) {
	_, net, err := s.ResolveNet(ctx, fieldID, minutes)
	if err != nil {
		return nil, err
	}
	return &FieldQuote{Minutes: minutes, PriceQuote: s.conv.Quote(net)}, nil
}

// Tiers quotes the standard durations that have a price.
func (s *Service) Tiers(ctx context.Context, fieldID int64) ([]FieldQuote, error) {
	f, err := s.getField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	return s.tiers(f), nil
}

func (s *Service) tiers(f *domain.Field) []FieldQuote {
	out := make([]FieldQuote, 0, len(pricing.StandardDurations))
	for _, minutes := range pricing.StandardDurations {
		net, ok := f.Rates.EffectiveNetPrice(s.conv, minutes)
		if !ok {
			continue
		}
		out = append(out, FieldQuote{Minutes: minutes, PriceQuote: s.conv.Quote(net)})
	}
	return out
}

func (s *Service) GetField(ctx context.Context, fieldID int64) (*FieldResponse, error) {
	f, err := s.getField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	resp := toFieldResponse(f, s.tiers(f))
	return &resp, nil
}

func (s *Service) ListFields(ctx context.Context, city string, limit, offset int) ([]FieldResponse, error) {
	fields, err := s.fields.ListActive(ctx, city, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}

	out := make([]FieldResponse, 0, len(fields))
	for i := range fields {
		out = append(out, toFieldResponse(&fields[i], s.tiers(&fields[i])))
	}
	return out, nil
}

// UpdateRates stores new owner net prices and returns the resulting quotes.
// Ownership is enforced by the route middleware.
func (s *Service) UpdateRates(ctx context.Context, fieldID int64, req UpdateRatesRequest) ([]FieldQuote, error) {
	if req.empty() {
		return nil, fmt.Errorf("%w: at least one net price is required", ErrValidation)
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	f, err := s.fields.UpdateRates(ctx, fieldID, moneyPtr(req.NetPrice1h), moneyPtr(req.NetPrice1h30), moneyPtr(req.NetPrice2h))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, fmt.Errorf("update rates for field %d: %w", fieldID, err)
	}

	s.log.Info("field rates updated", zap.Int64("field_id", fieldID))
	return s.tiers(f), nil
}
