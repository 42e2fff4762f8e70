package promotion

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"soccerspot/internal/domain"
	"soccerspot/internal/pkg/validator"
	"soccerspot/internal/pricing"
	"soccerspot/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	promotions PromotionRepository
	fields     FieldReader
	calc       *pricing.ImpactCalculator
	log        *zap.Logger
}

func NewService(promotions PromotionRepository, fields FieldReader, calc *pricing.ImpactCalculator, log *zap.Logger) *Service {
	if calc == nil {
		calc = pricing.NewImpactCalculator(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{promotions: promotions, fields: fields, calc: calc, log: log}
}

// Create stores a promotion on a field the caller owns. Admins may create
// promotions on any field.
func (s *Service) Create(ctx context.Context, userID int64, role domain.UserRole, req CreatePromotionRequest) (*domain.Promotion, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	field, err := s.fields.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, fmt.Errorf("load field %d: %w", req.FieldID, err)
	}
	if field.OwnerID != userID && role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	p, err := req.toDomain(field.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := s.promotions.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("create promotion: %w", err)
	}

	s.log.Info("promotion created",
		zap.Int64("promotion_id", p.ID),
		zap.Int64("field_id", p.FieldID),
		zap.String("kind", string(p.Discount.Kind)),
		zap.Float64("value", p.Discount.Value),
	)
	return p, nil
}

func (s *Service) Deactivate(ctx context.Context, userID int64, role domain.UserRole, promotionID int64) error {
	p, err := s.promotions.GetByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPromotionNotFound
		}
		return fmt.Errorf("load promotion %d: %w", promotionID, err)
	}
	if p.OwnerID != userID && role != domain.RoleAdmin {
		return ErrForbidden
	}
	if err := s.promotions.Deactivate(ctx, promotionID); err != nil {
		return fmt.Errorf("deactivate promotion %d: %w", promotionID, err)
	}
	return nil
}

// ListActive returns the field's active promotions, including ones outside
// their validity window.
func (s *Service) ListActive(ctx context.Context, fieldID int64) ([]domain.Promotion, error) {
	promos, err := s.promotions.ListActiveForField(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("list promotions for field %d: %w", fieldID, err)
	}
	return promos, nil
}

// BestFor picks the eligible promotion that saves the customer the most.
// ok is false when none applies.
func (s *Service) BestFor(ctx context.Context, bc BookingContext, netBefore pricing.Money) (*Applied, bool, error) {
	promos, err := s.ListActive(ctx, bc.FieldID)
	if err != nil {
		return nil, false, err
	}

	eligible := make([]domain.Promotion, 0, len(promos))
	candidates := make([]pricing.Candidate, 0, len(promos))
	for _, p := range promos {
		if !Eligible(p, bc) {
			continue
		}
		eligible = append(eligible, p)
		candidates = append(candidates, pricing.Candidate{
			ID:       strconv.FormatInt(p.ID, 10),
			Discount: p.Discount,
		})
	}

	sel, ok := s.calc.SelectBestPromotion(candidates, netBefore)
	if !ok {
		return nil, false, nil
	}

	winner := eligible[sel.Index]
	return &Applied{
		PromotionID: winner.ID,
		Title:       winner.Title,
		Code:        winner.Code,
		Discount:    winner.Discount,
		Impact:      sel.Impact,
	}, true, nil
}
