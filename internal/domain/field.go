package domain

import (
	"time"

	"soccerspot/internal/pricing"
)

// Field is a bookable sports field. Rates hold the owner's stored prices;
// any of them may be unset.
type Field struct {
	ID        int64              `json:"id"`
	OwnerID   int64              `json:"owner_id"`
	Name      string             `json:"name"`
	City      string             `json:"city"`
	Address   string             `json:"address,omitempty"`
	Rates     pricing.FieldRates `json:"rates"`
	IsActive  bool               `json:"is_active"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
