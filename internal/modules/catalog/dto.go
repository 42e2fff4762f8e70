package catalog

import (
	"soccerspot/internal/domain"
	"soccerspot/internal/pricing"
)

// FieldQuote is the price of one duration on one field.
type FieldQuote struct {
	Minutes int `json:"minutes"`
	pricing.PriceQuote
}

type FieldResponse struct {
	ID      int64        `json:"id"`
	OwnerID int64        `json:"owner_id"`
	Name    string       `json:"name"`
	City    string       `json:"city"`
	Address string       `json:"address,omitempty"`
	Prices  []FieldQuote `json:"prices"`
}

type UpdateRatesRequest struct {
	NetPrice1h   *int64 `json:"net_price_1h" validate:"omitempty,gt=0"`
	NetPrice1h30 *int64 `json:"net_price_1h30" validate:"omitempty,gt=0"`
	NetPrice2h   *int64 `json:"net_price_2h" validate:"omitempty,gt=0"`
}

func (r UpdateRatesRequest) empty() bool {
	return r.NetPrice1h == nil && r.NetPrice1h30 == nil && r.NetPrice2h == nil
}

func toFieldResponse(f *domain.Field, prices []FieldQuote) FieldResponse {
	return FieldResponse{
		ID:      f.ID,
		OwnerID: f.OwnerID,
		Name:    f.Name,
		City:    f.City,
		Address: f.Address,
		Prices:  prices,
	}
}

func moneyPtr(v *int64) *pricing.Money {
	if v == nil {
		return nil
	}
	m := pricing.Money(*v)
	return &m
}
