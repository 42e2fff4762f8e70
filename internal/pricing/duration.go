package pricing

import "github.com/shopspring/decimal"

// StandardDurations are the booking lengths, in minutes, an owner can price
// individually.
var StandardDurations = []int{60, 90, 120}

// Source is one candidate origin for an owner's net price. Sources are
// tried in order by Resolve.
type Source interface {
	resolve(conv *Converter) (Money, bool)
}

// NetAmount is a stored owner net price. A nil Amount is undefined.
type NetAmount struct{ Amount *Money }

// PublicAmount is a stored public price, converted back with ToNetPrice.
type PublicAmount struct{ Amount *Money }

// Proportional scales the first defined hourly net price to Minutes.
type Proportional struct {
	Hourly  []Source
	Minutes int
}

func (s NetAmount) resolve(*Converter) (Money, bool) {
	if s.Amount == nil {
		return 0, false
	}
	return nonNegative(*s.Amount), true
}

func (s PublicAmount) resolve(conv *Converter) (Money, bool) {
	if s.Amount == nil {
		return 0, false
	}
	return conv.ToNetPrice(*s.Amount), true
}

func (s Proportional) resolve(conv *Converter) (Money, bool) {
	if s.Minutes <= 0 {
		return 0, false
	}
	hourly, ok := Resolve(conv, s.Hourly...)
	if !ok {
		return 0, false
	}
	scaled := decimal.NewFromInt(int64(hourly)).
		Mul(decimal.NewFromInt(int64(s.Minutes))).
		Div(decimal.NewFromInt(60)).
		Round(0)
	return Money(scaled.IntPart()), true
}

// Resolve returns the value of the first defined source.
func Resolve(conv *Converter, sources ...Source) (Money, bool) {
	if conv == nil {
		conv = DefaultConverter()
	}
	for _, s := range sources {
		if s == nil {
			continue
		}
		if v, ok := s.resolve(conv); ok {
			return v, true
		}
	}
	return 0, false
}

// FieldRates are the optional prices an owner may have stored for a field.
// PricePerHour is the legacy hourly public price.
type FieldRates struct {
	Net1h        *Money `json:"net_price_1h,omitempty"`
	Net1h30      *Money `json:"net_price_1h30,omitempty"`
	Net2h        *Money `json:"net_price_2h,omitempty"`
	Public1h     *Money `json:"public_price_1h,omitempty"`
	Public1h30   *Money `json:"public_price_1h30,omitempty"`
	Public2h     *Money `json:"public_price_2h,omitempty"`
	PricePerHour *Money `json:"price_per_hour,omitempty"`
}

// Sources lists, by precedence, where the net price for a booking of the
// given length comes from: the matching tier's net price, then that tier's
// public price, then the hourly rate scaled to the duration.
func (r FieldRates) Sources(minutes int) []Source {
	var out []Source
	switch minutes {
	case 60:
		out = append(out, NetAmount{r.Net1h}, PublicAmount{r.Public1h})
	case 90:
		out = append(out, NetAmount{r.Net1h30}, PublicAmount{r.Public1h30})
	case 120:
		out = append(out, NetAmount{r.Net2h}, PublicAmount{r.Public2h})
	}
	hourly := []Source{NetAmount{r.Net1h}, PublicAmount{r.Public1h}, PublicAmount{r.PricePerHour}}
	return append(out, Proportional{Hourly: hourly, Minutes: minutes})
}

// EffectiveNetPrice resolves the owner's net price for a booking of the
// given length. ok is false when nothing is configured.
func (r FieldRates) EffectiveNetPrice(conv *Converter, minutes int) (Money, bool) {
	if minutes <= 0 {
		return 0, false
	}
	return Resolve(conv, r.Sources(minutes)...)
}
