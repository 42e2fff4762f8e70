package repository

import (
	"time"

	"soccerspot/internal/pricing"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{&fieldModel{}, &promotionModel{}, &bookingModel{}, &paymentModel{}}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

type fieldModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	OwnerID         int64     `gorm:"column:owner_id;index;not null"`
	Name            string    `gorm:"column:name;type:varchar(255);not null"`
	City            string    `gorm:"column:city;type:varchar(120)"`
	Address         string    `gorm:"column:address;type:text"`
	NetPrice1h      *int64    `gorm:"column:net_price_1h"`
	NetPrice1h30    *int64    `gorm:"column:net_price_1h30"`
	NetPrice2h      *int64    `gorm:"column:net_price_2h"`
	PublicPrice1h   *int64    `gorm:"column:public_price_1h"`
	PublicPrice1h30 *int64    `gorm:"column:public_price_1h30"`
	PublicPrice2h   *int64    `gorm:"column:public_price_2h"`
	PricePerHour    *int64    `gorm:"column:price_per_hour"`
	IsActive        bool      `gorm:"column:is_active;not null"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (fieldModel) TableName() string { return "fields" }

type promotionModel struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	FieldID          int64      `gorm:"column:field_id;not null;index;uniqueIndex:idx_promotions_field_code"`
	OwnerID          int64      `gorm:"column:owner_id;not null"`
	Title            string     `gorm:"column:title;type:varchar(255)"`
	Code             *string    `gorm:"column:code;type:varchar(64);uniqueIndex:idx_promotions_field_code"`
	Kind             string     `gorm:"column:kind;type:varchar(16);not null"`
	Value            float64    `gorm:"column:value;not null"`
	MinBookingAmount int64      `gorm:"column:min_booking_amount;not null"`
	Days             int        `gorm:"column:days;not null"`
	SlotFromMinute   *int       `gorm:"column:slot_from_minute"`
	SlotToMinute     *int       `gorm:"column:slot_to_minute"`
	StartsAt         *time.Time `gorm:"column:starts_at"`
	EndsAt           *time.Time `gorm:"column:ends_at"`
	MaxUses          *int       `gorm:"column:max_uses"`
	UsedCount        int        `gorm:"column:used_count;not null"`
	IsActive         bool       `gorm:"column:is_active;not null;index"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (promotionModel) TableName() string { return "promotions" }

type bookingModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	FieldID          int64     `gorm:"column:field_id;index;not null"`
	UserID           int64     `gorm:"column:user_id;index;not null"`
	StartTime        time.Time `gorm:"column:start_time;not null"`
	EndTime          time.Time `gorm:"column:end_time;not null"`
	DurationMinutes  int       `gorm:"column:duration_minutes;not null"`
	PublicAmount     int64     `gorm:"column:public_amount;not null"`
	OwnerNetAmount   int64     `gorm:"column:owner_net_amount;not null"`
	CommissionAmount int64     `gorm:"column:commission_amount;not null"`
	PromotionID      *int64    `gorm:"column:promotion_id"`
	CustomerSavings  int64     `gorm:"column:customer_savings;not null"`
	Status           string    `gorm:"column:status;type:varchar(20);not null"`
	PaymentStatus    string    `gorm:"column:payment_status;type:varchar(20);not null"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type paymentModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	BookingID     int64      `gorm:"column:booking_id;index;not null"`
	Provider      string     `gorm:"column:provider;type:varchar(32);not null"`
	TransactionID string     `gorm:"column:transaction_id;type:varchar(64);uniqueIndex;not null"`
	Amount        int64      `gorm:"column:amount;not null"`
	Currency      string     `gorm:"column:currency;type:varchar(8);not null"`
	Status        string     `gorm:"column:status;type:varchar(20);index;not null"`
	PaymentURL    string     `gorm:"column:payment_url;type:text"`
	NotifyRawBody string     `gorm:"column:notify_raw_body;type:text"`
	FailureReason string     `gorm:"column:failure_reason;type:text"`
	PaidAt        *time.Time `gorm:"column:paid_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toMoneyPtr(v *int64) *pricing.Money {
	if v == nil {
		return nil
	}
	m := pricing.Money(*v)
	return &m
}

func toInt64Ptr(m *pricing.Money) *int64 {
	if m == nil {
		return nil
	}
	v := int64(*m)
	return &v
}
