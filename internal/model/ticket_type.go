package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DynamicPricingType tags an optional time-boxed pricing policy.
type DynamicPricingType string

const (
	DynamicPricingEarlyBird DynamicPricingType = "early_bird"
)

type TicketType struct {
	ID           int       `json:"id" db:"id"`
	TicketTypeID uuid.UUID `json:"ticket_type_id" db:"ticket_type_id"`
	EventID      int       `json:"event_id" db:"event_id"`
	Name         string    `json:"name" db:"name"`

	Price    decimal.Decimal `json:"price" db:"price"`
	Capacity int             `json:"capacity" db:"capacity"`
	Sold     int             `json:"sold" db:"sold"`

	SalesStartDate *time.Time `json:"sales_start_date,omitempty" db:"sales_start_date"`
	SalesEndDate   *time.Time `json:"sales_end_date,omitempty" db:"sales_end_date"`

	DynamicPricingType   *DynamicPricingType `json:"dynamic_pricing_type,omitempty" db:"dynamic_pricing_type"`
	DynamicEndDate       *time.Time          `json:"dynamic_end_date,omitempty" db:"dynamic_end_date"`
	DynamicOriginalPrice *decimal.Decimal    `json:"dynamic_original_price,omitempty" db:"dynamic_original_price"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Available returns capacity - sold. Only trustworthy for a booking
// decision when the row was loaded under FOR UPDATE.
func (t *TicketType) Available() int {
	return t.Capacity - t.Sold
}

// SalesOpen checks the optional sales window; unset bounds are open-ended.
func (t *TicketType) SalesOpen(now time.Time) bool {
	if t.SalesStartDate != nil && now.Before(*t.SalesStartDate) {
		return false
	}
	if t.SalesEndDate != nil && now.After(*t.SalesEndDate) {
		return false
	}
	return true
}

// EffectiveUnitPrice resolves the price charged at booking time. While an
// early-bird window is open the current price is charged as-is (it is
// assumed to already be the discounted one); after the window closes the
// original price applies again.
func (t *TicketType) EffectiveUnitPrice(now time.Time) decimal.Decimal {
	if t.DynamicPricingType != nil && *t.DynamicPricingType == DynamicPricingEarlyBird && t.DynamicEndDate != nil {
		if now.Before(*t.DynamicEndDate) {
			return t.Price
		}
		if t.DynamicOriginalPrice != nil {
			return *t.DynamicOriginalPrice
		}
	}
	return t.Price
}

type CreateTicketTypeParams struct {
	EventID        int
	Name           string
	Price          decimal.Decimal
	Capacity       int
	SalesStartDate *time.Time
	SalesEndDate   *time.Time
}
