package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Order is a paid registration purchase. An order referencing a series
// spans all of that series' events; EventID may still carry a legacy
// direct reference which the splitter ignores in that case.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	OrderID     int             `bun:"order_id,pk,autoincrement" json:"orderID"`
	EventID     *int            `bun:"event_id" json:"eventID,omitempty"`
	SeriesID    *int            `bun:"series_id" json:"seriesID,omitempty"`
	TotalAmount decimal.Decimal `bun:"total_amount,notnull,type:numeric(12,2)" json:"totalAmount"`
	Fee         decimal.Decimal `bun:"fee,notnull,type:numeric(12,2),default:0" json:"fee"`
	Currency    string          `bun:"currency,notnull,default:'NOK'" json:"currency"`
	ReceiptID   *int            `bun:"receipt_id" json:"receiptID,omitempty"`
	CreatedAt   time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// OrderItem is one invoiced line of an order, used on receipts.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	ID          int             `bun:"id,pk,autoincrement" json:"id"`
	OrderID     int             `bun:"order_id,notnull" json:"orderID"`
	Description string          `bun:"description,notnull" json:"description"`
	Amount      decimal.Decimal `bun:"amount,notnull,type:numeric(12,2)" json:"amount"`
}

// SeriesRegistration is one rider's registration detail attached to an
// order, carrying the class and any discount applied at purchase time.
type SeriesRegistration struct {
	bun.BaseModel `bun:"table:series_registrations,alias:sr"`

	ID              int             `bun:"id,pk,autoincrement" json:"id"`
	OrderID         int             `bun:"order_id,notnull" json:"orderID"`
	RiderID         int             `bun:"rider_id,notnull" json:"riderID"`
	ClassID         int             `bun:"class_id,notnull" json:"classID"`
	DiscountPercent float64         `bun:"discount_percent,notnull,default:0" json:"discountPercent"`
	FinalPrice      decimal.Decimal `bun:"final_price,notnull,type:numeric(12,2)" json:"finalPrice"`
}
