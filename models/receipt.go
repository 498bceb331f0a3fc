package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Receipt is a generated receipt for an order, with the gross amount
// split into net and VAT.
type Receipt struct {
	bun.BaseModel `bun:"table:receipts,alias:rcp"`

	ReceiptID   int             `bun:"receipt_id,pk,autoincrement" json:"receiptID"`
	OrderID     int             `bun:"order_id,notnull,unique" json:"orderID"`
	Number      int             `bun:"number,notnull,unique" json:"number"`
	NetAmount   decimal.Decimal `bun:"net_amount,notnull,type:numeric(12,2)" json:"netAmount"`
	VATAmount   decimal.Decimal `bun:"vat_amount,notnull,type:numeric(12,2)" json:"vatAmount"`
	GrossAmount decimal.Decimal `bun:"gross_amount,notnull,type:numeric(12,2)" json:"grossAmount"`
	CreatedAt   time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
