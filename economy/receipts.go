package economy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

// Result is the structured outcome of a transactional economy
// operation. It never carries an error value: failures roll back and
// come out as a message.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GenerateReceipt creates a numbered receipt for an order, splitting
// the gross total into net and VAT at the given rate (percent). The
// whole operation runs in one transaction; any failure rolls back and
// returns a Result describing it.
func (s *Splitter) GenerateReceipt(ctx context.Context, orderID int, vatRate float64) Result {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{Message: fmt.Sprintf("begin transaction: %v", err)}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	order := &models.Order{}
	err = tx.NewSelect().Model(order).
		Where("o.order_id = ?", orderID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{Message: fmt.Sprintf("order %d not found", orderID)}
		}
		return Result{Message: fmt.Sprintf("load order %d: %v", orderID, err)}
	}
	if order.ReceiptID != nil {
		return Result{Message: fmt.Sprintf("order %d already has receipt %d", orderID, *order.ReceiptID)}
	}

	var maxNumber sql.NullInt64
	err = tx.NewSelect().Model((*models.Receipt)(nil)).
		ColumnExpr("MAX(number)").
		Scan(ctx, &maxNumber)
	if err != nil {
		return Result{Message: fmt.Sprintf("next receipt number: %v", err)}
	}

	gross := order.TotalAmount
	divisor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(vatRate).Div(hundred))
	net := gross.Div(divisor).Round(2)
	vat := gross.Sub(net)

	receipt := &models.Receipt{
		OrderID:     orderID,
		Number:      int(maxNumber.Int64) + 1,
		NetAmount:   net,
		VATAmount:   vat,
		GrossAmount: gross,
	}
	if _, err := tx.NewInsert().Model(receipt).Exec(ctx); err != nil {
		return Result{Message: fmt.Sprintf("insert receipt: %v", err)}
	}

	if _, err := tx.NewUpdate().Model((*models.Order)(nil)).
		Set("receipt_id = ?", receipt.ReceiptID).
		Where("order_id = ?", orderID).
		Exec(ctx); err != nil {
		return Result{Message: fmt.Sprintf("link receipt to order: %v", err)}
	}

	if err := tx.Commit(); err != nil {
		return Result{Message: fmt.Sprintf("commit receipt: %v", err)}
	}
	committed = true

	return Result{Success: true, Message: fmt.Sprintf("receipt %d generated for order %d", receipt.Number, orderID)}
}
