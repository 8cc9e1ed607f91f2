package payment

import (
	"fmt"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// SplitComponents carries the per-method amounts of a split by amount.
// A zero component means the method was not used.
type SplitComponents struct {
	Cash     kernel.Money
	POS      kernel.Money
	Transfer kernel.Money
}

// Sum returns the total across all components.
func (c SplitComponents) Sum() kernel.Money {
	return c.Cash.Add(c.POS).Add(c.Transfer)
}

// NewSplitPayments builds the ledger rows of one logical split payment:
// one row per non-zero component, all sharing sessionID. The component sum
// must match amountDue within the money tolerance; the caller persists the
// returned rows in a single transaction or not at all.
func NewSplitPayments(
	sessionID, tenantID, orderID kernel.UUID,
	amountDue kernel.Money,
	components SplitComponents,
	confirmedBy kernel.UUID,
	recordedAt time.Time,
) ([]*Payment, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, err
	}

	for name, amount := range map[string]kernel.Money{
		"cash":     components.Cash,
		"pos":      components.POS,
		"transfer": components.Transfer,
	} {
		if amount.IsNegative() {
			return nil, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("split component must not be negative, got %s", amount))
		}
	}

	sum := components.Sum()
	if !sum.MatchesWithinTolerance(amountDue) {
		return nil, errs.NewValueIsInvalidErrorWithCause("components",
			fmt.Errorf("split total %s does not match order total %s", sum, amountDue))
	}
	if sum.IsZero() {
		return nil, errs.NewValueIsRequiredError("components")
	}

	parts := []struct {
		method Method
		amount kernel.Money
	}{
		{MethodCash, components.Cash},
		{MethodPOS, components.POS},
		{MethodTransfer, components.Transfer},
	}

	payments := make([]*Payment, 0, len(parts))
	for _, part := range parts {
		if part.amount.IsZero() {
			continue
		}

		p, err := newPayment(
			kernel.NewUUID(), tenantID, orderID,
			part.amount, part.method, confirmedBy, &sessionID, "", recordedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	payments[0].events = append(payments[0].events, SplitRecordedEvent{
		tenantID:       tenantID,
		occurredAt:     recordedAt,
		SplitSessionID: sessionID,
		OrderID:        orderID,
		Total:          sum,
		Rows:           len(payments),
	})

	return payments, nil
}

// ItemAllocation assigns part of the bill to a specific order item:
// quantity units of the item settled by one payer.
type ItemAllocation struct {
	ItemID   kernel.UUID
	Quantity int
	Amount   kernel.Money
}

// LineTotals maps item IDs to the line totals a per-item split is checked
// against.
type LineTotals map[kernel.UUID]kernel.Money

// NewItemSplitPayments builds ledger rows for a bill split by items. Each
// allocation becomes one split-component row; per item the allocated sum
// must not exceed the line total, and the grand total must not exceed
// orderTotal.
func NewItemSplitPayments(
	sessionID, tenantID, orderID kernel.UUID,
	allocations []ItemAllocation,
	lineTotals LineTotals,
	orderTotal kernel.Money,
	confirmedBy kernel.UUID,
	recordedAt time.Time,
) ([]*Payment, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, err
	}
	if len(allocations) == 0 {
		return nil, errs.NewValueIsRequiredError("allocations")
	}

	perItem := make(map[kernel.UUID]kernel.Money, len(lineTotals))
	grand := kernel.ZeroMoney()

	for _, alloc := range allocations {
		if err := alloc.ItemID.Validate(); err != nil {
			return nil, err
		}
		if alloc.Quantity <= 0 {
			return nil, errs.NewValueIsOutOfRangeError("quantity", alloc.Quantity, 1, 999)
		}
		if !alloc.Amount.IsPositive() {
			return nil, errs.NewValueIsInvalidError("amount")
		}

		lineTotal, ok := lineTotals[alloc.ItemID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("itemID", alloc.ItemID)
		}

		allocated := perItem[alloc.ItemID].Add(alloc.Amount)
		if lineTotal.LessThan(allocated) && !allocated.MatchesWithinTolerance(lineTotal) {
			return nil, errs.NewValueIsInvalidErrorWithCause("amount",
				fmt.Errorf("allocations for item %s sum to %s, above line total %s",
					alloc.ItemID, allocated, lineTotal))
		}
		perItem[alloc.ItemID] = allocated
		grand = grand.Add(alloc.Amount)
	}

	if orderTotal.LessThan(grand) && !grand.MatchesWithinTolerance(orderTotal) {
		return nil, errs.NewValueIsInvalidErrorWithCause("allocations",
			fmt.Errorf("item split total %s exceeds order total %s", grand, orderTotal))
	}

	payments := make([]*Payment, 0, len(allocations))
	for _, alloc := range allocations {
		notes := fmt.Sprintf("item %s x%d", alloc.ItemID, alloc.Quantity)
		p, err := newPayment(
			kernel.NewUUID(), tenantID, orderID,
			alloc.Amount, MethodSplitComponent, confirmedBy, &sessionID, notes, recordedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	payments[0].events = append(payments[0].events, SplitRecordedEvent{
		tenantID:       tenantID,
		occurredAt:     recordedAt,
		SplitSessionID: sessionID,
		OrderID:        orderID,
		Total:          grand,
		Rows:           len(payments),
	})

	return payments, nil
}
