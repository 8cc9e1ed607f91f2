package payment

import "github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"

// Balance is the reconciled money position of one order.
type Balance struct {
	Total     kernel.Money
	Paid      kernel.Money
	Refunded  kernel.Money
	Remaining kernel.Money
	FullyPaid bool
}

// ComputeBalance reconciles the ledger against the order total. total is the
// order's current total (active items, or the frozen snapshot once paid);
// refunded is the sum of confirmed refunds and reduces what is owed. Floating
// rounding up to the money tolerance counts as settled.
func ComputeBalance(total kernel.Money, payments []*Payment, refunded kernel.Money) Balance {
	paid := kernel.ZeroMoney()
	for _, p := range payments {
		paid = paid.Add(p.Amount())
	}

	return ReconcileBalance(total, paid, refunded)
}

// ReconcileBalance is ComputeBalance with the ledger already summed, for
// callers that read aggregate sums instead of payment rows.
func ReconcileBalance(total, paid, refunded kernel.Money) Balance {
	owed := total.Sub(refunded)
	remaining := owed.Sub(paid)
	if remaining.IsNegative() {
		remaining = kernel.ZeroMoney()
	}

	return Balance{
		Total:     total,
		Paid:      paid,
		Refunded:  refunded,
		Remaining: remaining,
		FullyPaid: paid.MatchesWithinTolerance(owed) || paid.GreaterThan(owed),
	}
}
