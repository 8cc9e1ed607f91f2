package queries

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrGetOrderBalanceQueryIsNotConstructed is returned when the query
// bypassed its constructor.
var ErrGetOrderBalanceQueryIsNotConstructed = errors.New(
	"GetOrderBalanceQuery must be created via NewGetOrderBalanceQuery constructor")

// GetOrderBalanceQuery asks for the money position of one order: what the
// guests owe, what the ledger already holds, and whether the cashier can
// close it out.
type GetOrderBalanceQuery struct { //nolint:recvcheck //using for validation
	caller  staffing.Caller
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderBalanceQuery creates an order balance query.
func NewGetOrderBalanceQuery(caller staffing.Caller, orderID kernel.UUID) (GetOrderBalanceQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetOrderBalanceQuery{}, err
	}
	if err := caller.RequireRole(
		staffing.RoleWaiter, staffing.RoleCashier, staffing.RoleAdmin); err != nil {
		return GetOrderBalanceQuery{}, err
	}
	if err := orderID.Validate(); err != nil {
		return GetOrderBalanceQuery{}, err
	}

	return GetOrderBalanceQuery{
		caller:  caller,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBalanceQueryIsNotConstructed)
}

// Caller returns the scoped caller.
func (q GetOrderBalanceQuery) Caller() staffing.Caller { return q.caller }

// OrderID returns the order whose balance is requested.
func (q GetOrderBalanceQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderBalanceQueryResponse is the reconciled money position of an order.
// Total is recomputed from the active items while the order is open and
// frozen once it is paid; approved refunds reduce what is owed.
type GetOrderBalanceQueryResponse struct {
	OrderID   kernel.UUID
	Status    string
	Total     kernel.Money
	Paid      kernel.Money
	Refunded  kernel.Money
	Remaining kernel.Money
	FullyPaid bool
}
