package queries

import (
	"errors"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrGetOpenOrdersQueryIsNotConstructed is returned when the query bypassed
// its constructor.
var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor")

// GetOpenOrdersQuery asks for every order of an event that has not been
// settled yet, feeding the waiter and cashier dashboards.
type GetOpenOrdersQuery struct { //nolint:recvcheck //using for validation
	caller  staffing.Caller
	eventID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates an open orders query.
func NewGetOpenOrdersQuery(caller staffing.Caller, eventID kernel.UUID) (GetOpenOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetOpenOrdersQuery{}, err
	}
	if err := caller.RequireRole(
		staffing.RoleWaiter, staffing.RoleCashier, staffing.RoleAdmin); err != nil {
		return GetOpenOrdersQuery{}, err
	}
	if err := eventID.Validate(); err != nil {
		return GetOpenOrdersQuery{}, err
	}

	return GetOpenOrdersQuery{
		caller:  caller,
		eventID: eventID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// Caller returns the scoped caller.
func (q GetOpenOrdersQuery) Caller() staffing.Caller { return q.caller }

// EventID returns the event whose open orders are requested.
func (q GetOpenOrdersQuery) EventID() kernel.UUID { return q.eventID }

// GetOpenOrdersQueryResponse is one open order on a dashboard.
type GetOpenOrdersQueryResponse struct {
	OrderID     kernel.UUID
	TableNumber *int
	GuestName   string
	Status      string
	Total       kernel.Money
	ItemCount   int
	ServedAt    *time.Time
}
