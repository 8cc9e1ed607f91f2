// Package queries holds the read side: each query talks SQL directly
// through GORM and returns flat read models, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrGetStationQueueQueryIsNotConstructed is returned when the query
// bypassed its constructor.
var ErrGetStationQueueQueryIsNotConstructed = errors.New(
	"GetStationQueueQuery must be created via NewGetStationQueueQuery constructor")

// GetStationQueueQuery asks for the work queue of one station screen:
// the routable items of the caller's station type whose orders stand at
// tables in the caller's zones.
type GetStationQueueQuery struct { //nolint:recvcheck //using for validation
	caller  staffing.Caller
	eventID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStationQueueQuery creates a station queue query. The caller must
// hold a station role; waiters, cashiers, and admins have dashboards of
// their own.
func NewGetStationQueueQuery(caller staffing.Caller, eventID kernel.UUID) (GetStationQueueQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetStationQueueQuery{}, err
	}
	if _, err := caller.Role().StationType(); err != nil {
		return GetStationQueueQuery{}, err
	}
	if err := eventID.Validate(); err != nil {
		return GetStationQueueQuery{}, err
	}

	return GetStationQueueQuery{
		caller:  caller,
		eventID: eventID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStationQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetStationQueueQueryIsNotConstructed)
}

// Caller returns the scoped caller.
func (q GetStationQueueQuery) Caller() staffing.Caller { return q.caller }

// EventID returns the event whose queue is requested.
func (q GetStationQueueQuery) EventID() kernel.UUID { return q.eventID }

// GetStationQueueQueryResponse is one row of a station's work queue.
type GetStationQueueQueryResponse struct {
	ItemID       kernel.UUID
	OrderID      kernel.UUID
	MenuItemID   kernel.UUID
	Quantity     int
	Notes        string
	Status       string
	DispatchedAt *time.Time
	TableNumber  int
	GuestName    string
}
