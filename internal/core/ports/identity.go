package ports

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
)

// CallerResolver turns an authenticated identity into a scoped caller:
// the user and tenant from the token, the role, and — for station roles —
// the zone bindings loaded for the event at hand. Fail-closed: a station
// user without bindings resolves to a caller that can act nowhere.
type CallerResolver interface {
	Resolve(ctx context.Context, userID, tenantID, eventID kernel.UUID, role staffing.Role) (staffing.Caller, error)
}
