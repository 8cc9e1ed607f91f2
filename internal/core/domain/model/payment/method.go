package payment

import (
	"fmt"

	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// Method is how money changed hands for a ledger row.
type Method string

const (
	MethodCash     Method = "cash"
	MethodPOS      Method = "pos"
	MethodTransfer Method = "transfer"

	// MethodSplitComponent marks rows created by a per-item bill split,
	// where the payer settles specific items rather than a plain amount.
	MethodSplitComponent Method = "split_component"
)

// Validate checks the method against the closed set of payment methods.
func (m Method) Validate() error {
	switch m {
	case MethodCash, MethodPOS, MethodTransfer, MethodSplitComponent:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%q is not a valid payment method", string(m)))
	}
}

// String returns the wire/persistence name of the method.
func (m Method) String() string {
	return string(m)
}
