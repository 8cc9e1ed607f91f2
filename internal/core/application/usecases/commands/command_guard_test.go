package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/commands"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// Zero-value commands must never pass Validate; handlers rely on the
// constructor having run.
func TestZeroValueCommandsAreRejected(t *testing.T) {
	cases := []struct {
		name     string
		validate func() error
		sentinel error
	}{
		{"create order", commands.CreateOrderCommand{}.Validate, commands.ErrCreateOrderCommandIsNotConstructed},
		{"dispatch order", commands.DispatchOrderCommand{}.Validate, commands.ErrDispatchOrderCommandIsNotConstructed},
		{"mark item ready", commands.MarkItemReadyCommand{}.Validate, commands.ErrMarkItemReadyCommandIsNotConstructed},
		{"record payment", commands.RecordPaymentCommand{}.Validate, commands.ErrRecordPaymentCommandIsNotConstructed},
		{"record split payment", commands.RecordSplitPaymentCommand{}.Validate, commands.ErrRecordSplitPaymentCommandIsNotConstructed},
		{"confirm order paid", commands.ConfirmOrderPaidCommand{}.Validate, commands.ErrConfirmOrderPaidCommandIsNotConstructed},
		{"report return", commands.ReportReturnCommand{}.Validate, commands.ErrReportReturnCommandIsNotConstructed},
		{"approve refund", commands.ApproveRefundCommand{}.Validate, commands.ErrApproveRefundCommandIsNotConstructed},
		{"transfer inventory", commands.TransferInventoryCommand{}.Validate, commands.ErrTransferInventoryCommandIsNotConstructed},
		{"assign zone role", commands.AssignZoneRoleCommand{}.Validate, commands.ErrAssignZoneRoleCommandIsNotConstructed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.validate(), tc.sentinel)
		})
	}
}

func TestCommandConstructorsValidateInput(t *testing.T) {
	caller := newCaller(t, staffing.RoleAdmin)

	t.Run("order needs at least one line", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), caller, kernel.NewUUID(), kernel.NewUUID(), "", nil)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("line quantity must be positive", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), caller, kernel.NewUUID(), kernel.NewUUID(), "",
			[]commands.OrderLine{{MenuItemID: kernel.NewUUID(), Quantity: 0}})
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("split needs a non-zero component sum", func(t *testing.T) {
		_, err := commands.NewRecordSplitPaymentCommand(
			kernel.NewUUID(), payment.SplitComponents{}, caller)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("transfer refuses the same zone twice", func(t *testing.T) {
		zoneID := kernel.NewUUID()
		_, err := commands.NewTransferInventoryCommand(
			kernel.NewUUID(), zoneID, zoneID, 1, "", caller)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("transfer quantity must be positive", func(t *testing.T) {
		_, err := commands.NewTransferInventoryCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0, "", caller)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("identifiers must be set", func(t *testing.T) {
		_, err := commands.NewDispatchOrderCommand(kernel.UUID{}, caller)
		require.Error(t, err)
	})
}
