// Package jobs provides scheduled background tasks. The reconciliation job
// sweeps the ledger and inventory tables once a minute, repairs what it
// safely can, and raises consistency alerts for everything else.
package jobs

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReconciliationJob cross-checks stored snapshots against the rows they
// were derived from:
//
//   - open orders whose stored total drifted from the active item sum are
//     repaired in place
//   - settled orders whose ledger no longer covers the frozen total are
//     alerted, never repaired
//   - split sessions spanning more than one order are alerted
//   - negative zone allocations are alerted
//   - transfer-log entries pointing at zones with no allocation row are
//     alerted, since the paired allocation write only half-applied
type ReconciliationJob struct {
	db   *gorm.DB
	cron *cron.Cron
	log  *zap.Logger
}

// NewReconciliationJob creates the job; Start schedules it every minute.
func NewReconciliationJob(db *gorm.DB, log *zap.Logger) *ReconciliationJob {
	return &ReconciliationJob{
		db:   db,
		cron: cron.New(),
		log:  log.With(zap.String("component", "reconciliation_job")),
	}
}

// Start schedules the sweep to run every minute.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info("reconciliation job started (running every minute)")
	return nil
}

// Stop stops the scheduled sweep.
func (j *ReconciliationJob) Stop() {
	j.cron.Stop()
	j.log.Info("reconciliation job stopped")
}

// Run executes one sweep. Exposed so the composition root can trigger a
// pass at startup and tests can call it directly.
func (j *ReconciliationJob) Run(ctx context.Context) {
	j.repairStaleOrderTotals(ctx)
	j.alertUnderpaidSettledOrders(ctx)
	j.alertCrossOrderSplitSessions(ctx)
	j.alertNegativeAllocations(ctx)
	j.alertOrphanedTransfers(ctx)
}

// repairStaleOrderTotals rewrites the stored total of open orders whose
// item collection moved underneath the snapshot. The items are the source
// of truth until the cashier freezes the order.
func (j *ReconciliationJob) repairStaleOrderTotals(ctx context.Context) {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT o.id, o.total_amount, COALESCE(SUM(i.price * i.quantity), 0) AS active_total
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id AND i.status NOT IN ?
		WHERE o.status NOT IN ?
		GROUP BY o.id, o.total_amount
		HAVING o.total_amount <> COALESCE(SUM(i.price * i.quantity), 0)
	`,
		[]int{int(order.ItemRejected), int(order.ItemReturned)},
		[]int{int(order.Paid), int(order.Cancelled)},
	).Rows()
	if err != nil {
		j.log.Error("stale total sweep failed", zap.Error(err))
		return
	}
	defer rows.Close()

	type repair struct {
		id            string
		stored, fresh decimal.Decimal
	}
	var repairs []repair

	for rows.Next() {
		var r repair
		if err := rows.Scan(&r.id, &r.stored, &r.fresh); err != nil {
			j.log.Error("stale total scan failed", zap.Error(err))
			return
		}
		repairs = append(repairs, r)
	}
	if err := rows.Err(); err != nil {
		j.log.Error("stale total sweep failed", zap.Error(err))
		return
	}

	for _, r := range repairs {
		err := j.db.WithContext(ctx).Exec(
			`UPDATE orders SET total_amount = ? WHERE id = ? AND total_amount = ?`,
			r.fresh, r.id, r.stored).Error
		if err != nil {
			j.log.Error("stale total repair failed",
				zap.String("order_id", r.id), zap.Error(err))
			continue
		}
		j.log.Warn("repaired stale order total",
			zap.String("order_id", r.id),
			zap.String("stored", r.stored.StringFixed(2)),
			zap.String("recomputed", r.fresh.StringFixed(2)))
	}
}

// alertUnderpaidSettledOrders flags paid orders whose ledger, net of
// approved refunds, no longer covers the frozen total. Money left a paid
// order; nothing is repaired automatically.
func (j *ReconciliationJob) alertUnderpaidSettledOrders(ctx context.Context) {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT o.id, o.total_amount,
			COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.order_id = o.id), 0) AS paid,
			COALESCE((SELECT SUM(r.refund_amount) FROM order_returns r
				WHERE r.order_id = o.id AND r.refund_amount IS NOT NULL), 0) AS refunded
		FROM orders o
		WHERE o.status = ?
	`, int(order.Paid)).Rows()
	if err != nil {
		j.log.Error("settled order sweep failed", zap.Error(err))
		return
	}
	defer rows.Close()

	tolerance := decimal.New(1, -2)

	for rows.Next() {
		var id string
		var total, paid, refunded decimal.Decimal
		if err := rows.Scan(&id, &total, &paid, &refunded); err != nil {
			j.log.Error("settled order scan failed", zap.Error(err))
			return
		}

		owed := total.Sub(refunded)
		if paid.Add(tolerance).LessThan(owed) {
			j.log.Error("consistency alert: settled order is underpaid",
				zap.String("order_id", id),
				zap.String("total", total.StringFixed(2)),
				zap.String("paid", paid.StringFixed(2)),
				zap.String("refunded", refunded.StringFixed(2)))
		}
	}
	if err := rows.Err(); err != nil {
		j.log.Error("settled order sweep failed", zap.Error(err))
	}
}

// alertCrossOrderSplitSessions flags split sessions whose rows reference
// more than one order. Split rows are created in one transaction for one
// order; a session crossing orders means the ledger was tampered with.
func (j *ReconciliationJob) alertCrossOrderSplitSessions(ctx context.Context) {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT split_session_id, COUNT(DISTINCT order_id) AS orders
		FROM payments
		WHERE split_session_id IS NOT NULL
		GROUP BY split_session_id
		HAVING COUNT(DISTINCT order_id) > 1
	`).Rows()
	if err != nil {
		j.log.Error("split session sweep failed", zap.Error(err))
		return
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID string
		var orders int
		if err := rows.Scan(&sessionID, &orders); err != nil {
			j.log.Error("split session scan failed", zap.Error(err))
			return
		}
		j.log.Error("consistency alert: split session spans multiple orders",
			zap.String("split_session_id", sessionID),
			zap.Int("orders", orders))
	}
	if err := rows.Err(); err != nil {
		j.log.Error("split session sweep failed", zap.Error(err))
	}
}

// alertNegativeAllocations flags zone allocations driven below zero.
// Transfers guard against this inside their transaction, so a negative
// row means writes bypassed the application.
func (j *ReconciliationJob) alertNegativeAllocations(ctx context.Context) {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT menu_item_id, zone_id, quantity
		FROM zone_allocations
		WHERE quantity < 0
	`).Rows()
	if err != nil {
		j.log.Error("allocation sweep failed", zap.Error(err))
		return
	}
	defer rows.Close()

	for rows.Next() {
		var menuItemID, zoneID string
		var quantity int
		if err := rows.Scan(&menuItemID, &zoneID, &quantity); err != nil {
			j.log.Error("allocation scan failed", zap.Error(err))
			return
		}
		j.log.Error("consistency alert: negative zone allocation",
			zap.String("menu_item_id", menuItemID),
			zap.String("zone_id", zoneID),
			zap.Int("quantity", quantity))
	}
	if err := rows.Err(); err != nil {
		j.log.Error("allocation sweep failed", zap.Error(err))
	}
}

// alertOrphanedTransfers flags transfer-log entries whose source or
// destination zone has no allocation row for the moved menu item. The
// transfer transaction writes both allocation sides and keeps emptied
// rows at zero, so a missing row means the paired write half-applied.
func (j *ReconciliationJob) alertOrphanedTransfers(ctx context.Context) {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT t.id, t.menu_item_id, t.from_zone_id, t.to_zone_id
		FROM inventory_transfers t
		WHERE NOT EXISTS (
			SELECT 1 FROM zone_allocations a
			WHERE a.tenant_id = t.tenant_id
				AND a.menu_item_id = t.menu_item_id
				AND a.zone_id = t.from_zone_id
		) OR NOT EXISTS (
			SELECT 1 FROM zone_allocations a
			WHERE a.tenant_id = t.tenant_id
				AND a.menu_item_id = t.menu_item_id
				AND a.zone_id = t.to_zone_id
		)
	`).Rows()
	if err != nil {
		j.log.Error("transfer sweep failed", zap.Error(err))
		return
	}
	defer rows.Close()

	for rows.Next() {
		var transferID, menuItemID, fromZoneID, toZoneID string
		if err := rows.Scan(&transferID, &menuItemID, &fromZoneID, &toZoneID); err != nil {
			j.log.Error("transfer scan failed", zap.Error(err))
			return
		}
		j.log.Error("consistency alert: transfer references zone without allocation",
			zap.String("transfer_id", transferID),
			zap.String("menu_item_id", menuItemID),
			zap.String("from_zone_id", fromZoneID),
			zap.String("to_zone_id", toZoneID))
	}
	if err := rows.Err(); err != nil {
		j.log.Error("transfer sweep failed", zap.Error(err))
	}
}
