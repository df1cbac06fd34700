package store

import (
	"context"
	"database/sql"
	"fmt"

	"catering-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// RecomputeFunc returns the payment status to store once the payment set of a parent changed
type RecomputeFunc func(stored models.PaymentStatus, totalPaid, total int64) models.PaymentStatus

// PaymentWrite describes a payment insert or delete and the recomputation done with it
type PaymentWrite struct {
	Payment       models.Payment
	Parent        models.ParentState
	TotalPaid     int64
	PaymentStatus models.PaymentStatus
}

// StatusChanged reports whether the write moved the parent's payment status
func (w *PaymentWrite) StatusChanged() bool {
	return w.Parent.PaymentStatus != w.PaymentStatus
}

const paymentColumns = `id, order_id, booking_id, amount, method, reference,
	payment_date::text AS payment_date, notes, recorded_by, created_at`

func parentColumn(ref models.ParentRef) string {
	if ref.Kind == models.ParentBooking {
		return "booking_id"
	}
	return "order_id"
}

// GetParentState reads total and statuses of an order or booking
func (s *Store) GetParentState(ctx context.Context, ref models.ParentRef) (*models.ParentState, error) {
	return getParentState(ctx, s.db, ref, false)
}

func getParentState(ctx context.Context, q sqlx.QueryerContext, ref models.ParentRef, lock bool) (*models.ParentState, error) {
	query := fmt.Sprintf("SELECT total, status, payment_status FROM %s WHERE id = $1", ref.Table())
	if lock {
		query += " FOR UPDATE"
	}

	var state models.ParentState
	err := sqlx.GetContext(ctx, q, &state, query, ref.ID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", ref, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	state.Ref = ref
	return &state, nil
}

// ListPayments retrieves the payments of a parent ordered by payment date
func (s *Store) ListPayments(ctx context.Context, ref models.ParentRef) ([]models.Payment, error) {
	payments := []models.Payment{}
	query := fmt.Sprintf("SELECT %s FROM payments WHERE %s = $1 ORDER BY payment_date, id", paymentColumns, parentColumn(ref))
	err := s.db.SelectContext(ctx, &payments, query, ref.ID)
	return payments, err
}

// GetParentBalance reads total, statuses and the sum of payments of a parent in one statement
func (s *Store) GetParentBalance(ctx context.Context, ref models.ParentRef) (*models.ParentState, error) {
	query := fmt.Sprintf(`
		SELECT p.total, p.status, p.payment_status,
			COALESCE((SELECT SUM(amount) FROM payments WHERE %s = p.id), 0) AS total_paid
		FROM %s p WHERE p.id = $1`, parentColumn(ref), ref.Table())

	var state models.ParentState
	err := s.db.GetContext(ctx, &state, query, ref.ID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", ref, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	state.Ref = ref
	return &state, nil
}

func sumPayments(ctx context.Context, q sqlx.QueryerContext, ref models.ParentRef) (int64, error) {
	var total int64
	query := fmt.Sprintf("SELECT COALESCE(SUM(amount), 0) FROM payments WHERE %s = $1", parentColumn(ref))
	err := sqlx.GetContext(ctx, q, &total, query, ref.ID)
	return total, err
}

// RecordPayment inserts a payment and recomputes the parent's payment status in one transaction.
// The parent row is locked so concurrent writers recompute from the full payment set.
func (s *Store) RecordPayment(ctx context.Context, p *models.Payment, recompute RecomputeFunc) (*PaymentWrite, error) {
	ref, err := p.Parent()
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	parent, err := getParentState(ctx, tx, ref, true)
	if err != nil {
		return nil, err
	}

	err = tx.GetContext(ctx, p, `
		INSERT INTO payments (order_id, booking_id, amount, method, reference, payment_date, notes, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8)
		RETURNING id, created_at`,
		p.OrderID, p.BookingID, p.Amount, p.Method, p.Reference, p.PaymentDate, p.Notes, p.RecordedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	write, err := recomputeTx(ctx, tx, parent, recompute)
	if err != nil {
		return nil, err
	}
	write.Payment = *p

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return write, nil
}

// DeletePayment removes a payment and recomputes its parent's payment status in one transaction
func (s *Store) DeletePayment(ctx context.Context, paymentID int64, recompute RecomputeFunc) (*PaymentWrite, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var p models.Payment
	err = tx.GetContext(ctx, &p, "SELECT "+paymentColumns+" FROM payments WHERE id = $1", paymentID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %d: %w", paymentID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	ref, err := p.Parent()
	if err != nil {
		return nil, err
	}

	parent, err := getParentState(ctx, tx, ref, true)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE id = $1", paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete payment: %w", err)
	}
	if err := expectOne(res, fmt.Sprintf("payment %d", paymentID)); err != nil {
		return nil, err
	}

	write, err := recomputeTx(ctx, tx, parent, recompute)
	if err != nil {
		return nil, err
	}
	write.Payment = p

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return write, nil
}

func recomputeTx(ctx context.Context, tx *sqlx.Tx, parent *models.ParentState, recompute RecomputeFunc) (*PaymentWrite, error) {
	paid, err := sumPayments(ctx, tx, parent.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	next := recompute(parent.PaymentStatus, paid, parent.Total)
	if next != parent.PaymentStatus {
		query := fmt.Sprintf("UPDATE %s SET payment_status = $1, updated_at = NOW() WHERE id = $2", parent.Ref.Table())
		if _, err := tx.ExecContext(ctx, query, next, parent.Ref.ID); err != nil {
			return nil, fmt.Errorf("failed to update payment status: %w", err)
		}
	}

	return &PaymentWrite{
		Parent:        *parent,
		TotalPaid:     paid,
		PaymentStatus: next,
	}, nil
}

// UpdateStatus writes fulfillment and payment status if the parent is still in the state it was read in
func (s *Store) UpdateStatus(ctx context.Context, ref models.ParentRef, from, to models.Status, fromPayment, toPayment models.PaymentStatus) error {
	query := fmt.Sprintf(`
		UPDATE %s SET status = $1, payment_status = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4 AND payment_status = $5`, ref.Table())

	res, err := s.db.ExecContext(ctx, query, to, toPayment, ref.ID, from, fromPayment)
	if err != nil {
		return err
	}
	if err := expectOne(res, ref.String()); err != nil {
		return fmt.Errorf("%s: %w", ref, ErrConflict)
	}
	return nil
}

// UpdatePaymentStatus writes a staff-set payment status if it is still from
func (s *Store) UpdatePaymentStatus(ctx context.Context, ref models.ParentRef, from, to models.PaymentStatus) error {
	query := fmt.Sprintf(`
		UPDATE %s SET payment_status = $1, updated_at = NOW()
		WHERE id = $2 AND payment_status = $3`, ref.Table())

	res, err := s.db.ExecContext(ctx, query, to, ref.ID, from)
	if err != nil {
		return err
	}
	if err := expectOne(res, ref.String()); err != nil {
		return fmt.Errorf("%s: %w", ref, ErrConflict)
	}
	return nil
}
