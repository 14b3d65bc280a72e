package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger adalah append-only store untuk order. Tidak ada update isi order
// lewat core ini; status lanjutan diurus fulfillment.
type Ledger struct{ DB *pgxpool.Pool }

// InsertTx menulis order + lines di dalam transaksi milik caller (dipakai
// checkout supaya persist order dan clear cart atomik).
func InsertTx(ctx context.Context, tx pgx.Tx, o *Order) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, status, total_amount, created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		o.ID, o.UserID, string(o.Status), o.TotalAmount, o.CreatedAt,
	); err != nil {
		return err
	}
	for _, ln := range o.Lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_lines(id, order_id, product_id, product_name, size, quantity, price)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			ln.ID, o.ID, ln.ProductID, ln.ProductName, ln.Size, ln.Quantity, ln.Price,
		); err != nil {
			return err
		}
	}
	return nil
}

// ListByOwner: order milik user, terbaru dulu.
func (l *Ledger) ListByOwner(ctx context.Context, userID string) ([]Order, error) {
	rows, err := l.DB.Query(ctx, `
		SELECT id, user_id, status, total_amount, created_at
		FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		var status string
		if err := rows.Scan(&o.ID, &o.UserID, &status, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Status = Status(status)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		lines, err := l.loadLines(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Lines = lines
	}
	return out, nil
}

// GetByID wajib cek kepemilikan: order orang lain tidak pernah dikembalikan.
func (l *Ledger) GetByID(ctx context.Context, orderID, userID string) (*Order, error) {
	var o Order
	var status string
	err := l.DB.QueryRow(ctx, `
		SELECT id, user_id, status, total_amount, created_at
		FROM orders WHERE id=$1`, orderID).
		Scan(&o.ID, &o.UserID, &status, &o.TotalAmount, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrForbidden
	}
	o.Status = Status(status)

	o.Lines, err = l.loadLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (l *Ledger) loadLines(ctx context.Context, orderID string) ([]Line, error) {
	rows, err := l.DB.Query(ctx, `
		SELECT id, product_id, product_name, size, quantity, price
		FROM order_lines WHERE order_id=$1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var ln Line
		if err := rows.Scan(&ln.ID, &ln.ProductID, &ln.ProductName, &ln.Size, &ln.Quantity, &ln.Price); err != nil {
			return nil, err
		}
		out = append(out, ln)
	}
	return out, rows.Err()
}
