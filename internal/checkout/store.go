package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clerin-codes/canvas/internal/cart"
	"github.com/clerin-codes/canvas/internal/catalog"
	"github.com/clerin-codes/canvas/internal/orders"
)

// PGStore menjalankan pipeline checkout sebagai SATU transaksi: kunci cart,
// validasi semua line, tulis order, kurangi stok, kosongkan cart. Gagal di
// mana pun = rollback total, cart tidak tersentuh.
type PGStore struct{ DB *pgxpool.Pool }

func (s *PGStore) CreateOrder(ctx context.Context, userID string) (*orders.Order, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// kunci row cart: checkout serial terhadap mutasi cart user yang sama
	var createdAt time.Time
	err = tx.QueryRow(ctx, `SELECT created_at FROM carts WHERE user_id=$1 FOR UPDATE`, userID).Scan(&createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, cart.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := loadCartLines(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// kunci stok produk yang direferensikan (FOR UPDATE). Produk yang sudah
	// hilang dibiarkan absen dari map → PriceLines yang menolak.
	products := make(map[string]*catalog.Product, len(lines))
	for _, ln := range lines {
		if _, ok := products[ln.ProductID]; ok {
			continue
		}
		var p catalog.Product
		err := tx.QueryRow(ctx, `
			SELECT id, name, price, sizes, stock, image_url
			FROM products WHERE id=$1 FOR UPDATE`, ln.ProductID).
			Scan(&p.ID, &p.Name, &p.Price, &p.Sizes, &p.Stock, &p.ImageURL)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products[p.ID] = &p
	}

	ordLines, total, err := PriceLines(lines, products)
	if err != nil {
		return nil, err
	}

	o := &orders.Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		Status:      orders.StatusConfirmed,
		Lines:       ordLines,
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
	}
	if err := orders.InsertTx(ctx, tx, o); err != nil {
		return nil, err
	}

	// kurangi stok di transaksi yang sama dengan persist order
	for _, ln := range ordLines {
		if _, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $2, updated_at = now()
			WHERE id=$1`, ln.ProductID, ln.Quantity); err != nil {
			return nil, err
		}
	}

	// kosongkan cart hanya setelah order tersimpan
	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id=$1`, userID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE carts SET updated_at=now() WHERE user_id=$1`, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func loadCartLines(ctx context.Context, tx pgx.Tx, userID string) ([]cart.Line, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, product_id, size, quantity, name, price, image_url
		FROM cart_lines WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cart.Line
	for rows.Next() {
		var ln cart.Line
		if err := rows.Scan(&ln.ID, &ln.ProductID, &ln.Size, &ln.Quantity, &ln.Name, &ln.Price, &ln.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, ln)
	}
	return out, rows.Err()
}
