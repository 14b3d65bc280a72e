package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clerin-codes/canvas/internal/catalog"
)

// Store menyimpan cart di Postgres. Semua mutasi jalan dalam satu transaksi
// yang mengunci row carts (FOR UPDATE), jadi read-modify-write per user tidak
// bisa saling clobber.
type Store struct{ DB *pgxpool.Pool }

func (s *Store) GetOrCreate(ctx context.Context, userID string) (*Cart, error) {
	if _, err := s.DB.Exec(ctx, `
		INSERT INTO carts(user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return nil, err
	}
	return s.load(ctx, s.DB, userID, false)
}

func (s *Store) UpsertLine(ctx context.Context, userID, productID, size string, qty int) (*Cart, error) {
	return s.mutate(ctx, userID, true, func(ctx context.Context, tx pgx.Tx, c *Cart) error {
		p, err := findProduct(ctx, tx, productID)
		if err != nil {
			return err
		}
		return c.Upsert(p, size, qty)
	})
}

func (s *Store) UpdateLineQuantity(ctx context.Context, userID, lineID string, qty int) (*Cart, error) {
	return s.mutate(ctx, userID, false, func(ctx context.Context, tx pgx.Tx, c *Cart) error {
		ln := c.FindLine(lineID)
		if ln == nil {
			return ErrLineNotFound
		}
		p, err := findProduct(ctx, tx, ln.ProductID)
		if err != nil {
			return err
		}
		return c.SetQuantity(lineID, qty, p.Stock)
	})
}

func (s *Store) RemoveLine(ctx context.Context, userID, lineID string) (*Cart, error) {
	return s.mutate(ctx, userID, false, func(_ context.Context, _ pgx.Tx, c *Cart) error {
		c.Remove(lineID)
		return nil
	})
}

func (s *Store) Clear(ctx context.Context, userID string) (*Cart, error) {
	return s.mutate(ctx, userID, false, func(_ context.Context, _ pgx.Tx, c *Cart) error {
		c.Clear()
		return nil
	})
}

// Merge apply tiap guest line (yang lolos FilterValid) sebagai upsert, urut
// sesuai input. Gagal di satu line = seluruh merge rollback, all-or-nothing.
func (s *Store) Merge(ctx context.Context, userID string, lines []GuestLine) (*Cart, error) {
	valid := FilterValid(lines)
	return s.mutate(ctx, userID, true, func(ctx context.Context, tx pgx.Tx, c *Cart) error {
		for _, gl := range valid {
			p, err := findProduct(ctx, tx, gl.ProductID)
			if err != nil {
				return err
			}
			if err := c.Upsert(p, gl.Size, gl.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) mutate(ctx context.Context, userID string, ensure bool, op func(context.Context, pgx.Tx, *Cart) error) (*Cart, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if ensure {
		if _, err := tx.Exec(ctx, `
			INSERT INTO carts(user_id) VALUES ($1)
			ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
			return nil, err
		}
	}

	c, err := s.load(ctx, tx, userID, true)
	if err != nil {
		return nil, err
	}

	if err := op(ctx, tx, c); err != nil {
		return nil, err
	}

	if err := saveLines(ctx, tx, c); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *Store) load(ctx context.Context, q querier, userID string, lock bool) (*Cart, error) {
	head := `SELECT created_at, updated_at FROM carts WHERE user_id=$1`
	if lock {
		head += ` FOR UPDATE`
	}
	c := &Cart{UserID: userID}
	err := q.QueryRow(ctx, head, userID).Scan(&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `
		SELECT id, product_id, size, quantity, name, price, image_url
		FROM cart_lines WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ln Line
		if err := rows.Scan(&ln.ID, &ln.ProductID, &ln.Size, &ln.Quantity, &ln.Name, &ln.Price, &ln.ImageURL); err != nil {
			return nil, err
		}
		c.Lines = append(c.Lines, ln)
	}
	return c, rows.Err()
}

// saveLines tulis ulang seluruh isi cart (gaya save dokumen utuh).
func saveLines(ctx context.Context, tx pgx.Tx, c *Cart) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id=$1`, c.UserID); err != nil {
		return err
	}
	for _, ln := range c.Lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO cart_lines(id, user_id, product_id, size, quantity, name, price, image_url)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			ln.ID, c.UserID, ln.ProductID, ln.Size, ln.Quantity, ln.Name, ln.Price, ln.ImageURL,
		); err != nil {
			return err
		}
	}
	_, err := tx.Exec(ctx, `UPDATE carts SET updated_at=now() WHERE user_id=$1`, c.UserID)
	return err
}

func findProduct(ctx context.Context, tx pgx.Tx, id string) (*catalog.Product, error) {
	var p catalog.Product
	err := tx.QueryRow(ctx, `
		SELECT id, name, price, sizes, stock, image_url
		FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Sizes, &p.Stock, &p.ImageURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
