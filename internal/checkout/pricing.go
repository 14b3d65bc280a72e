package checkout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clerin-codes/canvas/internal/cart"
	"github.com/clerin-codes/canvas/internal/catalog"
	"github.com/clerin-codes/canvas/internal/orders"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product no longer available")
)

// PriceLines re-validasi tiap cart line terhadap state katalog SAAT INI dan
// menghitung order lines + total dari harga katalog sekarang. Snapshot price
// di cart dibuang; total tidak pernah dipercaya dari client. Satu line gagal
// berarti seluruh checkout gagal, tanpa partial order.
func PriceLines(lines []cart.Line, products map[string]*catalog.Product) ([]orders.Line, decimal.Decimal, error) {
	total := decimal.Zero
	out := make([]orders.Line, 0, len(lines))

	for _, ln := range lines {
		p := products[ln.ProductID]
		if p == nil {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrProductUnavailable, ln.Name)
		}
		if !p.HasSize(ln.Size) {
			return nil, decimal.Zero, fmt.Errorf("%w: size %s for %s", cart.ErrSizeUnavailable, ln.Size, p.Name)
		}
		if p.Stock < ln.Quantity {
			return nil, decimal.Zero, fmt.Errorf("%w: %s (available: %d)", cart.ErrInsufficientStock, p.Name, p.Stock)
		}
		// kurangi sisa stok di map: beberapa line (size beda) untuk produk yang
		// sama tetap dihitung kumulatif
		p.Stock -= ln.Quantity

		out = append(out, orders.Line{
			ID:          uuid.NewString(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Size:        ln.Size,
			Quantity:    ln.Quantity,
			Price:       p.Price,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}
	return out, total, nil
}
