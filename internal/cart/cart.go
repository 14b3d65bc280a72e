package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clerin-codes/canvas/internal/catalog"
)

// Line adalah satu entry (product, size) di cart. Name/Price/ImageURL adalah
// snapshot dari katalog saat line dibuat atau terakhir di-update; harga
// otoritatif tetap dihitung ulang saat checkout.
type Line struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
}

type Cart struct {
	UserID    string    `json:"userId"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Total = sum(snapshot price * qty). Tidak query katalog lagi.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, ln := range c.Lines {
		total = total.Add(ln.Price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}
	return total
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, ln := range c.Lines {
		n += ln.Quantity
	}
	return n
}

func (c *Cart) FindLine(lineID string) *Line {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

func (c *Cart) lineFor(productID, size string) *Line {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID && c.Lines[i].Size == size {
			return &c.Lines[i]
		}
	}
	return nil
}

// Upsert menambah qty ke line (productID, size) yang sudah ada, atau append
// line baru dengan snapshot produk saat ini. Stok dicek terhadap quantity
// akhir line, bukan delta yang ditambahkan, supaya add berulang tidak bisa
// melewati stok.
func (c *Cart) Upsert(p *catalog.Product, size string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if !p.HasSize(size) {
		return ErrSizeUnavailable
	}

	if ln := c.lineFor(p.ID, size); ln != nil {
		if ln.Quantity+qty > p.Stock {
			return ErrInsufficientStock
		}
		ln.Quantity += qty
		// refresh snapshot, line "tersentuh" lagi
		ln.Name = p.Name
		ln.Price = p.Price
		ln.ImageURL = p.ImageURL
		return nil
	}

	if qty > p.Stock {
		return ErrInsufficientStock
	}
	c.Lines = append(c.Lines, Line{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		Size:      size,
		Quantity:  qty,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
	})
	return nil
}

// SetQuantity overwrite qty line (absolute, bukan delta) setelah re-validasi
// terhadap stok katalog saat ini.
func (c *Cart) SetQuantity(lineID string, qty, stock int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	ln := c.FindLine(lineID)
	if ln == nil {
		return ErrLineNotFound
	}
	if qty > stock {
		return ErrInsufficientStock
	}
	ln.Quantity = qty
	return nil
}

// Remove hapus line kalau ada; kalau tidak ada ya sudah (idempotent).
func (c *Cart) Remove(lineID string) {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}
