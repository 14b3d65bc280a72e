package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clerin-codes/canvas/internal/cart"
	"github.com/clerin-codes/canvas/internal/catalog"
)

func product(id, price string, stock int, sizes ...string) *catalog.Product {
	return &catalog.Product{
		ID:    id,
		Name:  "Product " + id,
		Price: decimal.RequireFromString(price),
		Sizes: sizes,
		Stock: stock,
	}
}

func twoLineCart() []cart.Line {
	return []cart.Line{
		{ID: "l1", ProductID: "p1", Size: "M", Quantity: 2, Name: "Product p1", Price: decimal.RequireFromString("20.00")},
		{ID: "l2", ProductID: "p2", Size: "L", Quantity: 1, Name: "Product p2", Price: decimal.RequireFromString("15.00")},
	}
}

func TestPriceLinesUsesCurrentCatalogPrice(t *testing.T) {
	// snapshot p1 = 20, katalog sekarang 22: total harus pakai 22
	products := map[string]*catalog.Product{
		"p1": product("p1", "22.00", 5, "M"),
		"p2": product("p2", "15.00", 3, "L"),
	}

	lines, total, err := PriceLines(twoLineCart(), products)

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, total.Equal(decimal.RequireFromString("59.00")), "22*2 + 15*1, got %s", total)
	assert.True(t, lines[0].Price.Equal(decimal.RequireFromString("22.00")))
	assert.Equal(t, 2, lines[0].Quantity)
	assert.NotEmpty(t, lines[0].ID)
}

func TestPriceLinesStockDriftFailsWhole(t *testing.T) {
	// p2 kehabisan stok: seluruh checkout gagal, tidak ada partial order
	products := map[string]*catalog.Product{
		"p1": product("p1", "22.00", 5, "M"),
		"p2": product("p2", "15.00", 0, "L"),
	}

	lines, _, err := PriceLines(twoLineCart(), products)

	assert.ErrorIs(t, err, cart.ErrInsufficientStock)
	assert.Nil(t, lines)
}

func TestPriceLinesCumulativeStockAcrossSizes(t *testing.T) {
	// dua line produk sama (size beda), masing-masing <= stok tapi jumlahnya
	// melewati: harus gagal
	lines := []cart.Line{
		{ID: "l1", ProductID: "p1", Size: "M", Quantity: 3},
		{ID: "l2", ProductID: "p1", Size: "L", Quantity: 3},
	}
	products := map[string]*catalog.Product{
		"p1": product("p1", "22.00", 5, "M", "L"),
	}

	_, _, err := PriceLines(lines, products)

	assert.ErrorIs(t, err, cart.ErrInsufficientStock)
}

func TestPriceLinesProductGone(t *testing.T) {
	products := map[string]*catalog.Product{
		"p2": product("p2", "15.00", 3, "L"),
	}

	_, _, err := PriceLines(twoLineCart(), products)

	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestPriceLinesSizeDropped(t *testing.T) {
	products := map[string]*catalog.Product{
		"p1": product("p1", "22.00", 5, "S"), // size M sudah tidak ada
		"p2": product("p2", "15.00", 3, "L"),
	}

	_, _, err := PriceLines(twoLineCart(), products)

	assert.ErrorIs(t, err, cart.ErrSizeUnavailable)
}

func TestPriceLinesEmpty(t *testing.T) {
	lines, total, err := PriceLines(nil, nil)

	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.True(t, total.IsZero())
}
