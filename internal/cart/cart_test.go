package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clerin-codes/canvas/internal/catalog"
)

func product(id string, price string, stock int, sizes ...string) *catalog.Product {
	return &catalog.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.RequireFromString(price),
		Sizes:    sizes,
		Stock:    stock,
		ImageURL: "https://img/" + id,
	}
}

func TestUpsertNewLine(t *testing.T) {
	c := &Cart{UserID: "u1"}
	p := product("p1", "20.00", 5, "S", "M", "L")

	require.NoError(t, c.Upsert(p, "M", 2))

	require.Len(t, c.Lines, 1)
	ln := c.Lines[0]
	assert.NotEmpty(t, ln.ID)
	assert.Equal(t, "p1", ln.ProductID)
	assert.Equal(t, "M", ln.Size)
	assert.Equal(t, 2, ln.Quantity)
	assert.Equal(t, "Product p1", ln.Name)
	assert.True(t, ln.Price.Equal(decimal.RequireFromString("20.00")))
}

func TestUpsertSamePairIncrements(t *testing.T) {
	c := &Cart{UserID: "u1"}
	p := product("p1", "20.00", 10, "M")

	require.NoError(t, c.Upsert(p, "M", 2))
	require.NoError(t, c.Upsert(p, "M", 3))

	require.Len(t, c.Lines, 1, "no two lines may share (productId, size)")
	assert.Equal(t, 5, c.Lines[0].Quantity)
}

func TestUpsertDifferentSizeAddsLine(t *testing.T) {
	c := &Cart{UserID: "u1"}
	p := product("p1", "20.00", 10, "M", "L")

	require.NoError(t, c.Upsert(p, "M", 1))
	require.NoError(t, c.Upsert(p, "L", 1))

	assert.Len(t, c.Lines, 2)
}

func TestUpsertChecksCumulativeStock(t *testing.T) {
	c := &Cart{UserID: "u1"}
	p := product("p1", "20.00", 5, "M")

	require.NoError(t, c.Upsert(p, "M", 3))
	// delta 3 masih <= stock 5, tapi total line jadi 6 > 5
	err := c.Upsert(p, "M", 3)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, c.Lines[0].Quantity, "failed upsert must not mutate the line")
}

func TestUpsertRefreshesSnapshot(t *testing.T) {
	c := &Cart{UserID: "u1"}
	require.NoError(t, c.Upsert(product("p1", "20.00", 10, "M"), "M", 1))

	// harga katalog berubah, upsert berikutnya refresh snapshot
	require.NoError(t, c.Upsert(product("p1", "25.00", 10, "M"), "M", 1))

	assert.True(t, c.Lines[0].Price.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestUpsertValidation(t *testing.T) {
	c := &Cart{UserID: "u1"}
	p := product("p1", "20.00", 5, "M")

	assert.ErrorIs(t, c.Upsert(p, "M", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, c.Upsert(p, "XXL", 1), ErrSizeUnavailable)
	assert.ErrorIs(t, c.Upsert(p, "M", 6), ErrInsufficientStock)
	assert.Empty(t, c.Lines)
}

func TestSetQuantity(t *testing.T) {
	c := &Cart{UserID: "u1"}
	require.NoError(t, c.Upsert(product("p1", "20.00", 10, "M"), "M", 2))
	lineID := c.Lines[0].ID

	require.NoError(t, c.SetQuantity(lineID, 7, 10))
	assert.Equal(t, 7, c.Lines[0].Quantity, "set is absolute, not a delta")

	assert.ErrorIs(t, c.SetQuantity(lineID, 0, 10), ErrInvalidQuantity)
	assert.ErrorIs(t, c.SetQuantity(lineID, 11, 10), ErrInsufficientStock)
	assert.ErrorIs(t, c.SetQuantity("nope", 1, 10), ErrLineNotFound)
	assert.Equal(t, 7, c.Lines[0].Quantity)
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := &Cart{UserID: "u1"}
	require.NoError(t, c.Upsert(product("p1", "20.00", 10, "M"), "M", 1))
	lineID := c.Lines[0].ID

	c.Remove(lineID)
	assert.Empty(t, c.Lines)

	// kedua kalinya: no-op, bukan error
	c.Remove(lineID)
	assert.Empty(t, c.Lines)
}

func TestTotals(t *testing.T) {
	c := &Cart{UserID: "u1"}
	require.NoError(t, c.Upsert(product("p1", "20.00", 10, "M"), "M", 2))
	require.NoError(t, c.Upsert(product("p2", "15.50", 10, "L"), "L", 1))

	assert.True(t, c.Total().Equal(decimal.RequireFromString("55.50")))
	assert.Equal(t, 3, c.TotalItems())

	// update qty harus langsung kelihatan di total
	require.NoError(t, c.SetQuantity(c.Lines[0].ID, 1, 10))
	assert.True(t, c.Total().Equal(decimal.RequireFromString("35.50")))

	c.Clear()
	assert.True(t, c.Total().IsZero())
	assert.Equal(t, 0, c.TotalItems())
}

func TestFilterValid(t *testing.T) {
	in := []GuestLine{
		{ProductID: "p1", Size: "M", Quantity: 1},
		{ProductID: "", Size: "L", Quantity: 1},
		{ProductID: "p2", Size: "", Quantity: 1},
		{ProductID: "p3", Size: "S", Quantity: 0},
		{ProductID: "p4", Size: "S", Quantity: -2},
		{ProductID: "p5", Size: "XL", Quantity: 3},
	}

	out := FilterValid(in)

	require.Len(t, out, 2)
	assert.Equal(t, "p1", out[0].ProductID)
	assert.Equal(t, "p5", out[1].ProductID)
}
