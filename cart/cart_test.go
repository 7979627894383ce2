package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, price int64, qty int) Line {
	return Line{ItemID: id, Name: "item " + id, UnitPrice: price, Qty: qty}
}

func TestAddMergesSameItem(t *testing.T) {
	c := Cart{}
	c = Add(c, line("A", 100, 1))
	c = Add(c, line("A", 100, 1))

	require.Len(t, c, 1)
	assert.Equal(t, "A", c[0].ItemID)
	assert.Equal(t, 2, c[0].Qty)
}

func TestAddQtyBelowOneCountsAsOne(t *testing.T) {
	c := Add(Cart{}, line("A", 100, 0))
	require.Len(t, c, 1)
	assert.Equal(t, 1, c[0].Qty)

	c = Add(c, line("A", 100, -3))
	assert.Equal(t, 2, c[0].Qty)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	c := Cart{}
	c = Add(c, line("B", 50, 1))
	c = Add(c, line("A", 100, 1))
	c = Add(c, line("B", 50, 1))

	require.Len(t, c, 2)
	assert.Equal(t, "B", c[0].ItemID)
	assert.Equal(t, "A", c[1].ItemID)
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	c := Cart{line("A", 100, 2), line("B", 50, 1)}

	got := SetQuantity(c, "A", 0)
	want := Remove(c, "A")
	assert.Equal(t, want, got)

	_, found := Find(got, "A")
	assert.False(t, found)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].ItemID)
}

func TestSetQuantityUnknownIDIsNoop(t *testing.T) {
	c := Cart{line("A", 100, 2)}
	got := SetQuantity(c, "X", 5)
	assert.Equal(t, c, got)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := Cart{line("A", 100, 2)}
	got := Remove(c, "X")
	assert.Equal(t, c, got)
}

func TestClearSubtotalZero(t *testing.T) {
	c := Cart{line("A", 100, 2), line("B", 50, 1)}
	assert.Equal(t, int64(0), Subtotal(Clear(c)))
	assert.Empty(t, Clear(c))
}

func TestSubtotalScenario(t *testing.T) {
	c := Cart{line("A", 100, 2), line("B", 50, 1)}
	assert.Equal(t, int64(250), Subtotal(c))

	c = Add(c, line("A", 100, 1))
	a, ok := Find(c, "A")
	require.True(t, ok)
	assert.Equal(t, 3, a.Qty)
	b, ok := Find(c, "B")
	require.True(t, ok)
	assert.Equal(t, 1, b.Qty)
	assert.Equal(t, int64(350), Subtotal(c))

	c = SetQuantity(c, "A", 0)
	require.Len(t, c, 1)
	assert.Equal(t, "B", c[0].ItemID)
}

func TestSubtotalExactOverManyLines(t *testing.T) {
	// 100 lines at qty 1000 must sum without precision loss
	c := Cart{}
	var want int64
	for i := 0; i < 100; i++ {
		price := int64(999 + i*137)
		c = Add(c, Line{ItemID: string(rune('a'+i%26)) + string(rune('0'+i/26)), UnitPrice: price, Qty: 1000})
		want += price * 1000
	}
	require.Len(t, c, 100)
	assert.Equal(t, want, Subtotal(c))
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	orig := Cart{line("A", 100, 2), line("B", 50, 1)}
	snapshot := make(Cart, len(orig))
	copy(snapshot, orig)

	Add(orig, line("A", 100, 1))
	SetQuantity(orig, "A", 9)
	Remove(orig, "B")
	Clear(orig)

	assert.Equal(t, snapshot, orig)
}
