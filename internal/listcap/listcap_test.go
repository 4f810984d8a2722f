package listcap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_CapsAfterSort(t *testing.T) {
	items := make([]int, 120)
	for i := range items {
		items[i] = i
	}

	desc := func(a, b int) bool { return a > b }
	got := Apply(items, 50, desc)

	require.Len(t, got.Items, 50)
	assert.Equal(t, 120, got.Total)
	assert.Equal(t, 70, got.Omitted)
	assert.Equal(t, 119, got.Items[0], "top item comes from the whole list, not the first page")
	assert.Equal(t, 70, got.Items[49])
	assert.Equal(t, "Showing 50 of 120 (70 more not shown)", got.Notice())

	assert.Equal(t, 0, items[0], "input is not reordered")
}

func TestApply_UnderLimit(t *testing.T) {
	got := Apply([]string{"b", "a"}, 50, func(a, b string) bool { return a < b })

	assert.Equal(t, []string{"a", "b"}, got.Items)
	assert.Equal(t, 0, got.Omitted)
	assert.Empty(t, got.Notice())
}

func TestApply_DefaultLimitAndNilLess(t *testing.T) {
	items := make([]int, DefaultLimit+5)
	for i := range items {
		items[i] = len(items) - i
	}

	got := Apply(items, 0, nil)
	assert.Len(t, got.Items, DefaultLimit)
	assert.Equal(t, 5, got.Omitted)
	assert.Equal(t, items[0], got.Items[0])
}

func TestApply_Empty(t *testing.T) {
	got := Apply[int](nil, 10, nil)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Equal(t, 0, got.Total)
}
