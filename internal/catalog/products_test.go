package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 11)

	seen := map[int]bool{}
	for _, p := range all {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		assert.Equal(t, "KZT", p.Currency)
		assert.Equal(t, Sizes, p.Sizes)
		assert.Equal(t, p.Image, p.Images[0])
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0].Name = "changed"

	p, ok := Find(all[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Cotaque Jemais", p.Name)
}

func TestFind(t *testing.T) {
	p, ok := Find(3)
	require.True(t, ok)
	assert.Equal(t, "Blink", p.Name)
	assert.Equal(t, 13000.0, p.Price)

	_, ok = Find(99)
	assert.False(t, ok)
}

func TestHasSize(t *testing.T) {
	p, _ := Find(1)
	assert.True(t, p.HasSize("2XL"))
	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("3XL"))
	assert.False(t, p.HasSize("m"))
}
