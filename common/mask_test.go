package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBit(t *testing.T) {
	assert.Equal(t, BitMask32(1), Bit(0))
	assert.Equal(t, BitMask32(2), Bit(1))
	assert.Equal(t, BitMask32(0x80000000), Bit(31))
	assert.Equal(t, MaskNone, Bit(32))
	assert.Equal(t, MaskNone, Bit(-1))
}

func TestMaskOps(t *testing.T) {
	m := Bit(1).Union(Bit(3))

	assert.True(t, m.Has(Bit(1)))
	assert.True(t, m.Has(Bit(3)))
	assert.False(t, m.Has(Bit(2)))
	assert.True(t, m.Has(Bit(1).Union(Bit(3))))
	assert.False(t, m.Has(Bit(1).Union(Bit(2))))

	assert.True(t, m.Intersects(Bit(3)))
	assert.True(t, m.Intersects(MaskAll))
	assert.False(t, m.Intersects(Bit(2)))
	assert.False(t, m.Intersects(MaskNone))

	assert.Equal(t, Bit(3), m.Without(Bit(1)))
	assert.Equal(t, m, m.Without(MaskNone))
	assert.Equal(t, MaskNone, m.Without(MaskAll))
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "0x00000000", MaskNone.String())
	assert.Equal(t, "0x00000008", Bit(3).String())
	assert.Equal(t, "0xffffffff", MaskAll.String())
}
