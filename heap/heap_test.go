package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redex/ptr"
)

func TestNewHeapAllSlotsFree(t *testing.T) {
	h := New(8)
	assert.Equal(t, uint32(8), h.Len(), "heap should have the requested capacity")
	for i := uint32(1); i < h.Len(); i++ {
		assert.True(t, h.IsFree(i), "slot %d should start free", i)
	}
}

func TestSlotZeroNeverFree(t *testing.T) {
	h := New(4)
	assert.False(t, h.IsFree(0), "slot 0 is reserved for the root wire")
}

func TestGetSetRoundTrip(t *testing.T) {
	h := New(4)
	p := ptr.New(ptr.Ct2, 99)
	h.Set(2, 0, p)
	assert.Equal(t, p, h.Get(2, 0), "P1 should round-trip")
	assert.Equal(t, ptr.Null, h.Get(2, 1), "P2 should remain untouched")

	h.SetP2(2, ptr.New(ptr.Num, 7))
	assert.Equal(t, ptr.New(ptr.Num, 7), h.GetP2(2), "P2 accessor should round-trip")
}

func TestAllocMonotonicThenProbe(t *testing.T) {
	h := New(4)

	a, err := h.Alloc()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), a, "first alloc should be slot 1")

	b, err := h.Alloc()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), b, "second alloc should be slot 2")

	c, err := h.Alloc()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), c, "third alloc should be slot 3")

	// The monotonic cursor is now exhausted (slot 0 is reserved); freeing
	// slot 1 and allocating again must probe and find it.
	h.Free(a)
	d, err := h.Alloc()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), d, "probe should reclaim the freed slot")
}

func TestAllocProbePathStaysLatchedAfterExhaustion(t *testing.T) {
	h := New(4)

	_, err := h.Alloc() // slot 1, fast path
	require.NoError(t, err)
	two, err := h.Alloc() // slot 2, fast path
	require.NoError(t, err)
	three, err := h.Alloc() // slot 3, fast path exhausts the cursor
	require.NoError(t, err)
	h.SetP1(two, ptr.Eras) // slot 2 holds a live node

	h.Free(1)
	reclaimed, err := h.Alloc() // probe reclaims slot 1, cursor falls back below Len
	require.NoError(t, err)
	assert.Equal(t, uint32(1), reclaimed)
	h.SetP1(reclaimed, ptr.Eras) // slot 1 holds a live node again

	// Slots 1 and 2 are live; only slot 3 was freed. A latent fast path
	// would wrongly hand back slot 1 here because the cursor is now
	// below Len again. The latch must force another probe instead.
	h.Free(three)
	d, err := h.Alloc()
	require.NoError(t, err)
	assert.Equal(t, three, d, "probe must not hand back the still-live slot 2")
	assert.NotEqual(t, two, d)
}

func TestAllocExhaustion(t *testing.T) {
	h := New(2) // only slot 1 is ever allocatable
	loc, err := h.Alloc()
	require.NoError(t, err)
	h.SetP1(loc, ptr.Eras) // slot 1 holds a live node

	_, err = h.Alloc()
	assert.ErrorIs(t, err, ErrExhausted, "allocating past capacity must fail deterministically")
}

func TestFreeMakesSlotReusable(t *testing.T) {
	h := New(4)
	loc, err := h.Alloc()
	require.NoError(t, err)
	h.SetP1(loc, ptr.New(ptr.Ct0, 1))
	h.SetP2(loc, ptr.Eras)
	assert.False(t, h.IsFree(loc), "slot with live pointers is not free")

	h.Free(loc)
	assert.True(t, h.IsFree(loc), "freed slot should be reported free")
	assert.Equal(t, ptr.Null, h.GetP1(loc), "freed slot's P1 should be Null")
	assert.Equal(t, ptr.Null, h.GetP2(loc), "freed slot's P2 should be Null")
}
