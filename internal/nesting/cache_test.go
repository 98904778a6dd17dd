package nesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/geometry"
)

func testKey(obj Objective) CacheKey {
	return NewCacheKey(testBox(), SearchOptions{PasoY: 1, PasoX: 1, Objective: obj})
}

func TestNewCacheKey_CoversGeometryAndSearch(t *testing.T) {
	base := testKey(ObjectiveWidth)

	changedBox := testBox()
	changedBox.Tapas[2] = 2
	assert.NotEqual(t, base, NewCacheKey(changedBox, SearchOptions{PasoY: 1, PasoX: 1, Objective: ObjectiveWidth}))

	assert.NotEqual(t, base, NewCacheKey(testBox(), SearchOptions{PasoY: 1, PasoX: 0.5, Objective: ObjectiveWidth}))
	assert.NotEqual(t, base, NewCacheKey(testBox(), SearchOptions{PasoY: 1, PasoX: 1, Clearance: 0.2, Objective: ObjectiveWidth}))
	assert.NotEqual(t, base, testKey(ObjectiveHeight))
}

func TestMotifCache_StoreAndHit(t *testing.T) {
	c := NewMotifCache(0)
	key := testKey(ObjectiveWidth)

	assert.Nil(t, c.Motif(key), "empty cache misses")

	m := &PatternMotif{Rot1: 90}
	c.StoreMotif(key, m)
	assert.Same(t, m, c.Motif(key))

	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestMotifCache_ObjectiveSlotsAreIndependent(t *testing.T) {
	c := NewMotifCache(0)

	wide := &PatternMotif{Rot1: 90}
	tall := &PatternMotif{Rot1: 270}
	c.StoreMotif(testKey(ObjectiveWidth), wide)
	c.StoreMotif(testKey(ObjectiveHeight), tall)

	assert.Same(t, wide, c.Motif(testKey(ObjectiveWidth)))
	assert.Same(t, tall, c.Motif(testKey(ObjectiveHeight)))
}

func TestMotifCache_AreaSharesHeightSlot(t *testing.T) {
	c := NewMotifCache(0)

	c.StoreMotif(testKey(ObjectiveHeight), &PatternMotif{Rot1: 90})
	c.StoreMotif(testKey(ObjectiveArea), &PatternMotif{Rot1: 270})

	assert.Nil(t, c.Motif(testKey(ObjectiveHeight)), "area entry replaced the shared slot")
	require.NotNil(t, c.Motif(testKey(ObjectiveArea)))
}

func TestMotifCache_NilMotifIsMemoized(t *testing.T) {
	c := NewMotifCache(0)
	key := testKey(ObjectiveWidth)

	c.StoreMotif(key, nil)
	assert.Nil(t, c.Motif(key))

	hits, _ := c.Stats()
	assert.Equal(t, 1, hits, "a stored nil still counts as a hit")
}

func TestMotifCache_IsValid(t *testing.T) {
	c := NewMotifCache(0)
	key := testKey(ObjectiveWidth)

	assert.False(t, c.IsValid(key), "empty cache holds no key")

	c.StoreMotif(key, &PatternMotif{Rot1: 90})
	assert.True(t, c.IsValid(key))

	other := testKey(ObjectiveWidth)
	other.Clearance = 0.2
	assert.False(t, c.IsValid(other), "different key does not validate")
}

func TestMotifCache_Clear(t *testing.T) {
	c := NewMotifCache(0)
	key := testKey(ObjectiveWidth)

	c.StoreMotif(key, &PatternMotif{Rot1: 90})
	c.bbox.put(bboxQuery{key: key, tilesX: 2, tilesY: 2}, geometry.BBox{MaxX: 1})

	c.Clear()

	assert.False(t, c.IsValid(key))
	_, ok := c.bbox.get(bboxQuery{key: key, tilesX: 2, tilesY: 2})
	assert.False(t, ok, "bbox memo emptied")
}

func TestBBoxLRU_EvictsOldest(t *testing.T) {
	l := newBBoxLRU(2)

	q1 := bboxQuery{key: testKey(ObjectiveWidth), tilesX: 1, tilesY: 1}
	q2 := bboxQuery{key: testKey(ObjectiveWidth), tilesX: 2, tilesY: 1}
	q3 := bboxQuery{key: testKey(ObjectiveWidth), tilesX: 3, tilesY: 1}

	l.put(q1, geometry.BBox{MaxX: 1, MaxY: 1})
	l.put(q2, geometry.BBox{MaxX: 2, MaxY: 1})
	l.put(q3, geometry.BBox{MaxX: 3, MaxY: 1})

	_, ok := l.get(q1)
	assert.False(t, ok, "oldest entry evicted at capacity")

	got, ok := l.get(q2)
	require.True(t, ok)
	assert.Equal(t, 2.0, got.MaxX)
	_, ok = l.get(q3)
	assert.True(t, ok)
}

func TestBBoxLRU_GetRefreshesRecency(t *testing.T) {
	l := newBBoxLRU(2)

	q1 := bboxQuery{key: testKey(ObjectiveWidth), tilesX: 1, tilesY: 1}
	q2 := bboxQuery{key: testKey(ObjectiveWidth), tilesX: 2, tilesY: 1}
	q3 := bboxQuery{key: testKey(ObjectiveWidth), tilesX: 3, tilesY: 1}

	l.put(q1, geometry.BBox{MaxX: 1})
	l.put(q2, geometry.BBox{MaxX: 2})

	_, ok := l.get(q1)
	require.True(t, ok)

	l.put(q3, geometry.BBox{MaxX: 3})

	_, ok = l.get(q1)
	assert.True(t, ok, "recently used entry survives")
	_, ok = l.get(q2)
	assert.False(t, ok, "least recently used entry evicted")
}

func TestBBoxLRU_PutUpdatesInPlace(t *testing.T) {
	l := newBBoxLRU(2)
	q := bboxQuery{key: testKey(ObjectiveWidth), tilesX: 1, tilesY: 1}

	l.put(q, geometry.BBox{MaxX: 1})
	l.put(q, geometry.BBox{MaxX: 5})

	got, ok := l.get(q)
	require.True(t, ok)
	assert.Equal(t, 5.0, got.MaxX)
	assert.Equal(t, 1, l.order.Len())
}
