package nesting

import (
	"container/list"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/geometry"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/model"
)

// CacheKey identifies a placement search outcome by the full geometry of the
// die line and the search parameters. Two requests with equal keys are
// guaranteed to produce the same motif, so the key doubles as the cache
// invalidation contract: any change to a field is a different key.
type CacheKey struct {
	L, A, H    float64
	CIzq, CDer float64
	Tapas      [4]float64
	CSup       [4]float64
	Bases      [4]float64
	CInf       [4]float64

	PasoY, PasoX float64
	Clearance    float64
	Objective    Objective
}

// NewCacheKey builds the key for a box geometry under the given search
// options.
func NewCacheKey(p model.BoxParams, opts SearchOptions) CacheKey {
	return CacheKey{
		L: p.L, A: p.A, H: p.H,
		CIzq: p.CIzq, CDer: p.CDer,
		Tapas: p.Tapas, CSup: p.CSup, Bases: p.Bases, CInf: p.CInf,
		PasoY: opts.PasoY, PasoX: opts.PasoX,
		Clearance: opts.Clearance,
		Objective: opts.Objective,
	}
}

type motifSlot struct {
	key   CacheKey
	motif *PatternMotif
	valid bool
}

// MotifCache keeps the last computed motif per objective, plus a bounded LRU
// of assembled-pattern bounding boxes. The width and height objectives get
// separate slots because switching objectives is the common interaction and
// should not evict the other result; the area objective shares the height
// slot.
type MotifCache struct {
	widthSlot  motifSlot
	heightSlot motifSlot

	bbox   *bboxLRU
	hits   int
	misses int
}

// DefaultBBoxCacheSize bounds the assembled-pattern bbox memo.
const DefaultBBoxCacheSize = 8

// NewMotifCache returns a cache whose bbox memo holds at most size entries.
// A non-positive size falls back to DefaultBBoxCacheSize.
func NewMotifCache(size int) *MotifCache {
	if size <= 0 {
		size = DefaultBBoxCacheSize
	}
	return &MotifCache{bbox: newBBoxLRU(size)}
}

func (c *MotifCache) slot(obj Objective) *motifSlot {
	if obj == ObjectiveWidth {
		return &c.widthSlot
	}
	return &c.heightSlot
}

// Motif returns the cached motif for the key, or nil when the slot holds a
// different key.
func (c *MotifCache) Motif(key CacheKey) *PatternMotif {
	s := c.slot(key.Objective)
	if s.valid && s.key == key {
		c.hits++
		return s.motif
	}
	c.misses++
	return nil
}

// StoreMotif records the motif for its key, replacing whatever the slot held.
// A nil motif is a valid entry: it memoizes search exhaustion.
func (c *MotifCache) StoreMotif(key CacheKey, m *PatternMotif) {
	*c.slot(key.Objective) = motifSlot{key: key, motif: m, valid: true}
}

// IsValid reports whether the slot for the key's objective holds exactly
// this key.
func (c *MotifCache) IsValid(key CacheKey) bool {
	s := c.slot(key.Objective)
	return s.valid && s.key == key
}

// Clear drops both motif slots and the bbox memo. Counters are kept.
func (c *MotifCache) Clear() {
	c.widthSlot = motifSlot{}
	c.heightSlot = motifSlot{}
	fresh := newBBoxLRU(c.bbox.cap)
	fresh.hits, fresh.misses = c.bbox.hits, c.bbox.misses
	c.bbox = fresh
}

// Stats reports accumulated hit and miss counts across both the motif slots
// and the bbox memo.
func (c *MotifCache) Stats() (hits, misses int) {
	return c.hits + c.bbox.hits, c.misses + c.bbox.misses
}

// bboxQuery identifies one assembled-pattern bounding box computation.
type bboxQuery struct {
	key                  CacheKey
	tilesX, tilesY       int
	medianilX, medianilY float64
}

// bboxLRU is a fixed-capacity least-recently-used memo for pattern bounding
// boxes. Layout optimization probes many (tilesX, tilesY) combinations for
// the same motif, and most probes repeat.
type bboxLRU struct {
	cap     int
	order   *list.List // front is most recent
	entries map[bboxQuery]*list.Element

	hits   int
	misses int
}

type bboxEntry struct {
	query bboxQuery
	box   geometry.BBox
}

func newBBoxLRU(cap int) *bboxLRU {
	return &bboxLRU{
		cap:     cap,
		order:   list.New(),
		entries: make(map[bboxQuery]*list.Element, cap),
	}
}

func (l *bboxLRU) get(q bboxQuery) (geometry.BBox, bool) {
	if el, ok := l.entries[q]; ok {
		l.order.MoveToFront(el)
		l.hits++
		return el.Value.(*bboxEntry).box, true
	}
	l.misses++
	return geometry.BBox{}, false
}

func (l *bboxLRU) put(q bboxQuery, box geometry.BBox) {
	if el, ok := l.entries[q]; ok {
		el.Value.(*bboxEntry).box = box
		l.order.MoveToFront(el)
		return
	}
	if l.order.Len() >= l.cap {
		oldest := l.order.Back()
		l.order.Remove(oldest)
		delete(l.entries, oldest.Value.(*bboxEntry).query)
	}
	l.entries[q] = l.order.PushFront(&bboxEntry{query: q, box: box})
}
