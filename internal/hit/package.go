package hit

import (
	g "github.com/zyedidia/generic"
	"github.com/zyedidia/generic/avl"
)

// Package is the summary of every hit along one ray, ordered by distance.
//
// At most one hit is stored per distance; when two hits collide the one with
// the strictly higher Kind wins and ties keep the hit already stored. Every
// mutation funnels through AddHit so that rule holds after merges, shifts and
// scales. The zero Package is empty and ready to use.
type Package struct {
	hits  *avl.Tree[float32, Hit]
	count int
}

// NewPackage returns an empty package.
func NewPackage() *Package {
	return &Package{hits: avl.New[float32, Hit](g.Less[float32])}
}

func (p *Package) tree() *avl.Tree[float32, Hit] {
	if p.hits == nil {
		p.hits = avl.New[float32, Hit](g.Less[float32])
	}
	return p.hits
}

// Len returns the number of stored hits.
func (p *Package) Len() int {
	if p == nil {
		return 0
	}
	return p.count
}

// AddHit stores h unless it is Invalid or a hit of equal or higher priority
// already occupies its distance. It reports whether the package changed.
func (p *Package) AddHit(h Hit) bool {
	if h.IsNoHit() {
		return false
	}

	tree := p.tree()
	if prev, ok := tree.Get(h.Distance); ok {
		if !h.Kind.Outranks(prev.Kind) {
			return false
		}
		tree.Put(h.Distance, h)
		return true
	}

	tree.Put(h.Distance, h)
	p.count++
	return true
}

// Merge adds every hit of other. Hits already in p win ties.
func (p *Package) Merge(other *Package) {
	if other == nil {
		return
	}
	other.Each(func(h Hit) {
		p.AddHit(h)
	})
}

// ShiftHits moves every hit delta further along the ray.
func (p *Package) ShiftHits(delta float32) {
	p.rebuild(func(h Hit) Hit { return h.Shifted(delta) })
}

// ScaleDistances multiplies every hit distance by factor.
func (p *Package) ScaleDistances(factor float32) {
	p.rebuild(func(h Hit) Hit { return h.Scaled(factor) })
}

func (p *Package) rebuild(transform func(Hit) Hit) {
	old := p.Hits()
	p.hits = nil
	p.count = 0
	for _, h := range old {
		p.AddHit(transform(h))
	}
}

// Each calls fn for every hit from nearest to furthest.
func (p *Package) Each(fn func(h Hit)) {
	if p == nil || p.hits == nil {
		return
	}
	p.hits.Each(func(_ float32, h Hit) {
		fn(h)
	})
}

// Hits returns the hits from nearest to furthest.
func (p *Package) Hits() []Hit {
	hits := make([]Hit, 0, p.Len())
	p.Each(func(h Hit) {
		hits = append(hits, h)
	})
	return hits
}

// FarToNear returns the hits from furthest to nearest, the order in which a
// renderer layers them.
func (p *Package) FarToNear() []Hit {
	hits := p.Hits()
	for i, j := 0, len(hits)-1; i < j; i, j = i+1, j-1 {
		hits[i], hits[j] = hits[j], hits[i]
	}
	return hits
}

// Nearest returns the closest hit, or false if the package is empty.
func (p *Package) Nearest() (Hit, bool) {
	hits := p.Hits()
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// Get returns the hit stored at exactly distance d.
func (p *Package) Get(d float32) (Hit, bool) {
	if p == nil || p.hits == nil {
		return Hit{}, false
	}
	return p.hits.Get(d)
}
