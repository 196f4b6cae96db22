// Copyright 2025 The OpenCGMES Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package graph

import (
	"sync"

	"github.com/cayleygraph/quad"
)

// IndexingStrategy selects how a MemGraph indexes its triples.
type IndexingStrategy int

const (
	// IndexMinimal keeps no index; Find scans the triple set. Suited
	// for small graphs such as model headers.
	IndexMinimal IndexingStrategy = iota
	// IndexLazyParallel builds a per-direction triple-pattern index on
	// first use, or eagerly across directions when
	// InitializeIndexParallel is called.
	IndexLazyParallel
)

type direction int

const (
	subject direction = iota
	predicate
	object
)

func (t Triple) get(d direction) quad.Value {
	switch d {
	case subject:
		return t.Subject
	case predicate:
		return t.Predicate
	default:
		return t.Object
	}
}

// MemGraph is an in-memory triple set with an optional per-direction
// index. Writers must be externally synchronized; once the index is
// initialized and writing has stopped, concurrent readers are safe.
type MemGraph struct {
	strategy IndexingStrategy
	set      map[Triple]struct{}

	indexMu sync.Mutex
	indexed bool
	idx     [3]map[quad.Value][]Triple

	prefixes *PrefixMapping
}

// NewMemGraph returns an empty graph with the given indexing strategy.
func NewMemGraph(strategy IndexingStrategy) *MemGraph {
	return &MemGraph{
		strategy: strategy,
		set:      make(map[Triple]struct{}),
		prefixes: NewPrefixMapping(),
	}
}

func (g *MemGraph) Add(t Triple) {
	if _, ok := g.set[t]; ok {
		return
	}
	g.set[t] = struct{}{}
	if g.indexed {
		for d := subject; d <= object; d++ {
			v := t.get(d)
			g.idx[d][v] = append(g.idx[d][v], t)
		}
	}
}

func (g *MemGraph) Delete(t Triple) {
	if _, ok := g.set[t]; !ok {
		return
	}
	delete(g.set, t)
	if g.indexed {
		for d := subject; d <= object; d++ {
			v := t.get(d)
			old := g.idx[d][v]
			if len(old) == 1 && old[0] == t {
				delete(g.idx[d], v)
				continue
			}
			// Replace the slice so iterators holding the old one
			// keep a consistent snapshot.
			next := make([]Triple, 0, len(old)-1)
			for _, x := range old {
				if x != t {
					next = append(next, x)
				}
			}
			g.idx[d][v] = next
		}
	}
}

func (g *MemGraph) Contains(t Triple) bool {
	_, ok := g.set[t]
	return ok
}

func (g *MemGraph) Find(s, p, o quad.Value) *Iterator {
	if s == nil && p == nil && o == nil {
		return g.findAll()
	}
	if g.strategy == IndexLazyParallel {
		g.ensureIndex(false)
		return g.findIndexed(s, p, o)
	}
	return g.findScan(s, p, o)
}

func (g *MemGraph) findAll() *Iterator {
	out := make([]Triple, 0, len(g.set))
	for t := range g.set {
		out = append(out, t)
	}
	return sliceIterator(out)
}

func (g *MemGraph) findScan(s, p, o quad.Value) *Iterator {
	var out []Triple
	for t := range g.set {
		if t.Matches(s, p, o) {
			out = append(out, t)
		}
	}
	return sliceIterator(out)
}

func (g *MemGraph) findIndexed(s, p, o quad.Value) *Iterator {
	// Scan the smallest candidate list among the bound directions.
	var cands []Triple
	found := false
	consider := func(d direction, v quad.Value) {
		if v == nil {
			return
		}
		c := g.idx[d][v]
		if !found || len(c) < len(cands) {
			cands, found = c, true
		}
	}
	consider(subject, s)
	consider(predicate, p)
	consider(object, o)
	if !found {
		return emptyIterator()
	}
	i := 0
	return NewIterator(func() (Triple, bool) {
		for i < len(cands) {
			t := cands[i]
			i++
			if t.Matches(s, p, o) {
				return t, true
			}
		}
		return Triple{}, false
	})
}

// IsIndexInitialized reports whether the triple-pattern index has been
// built.
func (g *MemGraph) IsIndexInitialized() bool {
	g.indexMu.Lock()
	defer g.indexMu.Unlock()
	return g.indexed
}

// InitializeIndexParallel builds the triple-pattern index, one
// goroutine per direction. It is a no-op for graphs with the minimal
// strategy or an already initialized index.
func (g *MemGraph) InitializeIndexParallel() {
	if g.strategy != IndexLazyParallel {
		return
	}
	g.ensureIndex(true)
}

func (g *MemGraph) ensureIndex(parallel bool) {
	g.indexMu.Lock()
	defer g.indexMu.Unlock()
	if g.indexed {
		return
	}
	build := func(d direction) {
		m := make(map[quad.Value][]Triple)
		for t := range g.set {
			v := t.get(d)
			m[v] = append(m[v], t)
		}
		g.idx[d] = m
	}
	if parallel {
		var wg sync.WaitGroup
		for d := subject; d <= object; d++ {
			wg.Add(1)
			go func(d direction) {
				defer wg.Done()
				build(d)
			}(d)
		}
		wg.Wait()
	} else {
		for d := subject; d <= object; d++ {
			build(d)
		}
	}
	g.indexed = true
}

func (g *MemGraph) Size() int { return len(g.set) }

func (g *MemGraph) IsEmpty() bool { return len(g.set) == 0 }

func (g *MemGraph) Clear() {
	g.set = make(map[Triple]struct{})
	g.indexMu.Lock()
	g.indexed = false
	g.idx = [3]map[quad.Value][]Triple{}
	g.indexMu.Unlock()
}

func (g *MemGraph) Prefixes() *PrefixMapping { return g.prefixes }

func (g *MemGraph) Close() {
	g.set = nil
	g.idx = [3]map[quad.Value][]Triple{}
}
