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

import "github.com/cayleygraph/quad"

// DeltaGraph overlays additions and deletions on a base graph without
// copying the base. The visible triple set is (base - deletions) +
// additions, with the invariants: additions and base are disjoint, and
// deletions is a subset of base.
type DeltaGraph struct {
	base      Graph
	additions Graph
	deletions Graph
	ownsBase  bool
	prefixes  *PrefixMapping
}

// NewDeltaGraph returns an empty delta over base with fresh addition
// and deletion sets. The delta owns base: closing the delta closes it.
func NewDeltaGraph(base Graph) *DeltaGraph {
	return &DeltaGraph{
		base:      base,
		additions: NewMemGraph(IndexLazyParallel),
		deletions: NewMemGraph(IndexLazyParallel),
		ownsBase:  true,
		prefixes:  NewPrefixMapping(),
	}
}

// DeltaOf composes a delta from existing addition and deletion graphs.
// The base is borrowed: closing the delta leaves it open. The caller
// vouches that additions and base are disjoint and deletions is a
// subset of base.
func DeltaOf(base, additions, deletions Graph) *DeltaGraph {
	return &DeltaGraph{
		base:      base,
		additions: additions,
		deletions: deletions,
		prefixes:  NewPrefixMapping(),
	}
}

// Rebase returns a delta with the same addition and deletion sets over
// a new base. No compatibility checks are performed.
func (g *DeltaGraph) Rebase(newBase Graph) *DeltaGraph {
	return &DeltaGraph{
		base:      newBase,
		additions: g.additions,
		deletions: g.deletions,
		prefixes:  g.prefixes,
	}
}

// Base returns the base graph.
func (g *DeltaGraph) Base() Graph { return g.base }

// Additions iterates the overlay's added triples.
func (g *DeltaGraph) Additions() *Iterator { return g.additions.Find(nil, nil, nil) }

// Deletions iterates the overlay's deleted triples.
func (g *DeltaGraph) Deletions() *Iterator { return g.deletions.Find(nil, nil, nil) }

// HasChanges reports whether the overlay differs from the base.
func (g *DeltaGraph) HasChanges() bool {
	return !g.additions.IsEmpty() || !g.deletions.IsEmpty()
}

func (g *DeltaGraph) Add(t Triple) {
	if !g.base.Contains(t) {
		g.additions.Add(t)
	}
	g.deletions.Delete(t)
}

func (g *DeltaGraph) Delete(t Triple) {
	g.additions.Delete(t)
	if g.base.Contains(t) {
		g.deletions.Add(t)
	}
}

func (g *DeltaGraph) Contains(t Triple) bool {
	if g.base.Contains(t) {
		return !g.deletions.Contains(t)
	}
	return g.additions.Contains(t)
}

func (g *DeltaGraph) Find(s, p, o quad.Value) *Iterator {
	kept := filterIterator(g.base.Find(s, p, o), func(t Triple) bool {
		return !g.deletions.Contains(t)
	})
	return concatIterators(kept, g.additions.Find(s, p, o))
}

func (g *DeltaGraph) Size() int {
	return g.base.Size() + g.additions.Size() - g.deletions.Size()
}

func (g *DeltaGraph) IsEmpty() bool { return g.Size() == 0 }

// Clear deletes every visible triple, turning the delta into the full
// reversal of its base.
func (g *DeltaGraph) Clear() {
	for _, t := range All(g.Find(nil, nil, nil)) {
		g.Delete(t)
	}
}

func (g *DeltaGraph) Prefixes() *PrefixMapping { return g.prefixes }

func (g *DeltaGraph) Close() {
	g.additions.Close()
	g.deletions.Close()
	if g.ownsBase {
		g.base.Close()
	}
}
