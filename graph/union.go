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

// DisjointMultiUnion composes an ordered list of graphs into one view.
// Find concatenates the component results without deduplication: a
// triple present in two components is reported twice, and Size is the
// sum of the component sizes. Updates go to the first component.
type DisjointMultiUnion struct {
	graphs   []Graph
	prefixes *PrefixMapping
}

// NewDisjointMultiUnion composes the given graphs.
func NewDisjointMultiUnion(graphs ...Graph) *DisjointMultiUnion {
	return &DisjointMultiUnion{
		graphs:   graphs,
		prefixes: NewPrefixMapping(),
	}
}

func (g *DisjointMultiUnion) Add(t Triple) {
	if len(g.graphs) > 0 {
		g.graphs[0].Add(t)
	}
}

func (g *DisjointMultiUnion) Delete(t Triple) {
	if len(g.graphs) > 0 {
		g.graphs[0].Delete(t)
	}
}

func (g *DisjointMultiUnion) Contains(t Triple) bool {
	for _, sub := range g.graphs {
		if sub.Contains(t) {
			return true
		}
	}
	return false
}

func (g *DisjointMultiUnion) Find(s, p, o quad.Value) *Iterator {
	its := make([]*Iterator, len(g.graphs))
	for i, sub := range g.graphs {
		its[i] = sub.Find(s, p, o)
	}
	return concatIterators(its...)
}

func (g *DisjointMultiUnion) Size() int {
	size := 0
	for _, sub := range g.graphs {
		size += sub.Size()
	}
	return size
}

func (g *DisjointMultiUnion) IsEmpty() bool { return g.Size() == 0 }

func (g *DisjointMultiUnion) Clear() {
	for _, sub := range g.graphs {
		sub.Clear()
	}
}

func (g *DisjointMultiUnion) Prefixes() *PrefixMapping { return g.prefixes }

func (g *DisjointMultiUnion) Close() {
	for _, sub := range g.graphs {
		sub.Close()
	}
}
