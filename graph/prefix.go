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

import "sort"

// PrefixMapping is a mutable prefix to namespace-IRI mapping attached to
// a graph. It has no effect on triple identity.
type PrefixMapping struct {
	m map[string]string
}

// NewPrefixMapping returns an empty mapping.
func NewPrefixMapping() *PrefixMapping {
	return &PrefixMapping{m: make(map[string]string)}
}

// Set binds a prefix to a namespace IRI, replacing any previous binding.
func (p *PrefixMapping) Set(prefix, ns string) {
	p.m[prefix] = ns
}

// Get returns the namespace bound to a prefix.
func (p *PrefixMapping) Get(prefix string) (string, bool) {
	ns, ok := p.m[prefix]
	return ns, ok
}

// SetAll copies every binding from another mapping.
func (p *PrefixMapping) SetAll(other *PrefixMapping) {
	if other == nil {
		return
	}
	for prefix, ns := range other.m {
		p.m[prefix] = ns
	}
}

// Len returns the number of bindings.
func (p *PrefixMapping) Len() int { return len(p.m) }

// Pairs lists all bindings ordered by prefix.
func (p *PrefixMapping) Pairs() [][2]string {
	out := make([][2]string, 0, len(p.m))
	for prefix, ns := range p.m {
		out = append(out, [2]string{prefix, ns})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Clone returns an independent copy of the mapping.
func (p *PrefixMapping) Clone() *PrefixMapping {
	c := NewPrefixMapping()
	c.SetAll(p)
	return c
}
