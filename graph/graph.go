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

// Package graph defines the triple and graph model used by the CIMXML
// parser: an indexed in-memory triple store, a delta overlay, a
// non-deduplicating union, model header and profile wrappers, and a
// dataset of named graphs.
package graph

import (
	"fmt"

	"github.com/cayleygraph/quad"
)

// Triple is an RDF triple. The subject is an IRI or blank node, the
// predicate an IRI, and the object any term. Equality is component-wise.
type Triple struct {
	Subject   quad.Value
	Predicate quad.Value
	Object    quad.Value
}

// MakeTriple builds a Triple from its components.
func MakeTriple(s, p, o quad.Value) Triple {
	return Triple{Subject: s, Predicate: p, Object: o}
}

func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", quad.StringOf(t.Subject), quad.StringOf(t.Predicate), quad.StringOf(t.Object))
}

// Matches reports whether the triple matches the pattern (s, p, o),
// where a nil component is a wildcard.
func (t Triple) Matches(s, p, o quad.Value) bool {
	return (s == nil || t.Subject == s) &&
		(p == nil || t.Predicate == p) &&
		(o == nil || t.Object == o)
}

// Graph is a set of triples plus a mutable prefix mapping. The prefix
// mapping does not affect triple identity.
type Graph interface {
	// Add inserts a triple. Adding a triple already present is a no-op.
	Add(t Triple)
	// Delete removes a triple. Deleting an absent triple is a no-op.
	Delete(t Triple)
	// Contains reports whether the concrete triple is present.
	Contains(t Triple) bool
	// Find returns the triples matching the pattern. A nil component
	// is a wildcard. Order is unspecified; each match is reported once
	// except where an implementation documents otherwise.
	Find(s, p, o quad.Value) *Iterator
	// Size returns the number of triples.
	Size() int
	// IsEmpty reports whether the graph has no triples.
	IsEmpty() bool
	// Clear removes all triples.
	Clear()
	// Prefixes returns the graph's prefix mapping.
	Prefixes() *PrefixMapping
	// Close releases the graph's resources.
	Close()
}

// Iterator is a pull iterator over triples.
type Iterator struct {
	next   func() (Triple, bool)
	result Triple
}

// NewIterator builds an iterator from a generator function. The
// generator returns false when exhausted.
func NewIterator(next func() (Triple, bool)) *Iterator {
	return &Iterator{next: next}
}

// Next advances the iterator. It returns false when no triples remain.
func (it *Iterator) Next() bool {
	if it.next == nil {
		return false
	}
	t, ok := it.next()
	if !ok {
		it.next = nil
		return false
	}
	it.result = t
	return true
}

// Result returns the triple produced by the last successful Next.
func (it *Iterator) Result() Triple { return it.result }

// Close releases the iterator.
func (it *Iterator) Close() { it.next = nil }

// All drains the iterator into a slice.
func All(it *Iterator) []Triple {
	var out []Triple
	for it.Next() {
		out = append(out, it.Result())
	}
	return out
}

func emptyIterator() *Iterator {
	return &Iterator{}
}

func sliceIterator(ts []Triple) *Iterator {
	i := 0
	return NewIterator(func() (Triple, bool) {
		if i >= len(ts) {
			return Triple{}, false
		}
		t := ts[i]
		i++
		return t, true
	})
}

func filterIterator(it *Iterator, keep func(Triple) bool) *Iterator {
	return NewIterator(func() (Triple, bool) {
		for it.Next() {
			if t := it.Result(); keep(t) {
				return t, true
			}
		}
		return Triple{}, false
	})
}

func concatIterators(its ...*Iterator) *Iterator {
	i := 0
	return NewIterator(func() (Triple, bool) {
		for i < len(its) {
			if its[i].Next() {
				return its[i].Result(), true
			}
			i++
		}
		return Triple{}, false
	})
}

// LexicalForm returns the lexical form of a literal term. The second
// return is false for IRIs and blank nodes.
func LexicalForm(v quad.Value) (string, bool) {
	switch l := v.(type) {
	case quad.String:
		return string(l), true
	case quad.TypedString:
		return string(l.Value), true
	case quad.LangString:
		return string(l.Value), true
	default:
		return "", false
	}
}

// IsIRI reports whether the term is an IRI.
func IsIRI(v quad.Value) bool {
	_, ok := v.(quad.IRI)
	return ok
}
