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
	"errors"
	"fmt"
	"sync"

	"github.com/cayleygraph/quad"

	"github.com/spah-soptim/OpenCGMES/voc/cim"
)

// TxnType is the transaction mode requested on a dataset.
type TxnType int

const (
	TxnRead TxnType = iota
	TxnWrite
)

// Transactional is implemented by graphs that participate in dataset
// transactions.
type Transactional interface {
	Begin(t TxnType) error
	Commit() error
	Abort() error
	End() error
}

// TransactionError aggregates the failures of a multi-graph
// transaction step.
type TransactionError struct {
	Op   string
	Errs []error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("failed to %s transactions on %d graphs", e.Op, len(e.Errs))
}

func (e *TransactionError) Unwrap() []error { return e.Errs }

// Errors reported by the dataset's CIMXML views.
var (
	ErrNotFullModel       = errors.New("dataset is not a FullModel")
	ErrNotDifferenceModel = errors.New("dataset is not a DifferenceModel")
)

// Dataset is a keyed collection of named graphs plus a default graph.
// Graph lookup and mutation are guarded by a multi-reader single-writer
// lock; transactions are best-effort and propagate to every graph that
// is itself transactional.
type Dataset struct {
	mu       sync.RWMutex
	graphs   map[quad.IRI]Graph
	prefixes *PrefixMapping

	// txnMu is the dataset's own transaction lock, separate from the
	// map lock so graph lookups stay possible inside a transaction.
	txnMu   sync.RWMutex
	inTxn   bool
	txnType TxnType
}

// NewDataset returns a dataset with the given default graph. Pass nil
// to start without one.
func NewDataset(defaultGraph Graph) *Dataset {
	d := &Dataset{
		graphs:   make(map[quad.IRI]Graph),
		prefixes: NewPrefixMapping(),
	}
	if defaultGraph != nil {
		d.graphs[cim.DefaultGraphName] = defaultGraph
	}
	return d
}

// Prefixes returns the dataset's global prefix mapping.
func (d *Dataset) Prefixes() *PrefixMapping { return d.prefixes }

// DefaultGraph returns the default graph, or nil when absent.
func (d *Dataset) DefaultGraph() Graph {
	return d.Graph(cim.DefaultGraphName)
}

// Graph returns the named graph, or nil when absent.
func (d *Dataset) Graph(name quad.IRI) Graph {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.graphs[name]
}

// AddGraph binds a graph to a name, replacing any previous binding.
func (d *Dataset) AddGraph(name quad.IRI, g Graph) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.graphs[name] = g
}

// RemoveGraph unbinds a named graph, removing it from transactional
// participation.
func (d *Dataset) RemoveGraph(name quad.IRI) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.graphs, name)
}

// ContainsGraph reports whether a graph is bound to the name.
func (d *Dataset) ContainsGraph(name quad.IRI) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.graphs[name]
	return ok
}

// GraphNames lists the bound graph names in unspecified order,
// including the default graph's reserved name.
func (d *Dataset) GraphNames() []quad.IRI {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]quad.IRI, 0, len(d.graphs))
	for name := range d.graphs {
		names = append(names, name)
	}
	return names
}

// Graphs lists the bound graphs in unspecified order.
func (d *Dataset) Graphs() []Graph {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Graph, 0, len(d.graphs))
	for _, g := range d.graphs {
		out = append(out, g)
	}
	return out
}

func (d *Dataset) transactionals() []Transactional {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Transactional
	for _, g := range d.graphs {
		if t, ok := g.(Transactional); ok {
			out = append(out, t)
		}
	}
	return out
}

// Begin opens a transaction on the dataset and on each transactional
// graph. If any sub-graph fails to begin, the already opened ones are
// aborted and the failure is returned.
func (d *Dataset) Begin(t TxnType) error {
	if t == TxnWrite {
		d.txnMu.Lock()
	} else {
		d.txnMu.RLock()
	}
	d.inTxn, d.txnType = true, t

	var opened []Transactional
	for _, tg := range d.transactionals() {
		if err := tg.Begin(t); err != nil {
			for _, o := range opened {
				o.Abort()
			}
			d.releaseTxn()
			return err
		}
		opened = append(opened, tg)
	}
	return nil
}

func (d *Dataset) releaseTxn() {
	if !d.inTxn {
		return
	}
	if d.txnType == TxnWrite {
		d.txnMu.Unlock()
	} else {
		d.txnMu.RUnlock()
	}
	d.inTxn = false
}

func (d *Dataset) endStep(op string, step func(Transactional) error) error {
	var errs []error
	for _, tg := range d.transactionals() {
		if err := step(tg); err != nil {
			errs = append(errs, err)
		}
	}
	d.releaseTxn()
	if len(errs) > 0 {
		return &TransactionError{Op: op, Errs: errs}
	}
	return nil
}

// Commit commits on every transactional graph, collecting failures
// into a TransactionError.
func (d *Dataset) Commit() error {
	return d.endStep("commit", Transactional.Commit)
}

// Abort aborts on every transactional graph, collecting failures into
// a TransactionError.
func (d *Dataset) Abort() error {
	return d.endStep("abort", Transactional.Abort)
}

// End ends the transaction on every transactional graph, collecting
// failures into a TransactionError.
func (d *Dataset) End() error {
	return d.endStep("end", Transactional.End)
}

// IsInTransaction reports whether the dataset's own lock is held by a
// transaction.
func (d *Dataset) IsInTransaction() bool { return d.inTxn }

// IsFullModel reports whether the dataset holds a FullModel header graph.
func (d *Dataset) IsFullModel() bool {
	return d.ContainsGraph(cim.TypeFullModel)
}

// IsDifferenceModel reports whether the dataset holds a DifferenceModel
// header graph.
func (d *Dataset) IsDifferenceModel() bool {
	return d.ContainsGraph(cim.TypeDifferenceModel)
}

// ModelHeader returns the model header of this FullModel or
// DifferenceModel.
func (d *Dataset) ModelHeader() (*ModelHeader, error) {
	var name quad.IRI
	switch {
	case d.IsFullModel():
		name = cim.TypeFullModel
	case d.IsDifferenceModel():
		name = cim.TypeDifferenceModel
	default:
		return nil, fmt.Errorf("model header is only available for FullModels or DifferenceModels: %w", ErrNotFullModel)
	}
	return WrapModelHeader(d.Graph(name))
}

// Body returns the body graph of this FullModel.
func (d *Dataset) Body() (Graph, error) {
	if !d.IsFullModel() {
		return nil, ErrNotFullModel
	}
	return d.DefaultGraph(), nil
}

func (d *Dataset) differenceGraph(name quad.IRI) (Graph, error) {
	if !d.IsDifferenceModel() {
		return nil, ErrNotDifferenceModel
	}
	return d.Graph(name), nil
}

// ForwardDifferences returns the forward differences graph of this
// DifferenceModel.
func (d *Dataset) ForwardDifferences() (Graph, error) {
	return d.differenceGraph(cim.GraphForwardDifferences)
}

// ReverseDifferences returns the reverse differences graph of this
// DifferenceModel.
func (d *Dataset) ReverseDifferences() (Graph, error) {
	return d.differenceGraph(cim.GraphReverseDifferences)
}

// Preconditions returns the preconditions graph of this DifferenceModel.
func (d *Dataset) Preconditions() (Graph, error) {
	return d.differenceGraph(cim.GraphPreconditions)
}

// FullModelToSingleGraph composes the model header and body of this
// FullModel into one disjoint union carrying the header's prefixes.
func (d *Dataset) FullModelToSingleGraph() (Graph, error) {
	header, err := d.ModelHeader()
	if err != nil {
		return nil, err
	}
	body, err := d.Body()
	if err != nil {
		return nil, err
	}
	union := NewDisjointMultiUnion(header, body)
	union.Prefixes().SetAll(header.Prefixes())
	return union, nil
}

// containsModelRef reports whether a header reference set names the
// model. References parsed without a header profile are literals, so a
// literal whose lexical form equals the model IRI also matches.
func containsModelRef(refs map[quad.Value]struct{}, model quad.Value) bool {
	if _, ok := refs[model]; ok {
		return true
	}
	iri, ok := model.(quad.IRI)
	if !ok {
		return false
	}
	for ref := range refs {
		if lex, isLit := LexicalForm(ref); isLit && lex == string(iri) {
			return true
		}
	}
	return false
}

// DifferenceModelToFullModel materializes this DifferenceModel against
// a predecessor FullModel as a delta over the predecessor's body, with
// the forward differences as additions and the reverse differences as
// deletions. The predecessor's model IRI must appear in this model's
// Model.Supersedes set, and every precondition triple must be present
// in the predecessor's body. The result carries this model's header
// prefixes and borrows the predecessor's body.
func (d *Dataset) DifferenceModelToFullModel(predecessor *Dataset) (Graph, error) {
	if !d.IsDifferenceModel() {
		return nil, fmt.Errorf("conversion to full model: %w", ErrNotDifferenceModel)
	}
	if !predecessor.IsFullModel() {
		return nil, fmt.Errorf("predecessor: %w", ErrNotFullModel)
	}

	header, err := d.ModelHeader()
	if err != nil {
		return nil, err
	}
	predecessorHeader, err := predecessor.ModelHeader()
	if err != nil {
		return nil, err
	}
	predecessorModel, err := predecessorHeader.Model()
	if err != nil {
		return nil, err
	}
	supersedes, err := header.Supersedes()
	if err != nil {
		return nil, err
	}
	if !containsModelRef(supersedes, predecessorModel) {
		return nil, fmt.Errorf("predecessor model %s is not in Model.Supersedes", quad.StringOf(predecessorModel))
	}

	predecessorBody, err := predecessor.Body()
	if err != nil {
		return nil, err
	}

	preconditions, err := d.Preconditions()
	if err != nil {
		return nil, err
	}
	if preconditions != nil && !preconditions.IsEmpty() {
		var missing []Triple
		it := preconditions.Find(nil, nil, nil)
		for it.Next() {
			if !predecessorBody.Contains(it.Result()) {
				missing = append(missing, it.Result())
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("predecessor does not contain all required preconditions; missing: %v", missing)
		}
	}

	forward, err := d.ForwardDifferences()
	if err != nil {
		return nil, err
	}
	reverse, err := d.ReverseDifferences()
	if err != nil {
		return nil, err
	}
	if forward == nil {
		forward = NewMemGraph(IndexLazyParallel)
	}
	if reverse == nil {
		reverse = NewMemGraph(IndexLazyParallel)
	}

	delta := DeltaOf(predecessorBody, forward, reverse)
	delta.Prefixes().SetAll(header.Prefixes())
	return delta, nil
}
