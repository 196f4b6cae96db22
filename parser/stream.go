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

package parser

import (
	"sync"

	"github.com/spah-soptim/OpenCGMES/clog"
	"github.com/spah-soptim/OpenCGMES/graph"
	"github.com/spah-soptim/OpenCGMES/voc/cim"
)

// StreamCIMXML receives the parser's output: triples, prefixes and the
// base IRI, plus the CIMXML document state discovered while parsing.
type StreamCIMXML interface {
	// Start marks the beginning of a document.
	Start()
	// Triple receives one parsed triple.
	Triple(t graph.Triple)
	// Prefix receives a namespace declaration.
	Prefix(prefix, ns string)
	// Base receives the document base IRI.
	Base(uri string)
	// Finish marks the end of a document.
	Finish()

	// SetVersionOfCIMXML records the CIM version derived from the
	// document's "cim" namespace.
	SetVersionOfCIMXML(v cim.Version)
	// VersionOfCIMXML returns the recorded CIM version.
	VersionOfCIMXML() cim.Version
	// SetVersionOfIEC61970552 records the data of the iec61970-552
	// processing instruction, verbatim.
	SetVersionOfIEC61970552(version string)
	// VersionOfIEC61970552 returns the recorded instruction data.
	VersionOfIEC61970552() string

	// SetCurrentContext switches the document context the following
	// triples are routed to.
	SetCurrentContext(ctx cim.DocumentContext)
	// CurrentContext returns the active document context.
	CurrentContext() cim.DocumentContext

	// ModelHeader returns the header of the model parsed so far, or
	// nil when no header graph exists yet.
	ModelHeader() *graph.ModelHeader
	// Dataset returns the dataset being populated.
	Dataset() *graph.Dataset
}

// DatasetSink populates a dataset from the parser's output stream. It
// routes each triple to the named graph of the current document
// context, creating graphs lazily: header graphs with minimal indexing,
// body and difference graphs with lazy parallel indexing. Prefixes are
// recorded on the dataset and on the current graph; a graph created
// later starts with the current graph's prefixes.
type DatasetSink struct {
	dataset *graph.Dataset
	current graph.Graph
	context cim.DocumentContext

	cimVersion cim.Version
	iecVersion string
}

// NewDatasetSink returns a sink with a fresh dataset whose default
// graph holds the body context.
func NewDatasetSink() *DatasetSink {
	body := graph.NewMemGraph(graph.IndexLazyParallel)
	return &DatasetSink{
		dataset: graph.NewDataset(body),
		current: body,
		context: cim.ContextBody,
	}
}

func (s *DatasetSink) Start() {}

func (s *DatasetSink) Triple(t graph.Triple) {
	s.current.Add(t)
}

func (s *DatasetSink) Prefix(prefix, ns string) {
	s.dataset.Prefixes().Set(prefix, ns)
	s.current.Prefixes().Set(prefix, ns)
}

func (s *DatasetSink) Base(uri string) {}

// Finish initializes the indexes of every graph that opted into lazy
// indexing, in parallel across graphs.
func (s *DatasetSink) Finish() {
	var wg sync.WaitGroup
	for _, g := range s.dataset.Graphs() {
		m, ok := g.(*graph.MemGraph)
		if !ok || m.IsIndexInitialized() {
			continue
		}
		wg.Add(1)
		go func(m *graph.MemGraph) {
			defer wg.Done()
			m.InitializeIndexParallel()
		}(m)
	}
	wg.Wait()
}

func (s *DatasetSink) SetVersionOfCIMXML(v cim.Version) { s.cimVersion = v }

func (s *DatasetSink) VersionOfCIMXML() cim.Version { return s.cimVersion }

func (s *DatasetSink) SetVersionOfIEC61970552(version string) { s.iecVersion = version }

func (s *DatasetSink) VersionOfIEC61970552() string { return s.iecVersion }

func (s *DatasetSink) SetCurrentContext(ctx cim.DocumentContext) {
	clog.Debugf("switching document context %s -> %s", s.context, ctx)
	strategy := graph.IndexLazyParallel
	switch ctx {
	case cim.ContextFullModel, cim.ContextDifferenceModel:
		// Header graphs stay small; skip the index.
		strategy = graph.IndexMinimal
	}
	name := ctx.GraphName()
	if g := s.dataset.Graph(name); g != nil {
		s.current = g
	} else {
		next := graph.NewMemGraph(strategy)
		next.Prefixes().SetAll(s.current.Prefixes())
		s.current = next
		s.dataset.AddGraph(name, next)
	}
	s.context = ctx
}

func (s *DatasetSink) CurrentContext() cim.DocumentContext { return s.context }

func (s *DatasetSink) ModelHeader() *graph.ModelHeader {
	header, err := s.dataset.ModelHeader()
	if err != nil {
		return nil
	}
	return header
}

func (s *DatasetSink) Dataset() *graph.Dataset { return s.dataset }
