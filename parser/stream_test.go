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
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spah-soptim/OpenCGMES/graph"
	"github.com/spah-soptim/OpenCGMES/voc/cim"
)

func TestDatasetSinkContextRouting(t *testing.T) {
	s := NewDatasetSink()
	require.Equal(t, cim.ContextBody, s.CurrentContext())

	bodyTriple := graph.MakeTriple(quad.IRI("ex:a"), quad.IRI("ex:p"), quad.String("body"))
	s.Triple(bodyTriple)

	s.SetCurrentContext(cim.ContextFullModel)
	headerTriple := graph.MakeTriple(quad.IRI("ex:m"), graph.RDFType, cim.TypeFullModel)
	s.Triple(headerTriple)

	s.SetCurrentContext(cim.ContextBody)
	s.Triple(graph.MakeTriple(quad.IRI("ex:a"), quad.IRI("ex:p"), quad.String("more")))

	d := s.Dataset()
	header := d.Graph(cim.TypeFullModel)
	require.NotNil(t, header)
	assert.Equal(t, 1, header.Size())
	assert.True(t, header.Contains(headerTriple))

	body := d.DefaultGraph()
	assert.Equal(t, 2, body.Size())
	assert.True(t, body.Contains(bodyTriple))
	assert.False(t, body.Contains(headerTriple))

	// Switching back reuses the existing graph.
	s.SetCurrentContext(cim.ContextFullModel)
	s.Triple(graph.MakeTriple(quad.IRI("ex:m"), quad.IRI("ex:q"), quad.String("v")))
	assert.Equal(t, 2, header.Size())
}

func TestDatasetSinkPrefixPropagation(t *testing.T) {
	s := NewDatasetSink()
	s.Prefix("rdf", rdfXMLNS)
	s.Prefix("cim", cim.NSCim17)

	// Graphs created after the declarations inherit them.
	s.SetCurrentContext(cim.ContextDifferenceModel)
	s.SetCurrentContext(cim.ContextForwardDifferences)
	s.Prefix("ex", exNS)

	d := s.Dataset()
	forward := d.Graph(cim.GraphForwardDifferences)
	require.NotNil(t, forward)
	ns, ok := forward.Prefixes().Get("cim")
	require.True(t, ok)
	assert.Equal(t, cim.NSCim17, ns)

	// New declarations land on the dataset and the current graph, not
	// on graphs the context already left.
	_, ok = forward.Prefixes().Get("ex")
	assert.True(t, ok)
	header := d.Graph(cim.TypeDifferenceModel)
	_, ok = header.Prefixes().Get("ex")
	assert.False(t, ok)
	_, ok = d.Prefixes().Get("ex")
	assert.True(t, ok)
}

func TestDatasetSinkFinishInitializesIndexes(t *testing.T) {
	s := NewDatasetSink()
	s.Triple(graph.MakeTriple(quad.IRI("ex:a"), quad.IRI("ex:p"), quad.String("v")))
	s.SetCurrentContext(cim.ContextForwardDifferences)
	s.Triple(graph.MakeTriple(quad.IRI("ex:b"), quad.IRI("ex:p"), quad.String("w")))

	body, ok := s.Dataset().DefaultGraph().(*graph.MemGraph)
	require.True(t, ok)
	forward, ok := s.Dataset().Graph(cim.GraphForwardDifferences).(*graph.MemGraph)
	require.True(t, ok)
	require.False(t, body.IsIndexInitialized())
	require.False(t, forward.IsIndexInitialized())

	s.Finish()
	assert.True(t, body.IsIndexInitialized())
	assert.True(t, forward.IsIndexInitialized())
}

func TestDatasetSinkVersions(t *testing.T) {
	s := NewDatasetSink()
	assert.Equal(t, cim.NoCIM, s.VersionOfCIMXML())
	s.SetVersionOfCIMXML(cim.CIM18)
	assert.Equal(t, cim.CIM18, s.VersionOfCIMXML())

	assert.Equal(t, "", s.VersionOfIEC61970552())
	s.SetVersionOfIEC61970552(`version="1.0"`)
	assert.Equal(t, `version="1.0"`, s.VersionOfIEC61970552())
}
