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
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spah-soptim/OpenCGMES/voc/cim"
)

const entsoeNS = "http://entsoe.eu/CIM/SchemaExtension/3/1#"

// cim16ProfileGraph builds the CGMES 2.4.15 fingerprint: fixed texts on
// EquipmentVersion properties.
func cim16ProfileGraph() *MemGraph {
	g := cimGraph(cim.NSCim16)
	class := quad.IRI(entsoeNS + "EquipmentVersion")
	shortName := quad.IRI(entsoeNS + "EquipmentVersion.shortName")
	entsoeURI := quad.IRI(entsoeNS + "EquipmentVersion.entsoeURIcore")
	baseURI := quad.IRI(entsoeNS + "EquipmentVersion.baseURIcore")

	g.Add(MakeTriple(shortName, RDFSDomain, class))
	g.Add(MakeTriple(shortName, cimsIsFixed, quad.String("EQ")))
	g.Add(MakeTriple(entsoeURI, RDFSDomain, class))
	g.Add(MakeTriple(entsoeURI, cimsIsFixed, quad.String("http://entsoe.eu/CIM/CoreEquipment/3/1")))
	g.Add(MakeTriple(baseURI, RDFSDomain, class))
	g.Add(MakeTriple(baseURI, cimsIsFixed, quad.String("http://iec.ch/TC57/2013/CIM-schema-cim16")))
	return g
}

func cim17ProfileGraph(versionIRIs ...string) *MemGraph {
	g := cimGraph(cim.NSCim17)
	ontology := quad.IRI("http://example.org/Profile")
	g.Add(MakeTriple(ontology, RDFType, OWLOntology))
	g.Add(MakeTriple(ontology, dcatKeyword, quad.String("EQ")))
	for _, iri := range versionIRIs {
		g.Add(MakeTriple(ontology, OWLVersionIRI, quad.IRI(iri)))
	}
	g.Add(MakeTriple(ontology, OWLVersionInfo, quad.String("3.0.0")))
	return g
}

func TestWrapProfile16(t *testing.T) {
	p, err := WrapProfile(cim16ProfileGraph())
	require.NoError(t, err)

	assert.Equal(t, cim.CIM16, p.CimVersion())
	assert.False(t, p.IsHeaderProfile())
	assert.Equal(t, "EQ", p.DcatKeyword())
	assert.Equal(t, "", p.OwlVersionInfo())

	iris := p.OwlVersionIRIs()
	assert.Len(t, iris, 2)
	assert.Contains(t, iris, quad.Value(quad.IRI("http://entsoe.eu/CIM/CoreEquipment/3/1")))
	assert.Contains(t, iris, quad.Value(quad.IRI("http://iec.ch/TC57/2013/CIM-schema-cim16")))
}

func TestWrapProfile16Header(t *testing.T) {
	g := cimGraph(cim.NSCim16)
	g.Add(MakeTriple(quad.IRI(entsoeNS+"Package_FileHeaderProfile"), RDFType, cimsClassCategory))

	p, err := WrapProfile(g)
	require.NoError(t, err)
	assert.True(t, p.IsHeaderProfile())
	assert.Equal(t, "DH", p.DcatKeyword())
	assert.Empty(t, p.OwlVersionIRIs())
}

func TestWrapProfile16Rejected(t *testing.T) {
	g := cimGraph(cim.NSCim16)
	// A shortName without any version URI is not enough.
	class := quad.IRI(entsoeNS + "EquipmentVersion")
	shortName := quad.IRI(entsoeNS + "EquipmentVersion.shortName")
	g.Add(MakeTriple(shortName, RDFSDomain, class))
	g.Add(MakeTriple(shortName, cimsIsFixed, quad.String("EQ")))

	_, err := WrapProfile(g)
	assert.ErrorIs(t, err, ErrProfileNoVersionData)
}

func TestWrapProfile17(t *testing.T) {
	p, err := WrapProfile(cim17ProfileGraph("http://iec.ch/TC57/ns/CIM/CoreEquipment-EU/3.0"))
	require.NoError(t, err)

	assert.Equal(t, cim.CIM17, p.CimVersion())
	assert.False(t, p.IsHeaderProfile())
	assert.Equal(t, "EQ", p.DcatKeyword())
	assert.Equal(t, "3.0.0", p.OwlVersionInfo())
	assert.Len(t, p.OwlVersionIRIs(), 1)
}

func TestWrapProfile17Rejected(t *testing.T) {
	// No ontology subject at all.
	_, err := WrapProfile(cimGraph(cim.NSCim17))
	assert.ErrorIs(t, err, ErrProfileNoOntology)

	// Ontology without keyword or version IRI.
	g := cimGraph(cim.NSCim17)
	g.Add(MakeTriple(quad.IRI("http://example.org/P"), RDFType, OWLOntology))
	_, err = WrapProfile(g)
	assert.ErrorIs(t, err, ErrProfileNoVersionIRI)
}

func TestWrapProfile18DocumentHeader(t *testing.T) {
	g := cimGraph(cim.NSCim18)
	ontology := quad.IRI("http://example.org/DocHeader")
	g.Add(MakeTriple(ontology, RDFType, OWLOntology))
	g.Add(MakeTriple(ontology, dcatKeyword, quad.String("DH")))
	g.Add(MakeTriple(ontology, OWLVersionIRI, quad.IRI("https://ap-voc.cim4.eu/DocumentHeader/2.3")))

	p, err := WrapProfile(g)
	require.NoError(t, err)
	assert.Equal(t, cim.CIM18, p.CimVersion())
	assert.True(t, p.IsHeaderProfile())
	assert.Equal(t, "DH", p.DcatKeyword())
}

func TestWrapProfileNoCim(t *testing.T) {
	_, err := WrapProfile(NewMemGraph(IndexMinimal))
	assert.ErrorIs(t, err, ErrNotCimGraph)
}

func TestProfilesEqual(t *testing.T) {
	a, err := WrapProfile(cim17ProfileGraph("http://example.org/v1", "http://example.org/v2"))
	require.NoError(t, err)
	b, err := WrapProfile(cim17ProfileGraph("http://example.org/v2", "http://example.org/v1"))
	require.NoError(t, err)
	c, err := WrapProfile(cim17ProfileGraph("http://example.org/v3"))
	require.NoError(t, err)

	assert.True(t, ProfilesEqual(a, b))
	assert.False(t, ProfilesEqual(a, c))

	h16, err := WrapProfile(func() Graph {
		g := cimGraph(cim.NSCim16)
		g.Add(MakeTriple(quad.IRI(entsoeNS+"Package_FileHeaderProfile"), RDFType, cimsClassCategory))
		return g
	}())
	require.NoError(t, err)
	assert.False(t, ProfilesEqual(a, h16))
	assert.True(t, ProfilesEqual(h16, h16))
}
