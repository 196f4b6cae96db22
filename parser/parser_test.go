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
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spah-soptim/OpenCGMES/graph"
	"github.com/spah-soptim/OpenCGMES/voc/cim"
)

const (
	rdfXMLNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	exNS     = "http://example.org/"
	xsdNS    = "http://www.w3.org/2001/XMLSchema#"
)

func parseGraph(t *testing.T, doc string) graph.Graph {
	t.Helper()
	g, err := NewCimXMLParser().ParseGraph(strings.NewReader(doc))
	require.NoError(t, err)
	return g
}

func contains(t *testing.T, g graph.Graph, s, p, o quad.Value) {
	t.Helper()
	assert.True(t, g.Contains(graph.MakeTriple(s, p, o)), "missing triple %s", graph.MakeTriple(s, p, o))
}

func TestParseTypedNodeAndLiteral(t *testing.T) {
	g := parseGraph(t, `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:Widget rdf:about="http://example.org/w1">
    <ex:name>gadget</ex:name>
    <ex:link rdf:resource="http://example.org/w2"/>
  </ex:Widget>
</rdf:RDF>`)

	require.Equal(t, 3, g.Size())
	contains(t, g, quad.IRI(exNS+"w1"), graph.RDFType, quad.IRI(exNS+"Widget"))
	contains(t, g, quad.IRI(exNS+"w1"), quad.IRI(exNS+"name"), quad.String("gadget"))
	contains(t, g, quad.IRI(exNS+"w1"), quad.IRI(exNS+"link"), quad.IRI(exNS+"w2"))
}

func TestParsePrefixesEmitted(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
</rdf:RDF>`)

	ns, ok := g.Prefixes().Get("ex")
	require.True(t, ok)
	assert.Equal(t, exNS, ns)
	ns, ok = g.Prefixes().Get("rdf")
	require.True(t, ok)
	assert.Equal(t, rdfXMLNS, ns)
}

func TestParseBaseAndID(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/"
    xml:base="http://example.org/doc">
  <rdf:Description rdf:ID="item">
    <ex:prop rdf:datatype="http://www.w3.org/2001/XMLSchema#int">5</ex:prop>
  </rdf:Description>
</rdf:RDF>`)

	require.Equal(t, 1, g.Size())
	contains(t, g,
		quad.IRI("http://example.org/doc#item"),
		quad.IRI(exNS+"prop"),
		quad.TypedString{Value: "5", Type: quad.IRI(xsdNS + "int")})
}

func TestParseLangLiteral(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/" xml:lang="en">
  <rdf:Description rdf:about="http://example.org/a">
    <ex:label>hello</ex:label>
    <ex:other xml:lang="de">hallo</ex:other>
    <ex:plain xml:lang="">none</ex:plain>
  </rdf:Description>
</rdf:RDF>`)

	contains(t, g, quad.IRI(exNS+"a"), quad.IRI(exNS+"label"), quad.LangString{Value: "hello", Lang: "en"})
	contains(t, g, quad.IRI(exNS+"a"), quad.IRI(exNS+"other"), quad.LangString{Value: "hallo", Lang: "de"})
	contains(t, g, quad.IRI(exNS+"a"), quad.IRI(exNS+"plain"), quad.String("none"))
}

func TestParseNodeIDSharing(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <rdf:Description rdf:nodeID="shared">
    <ex:p rdf:nodeID="shared"/>
  </rdf:Description>
</rdf:RDF>`)

	require.Equal(t, 1, g.Size())
	triple := graph.All(g.Find(nil, nil, nil))[0]
	s, ok := triple.Subject.(quad.BNode)
	require.True(t, ok)
	o, ok := triple.Object.(quad.BNode)
	require.True(t, ok)
	assert.Equal(t, s, o)
}

func TestParseNestedNodeElement(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a">
    <ex:child>
      <ex:B rdf:about="http://example.org/b">
        <ex:name>inner</ex:name>
      </ex:B>
    </ex:child>
  </ex:A>
</rdf:RDF>`)

	require.Equal(t, 4, g.Size())
	contains(t, g, quad.IRI(exNS+"a"), quad.IRI(exNS+"child"), quad.IRI(exNS+"b"))
	contains(t, g, quad.IRI(exNS+"b"), graph.RDFType, quad.IRI(exNS+"B"))
	contains(t, g, quad.IRI(exNS+"b"), quad.IRI(exNS+"name"), quad.String("inner"))
}

func TestParseTypeResource(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a">
    <ex:p rdf:parseType="Resource">
      <ex:q>v</ex:q>
    </ex:p>
  </ex:A>
</rdf:RDF>`)

	require.Equal(t, 3, g.Size())
	it := g.Find(quad.IRI(exNS+"a"), quad.IRI(exNS+"p"), nil)
	require.True(t, it.Next())
	inner, ok := it.Result().Object.(quad.BNode)
	require.True(t, ok)
	contains(t, g, inner, quad.IRI(exNS+"q"), quad.String("v"))
}

func TestParseTypeCollection(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a">
    <ex:list rdf:parseType="Collection">
      <rdf:Description rdf:about="http://example.org/x"/>
      <rdf:Description rdf:about="http://example.org/y"/>
    </ex:list>
  </ex:A>
</rdf:RDF>`)

	// type + link + (first, rest) per cell; the last rest is rdf:nil
	require.Equal(t, 6, g.Size())

	it := g.Find(quad.IRI(exNS+"a"), quad.IRI(exNS+"list"), nil)
	require.True(t, it.Next())
	cell1 := it.Result().Object
	contains(t, g, cell1, graph.RDFFirst, quad.IRI(exNS+"x"))

	it = g.Find(cell1, graph.RDFRest, nil)
	require.True(t, it.Next())
	cell2 := it.Result().Object
	contains(t, g, cell2, graph.RDFFirst, quad.IRI(exNS+"y"))
	contains(t, g, cell2, graph.RDFRest, graph.RDFNil)
}

func TestParseTypeCollectionEmpty(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a">
    <ex:list rdf:parseType="Collection"></ex:list>
  </ex:A>
</rdf:RDF>`)

	contains(t, g, quad.IRI(exNS+"a"), quad.IRI(exNS+"list"), graph.RDFNil)
}

func TestParseTypeLiteralXML(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a">
    <ex:p rdf:parseType="Literal">hello <em>world &amp; moon</em></ex:p>
  </ex:A>
</rdf:RDF>`)

	it := g.Find(quad.IRI(exNS+"a"), quad.IRI(exNS+"p"), nil)
	require.True(t, it.Next())
	lit, ok := it.Result().Object.(quad.TypedString)
	require.True(t, ok)
	assert.Equal(t, graph.RDFXMLLiteral, lit.Type)
	assert.Equal(t, "hello <em>world &amp; moon</em>", string(lit.Value))
}

func TestParseTypeLiteralLowercaseVariant(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a">
    <ex:p rdf:parseType="literal">x</ex:p>
  </ex:A>
</rdf:RDF>`)

	it := g.Find(quad.IRI(exNS+"a"), quad.IRI(exNS+"p"), nil)
	require.True(t, it.Next())
	lit, ok := it.Result().Object.(quad.TypedString)
	require.True(t, ok)
	assert.Equal(t, graph.RDFXMLLiteral, lit.Type)
}

func TestParseTypeStatementsOutsideCimXML(t *testing.T) {
	// Without a CIM namespace, Statements degrades to an XML literal.
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a">
    <ex:p rdf:parseType="Statements">text</ex:p>
  </ex:A>
</rdf:RDF>`)

	it := g.Find(quad.IRI(exNS+"a"), quad.IRI(exNS+"p"), nil)
	require.True(t, it.Next())
	lit, ok := it.Result().Object.(quad.TypedString)
	require.True(t, ok)
	assert.Equal(t, graph.RDFXMLLiteral, lit.Type)
}

func TestReification(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/"
    xml:base="http://example.org/doc">
  <rdf:Description rdf:about="http://example.org/a">
    <ex:p rdf:ID="stmt">v</ex:p>
  </rdf:Description>
</rdf:RDF>`)

	require.Equal(t, 5, g.Size())
	stmt := quad.IRI("http://example.org/doc#stmt")
	contains(t, g, quad.IRI(exNS+"a"), quad.IRI(exNS+"p"), quad.String("v"))
	contains(t, g, stmt, graph.RDFType, graph.RDFStatement)
	contains(t, g, stmt, graph.RDFSubject, quad.IRI(exNS+"a"))
	contains(t, g, stmt, graph.RDFPredicate, quad.IRI(exNS+"p"))
	contains(t, g, stmt, graph.RDFObject, quad.String("v"))
}

func TestContainerItems(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Seq rdf:about="http://example.org/s">
    <rdf:li>one</rdf:li>
    <rdf:li>two</rdf:li>
  </rdf:Seq>
</rdf:RDF>`)

	require.Equal(t, 3, g.Size())
	contains(t, g, quad.IRI(exNS+"s"), quad.IRI(rdfXMLNS+"_1"), quad.String("one"))
	contains(t, g, quad.IRI(exNS+"s"), quad.IRI(rdfXMLNS+"_2"), quad.String("two"))
}

func TestPropertyAttributes(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <rdf:Description rdf:about="http://example.org/a" ex:name="gadget" ex:color="blue"/>
</rdf:RDF>`)

	require.Equal(t, 2, g.Size())
	contains(t, g, quad.IRI(exNS+"a"), quad.IRI(exNS+"name"), quad.String("gadget"))
	contains(t, g, quad.IRI(exNS+"a"), quad.IRI(exNS+"color"), quad.String("blue"))
}

func TestPropertyAttributesOnPropertyElement(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a">
    <ex:p ex:name="inner"/>
  </ex:A>
</rdf:RDF>`)

	require.Equal(t, 3, g.Size())
	it := g.Find(quad.IRI(exNS+"a"), quad.IRI(exNS+"p"), nil)
	require.True(t, it.Next())
	inner, ok := it.Result().Object.(quad.BNode)
	require.True(t, ok)
	contains(t, g, inner, quad.IRI(exNS+"name"), quad.String("inner"))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"about and ID", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a" rdf:ID="x"/>
</rdf:RDF>`},
		{"resource and nodeID", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a"><ex:p rdf:resource="http://example.org/b" rdf:nodeID="n"/></ex:A>
</rdf:RDF>`},
		{"datatype and parseType", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a"><ex:p rdf:datatype="http://www.w3.org/2001/XMLSchema#int" rdf:parseType="Literal">5</ex:p></ex:A>
</rdf:RDF>`},
		{"resource and parseType", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a"><ex:p rdf:resource="http://example.org/b" rdf:parseType="Resource"/></ex:A>
</rdf:RDF>`},
		{"old term aboutEach", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <rdf:aboutEach/>
</rdf:RDF>`},
		{"old term bagID attribute", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a" rdf:bagID="b"/>
</rdf:RDF>`},
		{"unknown parseType", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a"><ex:p rdf:parseType="Banana">x</ex:p></ex:A>
</rdf:RDF>`},
		{"non-namespaced attribute", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a" foo="bar"/>
</rdf:RDF>`},
		{"relative IRI without base", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="relative"/>
</rdf:RDF>`},
		{"text mixed with node element", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a"><ex:p>text<ex:B rdf:about="http://example.org/b"/></ex:p></ex:A>
</rdf:RDF>`},
		{"empty document", `   `},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCimXMLParser().ParseGraph(strings.NewReader(tc.doc))
			require.Error(t, err)
		})
	}
}

func TestUUIDNormalization(t *testing.T) {
	doc := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:cim="http://iec.ch/TC57/CIM100#">
  <cim:MyEquipment rdf:ID="_f67fc354-9e39-4191-a456-67537399bc48">
    <cim:MyEquipment.Ref rdf:resource="#_d597b77b-c8c4-4d88-883e-f516eedb913b"/>
  </cim:MyEquipment>
  <cim:Other rdf:about="#_F67FC354-9E39-4191-A456-67537399BC48"/>
  <cim:Third rdf:ID="_abcdef0123456789abcdef0123456789"/>
</rdf:RDF>`

	d, err := NewCimXMLParser().ParseCimModel(strings.NewReader(doc))
	require.NoError(t, err)
	g := d.DefaultGraph()

	cimNS := cim.NSCim17
	subject := quad.IRI("urn:uuid:f67fc354-9e39-4191-a456-67537399bc48")
	contains(t, g, subject, graph.RDFType, quad.IRI(cimNS+"MyEquipment"))
	contains(t, g, subject,
		quad.IRI(cimNS+"MyEquipment.Ref"),
		quad.IRI("urn:uuid:d597b77b-c8c4-4d88-883e-f516eedb913b"))
	// Upper case identifiers normalize onto the same subject.
	contains(t, g, subject, graph.RDFType, quad.IRI(cimNS+"Other"))
	// 32-char identifiers get dashes inserted at 8, 12, 16, 20.
	contains(t, g,
		quad.IRI("urn:uuid:abcdef01-2345-6789-abcd-ef0123456789"),
		graph.RDFType, quad.IRI(cimNS+"Third"))
}

func TestFullModelHeader(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<rdf:RDF xmlns:cim="http://iec.ch/TC57/CIM100#" xmlns:md="http://iec.ch/TC57/61970-552/ModelDescription/1#" xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
 <md:FullModel rdf:about="urn:uuid:08984e27-811f-4042-9125-1531ae0de0f6">
   <md:Model.Supersedes rdf:resource="urn:uuid:f086bea4-3428-4e49-8214-752fdeb1e2e4"/>
   <md:Model.DependentOn rdf:resource="urn:uuid:fa274c8c-a346-4080-ba5a-8a4eaa9083f9"/>
   <md:Model.profile>http://iec.ch/TC57/ns/CIM/CoreEquipment-EU/3.0</md:Model.profile>
   <md:Model.profile>http://iec.ch/TC57/ns/CIM/MyCIMProfile/3.0</md:Model.profile>
 </md:FullModel>
</rdf:RDF>`

	d, err := NewCimXMLParser().ParseCimModel(strings.NewReader(doc))
	require.NoError(t, err)
	require.True(t, d.IsFullModel())
	require.False(t, d.IsDifferenceModel())

	header, err := d.ModelHeader()
	require.NoError(t, err)

	model, err := header.Model()
	require.NoError(t, err)
	assert.Equal(t, quad.Value(quad.IRI("urn:uuid:08984e27-811f-4042-9125-1531ae0de0f6")), model)

	// Exactly one subject of the declared type.
	assert.Len(t, graph.All(header.Find(nil, graph.RDFType, cim.TypeFullModel)), 1)

	supersedes, err := header.Supersedes()
	require.NoError(t, err)
	assert.Len(t, supersedes, 1)
	dependentOn, err := header.DependentOn()
	require.NoError(t, err)
	assert.Len(t, dependentOn, 1)

	profiles, err := header.Profiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Contains(t, profiles, quad.Value(quad.String("http://iec.ch/TC57/ns/CIM/CoreEquipment-EU/3.0")))
	assert.Contains(t, profiles, quad.Value(quad.String("http://iec.ch/TC57/ns/CIM/MyCIMProfile/3.0")))
}

func TestDifferenceContextRouting(t *testing.T) {
	doc := `<rdf:RDF
    xmlns:dm="http://iec.ch/TC57/61970-552/DifferenceModel/1#"
    xmlns:md="http://iec.ch/TC57/61970-552/ModelDescription/1#"
    xmlns:cim="http://iec.ch/TC57/CIM100#"
    xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
 <dm:DifferenceModel rdf:about="urn:uuid:08984e27-811f-4042-9125-1531ae0de0f6">
    <dm:forwardDifferences rdf:parseType="Statements">
        <rdf:Description rdf:about="#_135c601e-bad4-4872-ba8f-b15baf91bd2f">
            <cim:IdentifiedObject.name>added</cim:IdentifiedObject.name>
        </rdf:Description>
    </dm:forwardDifferences>
    <dm:reverseDifferences rdf:parseType="Statements">
        <rdf:Description rdf:about="#_135c601e-bad4-4872-ba8f-b15baf91bd2f">
            <cim:IdentifiedObject.name>removed</cim:IdentifiedObject.name>
        </rdf:Description>
    </dm:reverseDifferences>
    <dm:preconditions rdf:parseType="Statements"></dm:preconditions>
 </dm:DifferenceModel>
</rdf:RDF>`

	d, err := NewCimXMLParser().ParseCimModel(strings.NewReader(doc))
	require.NoError(t, err)
	require.True(t, d.IsDifferenceModel())

	forward, err := d.ForwardDifferences()
	require.NoError(t, err)
	reverse, err := d.ReverseDifferences()
	require.NoError(t, err)
	preconditions, err := d.Preconditions()
	require.NoError(t, err)
	header, err := d.ModelHeader()
	require.NoError(t, err)

	subject := quad.IRI("urn:uuid:135c601e-bad4-4872-ba8f-b15baf91bd2f")
	name := quad.IRI(cim.NSCim17 + "IdentifiedObject.name")
	require.Equal(t, 1, forward.Size())
	contains(t, forward, subject, name, quad.String("added"))
	require.Equal(t, 1, reverse.Size())
	contains(t, reverse, subject, name, quad.String("removed"))
	assert.True(t, preconditions.IsEmpty())

	// The default graph holds only body triples, here none.
	assert.True(t, d.DefaultGraph().IsEmpty())

	// All four graphs share the document's prefix mapping.
	want := header.Prefixes().Pairs()
	assert.Len(t, want, 4)
	for _, g := range []graph.Graph{forward, reverse, preconditions} {
		assert.Equal(t, want, g.Prefixes().Pairs())
	}
}

func TestIECProcessingInstruction(t *testing.T) {
	doc := `<?xml version="1.0"?>
<?iec61970-552 version="2.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:cim="http://iec.ch/TC57/CIM100#">
</rdf:RDF>`

	sink := NewDatasetSink()
	require.NoError(t, Parse(strings.NewReader(doc), "", nil, sink, nil))
	assert.Equal(t, `version="2.0"`, sink.VersionOfIEC61970552())
	assert.Equal(t, cim.CIM17, sink.VersionOfCIMXML())
}

func TestCimVersionDetection(t *testing.T) {
	tests := []struct {
		ns   string
		want cim.Version
	}{
		{"http://iec.ch/TC57/2013/CIM-schema-cim16#", cim.CIM16},
		{"http://iec.ch/TC57/CIM100#", cim.CIM17},
		{"https://cim.ucaiug.io/ns#", cim.CIM18},
		{"http://example.org/not-cim#", cim.NoCIM},
	}
	for _, tc := range tests {
		doc := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:cim="` + tc.ns + `"></rdf:RDF>`
		sink := NewDatasetSink()
		require.NoError(t, Parse(strings.NewReader(doc), "", nil, sink, nil))
		assert.Equal(t, tc.want, sink.VersionOfCIMXML(), tc.ns)
	}
}

func TestProfileDrivenLiteralTyping(t *testing.T) {
	profileDoc := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
    xmlns:cim="http://iec.ch/TC57/CIM100#"
    xmlns:cims="http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#"
    xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
    xmlns:owl="http://www.w3.org/2002/07/owl#"
    xmlns:dcat="http://www.w3.org/ns/dcat#">
  <rdf:Description rdf:about="http://example.org/MyProfile">
    <rdf:type rdf:resource="http://www.w3.org/2002/07/owl#Ontology"/>
    <dcat:keyword>EQ</dcat:keyword>
    <owl:versionIRI rdf:resource="http://soptim.de/CIM/MyProfile/1.1"/>
  </rdf:Description>
  <rdf:Description rdf:about="http://iec.ch/TC57/CIM100#ClassA.floatProperty">
    <rdfs:domain rdf:resource="http://iec.ch/TC57/CIM100#ClassA"/>
    <cims:dataType rdf:resource="http://iec.ch/TC57/CIM100#Float"/>
  </rdf:Description>
  <rdf:Description rdf:about="http://iec.ch/TC57/CIM100#Float">
    <cims:stereotype>Primitive</cims:stereotype>
    <rdfs:label>Float</rdfs:label>
  </rdf:Description>
</rdf:RDF>`

	modelDoc := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
    xmlns:md="http://iec.ch/TC57/61970-552/ModelDescription/1#"
    xmlns:cim="http://iec.ch/TC57/CIM100#">
 <md:FullModel rdf:about="urn:uuid:08984e27-811f-4042-9125-1531ae0de0f6">
   <md:Model.profile>http://soptim.de/CIM/MyProfile/1.1</md:Model.profile>
 </md:FullModel>
 <cim:ClassA rdf:ID="_f67fc354-9e39-4191-a456-67537399bc48">
   <cim:ClassA.floatProperty>47.11</cim:ClassA.floatProperty>
 </cim:ClassA>
</rdf:RDF>`

	p := NewCimXMLParser()
	profile, err := p.ParseAndRegisterCimProfile(strings.NewReader(profileDoc))
	require.NoError(t, err)
	assert.Equal(t, cim.CIM17, profile.CimVersion())
	assert.Equal(t, "EQ", profile.DcatKeyword())

	d, err := p.ParseCimModel(strings.NewReader(modelDoc))
	require.NoError(t, err)

	body, err := d.Body()
	require.NoError(t, err)
	contains(t, body,
		quad.IRI("urn:uuid:f67fc354-9e39-4191-a456-67537399bc48"),
		quad.IRI(cim.NSCim17+"ClassA.floatProperty"),
		quad.TypedString{Value: "47.11", Type: quad.IRI(xsdNS + "float")})
}

func TestExplicitDatatypeWinsOverProfile(t *testing.T) {
	profileDoc := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
    xmlns:cim="http://iec.ch/TC57/CIM100#"
    xmlns:cims="http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#"
    xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
    xmlns:owl="http://www.w3.org/2002/07/owl#"
    xmlns:dcat="http://www.w3.org/ns/dcat#">
  <rdf:Description rdf:about="http://example.org/MyProfile">
    <rdf:type rdf:resource="http://www.w3.org/2002/07/owl#Ontology"/>
    <dcat:keyword>EQ</dcat:keyword>
    <owl:versionIRI rdf:resource="http://soptim.de/CIM/MyProfile/1.1"/>
  </rdf:Description>
  <rdf:Description rdf:about="http://iec.ch/TC57/CIM100#ClassA.floatProperty">
    <rdfs:domain rdf:resource="http://iec.ch/TC57/CIM100#ClassA"/>
    <cims:dataType rdf:resource="http://iec.ch/TC57/CIM100#Float"/>
  </rdf:Description>
  <rdf:Description rdf:about="http://iec.ch/TC57/CIM100#Float">
    <cims:stereotype>Primitive</cims:stereotype>
    <rdfs:label>Float</rdfs:label>
  </rdf:Description>
</rdf:RDF>`

	modelDoc := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
    xmlns:md="http://iec.ch/TC57/61970-552/ModelDescription/1#"
    xmlns:cim="http://iec.ch/TC57/CIM100#">
 <md:FullModel rdf:about="urn:uuid:08984e27-811f-4042-9125-1531ae0de0f6">
   <md:Model.profile>http://soptim.de/CIM/MyProfile/1.1</md:Model.profile>
 </md:FullModel>
 <cim:ClassA rdf:ID="_f67fc354-9e39-4191-a456-67537399bc48">
   <cim:ClassA.floatProperty rdf:datatype="http://www.w3.org/2001/XMLSchema#decimal">47.11</cim:ClassA.floatProperty>
 </cim:ClassA>
</rdf:RDF>`

	p := NewCimXMLParser()
	_, err := p.ParseAndRegisterCimProfile(strings.NewReader(profileDoc))
	require.NoError(t, err)
	d, err := p.ParseCimModel(strings.NewReader(modelDoc))
	require.NoError(t, err)

	body, err := d.Body()
	require.NoError(t, err)
	contains(t, body,
		quad.IRI("urn:uuid:f67fc354-9e39-4191-a456-67537399bc48"),
		quad.IRI(cim.NSCim17+"ClassA.floatProperty"),
		quad.TypedString{Value: "47.11", Type: quad.IRI(xsdNS + "decimal")})
}

func TestEmptyPropertyElement(t *testing.T) {
	g := parseGraph(t, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <ex:A rdf:about="http://example.org/a"><ex:p></ex:p></ex:A>
</rdf:RDF>`)

	contains(t, g, quad.IRI(exNS+"a"), quad.IRI(exNS+"p"), quad.String(""))
}
