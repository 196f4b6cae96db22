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
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/spah-soptim/OpenCGMES/voc/cim"
)

// Vocabulary of the cims schema extensions used by profile ontologies.
var (
	cimsIsFixed       = quad.IRI(cim.NSSchemaExtensions + "isFixed")
	cimsClassCategory = quad.IRI(cim.NSSchemaExtensions + "ClassCategory")
	dcatKeyword       = quad.IRI(cim.NSDcat + "keyword")
)

const packageFileHeaderProfile = "#Package_FileHeaderProfile"

// headerKeyword is the synthetic dcat keyword reported for CIM-16/17
// file header profiles, which define no keyword of their own. The new
// document header ontologies use "DH", and old header profiles report
// the same value for compatibility.
const headerKeyword = "DH"

// Profile is a graph describing one CIM ontology version.
//
// Profiles come in three flavors. CIM-16 (CGMES 2.4.15) profiles carry
// their keyword and version IRIs as cims:isFixed values on
// "...Version.shortName" / "...Version.entsoeURI*" /
// "...Version.baseURI*" properties. CIM-17 and CIM-18 profiles carry a
// single owl:Ontology subject with dcat:keyword and owl:versionIRI.
// Header profiles describe the metadata block of a model document
// rather than its payload.
type Profile interface {
	Graph
	// CimVersion returns the schema version of the profile.
	CimVersion() cim.Version
	// IsHeaderProfile reports whether the profile describes a model or
	// document header.
	IsHeaderProfile() bool
	// DcatKeyword returns the profile's keyword abbreviation.
	DcatKeyword() string
	// OwlVersionIRIs returns the profile's version IRIs. Non-empty for
	// non-header profiles.
	OwlVersionIRIs() map[quad.Value]struct{}
	// OwlVersionInfo returns owl:versionInfo, or "" when absent.
	OwlVersionInfo() string
}

// ProfilesEqual reports whether two profiles carry the same CIM version
// and either are both header profiles or have equal version IRI sets.
func ProfilesEqual(a, b Profile) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.CimVersion() != b.CimVersion() {
		return false
	}
	if a.IsHeaderProfile() {
		return b.IsHeaderProfile()
	}
	if b.IsHeaderProfile() {
		return false
	}
	av, bv := a.OwlVersionIRIs(), b.OwlVersionIRIs()
	if len(av) != len(bv) {
		return false
	}
	for iri := range av {
		if _, ok := bv[iri]; !ok {
			return false
		}
	}
	return true
}

// Errors reported by WrapProfile for graphs that are not profiles.
var (
	ErrProfileNoVersionData = errors.New("graph does not contain the required '...Version.shortName' and '...Version.entsoeURI*' or '...Version.baseURI*' values for a CGMES 2.4.15 profile")
	ErrProfileNoOntology    = errors.New("graph does not contain the required ontology subject for a CIM profile")
	ErrProfileNoVersionIRI  = errors.New("graph's ontology does not contain the required versionIRI and keyword for a CIM profile")
)

// WrapProfile detects the profile flavor of a graph from its CIM
// version and recognizer fingerprints and wraps it accordingly. Graphs
// matching neither the ontology fingerprint nor the header-class
// fingerprint are rejected.
func WrapProfile(g Graph) (Profile, error) {
	if p, ok := g.(Profile); ok {
		return p, nil
	}
	version := CimVersionOf(g)
	switch version {
	case cim.CIM16:
		if isClassCategoryHeader(g) {
			return &profile16{Graph: g, isHeader: true}, nil
		}
		if hasFixedVersionData(g) {
			return &profile16{Graph: g}, nil
		}
		return nil, ErrProfileNoVersionData
	case cim.CIM17:
		if isClassCategoryHeader(g) {
			// Header profiles keep the CIM-16 shape in CGMES 3.0.
			return &profile17{Graph: g, version: version, isHeader: true}, nil
		}
		p := &profile17{Graph: g, version: version}
		if err := p.check(); err != nil {
			return nil, err
		}
		return p, nil
	case cim.CIM18:
		if isClassCategoryHeader(g) {
			return &profile17{Graph: g, version: version, isHeader: true}, nil
		}
		if isDocumentHeaderOntology(g) {
			return &profile17{Graph: g, version: version, isHeader: true}, nil
		}
		p := &profile17{Graph: g, version: version}
		if err := p.check(); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, ErrNotCimGraph
	}
}

// isClassCategoryHeader reports whether the graph types a subject as
// cims:ClassCategory whose IRI ends with "#Package_FileHeaderProfile".
// This is how CIM-16 and CIM-17 header profiles are recognized.
func isClassCategoryHeader(g Graph) bool {
	it := g.Find(nil, RDFType, cimsClassCategory)
	for it.Next() {
		if s, ok := it.Result().Subject.(quad.IRI); ok && strings.HasSuffix(string(s), packageFileHeaderProfile) {
			return true
		}
	}
	return false
}

// profile16 wraps a CGMES 2.4.15 profile ontology.
type profile16 struct {
	Graph
	isHeader bool
}

// fixedVersionTexts yields the cims:isFixed literal values of the
// "...Version<name>" properties: subjects whose IRI extends a class IRI
// ending in "Version" by the given dotted property name, where the
// subject is in the rdfs:domain of that class.
func fixedVersionTexts(g Graph, dottedName string) []string {
	var out []string
	it := g.Find(nil, RDFSDomain, nil)
	for it.Next() {
		t := it.Result()
		obj, ok := t.Object.(quad.IRI)
		if !ok || !strings.HasSuffix(string(obj), "Version") {
			continue
		}
		sub, ok := t.Subject.(quad.IRI)
		if !ok || !strings.HasPrefix(string(sub), string(obj)+dottedName) {
			continue
		}
		fixed := g.Find(t.Subject, cimsIsFixed, nil)
		for fixed.Next() {
			if lex, ok := LexicalForm(fixed.Result().Object); ok {
				out = append(out, lex)
			}
		}
	}
	return out
}

func hasFixedVersionData(g Graph) bool {
	if len(fixedVersionTexts(g, ".shortName")) == 0 {
		return false
	}
	return len(fixedVersionTexts(g, ".entsoeURI")) > 0 || len(fixedVersionTexts(g, ".baseURI")) > 0
}

func (p *profile16) CimVersion() cim.Version { return cim.CIM16 }

func (p *profile16) IsHeaderProfile() bool { return p.isHeader }

func (p *profile16) DcatKeyword() string {
	if p.isHeader {
		return headerKeyword
	}
	if names := fixedVersionTexts(p.Graph, ".shortName"); len(names) > 0 {
		return names[0]
	}
	return ""
}

func (p *profile16) OwlVersionIRIs() map[quad.Value]struct{} {
	out := make(map[quad.Value]struct{})
	for _, uri := range fixedVersionTexts(p.Graph, ".entsoeURI") {
		out[quad.IRI(uri)] = struct{}{}
	}
	for _, uri := range fixedVersionTexts(p.Graph, ".baseURI") {
		out[quad.IRI(uri)] = struct{}{}
	}
	return out
}

func (p *profile16) OwlVersionInfo() string { return "" }

func (p *profile16) String() string {
	return fmt.Sprintf("CimProfile16(header=%v)", p.isHeader)
}

// profile17 wraps a CIM-17 or CIM-18 profile ontology. The two versions
// share the owl:Ontology shape; CIM-18 additionally recognizes document
// header ontologies by their version IRI.
type profile17 struct {
	Graph
	version  cim.Version
	isHeader bool
}

// documentHeaderVersionIRIStart marks CIM-18 document header ontologies.
const documentHeaderVersionIRIStart = "https://ap-voc.cim4.eu/DocumentHeader"

func ontologySubject(g Graph) (quad.Value, bool) {
	it := g.Find(nil, RDFType, OWLOntology)
	if it.Next() {
		return it.Result().Subject, true
	}
	return nil, false
}

func isDocumentHeaderOntology(g Graph) bool {
	ontology, ok := ontologySubject(g)
	if !ok {
		return false
	}
	it := g.Find(ontology, OWLVersionIRI, nil)
	for it.Next() {
		if iri, ok := it.Result().Object.(quad.IRI); ok && strings.HasPrefix(string(iri), documentHeaderVersionIRIStart) {
			return true
		}
	}
	return false
}

func (p *profile17) check() error {
	if _, ok := ontologySubject(p.Graph); !ok {
		return ErrProfileNoOntology
	}
	if !p.Find(nil, dcatKeyword, nil).Next() || !p.Find(nil, OWLVersionIRI, nil).Next() {
		return ErrProfileNoVersionIRI
	}
	return nil
}

func (p *profile17) CimVersion() cim.Version { return p.version }

func (p *profile17) IsHeaderProfile() bool { return p.isHeader }

// Ontology returns the owl:Ontology subject of the profile, or nil for
// header profiles kept in the CIM-16 shape.
func (p *profile17) Ontology() quad.Value {
	ontology, _ := ontologySubject(p.Graph)
	return ontology
}

func (p *profile17) DcatKeyword() string {
	if p.isHeader {
		return headerKeyword
	}
	ontology, ok := ontologySubject(p.Graph)
	if !ok {
		return ""
	}
	it := p.Find(ontology, dcatKeyword, nil)
	if it.Next() {
		if lex, ok := LexicalForm(it.Result().Object); ok {
			return lex
		}
	}
	return ""
}

func (p *profile17) OwlVersionIRIs() map[quad.Value]struct{} {
	out := make(map[quad.Value]struct{})
	ontology, ok := ontologySubject(p.Graph)
	if !ok {
		return out
	}
	it := p.Find(ontology, OWLVersionIRI, nil)
	for it.Next() {
		out[it.Result().Object] = struct{}{}
	}
	return out
}

func (p *profile17) OwlVersionInfo() string {
	ontology, ok := ontologySubject(p.Graph)
	if !ok {
		return ""
	}
	it := p.Find(ontology, OWLVersionInfo, nil)
	if it.Next() {
		if lex, ok := LexicalForm(it.Result().Object); ok {
			return lex
		}
	}
	return ""
}

func (p *profile17) String() string {
	return fmt.Sprintf("CimProfile(%s, header=%v)", p.version, p.isHeader)
}
