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
	"encoding/xml"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
)

// ---- XML names and attributes

func nameIs(n xml.Name, space, local string) bool {
	return n.Space == space && n.Local == local
}

func nameStr(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// attrValue looks up an attribute by namespace and local name. For the
// XML namespace both the resolved namespace IRI and the reserved "xml"
// prefix are accepted, since the tokenizer does not expand the
// predeclared prefix.
func attrValue(start xml.StartElement, space, local string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local != local {
			continue
		}
		if a.Name.Space == space || (space == xmlNS && a.Name.Space == "xml") {
			return a.Value, true
		}
	}
	return "", false
}

func objectParseType(start xml.StartElement) string {
	if v, ok := attrValue(start, rdfNS, "parseType"); ok {
		return v
	}
	return parseTypePlain
}

// ---- Grammar term sets (RDF/XML 2004, 6.2.2 - 6.2.7)

func isRDFTerm(n xml.Name) bool { return n.Space == rdfNS }

func isCoreSyntaxTerm(n xml.Name) bool {
	if !isRDFTerm(n) {
		return false
	}
	switch n.Local {
	case "RDF", "ID", "about", "parseType", "resource", "nodeID", "datatype":
		return true
	}
	return false
}

func isOldTerm(n xml.Name) bool {
	if !isRDFTerm(n) {
		return false
	}
	switch n.Local {
	case "aboutEach", "aboutEachPrefix", "bagID":
		return true
	}
	return false
}

// allowedNodeElementURIs is production nodeElementURIs:
// anyURI - (coreSyntaxTerms | rdf:li | oldTerms).
func allowedNodeElementURIs(n xml.Name) bool {
	if !isRDFTerm(n) {
		return true
	}
	if isCoreSyntaxTerm(n) || isOldTerm(n) {
		return false
	}
	return n.Local != "li"
}

// allowedPropertyElementURIs is production propertyElementURIs:
// anyURI - (coreSyntaxTerms | rdf:Description | oldTerms).
func allowedPropertyElementURIs(n xml.Name) bool {
	if !isRDFTerm(n) {
		return true
	}
	if isCoreSyntaxTerm(n) || isOldTerm(n) {
		return false
	}
	return n.Local != "Description"
}

// allowedPropertyAttributeURIs is production propertyAttributeURIs:
// anyURI - (coreSyntaxTerms | rdf:Description | rdf:li | oldTerms).
func allowedPropertyAttributeURIs(n xml.Name) bool {
	if !isRDFTerm(n) {
		return true
	}
	if isCoreSyntaxTerm(n) || isOldTerm(n) {
		return false
	}
	return n.Local != "Description" && n.Local != "li"
}

func allowedUnqualifiedTerm(localName string) bool {
	switch localName {
	case "about", "ID", "resource", "parseType", "type":
		return true
	}
	return false
}

// isSyntaxAttribute reports the attributes that guide the parser.
func isSyntaxAttribute(n xml.Name) bool {
	if !isRDFTerm(n) {
		return false
	}
	switch n.Local {
	case "RDF", "about", "nodeID", "ID", "parseType", "datatype", "resource":
		return true
	}
	return false
}

// isXMLQName reports the reserved XML attributes. xml:space relates to
// whitespace handling and is skipped.
func isXMLQName(n xml.Name) bool {
	if n.Space != xmlNS && n.Space != "xml" {
		return false
	}
	switch n.Local {
	case "base", "lang", "space":
		return true
	}
	return false
}

func isXMLNamespace(n xml.Name) bool {
	return n.Space == xmlNS || n.Space == "xml"
}

// isMemberProperty tests for rdf:_NNNN.
func isMemberProperty(n xml.Name) bool {
	return isRDFTerm(n) && isMemberPropertyLocalName(n.Local)
}

func isMemberPropertyLocalName(localName string) bool {
	if !strings.HasPrefix(localName, "_") {
		return false
	}
	number := localName[1:]
	if strings.HasPrefix(number, "-") || strings.HasPrefix(number, "0") {
		return false
	}
	if _, err := strconv.Atoi(number); err == nil {
		return true
	}
	// It might be larger than an int.
	_, ok := new(big.Int).SetString(number, 10)
	return ok
}

// knownRDF holds the recognized RDF terms; "nil" is in the W3C RDF
// test suite.
var knownRDF = map[string]bool{
	"Bag": true, "Seq": true, "Alt": true, "List": true, "XMLLiteral": true,
	"Property": true, "Statement": true, "type": true, "li": true,
	"subject": true, "predicate": true, "object": true, "value": true,
	"first": true, "rest": true, "nil": true,
}

func isNotRecognizedRDFType(n xml.Name) bool {
	if !isRDFTerm(n) {
		return false
	}
	return !knownRDF[n.Local]
}

func isNotRecognizedRDFProperty(n xml.Name) bool {
	if !isRDFTerm(n) {
		return false
	}
	if isMemberPropertyLocalName(n.Local) {
		return false
	}
	return !knownRDF[n.Local]
}

// ---- IRI resolution

// baseIRI is a parsed document base.
type baseIRI struct {
	raw string
	u   *url.URL
}

func parseBase(s string) (*baseIRI, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	return &baseIRI{raw: s, u: u}, nil
}

func (b *baseIRI) abs() bool { return b.u.IsAbs() }

// opaque reports a base like "urn:uuid:" whose scheme-specific part is
// not hierarchical; such bases resolve references by concatenation.
func (b *baseIRI) opaque() bool {
	return b.u.Opaque != "" || (b.u.IsAbs() && b.u.Host == "" && b.u.Path == "")
}

// resolve resolves another base against this one.
func (b *baseIRI) resolve(ref *baseIRI) *baseIRI {
	if ref.u.IsAbs() {
		return ref
	}
	if b.opaque() {
		raw := b.raw + ref.raw
		if u, err := url.Parse(raw); err == nil {
			return &baseIRI{raw: raw, u: u}
		}
		return ref
	}
	res := b.u.ResolveReference(ref.u)
	return &baseIRI{raw: res.String(), u: res}
}

type resolvedIRI struct {
	iri quad.IRI
	abs bool
}

// resolveAny applies RFC 3986 resolution of a URI reference against the
// current base, consulting the per-base cache.
func (p *parser) resolveAny(uriStr string) (resolvedIRI, error) {
	if cached, ok := p.iriCache[uriStr]; ok {
		return cached, nil
	}
	ref, err := url.Parse(uriStr)
	if err != nil {
		return resolvedIRI{}, p.errorf("bad IRI <%s>: %v", uriStr, err)
	}
	var res resolvedIRI
	switch {
	case ref.IsAbs() || p.currentBase == nil:
		res = resolvedIRI{iri: quad.IRI(uriStr), abs: ref.IsAbs()}
	case p.currentBase.opaque():
		// RFC 3986 merging is undefined against an opaque base; CIMXML
		// identifiers concatenate onto urn:uuid:.
		raw := p.currentBase.raw + strings.TrimPrefix(uriStr, "#")
		res = resolvedIRI{iri: quad.IRI(raw), abs: true}
	default:
		resolved := p.currentBase.u.ResolveReference(ref)
		res = resolvedIRI{iri: quad.IRI(resolved.String()), abs: resolved.IsAbs()}
	}
	p.iriCache[uriStr] = res
	return res, nil
}

// iriResolve resolves a URI reference and requires an absolute result.
// A relative reference without a base in scope is a warning; a relative
// result is an error.
func (p *parser) iriResolve(uriStr string) (quad.IRI, error) {
	if strings.HasPrefix(uriStr, "_:") {
		// <_:label> syntax.
		return quad.IRI(uriStr), nil
	}
	if p.currentBase == nil && !isAbsoluteRef(uriStr) {
		p.warnf("relative URI reference with no in-scope base: <%s>", uriStr)
	}
	res, err := p.resolveAny(uriStr)
	if err != nil {
		return "", err
	}
	if !res.abs {
		return "", p.errorf("relative URI encountered: <%s>", string(res.iri))
	}
	return res.iri, nil
}

func isAbsoluteRef(uriStr string) bool {
	u, err := url.Parse(uriStr)
	return err == nil && u.IsAbs()
}

// ---- CIMXML UUID normalization

// cimUUID normalizes a CIMXML UUID identifier to urn:uuid form. The
// uuidPart is the identifier with its leading "_" or "#_" stripped:
// 36-char dashed and 32-char dashless forms are accepted, lower-cased
// and dashed with a warning when rewritten. The second return is false
// when the part is not a UUID.
func (p *parser) cimUUID(uriStr, uuidPart string) (quad.IRI, bool) {
	switch len(uuidPart) {
	case 36, 32:
		u, err := uuid.Parse(uuidPart)
		if err != nil {
			p.warnf("not a valid CIM UUID: '%s'", uriStr)
			return "", false
		}
		canonical := u.String()
		if len(uuidPart) == 32 {
			p.warnf("CIM UUID without dashes: '%s' - converted to dashed form", uuidPart)
		}
		if strings.ToLower(uuidPart) != uuidPart {
			p.warnf("CIM UUID with upper case letters: '%s' - converted to lower case form", uuidPart)
		}
		return quad.IRI(implicitCimBase + canonical), true
	default:
		p.warnf("not a valid CIM UUID: '%s'", uriStr)
		return "", false
	}
}

// iriResolveCimAware resolves rdf:about / rdf:resource values, turning
// "#_<uuid>" references into urn:uuid IRIs in CIMXML mode.
func (p *parser) iriResolveCimAware(uriStr string) (quad.Value, error) {
	if p.hasCimXMLNamespace && strings.HasPrefix(uriStr, "#_") {
		if iri, ok := p.cimUUID(uriStr, uriStr[2:]); ok {
			return iri, nil
		}
	}
	return p.iriResolve(uriStr)
}

// iriFromID builds the IRI of an rdf:ID value: "#id" resolved against
// the current base, with NCName validation and duplicate tracking.
func (p *parser) iriFromID(idStr string) (quad.Value, error) {
	p.checkValidNCName(idStr)
	if prev, ok := p.previousUseOfID(idStr); ok {
		p.warnf("reuse of rdf:ID '%s' at %s", idStr, prev)
	}
	return p.iriResolve("#" + idStr)
}

// iriFromIDCimAware is iriFromID with CIMXML UUID normalization of
// "_<uuid>" identifiers.
func (p *parser) iriFromIDCimAware(idStr string) (quad.Value, error) {
	if p.hasCimXMLNamespace && strings.HasPrefix(idStr, "_") {
		if iri, ok := p.cimUUID(idStr, idStr[1:]); ok {
			return iri, nil
		}
	}
	return p.iriFromID(idStr)
}

// maxTrackedIDs bounds the rdf:ID duplicate tracking tables; the maps
// only grow, and a base may be re-introduced, so this is not nested
// scoping.
const maxTrackedIDs = 10000

func (p *parser) previousUseOfID(idStr string) (Position, bool) {
	baseKey := ""
	if p.currentBase != nil {
		baseKey = p.currentBase.raw
	}
	scope, ok := p.usedIDs[baseKey]
	if !ok {
		scope = make(map[string]Position)
		p.usedIDs[baseKey] = scope
	}
	if prev, ok := scope[idStr]; ok {
		return prev, true
	}
	if p.idCount > maxTrackedIDs {
		return Position{}, false
	}
	scope[idStr] = p.pos()
	p.idCount++
	return Position{}, false
}

// ---- Blank nodes

// newBlank allocates a fresh blank node.
func (p *parser) newBlank() quad.BNode {
	p.blankCount++
	return quad.BNode("b" + strconv.Itoa(p.blankCount))
}

// blankFor interns a labeled blank node: equal labels within one parse
// map to the same term, keyed on a dense id.
func (p *parser) blankFor(label string) quad.BNode {
	p.checkValidNCName(label)
	if b, ok := p.blankLabels[label]; ok {
		return b
	}
	b := p.newBlank()
	p.blankLabels[label] = b
	return b
}

// ---- QNames to IRIs

func (p *parser) qNameToIRI(n xml.Name, usage string) (quad.IRI, error) {
	if strings.TrimSpace(n.Space) == "" {
		return "", p.errorf("unqualified %s not allowed: <%s>", usage, n.Local)
	}
	return quad.IRI(n.Space + n.Local), nil
}

func (p *parser) attributeToIRI(n xml.Name) (quad.IRI, error) {
	space := n.Space
	if strings.TrimSpace(space) == "" {
		if !allowedUnqualifiedTerm(n.Local) {
			return "", p.errorf("unqualified property attribute not allowed: '%s'", n.Local)
		}
		space = rdfNS
	}
	return quad.IRI(space + n.Local), nil
}

// ---- NCNames and text

func (p *parser) checkValidNCName(s string) {
	if !isValidNCName(s) {
		p.warnf("not a valid XML NCName: '%s'", s)
	}
}

func isValidNCName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

func isWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}

// nonWhitespaceMsg clips a string to its leading non-whitespace content
// for error messages.
func nonWhitespaceMsg(s string) string {
	const maxLen = 10
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxLen {
		trimmed = trimmed[:maxLen] + "..."
	}
	return fmt.Sprintf("%q", trimmed)
}
