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

// Package parser implements a streaming parser for RDF/XML (W3C 2004)
// with the IEC 61970-552 CIMXML extensions: the iec61970-552 processing
// instruction, UUID identifier normalization, the parseType="Statements"
// difference containers, the implicit urn:uuid: document base, and
// profile-driven typing of literals.
package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"

	"github.com/spah-soptim/OpenCGMES/clog"
	"github.com/spah-soptim/OpenCGMES/graph"
	"github.com/spah-soptim/OpenCGMES/rdfs"
	"github.com/spah-soptim/OpenCGMES/voc/cim"
)

const (
	rdfNS = rdf.NS
	xmlNS = "http://www.w3.org/XML/1998/namespace"

	// implicitCimBase is the document base assumed for CIMXML files
	// that declare none.
	implicitCimBase = "urn:uuid:"

	piTargetIEC61970 = "iec61970-552"
)

const (
	parseTypeCollection   = "Collection"
	parseTypeLiteral      = "Literal"
	parseTypeLiteralAlt   = "literal"
	parseTypeStatements   = "Statements"
	parseTypeResourceKind = "Resource"
	// parseTypePlain marks the absence of rdf:parseType.
	parseTypePlain = "$$"
)

// Parse reads one RDF/XML or CIMXML document from r and streams it into
// sink. The base IRI may be empty; registry may be nil when no
// profile-driven literal typing is wanted; errh may be nil for the
// default handler.
func Parse(r io.Reader, base string, registry *rdfs.ProfileRegistry, sink StreamCIMXML, errh ErrorHandler) error {
	if errh == nil {
		errh = DefaultErrorHandler()
	}
	src := &positionReader{r: r, line: 1, col: 1}
	p := &parser{
		dec:          xml.NewDecoder(src),
		src:          src,
		sink:         sink,
		registry:     registry,
		errh:         errh,
		nilBaseCache: make(map[string]resolvedIRI),
		baseCaches:   make(map[string]map[string]resolvedIRI),
		blankLabels:  make(map[string]quad.BNode),
		usedIDs:      make(map[string]map[string]Position),
	}
	if base != "" {
		b, err := parseBase(base)
		if err != nil {
			return p.errorf("invalid base IRI <%s>: %v", base, err)
		}
		p.currentBase = b
	}
	p.updateIriCache()

	sink.Start()
	if err := p.parse(); err != nil {
		return err
	}
	sink.Finish()
	return nil
}

// event kinds of the XML token stream.
type eventKind int

const (
	evNone eventKind = iota
	evStart
	evEnd
	evChars
	evComment
	evPI
	evDTD
	evEOF
)

func (k eventKind) String() string {
	switch k {
	case evStart:
		return "start element"
	case evEnd:
		return "end element"
	case evChars:
		return "characters"
	case evComment:
		return "comment"
	case evPI:
		return "processing instruction"
	case evDTD:
		return "DTD"
	case evEOF:
		return "end of document"
	default:
		return "no event"
	}
}

type event struct {
	kind     eventKind
	start    xml.StartElement
	end      xml.EndElement
	chars    string
	piTarget string
	piData   string
}

// positionReader tracks the line and column of the bytes consumed so
// far, to attach source locations to diagnostics.
type positionReader struct {
	r    io.Reader
	line int
	col  int
}

func (p *positionReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	for _, c := range b[:n] {
		if c == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
	}
	return n, err
}

func (p *positionReader) pos() Position {
	return Position{Line: p.line, Col: p.col}
}

// baseLang is one frame of the xml:base / xml:lang scope stack. Each
// base owns an IRI resolution cache; the cache for the nil base is
// shared.
type baseLang struct {
	base  *baseIRI
	lang  string
	cache map[string]resolvedIRI
}

type parser struct {
	dec      *xml.Decoder
	src      *positionReader
	sink     StreamCIMXML
	registry *rdfs.ProfileRegistry
	errh     ErrorHandler

	cur event

	hasRDF             bool
	hasCimXMLNamespace bool
	isCimXMLModel      bool
	cimVersion         cim.Version

	currentBase *baseIRI
	currentLang string
	frames      []baseLang

	iriCache     map[string]resolvedIRI
	nilBaseCache map[string]resolvedIRI
	baseCaches   map[string]map[string]resolvedIRI

	// nsStack mirrors the open elements; each frame holds the prefix
	// declarations of one element.
	nsStack      []map[string]string
	pendingNsPop bool

	blankLabels map[string]quad.BNode
	blankCount  int

	usedIDs map[string]map[string]Position
	idCount int

	dataTypeMap       rdfs.PropertyMap
	propsNotInProfile map[quad.Value]struct{}
	cimProfiles       map[quad.Value]struct{}

	acc strings.Builder
}

type emitter func(s, pred, o quad.Value)

// ---- Diagnostics

func (p *parser) pos() Position { return p.src.pos() }

func (p *parser) warn(msg string) {
	p.errh.Warning(msg, p.pos())
}

func (p *parser) warnf(format string, args ...interface{}) {
	p.errh.Warning(fmt.Sprintf(format, args...), p.pos())
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return p.errh.Error(fmt.Sprintf(format, args...), p.pos())
}

func (p *parser) fatalf(format string, args ...interface{}) error {
	return p.errh.Fatal(fmt.Sprintf(format, args...), p.pos())
}

// ---- Reading XML

// read pulls one token from the decoder, maintaining the namespace
// scope stack. The frame of an end element stays in scope until the
// next token, so its declarations remain visible while the end tag is
// the current event.
func (p *parser) read() error {
	if p.pendingNsPop {
		p.popNamespaces()
		p.pendingNsPop = false
	}
	tok, err := p.dec.Token()
	if err == io.EOF {
		p.cur = event{kind: evEOF}
		return nil
	}
	if err != nil {
		return p.fatalf("XML error: %v", err)
	}
	switch t := tok.(type) {
	case xml.StartElement:
		p.pushNamespaces(t)
		p.cur = event{kind: evStart, start: t}
	case xml.EndElement:
		p.pendingNsPop = true
		p.cur = event{kind: evEnd, end: t}
	case xml.CharData:
		p.cur = event{kind: evChars, chars: string(t)}
	case xml.Comment:
		p.cur = event{kind: evComment, chars: string(t)}
	case xml.ProcInst:
		p.cur = event{kind: evPI, piTarget: t.Target, piData: string(t.Inst)}
	case xml.Directive:
		p.cur = event{kind: evDTD, chars: string(t)}
	default:
		p.cur = event{kind: evNone}
	}
	return nil
}

func (p *parser) pushNamespaces(start xml.StartElement) {
	var decls map[string]string
	for _, a := range start.Attr {
		prefix, ok := xmlnsDecl(a)
		if !ok {
			continue
		}
		if decls == nil {
			decls = make(map[string]string)
		}
		decls[prefix] = a.Value
	}
	p.nsStack = append(p.nsStack, decls)
}

func (p *parser) popNamespaces() {
	if len(p.nsStack) > 0 {
		p.nsStack = p.nsStack[:len(p.nsStack)-1]
	}
}

// namespaceFor returns the in-scope namespace bound to a prefix.
func (p *parser) namespaceFor(prefix string) (string, bool) {
	for i := len(p.nsStack) - 1; i >= 0; i-- {
		if ns, ok := p.nsStack[i][prefix]; ok {
			return ns, true
		}
	}
	return "", false
}

// prefixFor returns an in-scope prefix bound to a namespace, preferring
// the innermost declaration.
func (p *parser) prefixFor(ns string) (string, bool) {
	for i := len(p.nsStack) - 1; i >= 0; i-- {
		for prefix, u := range p.nsStack[i] {
			if u != ns {
				continue
			}
			if cur, ok := p.namespaceFor(prefix); ok && cur == ns {
				return prefix, true
			}
		}
	}
	return "", false
}

// xmlnsDecl reports whether the attribute is a namespace declaration
// and returns the declared prefix ("" for the default namespace).
func xmlnsDecl(a xml.Attr) (string, bool) {
	if a.Name.Space == "xmlns" {
		return a.Name.Local, true
	}
	if a.Name.Space == "" && a.Name.Local == "xmlns" {
		return "", true
	}
	return "", false
}

// nextEventAny moves to the next event, skipping comments and handling
// processing instructions.
func (p *parser) nextEventAny() error {
	for {
		if err := p.read(); err != nil {
			return err
		}
		switch p.cur.kind {
		case evComment:
			continue
		case evPI:
			if p.cur.piTarget == piTargetIEC61970 {
				p.sink.SetVersionOfIEC61970552(p.cur.piData)
			} else if p.cur.piTarget != "xml" {
				p.warn("XML processing instruction - ignored")
			}
			continue
		}
		return nil
	}
}

// nextEventTag moves to the next start or end element, skipping
// comments, DTDs and ignorable whitespace.
func (p *parser) nextEventTag() error {
	for {
		if err := p.read(); err != nil {
			return err
		}
		switch p.cur.kind {
		case evStart, evEnd, evEOF:
			return nil
		case evChars:
			if !isWhitespace(p.cur.chars) {
				return p.errorf("expecting a start or end element, got characters '%s'", nonWhitespaceMsg(p.cur.chars))
			}
		case evComment, evDTD:
			// Skip.
		default:
			return p.errorf("unexpected event %s", p.cur.kind)
		}
	}
}

// nextEventRaw moves to the next event of any kind. Used inside XML
// literals where every event is content.
func (p *parser) nextEventRaw() error {
	return p.read()
}

// ---- Document

// parse processes a whole document: an optional DTD, an optional
// iec61970-552 processing instruction, then rdf:RDF or a single node
// element.
func (p *parser) parse() error {
	if err := p.nextEventAny(); err != nil {
		return err
	}
	for p.cur.kind == evChars && isWhitespace(p.cur.chars) {
		if err := p.nextEventAny(); err != nil {
			return err
		}
	}
	if p.cur.kind == evEOF {
		return p.errorf("empty document")
	}
	if p.cur.kind == evDTD {
		if err := p.nextEventTag(); err != nil {
			return err
		}
	}
	if p.cur.kind != evStart {
		return p.errorf("not a start element: %s", p.cur.kind)
	}

	hasFrame := false
	if nameIs(p.cur.start.Name, rdfNS, "RDF") {
		root := p.cur.start
		var err error
		hasFrame, err = p.startElement(root)
		if err != nil {
			return err
		}
		if err := p.emitInitialBaseAndNamespaces(root); err != nil {
			return err
		}
		p.hasRDF = true
		if err := p.nextEventTag(); err != nil {
			return err
		}
	}

	if p.hasRDF {
		if err := p.nodeElementLoop(); err != nil {
			return err
		}
	} else {
		if p.cur.kind == evStart {
			if err := p.nodeElement(nil); err != nil {
				return err
			}
		}
	}

	if p.hasRDF {
		p.endElement(hasFrame)
		if err := p.nextEventAny(); err != nil {
			return err
		}
		for p.cur.kind == evChars && isWhitespace(p.cur.chars) {
			if err := p.nextEventAny(); err != nil {
				return err
			}
		}
	}
	return nil
}

// emitInitialBaseAndNamespaces emits the namespaces declared on
// rdf:RDF, derives the CIM version from the "cim" prefix, and installs
// the implicit CIMXML base when the document declares none.
func (p *parser) emitInitialBaseAndNamespaces(root xml.StartElement) error {
	for _, a := range root.Attr {
		prefix, ok := xmlnsDecl(a)
		if !ok {
			continue
		}
		if prefix == "cim" {
			p.cimVersion = cim.VersionFromNamespace(a.Value)
			if p.cimVersion == cim.NoCIM {
				p.warnf("unrecognized 'cim' namespace: %s", a.Value)
			} else {
				clog.Debugf("CIM version of CIMXML: %s", p.cimVersion)
			}
		}
		p.sink.Prefix(prefix, a.Value)
	}

	base, hasBase := attrValue(root, xmlNS, "base")
	if p.cimVersion != cim.NoCIM {
		p.hasCimXMLNamespace = true
		p.sink.SetVersionOfCIMXML(p.cimVersion)
		if !hasBase {
			base, hasBase = implicitCimBase, true
			b, err := parseBase(base)
			if err != nil {
				return p.errorf("invalid base IRI <%s>: %v", base, err)
			}
			p.currentBase = b
			p.updateIriCache()
			clog.Debugf("using implicit CIMXML base <%s>", base)
		}
	}
	if hasBase {
		p.sink.Base(base)
	}
	return nil
}

// ---- Node elements

// nodeElementLoop processes zero or more node elements; it stops at the
// first event that is not a start element.
func (p *parser) nodeElementLoop() error {
	for p.cur.kind == evStart {
		if err := p.nodeElement(nil); err != nil {
			return err
		}
		if err := p.nextEventTag(); err != nil {
			return err
		}
	}
	return nil
}

// nodeElement processes one node element. The subject may already be
// determined for nested node elements. On entry the current event is
// the node's start element; on exit it is its end element.
func (p *parser) nodeElement(subject quad.Value) error {
	start := p.cur.start
	name := start.Name

	if !allowedNodeElementURIs(name) {
		return p.errorf("not allowed as a node element tag: '%s'", nameStr(name))
	}
	if _, ok := attrValue(start, rdfNS, "resource"); ok {
		return p.errorf("rdf:resource not allowed as attribute here: %s", nameStr(name))
	}

	hasFrame, err := p.startElement(start)
	if err != nil {
		return err
	}
	if subject == nil {
		subject, err = p.attributesToSubjectNode(start)
		if err != nil {
			return err
		}
	}
	if err := p.nodeElementProcess(subject, start); err != nil {
		return err
	}
	p.endElement(hasFrame)
	return nil
}

func (p *parser) nodeElementProcess(subject quad.Value, start xml.StartElement) error {
	name := start.Name
	isFullModel := false

	if !nameIs(name, rdfNS, "Description") {
		// Typed node element.
		if isMemberProperty(name) {
			p.warnf("%s is being used on a typed node", nameStr(name))
		} else if isNotRecognizedRDFType(name) {
			p.warnf("%s is not a recognized RDF term for a type", nameStr(name))
		}

		if p.hasCimXMLNamespace && !p.isCimXMLModel {
			if nameIs(name, cim.NSModelDescription, cim.ClassNameFullModel) {
				p.sink.SetCurrentContext(cim.ContextFullModel)
				isFullModel = true
				p.isCimXMLModel = true
			} else if nameIs(name, cim.NSDifferenceModel, cim.ClassNameDifferenceModel) {
				p.sink.SetCurrentContext(cim.ContextDifferenceModel)
				p.isCimXMLModel = true
			}
			if p.isCimXMLModel {
				if p.registry == nil {
					p.warn("no profile registry has been provided, so missing datatypes in CIMXML cannot be resolved")
				} else {
					p.dataTypeMap = p.registry.HeaderPropertiesAndDatatypes(p.cimVersion)
					if p.dataTypeMap == nil {
						p.warnf("no header profile has been registered for CIM version %s", p.cimVersion)
					}
					p.propsNotInProfile = make(map[quad.Value]struct{})
				}
			}
		}

		object, err := p.qNameToIRI(name, "typed node element")
		if err != nil {
			return err
		}
		p.emit(subject, graph.RDFType, object)
	}

	if _, err := p.processPropertyAttributes(subject, start, false); err != nil {
		return err
	}

	if err := p.nextEventTag(); err != nil {
		return err
	}
	if err := p.propertyElementLoop(subject); err != nil {
		return err
	}
	if p.cur.kind != evEnd {
		return p.errorf("expected end element for %s", nameStr(name))
	}

	if p.isCimXMLModel && isFullModel {
		p.sink.SetCurrentContext(cim.ContextBody)
		p.installModelHeaderProfiles()
	}
	return nil
}

// installModelHeaderProfiles captures the Model.profile IRIs of the
// parsed header and installs the matching property/datatype map as the
// active literal-typing map.
func (p *parser) installModelHeaderProfiles() {
	header := p.sink.ModelHeader()
	if header == nil {
		p.warn("no model header has been found in CIMXML")
		return
	}
	profiles, err := header.Profiles()
	if err != nil || len(profiles) == 0 {
		p.warn("no profile IRIs have been found in the CIMXML model header")
		return
	}
	if p.registry == nil {
		return
	}

	// Without a registered header profile the profile references were
	// parsed as literals; convert them to IRI terms.
	literalProfiles := false
	for profile := range profiles {
		if !graph.IsIRI(profile) {
			literalProfiles = true
		}
		break
	}
	if literalProfiles {
		p.warn("the profiles in the model header are not URIs; most likely no FileHeaderProfile has been provided; converting them to URI nodes")
		converted := make(map[quad.Value]struct{}, len(profiles))
		for profile := range profiles {
			if lex, ok := graph.LexicalForm(profile); ok {
				converted[quad.IRI(lex)] = struct{}{}
			} else {
				converted[profile] = struct{}{}
			}
		}
		profiles = converted
	}

	p.cimProfiles = profiles
	p.propsNotInProfile = make(map[quad.Value]struct{})
	p.dataTypeMap = p.registry.PropertiesAndDatatypes(profiles)
	if p.dataTypeMap == nil {
		p.warnf("the profiles in the model header could not be found in the profile registry: %v", profileList(profiles))
	}
}

func profileList(profiles map[quad.Value]struct{}) []string {
	out := make([]string, 0, len(profiles))
	for profile := range profiles {
		out = append(out, quad.StringOf(profile))
	}
	return out
}

// ---- Property elements

func (p *parser) propertyElementLoop(subject quad.Value) error {
	listElementCounter := 1
	for p.cur.kind == evStart {
		if err := p.propertyElement(subject, &listElementCounter); err != nil {
			return err
		}
		if err := p.nextEventTag(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) propertyElement(subject quad.Value, listElementCounter *int) error {
	start := p.cur.start
	name := start.Name

	hasFrame, err := p.startElement(start)
	if err != nil {
		return err
	}
	if !allowedPropertyElementURIs(name) {
		return p.errorf("QName not allowed for property: %s", nameStr(name))
	}
	if isNotRecognizedRDFProperty(name) {
		p.warnf("%s is not a recognized RDF property", nameStr(name))
	}
	if err := p.propertyElementProcess(subject, start, listElementCounter); err != nil {
		return err
	}
	p.endElement(hasFrame)
	return nil
}

func (p *parser) propertyElementProcess(subject quad.Value, start xml.StartElement, listElementCounter *int) error {
	name := start.Name

	objBlankNodeLabel, hasNodeID := attrValue(start, rdfNS, "nodeID")
	resourceStr, hasResource := attrValue(start, rdfNS, "resource")
	datatype, hasDatatype := attrValue(start, rdfNS, "datatype")
	parseType := objectParseType(start)

	var property quad.Value
	var profileDatatype quad.IRI

	if nameIs(name, rdfNS, "li") {
		property = quad.IRI(rdfNS + "_" + strconv.Itoa(*listElementCounter))
		*listElementCounter++
	} else {
		var err error
		property, err = p.qNameToIRI(name, "property element")
		if err != nil {
			return err
		}
		if p.hasCimXMLNamespace && parseType != parseTypeStatements && p.dataTypeMap != nil {
			if info, ok := p.dataTypeMap[property]; ok {
				// Reuse the registered property term so references
				// stay shared across profiles.
				property = info.Property
				profileDatatype = info.PrimitiveType
			} else if _, seen := p.propsNotInProfile[property]; !seen {
				p.propsNotInProfile[property] = struct{}{}
				p.warnf("property '%s' could not be found in current profiles: %v", nameStr(name), profileList(p.cimProfiles))
			}
		}
	}

	reify, err := p.reifyStatement(start)
	if err != nil {
		return err
	}
	emit := p.emit
	if reify != nil {
		emit = func(s, pred, o quad.Value) {
			p.emitReify(reify, s, pred, o)
		}
	}

	if hasDatatype {
		if parseType != parseTypePlain {
			return p.errorf("rdf:datatype can not be used with rdf:parseType")
		}
		if hasResource {
			return p.errorf("rdf:datatype can not be used with rdf:resource")
		}
		if hasNodeID {
			return p.errorf("rdf:datatype can not be used with rdf:nodeID")
		}
	}
	if hasResource && hasNodeID {
		return p.errorf("can't have both rdf:nodeID and rdf:resource on a property element")
	}
	if hasResource && parseType != parseTypePlain {
		return p.errorf("both rdf:resource and rdf:parseType on a property element; only one allowed")
	}
	if hasNodeID && parseType != parseTypePlain {
		return p.errorf("both rdf:nodeID and rdf:parseType on a property element; only one allowed")
	}

	var resourceObj quad.Value
	if hasResource {
		resourceObj, err = p.iriResolveCimAware(resourceStr)
		if err != nil {
			return err
		}
	}
	if hasNodeID {
		resourceObj = p.blankFor(objBlankNodeLabel)
	}

	innerSubject, err := p.processPropertyAttributes(resourceObj, start, true)
	if err != nil {
		return err
	}
	if resourceObj == nil && innerSubject != nil {
		emit(subject, property, innerSubject)
		if err := p.nextEventAny(); err != nil {
			return err
		}
		if p.cur.kind != evEnd {
			return p.errorf("expecting end element tag when using property attributes on a property element")
		}
		return nil
	}

	if resourceObj != nil {
		emit(subject, property, resourceObj)
		if err := p.nextEventAny(); err != nil {
			return err
		}
		if p.cur.kind != evEnd {
			return p.errorf("expecting end element tag when using rdf:resource or rdf:nodeID on a property")
		}
		return nil
	}

	if parseType != parseTypePlain {
		parseTypeName := parseType
		switch parseTypeName {
		case parseTypeLiteralAlt:
			p.warn("encountered rdf:parseType='literal', treated as rdf:parseType='Literal'")
			parseTypeName = parseTypeLiteral
		case parseTypeStatements:
			if !p.hasCimXMLNamespace {
				p.warn("encountered rdf:parseType='Statements', treated as rdf:parseType='Literal'")
				parseTypeName = parseTypeLiteral
			}
		}
		switch parseTypeName {
		case parseTypeResourceKind:
			return p.parseTypeResource(subject, property, emit)
		case parseTypeLiteral:
			return p.parseTypeLiteral(subject, property, emit)
		case parseTypeCollection:
			return p.parseTypeCollection(subject, property, emit)
		case parseTypeStatements:
			return p.parseTypeStatements(subject, property, name, emit)
		default:
			return p.errorf("not a legal defined rdf:parseType: %s", parseType)
		}
	}

	// Text content, a nested node element, or an empty element.
	if err := p.nextEventAny(); err != nil {
		return err
	}
	switch p.cur.kind {
	case evChars:
		p.acc.Reset()
		for p.cur.kind == evChars {
			p.acc.WriteString(p.cur.chars)
			if err := p.nextEventAny(); err != nil {
				return err
			}
		}
		switch p.cur.kind {
		case evStart:
			if !isWhitespace(p.acc.String()) {
				return p.errorf("content before node element: '%s'", nonWhitespaceMsg(p.acc.String()))
			}
			return p.processNestedNodeElement(subject, property, emit)
		case evEnd:
			lexical := p.acc.String()
			obj := p.typedLiteral(lexical, datatype, hasDatatype, profileDatatype)
			emit(subject, property, obj)
			return nil
		default:
			return p.errorf("unexpected element: %s", p.cur.kind)
		}
	case evStart:
		return p.processNestedNodeElement(subject, property, emit)
	case evEnd:
		emit(subject, property, quad.String(""))
		return nil
	default:
		return p.errorf("malformed property: %s", p.cur.kind)
	}
}

// typedLiteral chooses the object term for text content: an explicit
// rdf:datatype wins, then the active profile map (xsd:anyURI values
// become IRI terms, xsd:string stays plain), then xml:lang, then a
// plain string literal.
func (p *parser) typedLiteral(lexical, datatype string, hasDatatype bool, profileDatatype quad.IRI) quad.Value {
	if hasDatatype {
		return quad.TypedString{Value: quad.String(lexical), Type: quad.IRI(datatype)}
	}
	if profileDatatype != "" && profileDatatype != graph.XSDString {
		if profileDatatype == graph.XSDAnyURI {
			return quad.IRI(lexical)
		}
		return quad.TypedString{Value: quad.String(lexical), Type: profileDatatype}
	}
	if lang := p.lang(); lang != "" {
		return quad.LangString{Value: quad.String(lexical), Lang: lang}
	}
	return quad.String(lexical)
}

// parseTypeResource parses the nested property elements into a fresh
// anonymous subject.
func (p *parser) parseTypeResource(subject, property quad.Value, emit emitter) error {
	inner := p.newBlank()
	emit(subject, property, inner)
	if err := p.nextEventTag(); err != nil {
		return err
	}
	return p.propertyElementLoop(inner)
}

// parseTypeCollection builds an RDF list from the child node elements.
func (p *parser) parseTypeCollection(subject, property quad.Value, emit emitter) error {
	var lastCell quad.Value
	for {
		if err := p.nextEventTag(); err != nil {
			return err
		}
		if p.cur.kind != evStart {
			break
		}
		thisCell := p.newBlank()
		if lastCell == nil {
			emit(subject, property, thisCell)
		} else {
			p.emit(lastCell, graph.RDFRest, thisCell)
		}
		itemSubject, err := p.attributesToSubjectNode(p.cur.start)
		if err != nil {
			return err
		}
		p.emit(thisCell, graph.RDFFirst, itemSubject)
		if err := p.nodeElement(itemSubject); err != nil {
			return err
		}
		lastCell = thisCell
	}
	if lastCell != nil {
		p.emit(lastCell, graph.RDFRest, graph.RDFNil)
	} else {
		emit(subject, property, graph.RDFNil)
	}
	return nil
}

// parseTypeStatements parses a CIMXML difference container into its
// named graph. On any other element the content is treated as an XML
// literal with a warning.
func (p *parser) parseTypeStatements(subject, property quad.Value, name xml.Name, emit emitter) error {
	oldContext := p.sink.CurrentContext()
	var ctx cim.DocumentContext
	switch {
	case nameIs(name, cim.NSDifferenceModel, cim.TagNameForwardDifferences):
		ctx = cim.ContextForwardDifferences
	case nameIs(name, cim.NSDifferenceModel, cim.TagNameReverseDifferences):
		ctx = cim.ContextReverseDifferences
	case nameIs(name, cim.NSDifferenceModel, cim.TagNamePreconditions):
		ctx = cim.ContextPreconditions
	default:
		p.warn("rdf:parseType='Statements' used on an element that is not a recognized CIMXML difference model container (forwardDifferences, reverseDifferences, preconditions), treated as rdf:parseType='Literal'")
		return p.parseTypeLiteral(subject, property, emit)
	}
	p.sink.SetCurrentContext(ctx)
	if oldContext == cim.ContextDifferenceModel {
		// First container after the header: capture the declared
		// profiles for literal typing.
		p.installModelHeaderProfiles()
	}
	if err := p.nextEventTag(); err != nil {
		return err
	}
	return p.nodeElementLoop()
}

func (p *parser) processNestedNodeElement(subject, property quad.Value, emit emitter) error {
	start := p.cur.start
	hasFrame, err := p.startElement(start)
	if err != nil {
		return err
	}
	inner, err := p.attributesToSubjectNode(start)
	if err != nil {
		return err
	}
	emit(subject, property, inner)
	if err := p.nodeElement(inner); err != nil {
		return err
	}
	if err := p.nextEventTag(); err != nil {
		return err
	}
	if p.cur.kind == evStart {
		return p.errorf("start tag after inner node element (only one node element permitted): got %s", nameStr(p.cur.start.Name))
	}
	if p.cur.kind != evEnd {
		return p.errorf("expected an end element: got %s", p.cur.kind)
	}
	p.endElement(hasFrame)
	return nil
}

// ---- Property attributes

// processPropertyAttributes emits the property attributes of an
// element. For property elements the attributes hang off an inner
// subject (resourceObj when set, a fresh blank node otherwise); the
// inner subject is returned, or nil when the element carries no
// property attributes.
func (p *parser) processPropertyAttributes(resourceObj quad.Value, start xml.StartElement, isPropertyElement bool) (quad.Value, error) {
	attrs, err := p.gatherPropertyAttributes(start)
	if err != nil {
		return nil, err
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	if isPropertyElement {
		if objectParseType(start) != parseTypePlain {
			return nil, p.errorf("the attribute rdf:parseType is not permitted with property attributes on a property element: %s", nameStr(start.Name))
		}
	}
	innerSubject := resourceObj
	if innerSubject == nil {
		innerSubject = p.newBlank()
	}
	if err := p.outputPropertyAttributes(innerSubject, attrs); err != nil {
		return nil, err
	}
	return innerSubject, nil
}

func (p *parser) gatherPropertyAttributes(start xml.StartElement) ([]xml.Attr, error) {
	var out []xml.Attr
	for _, a := range start.Attr {
		ok, err := p.checkPropertyAttribute(a)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (p *parser) outputPropertyAttributes(subject quad.Value, attrs []xml.Attr) error {
	for _, a := range attrs {
		if nameIs(a.Name, rdfNS, "type") {
			object, err := p.iriResolveCimAware(a.Value)
			if err != nil {
				return err
			}
			p.emit(subject, graph.RDFType, object)
			continue
		}
		property, err := p.attributeToIRI(a.Name)
		if err != nil {
			return err
		}
		var object quad.Value
		if lang := p.lang(); lang != "" {
			object = quad.LangString{Value: quad.String(a.Value), Lang: lang}
		} else {
			object = quad.String(a.Value)
		}
		p.emit(subject, property, object)
	}
	return nil
}

// checkPropertyAttribute reports whether the attribute is a property
// attribute as opposed to syntax, namespace declarations or reserved
// XML attributes.
func (p *parser) checkPropertyAttribute(a xml.Attr) (bool, error) {
	if _, isDecl := xmlnsDecl(a); isDecl {
		return false, nil
	}
	if isSyntaxAttribute(a.Name) {
		return false, nil
	}
	if !allowedPropertyAttributeURIs(a.Name) {
		return false, p.errorf("not allowed as a property attribute: '%s'", nameStr(a.Name))
	}
	if isNotRecognizedRDFProperty(a.Name) {
		p.warnf("%s is not a recognized RDF term for a property attribute", nameStr(a.Name))
	}
	if isXMLQName(a.Name) {
		return false, nil
	}
	if isXMLNamespace(a.Name) {
		p.warnf("unrecognized XML attribute: '%s'", nameStr(a.Name))
		return false, nil
	}
	if a.Name.Space == "" {
		return p.checkPropertyAttributeUnqualified(a.Name.Local)
	}
	return true, nil
}

func (p *parser) checkPropertyAttributeUnqualified(localName string) (bool, error) {
	if allowedUnqualifiedTerm(localName) {
		return true, nil
	}
	if len(localName) >= 3 && strings.EqualFold(localName[:3], "xml") {
		p.warnf("unrecognized XML non-namespaced attribute '%s' - ignored", localName)
		return false, nil
	}
	return false, p.errorf("non-namespaced attribute not allowed as a property attribute: '%s'", localName)
}

// ---- Reification

func (p *parser) reifyStatement(start xml.StartElement) (quad.Value, error) {
	reifyID, ok := attrValue(start, rdfNS, "ID")
	if !ok {
		return nil, nil
	}
	return p.iriFromIDCimAware(reifyID)
}

func (p *parser) emit(s, pred, o quad.Value) {
	p.sink.Triple(graph.MakeTriple(s, pred, o))
}

func (p *parser) emitReify(reify, s, pred, o quad.Value) {
	p.emit(s, pred, o)
	p.emit(reify, graph.RDFType, graph.RDFStatement)
	p.emit(reify, graph.RDFSubject, s)
	p.emit(reify, graph.RDFPredicate, pred)
	p.emit(reify, graph.RDFObject, o)
}

// ---- Element scope

// startElement pushes a base/lang frame when the element declares
// xml:base or xml:lang. It returns whether a frame was pushed.
func (p *parser) startElement(start xml.StartElement) (bool, error) {
	baseStr, hasBase := attrValue(start, xmlNS, "base")
	lang, hasLang := attrValue(start, xmlNS, "lang")
	if !hasBase && !hasLang {
		return false, nil
	}
	newBase := p.currentBase
	if hasBase {
		b, err := parseBase(baseStr)
		if err != nil {
			return false, p.errorf("invalid base IRI <%s>: %v", baseStr, err)
		}
		if p.currentBase != nil {
			b = p.currentBase.resolve(b)
		}
		if !b.abs() {
			p.warnf("relative URI for base: <%s>", baseStr)
		}
		newBase = b
	}
	newLang := p.currentLang
	if hasLang {
		newLang = lang
	}
	p.pushFrame(newBase, newLang)
	return true, nil
}

func (p *parser) endElement(hasFrame bool) {
	if hasFrame {
		p.popFrame()
	}
}

func (p *parser) pushFrame(base *baseIRI, lang string) {
	p.frames = append(p.frames, baseLang{base: p.currentBase, lang: p.currentLang, cache: p.iriCache})
	p.currentLang = lang
	if baseChanged(p.currentBase, base) {
		p.currentBase = base
		p.updateIriCache()
	}
}

func (p *parser) popFrame() {
	frame := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	p.currentLang = frame.lang
	if baseChanged(p.currentBase, frame.base) {
		p.currentBase = frame.base
		p.iriCache = frame.cache
	}
}

func baseChanged(cur, next *baseIRI) bool {
	if cur == nil {
		return next != nil
	}
	if next == nil {
		return true
	}
	return cur.raw != next.raw
}

// updateIriCache points the active IRI cache at the one owned by the
// current base. The nil base shares one cache.
func (p *parser) updateIriCache() {
	if p.currentBase == nil {
		p.iriCache = p.nilBaseCache
		return
	}
	cache, ok := p.baseCaches[p.currentBase.raw]
	if !ok {
		cache = make(map[string]resolvedIRI)
		p.baseCaches[p.currentBase.raw] = cache
	}
	p.iriCache = cache
}

// lang returns the in-scope language, or "" for none.
func (p *parser) lang() string { return p.currentLang }
