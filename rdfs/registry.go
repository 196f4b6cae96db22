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

// Package rdfs implements the CIM profile registry: registration of
// profile ontologies, compilation of their property/datatype maps, and
// the mapping from CIM primitive type names to typed-literal datatypes.
package rdfs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/xsd"

	"github.com/spah-soptim/OpenCGMES/clog"
	"github.com/spah-soptim/OpenCGMES/graph"
	"github.com/spah-soptim/OpenCGMES/voc/cim"
)

// PropertyInfo is one row of a compiled profile: the property, the
// class it belongs to, and either the datatype of its literal values or
// the class its references point to. Exactly one of PrimitiveType and
// ReferenceType is set.
type PropertyInfo struct {
	RDFType       quad.Value
	Property      quad.Value
	CimDatatype   quad.Value
	PrimitiveType quad.IRI
	ReferenceType quad.Value
}

// PropertyMap maps a property IRI to its compiled info.
type PropertyMap map[quad.Value]PropertyInfo

var (
	cimsDataType        = quad.IRI(cim.NSSchemaExtensions + "dataType")
	cimsStereotype      = quad.IRI(cim.NSSchemaExtensions + "stereotype")
	cimsAssociationUsed = quad.IRI(cim.NSSchemaExtensions + "AssociationUsed")
)

// The primitive type table is process-wide state shared by all registry
// instances. Custom mappings should be registered before any other
// registry use.
var (
	primitiveMu    sync.RWMutex
	primitiveTypes = defaultPrimitiveTypes()
)

func defaultPrimitiveTypes() map[string]quad.IRI {
	x := func(local string) quad.IRI { return quad.IRI(xsd.NS + local) }
	return map[string]quad.IRI{
		"Base64Binary":       x("base64Binary"),
		"Boolean":            x("boolean"),
		"Byte":               x("byte"),
		"Date":               x("date"),
		"DateTime":           x("dateTime"),
		"DateTimeStamp":      x("dateTimeStamp"),
		"Day":                x("gDay"),
		"DayTimeDuration":    x("dayTimeDuration"),
		"Decimal":            x("decimal"),
		"Double":             x("double"),
		"Duration":           x("duration"),
		"Float":              x("float"),
		"HexBinary":          x("hexBinary"),
		"Int":                x("int"),
		"Integer":            x("integer"),
		"IRI":                x("string"),
		"LangString":         graph.RDFLangString,
		"Long":               x("long"),
		"Month":              x("gMonth"),
		"MonthDay":           x("gMonthDay"),
		"NegativeInteger":    x("negativeInteger"),
		"NonNegativeInteger": x("nonNegativeInteger"),
		"NonPositiveInteger": x("nonPositiveInteger"),
		"PositiveInteger":    x("positiveInteger"),
		"Short":              x("short"),
		"String":             x("string"),
		"StringFixedLanguage": x("string"),
		"StringIRI":          x("string"),
		"Time":               x("time"),
		"UnsignedByte":       x("unsignedByte"),
		"UnsignedInt":        x("unsignedInt"),
		"UnsignedLong":       x("unsignedLong"),
		"UnsignedShort":      x("unsignedShort"),
		"URI":                x("anyURI"),
		"UUID":               x("string"),
		"Version":            x("string"),
		"Year":               x("gYear"),
		"YearMonth":          x("gYearMonth"),
		"YearMonthDuration":  x("yearMonthDuration"),
	}
}

// RegisterPrimitiveType inserts or overwrites the datatype mapped to a
// CIM primitive type name, for all registry instances.
func RegisterPrimitiveType(name string, datatype quad.IRI) {
	primitiveMu.Lock()
	primitiveTypes[name] = datatype
	primitiveMu.Unlock()
}

// PrimitiveTypeMapping returns a copy of the current primitive type
// table.
func PrimitiveTypeMapping() map[string]quad.IRI {
	primitiveMu.RLock()
	defer primitiveMu.RUnlock()
	out := make(map[string]quad.IRI, len(primitiveTypes))
	for name, dt := range primitiveTypes {
		out[name] = dt
	}
	return out
}

func primitiveDatatype(name string) quad.IRI {
	primitiveMu.RLock()
	dt, ok := primitiveTypes[name]
	primitiveMu.RUnlock()
	if ok {
		return dt
	}
	clog.Warningf("unknown mapping from CIM primitive '%s' to XSD datatype, using xsd:string as fallback", name)
	return graph.XSDString
}

// Registration errors.
var (
	ErrNoVersionIRIs     = errors.New("profile ontology must have at least one owlVersionIRI")
	ErrHeaderVersion     = errors.New("header profile must have a valid CIM version")
	ErrProfileRegistered = errors.New("profile already registered")
)

type multiEntry struct {
	iris    map[quad.Value]struct{}
	profile graph.Profile
}

// ProfileRegistry holds registered profile ontologies and their
// compiled property maps. It is safe for concurrent reads once
// populated; registration takes the writer lock.
type ProfileRegistry struct {
	mu sync.RWMutex

	single map[quad.Value]graph.Profile
	multi  map[string]multiEntry
	header map[cim.Version]graph.Profile

	profileProps map[graph.Profile]PropertyMap

	setCacheMu sync.Mutex
	setCache   map[string]PropertyMap
}

// NewProfileRegistry returns an empty registry.
func NewProfileRegistry() *ProfileRegistry {
	return &ProfileRegistry{
		single:       make(map[quad.Value]graph.Profile),
		multi:        make(map[string]multiEntry),
		header:       make(map[cim.Version]graph.Profile),
		profileProps: make(map[graph.Profile]PropertyMap),
		setCache:     make(map[string]PropertyMap),
	}
}

// setKey builds the canonical cache key of an IRI set.
func setKey(iris map[quad.Value]struct{}) string {
	keys := make([]string, 0, len(iris))
	for iri := range iris {
		keys = append(keys, quad.StringOf(iri))
	}
	sort.Strings(keys)
	return strings.Join(keys, "\n")
}

// Register adds a profile to the registry and compiles its property
// map. It rejects a profile whose single version IRI, version IRI set,
// or - for header profiles - CIM version is already registered.
func (r *ProfileRegistry) Register(p graph.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.IsHeaderProfile() {
		version := p.CimVersion()
		if version == cim.NoCIM {
			return ErrHeaderVersion
		}
		if _, ok := r.header[version]; ok {
			return fmt.Errorf("header profile for CIM version %s: %w", version, ErrProfileRegistered)
		}
		r.header[version] = p
		r.profileProps[p] = compileProfile(p)
		return nil
	}

	iris := p.OwlVersionIRIs()
	if len(iris) == 0 {
		return ErrNoVersionIRIs
	}
	if len(iris) == 1 {
		var iri quad.Value
		for v := range iris {
			iri = v
		}
		if _, ok := r.single[iri]; ok {
			return fmt.Errorf("profile ontology with owlVersionIRI %s: %w", quad.StringOf(iri), ErrProfileRegistered)
		}
		r.single[iri] = p
	} else {
		key := setKey(iris)
		if _, ok := r.multi[key]; ok {
			return fmt.Errorf("profile ontology with owlVersionIRIs %s: %w", key, ErrProfileRegistered)
		}
		r.multi[key] = multiEntry{iris: iris, profile: p}
	}
	r.profileProps[p] = compileProfile(p)
	return nil
}

// ContainsProfile reports whether every IRI in the set resolves to a
// registered profile.
func (r *ProfileRegistry) ContainsProfile(iris map[quad.Value]struct{}) bool {
	if len(iris) == 0 {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for iri := range iris {
		if _, ok := r.single[iri]; ok {
			continue
		}
		found := false
		for _, entry := range r.multi {
			if _, ok := entry.iris[iri]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ContainsHeaderProfile reports whether a header profile is registered
// for the CIM version.
func (r *ProfileRegistry) ContainsHeaderProfile(version cim.Version) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.header[version]
	return ok
}

// RegisteredProfiles lists every registered profile.
func (r *ProfileRegistry) RegisteredProfiles() []graph.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]graph.Profile, 0, len(r.profileProps))
	for p := range r.profileProps {
		out = append(out, p)
	}
	return out
}

// PropertiesAndDatatypes returns the compiled property map of the
// profiles identified by the version IRI set: the single profile's map
// when the set matches one registration exactly, otherwise the merged
// map of every profile the IRIs resolve to. The merge result is cached
// by profile set. It returns nil when any IRI is unresolvable.
func (r *ProfileRegistry) PropertiesAndDatatypes(iris map[quad.Value]struct{}) PropertyMap {
	if len(iris) == 0 {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(iris) == 1 {
		for iri := range iris {
			if p, ok := r.single[iri]; ok {
				return r.profileProps[p]
			}
		}
	}
	if entry, ok := r.multi[setKey(iris)]; ok {
		return r.profileProps[entry.profile]
	}

	// Resolve each IRI to a profile; fail if any is unknown.
	set := make(map[graph.Profile]struct{})
	for iri := range iris {
		if p, ok := r.single[iri]; ok {
			set[p] = struct{}{}
			continue
		}
		found := false
		for _, entry := range r.multi {
			if _, ok := entry.iris[iri]; ok {
				set[entry.profile] = struct{}{}
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}
	if len(set) == 1 {
		for p := range set {
			return r.profileProps[p]
		}
	}

	cacheKey := profileSetKey(set)
	r.setCacheMu.Lock()
	defer r.setCacheMu.Unlock()
	if cached, ok := r.setCache[cacheKey]; ok {
		return cached
	}
	merged := make(PropertyMap)
	for p := range set {
		for property, info := range r.profileProps[p] {
			merged[property] = info
		}
	}
	r.setCache[cacheKey] = merged
	return merged
}

// profileSetKey builds the cache key of a profile set from the union of
// the profiles' version IRIs (header profiles never appear here).
func profileSetKey(set map[graph.Profile]struct{}) string {
	union := make(map[quad.Value]struct{})
	for p := range set {
		for iri := range p.OwlVersionIRIs() {
			union[iri] = struct{}{}
		}
	}
	return setKey(union)
}

// HeaderPropertiesAndDatatypes returns the compiled property map of the
// header profile registered for the CIM version, or nil when none is.
func (r *ProfileRegistry) HeaderPropertiesAndDatatypes(version cim.Version) PropertyMap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.header[version]
	if !ok {
		return nil
	}
	return r.profileProps[p]
}

// compileProfile evaluates the fixed property/datatype query against a
// profile graph:
//
//	?property rdfs:domain ?rdfType .
//	{ ?property rdfs:range ?referenceType .
//	  OPTIONAL { ?property cims:AssociationUsed ?used }
//	  FILTER(!BOUND(?used) || ?used = "Yes") }
//	UNION
//	{ ?property cims:dataType ?cimDatatype .
//	  { ?cimDatatype cims:stereotype "CIMDatatype" .
//	    [] rdfs:domain ?cimDatatype ; rdfs:label "value" ;
//	       cims:dataType/cims:stereotype "Primitive" ;
//	       cims:dataType/rdfs:label ?primitiveType }
//	  UNION
//	  { ?cimDatatype cims:stereotype "Primitive" ;
//	                 rdfs:label ?primitiveType } }
//
// The query is small and fixed, so it is matched by hand rather than
// through a SPARQL engine.
func compileProfile(g graph.Graph) PropertyMap {
	out := make(PropertyMap)
	domains := g.Find(nil, graph.RDFSDomain, nil)
	for domains.Next() {
		t := domains.Result()
		property, rdfType := t.Subject, t.Object

		// Reference branch: rdfs:range, gated on cims:AssociationUsed.
		ranges := g.Find(property, graph.RDFSRange, nil)
		for ranges.Next() {
			if !associationUsable(g, property) {
				continue
			}
			out[property] = PropertyInfo{
				RDFType:       rdfType,
				Property:      property,
				ReferenceType: ranges.Result().Object,
			}
		}

		// Datatype branch: cims:dataType to a CIMDatatype or Primitive.
		datatypes := g.Find(property, cimsDataType, nil)
		for datatypes.Next() {
			cimDatatype := datatypes.Result().Object
			name, ok := primitiveNameOf(g, cimDatatype)
			if !ok {
				continue
			}
			out[property] = PropertyInfo{
				RDFType:       rdfType,
				Property:      property,
				CimDatatype:   cimDatatype,
				PrimitiveType: primitiveDatatype(name),
			}
		}
	}
	return out
}

// associationUsable implements the AssociationUsed filter: pass when the
// property has no cims:AssociationUsed value, or one equal to "Yes".
func associationUsable(g graph.Graph, property quad.Value) bool {
	it := g.Find(property, cimsAssociationUsed, nil)
	bound := false
	for it.Next() {
		bound = true
		if lex, ok := graph.LexicalForm(it.Result().Object); ok && lex == "Yes" {
			return true
		}
	}
	return !bound
}

func hasStereotype(g graph.Graph, subject quad.Value, stereotype string) bool {
	it := g.Find(subject, cimsStereotype, nil)
	for it.Next() {
		if lex, ok := graph.LexicalForm(it.Result().Object); ok && lex == stereotype {
			return true
		}
	}
	return false
}

// primitiveNameOf resolves the primitive type name of a cims:dataType
// value: either the datatype is a CIMDatatype whose "value" attribute
// has a Primitive datatype with a label, or the datatype itself is a
// Primitive with a label.
func primitiveNameOf(g graph.Graph, cimDatatype quad.Value) (string, bool) {
	if hasStereotype(g, cimDatatype, "CIMDatatype") {
		attrs := g.Find(nil, graph.RDFSDomain, cimDatatype)
		for attrs.Next() {
			attr := attrs.Result().Subject
			if !labelMatches(g, attr, "value") {
				continue
			}
			inner := g.Find(attr, cimsDataType, nil)
			for inner.Next() {
				primitive := inner.Result().Object
				if !hasStereotype(g, primitive, "Primitive") {
					continue
				}
				if name, ok := firstLabel(g, primitive); ok {
					return name, true
				}
			}
		}
	}
	if hasStereotype(g, cimDatatype, "Primitive") {
		if name, ok := firstLabel(g, cimDatatype); ok {
			return name, true
		}
	}
	return "", false
}

// labelMatches passes when the subject has no rdfs:label, or one equal
// to want.
func labelMatches(g graph.Graph, subject quad.Value, want string) bool {
	it := g.Find(subject, graph.RDFSLabel, nil)
	bound := false
	for it.Next() {
		bound = true
		if lex, ok := graph.LexicalForm(it.Result().Object); ok && lex == want {
			return true
		}
	}
	return !bound
}

func firstLabel(g graph.Graph, subject quad.Value) (string, bool) {
	it := g.Find(subject, graph.RDFSLabel, nil)
	for it.Next() {
		if lex, ok := graph.LexicalForm(it.Result().Object); ok {
			return lex, true
		}
	}
	return "", false
}
