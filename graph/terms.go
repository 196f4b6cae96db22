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
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/owl"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
	"github.com/cayleygraph/quad/voc/xsd"
)

// Full-IRI terms of the well-known vocabularies. The quad voc packages
// carry prefixed names; triple identity here is on full IRIs.
var (
	RDFType      = quad.IRI(rdf.NS + "type")
	RDFStatement = quad.IRI(rdf.NS + "Statement")
	RDFSubject   = quad.IRI(rdf.NS + "subject")
	RDFPredicate = quad.IRI(rdf.NS + "predicate")
	RDFObject    = quad.IRI(rdf.NS + "object")
	RDFFirst     = quad.IRI(rdf.NS + "first")
	RDFRest      = quad.IRI(rdf.NS + "rest")
	RDFNil       = quad.IRI(rdf.NS + "nil")

	RDFXMLLiteral = quad.IRI(rdf.NS + "XMLLiteral")
	RDFLangString = quad.IRI(rdf.NS + "langString")

	RDFSDomain = quad.IRI(rdfs.NS + "domain")
	RDFSRange  = quad.IRI(rdfs.NS + "range")
	RDFSLabel  = quad.IRI(rdfs.NS + "label")

	OWLOntology    = quad.IRI(owl.NS + "Ontology")
	OWLVersionIRI  = quad.IRI(owl.NS + "versionIRI")
	OWLVersionInfo = quad.IRI(owl.NS + "versionInfo")

	XSDString = quad.IRI(xsd.NS + "string")
	XSDAnyURI = quad.IRI(xsd.NS + "anyURI")
)
