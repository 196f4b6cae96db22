// Package cim implements the IEC 61970-552 (CIMXML) vocabulary: the CIM
// namespaces for the schema versions in use, the model-description and
// difference-model header terms, and the document contexts of a CIMXML file.
package cim

import (
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc"
)

const (
	// NSModelDescription is the namespace of the model header vocabulary.
	NSModelDescription = `http://iec.ch/TC57/61970-552/ModelDescription/1#`
	// NSDifferenceModel is the namespace of the difference model vocabulary.
	NSDifferenceModel = `http://iec.ch/TC57/61970-552/DifferenceModel/1#`
	// NSSchemaExtensions is the namespace of the 1999 RDF schema extensions
	// (cims) used by CIM profile ontologies.
	NSSchemaExtensions = `http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#`
	// NSDcat is the namespace of the W3C data catalog vocabulary.
	NSDcat = `http://www.w3.org/ns/dcat#`

	// NSCim16 is the CIM namespace used by CGMES v2.4.15.
	NSCim16 = `http://iec.ch/TC57/2013/CIM-schema-cim16#`
	// NSCim17 is the CIM namespace used by CGMES v3.0.
	NSCim17 = `http://iec.ch/TC57/CIM100#`
	// NSCim18 is the CIM namespace of CIM version 18.
	NSCim18 = `https://cim.ucaiug.io/ns#`
)

func init() {
	voc.Register(voc.Namespace{Full: NSModelDescription, Prefix: "md:"})
	voc.Register(voc.Namespace{Full: NSDifferenceModel, Prefix: "dm:"})
	voc.Register(voc.Namespace{Full: NSSchemaExtensions, Prefix: "cims:"})
	voc.Register(voc.Namespace{Full: NSDcat, Prefix: "dcat:"})
}

// Model header terms.
const (
	ClassNameFullModel       = "FullModel"
	ClassNameDifferenceModel = "DifferenceModel"

	TagNameForwardDifferences = "forwardDifferences"
	TagNameReverseDifferences = "reverseDifferences"
	TagNamePreconditions      = "preconditions"
)

var (
	// TypeFullModel is the rdf:type of a full model header subject.
	TypeFullModel = quad.IRI(NSModelDescription + ClassNameFullModel)
	// TypeDifferenceModel is the rdf:type of a difference model header subject.
	TypeDifferenceModel = quad.IRI(NSDifferenceModel + ClassNameDifferenceModel)

	// PredicateProfile references a profile version IRI from a model header.
	PredicateProfile = quad.IRI(NSModelDescription + "Model.profile")
	// PredicateSupersedes references the models replaced by a model.
	PredicateSupersedes = quad.IRI(NSModelDescription + "Model.Supersedes")
	// PredicateDependentOn references the models a model depends on.
	PredicateDependentOn = quad.IRI(NSModelDescription + "Model.DependentOn")

	// GraphForwardDifferences names the forward differences graph.
	GraphForwardDifferences = quad.IRI(NSDifferenceModel + TagNameForwardDifferences)
	// GraphReverseDifferences names the reverse differences graph.
	GraphReverseDifferences = quad.IRI(NSDifferenceModel + TagNameReverseDifferences)
	// GraphPreconditions names the preconditions graph.
	GraphPreconditions = quad.IRI(NSDifferenceModel + TagNamePreconditions)
)

// Version enumerates the CIM schema versions known to this library.
// The version is identified by the namespace bound to the "cim" prefix.
type Version int

const (
	// NoCIM marks a document or graph with no recognized CIM namespace.
	NoCIM Version = iota
	// CIM16 is used in CGMES v2.4.15.
	CIM16
	// CIM17 is used in CGMES v3.0.
	CIM17
	// CIM18 has no matching CGMES version yet.
	CIM18
)

// VersionFromNamespace returns the CIM version for a given "cim" namespace,
// or NoCIM if the namespace is not recognized.
func VersionFromNamespace(namespace string) Version {
	switch namespace {
	case NSCim16:
		return CIM16
	case NSCim17:
		return CIM17
	case NSCim18:
		return CIM18
	default:
		return NoCIM
	}
}

func (v Version) String() string {
	switch v {
	case CIM16:
		return "CIM_16"
	case CIM17:
		return "CIM_17"
	case CIM18:
		return "CIM_18"
	default:
		return "NO_CIM"
	}
}

// DocumentContext is the context of a CIMXML document: full model,
// difference model, or one of the named containers of a difference model.
type DocumentContext int

const (
	ContextBody DocumentContext = iota
	ContextFullModel
	ContextDifferenceModel
	ContextForwardDifferences
	ContextReverseDifferences
	ContextPreconditions
)

// DefaultGraphName is the reserved name of a dataset's default graph.
const DefaultGraphName = quad.IRI("urn:x-arq:DefaultGraph")

// GraphName returns the name of the dataset graph that holds triples
// emitted in the given context.
func (c DocumentContext) GraphName() quad.IRI {
	switch c {
	case ContextFullModel:
		return TypeFullModel
	case ContextDifferenceModel:
		return TypeDifferenceModel
	case ContextForwardDifferences:
		return GraphForwardDifferences
	case ContextReverseDifferences:
		return GraphReverseDifferences
	case ContextPreconditions:
		return GraphPreconditions
	default:
		return DefaultGraphName
	}
}

func (c DocumentContext) String() string {
	switch c {
	case ContextFullModel:
		return "fullModel"
	case ContextDifferenceModel:
		return "differenceModel"
	case ContextForwardDifferences:
		return TagNameForwardDifferences
	case ContextReverseDifferences:
		return TagNameReverseDifferences
	case ContextPreconditions:
		return TagNamePreconditions
	default:
		return "body"
	}
}
