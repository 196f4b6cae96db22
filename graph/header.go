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

	"github.com/cayleygraph/quad"

	"github.com/spah-soptim/OpenCGMES/voc/cim"
)

// CimVersionOf determines the CIM version of a graph from the
// namespace bound to its "cim" prefix, or cim.NoCIM when the graph has
// no recognized binding.
func CimVersionOf(g Graph) cim.Version {
	ns, ok := g.Prefixes().Get("cim")
	if !ok {
		return cim.NoCIM
	}
	return cim.VersionFromNamespace(ns)
}

// ErrNoModel is reported when a header graph types no subject as either
// md:FullModel or dm:DifferenceModel.
var ErrNoModel = errors.New("found neither FullModel nor DifferenceModel in the header graph")

// ErrNotCimGraph is reported when a graph lacks a recognized "cim"
// namespace binding.
var ErrNotCimGraph = errors.New("graph does not appear to be a CIM graph: no proper 'cim' namespace defined")

// ModelHeader wraps a graph holding the model header of a CIMXML
// document. A well-formed header types exactly one subject as either
// md:FullModel or dm:DifferenceModel, and may carry Model.profile,
// Model.Supersedes and Model.DependentOn references.
type ModelHeader struct {
	Graph
}

// WrapModelHeader wraps a graph as a model header. The graph must carry
// a recognized "cim" namespace binding.
func WrapModelHeader(g Graph) (*ModelHeader, error) {
	if h, ok := g.(*ModelHeader); ok {
		return h, nil
	}
	if CimVersionOf(g) == cim.NoCIM {
		return nil, ErrNotCimGraph
	}
	return &ModelHeader{Graph: g}, nil
}

// IsFullModel reports whether the header types a subject as md:FullModel.
func (h *ModelHeader) IsFullModel() bool {
	return h.Find(nil, RDFType, cim.TypeFullModel).Next()
}

// IsDifferenceModel reports whether the header types a subject as
// dm:DifferenceModel.
func (h *ModelHeader) IsDifferenceModel() bool {
	return h.Find(nil, RDFType, cim.TypeDifferenceModel).Next()
}

// Model returns the header subject typed as md:FullModel or
// dm:DifferenceModel.
func (h *ModelHeader) Model() (quad.Value, error) {
	it := h.Find(nil, RDFType, cim.TypeFullModel)
	if it.Next() {
		return it.Result().Subject, nil
	}
	it = h.Find(nil, RDFType, cim.TypeDifferenceModel)
	if it.Next() {
		return it.Result().Subject, nil
	}
	return nil, ErrNoModel
}

func (h *ModelHeader) objectsOf(predicate quad.IRI) (map[quad.Value]struct{}, error) {
	model, err := h.Model()
	if err != nil {
		return nil, err
	}
	out := make(map[quad.Value]struct{})
	it := h.Find(model, predicate, nil)
	for it.Next() {
		out[it.Result().Object] = struct{}{}
	}
	return out, nil
}

// Profiles returns the Model.profile references of the model as they
// stand in the header graph; they are not checked against any registry,
// and references parsed without a header profile are literals.
func (h *ModelHeader) Profiles() (map[quad.Value]struct{}, error) {
	return h.objectsOf(cim.PredicateProfile)
}

// Supersedes returns the models superseded by this model.
func (h *ModelHeader) Supersedes() (map[quad.Value]struct{}, error) {
	return h.objectsOf(cim.PredicateSupersedes)
}

// DependentOn returns the models this model depends on.
func (h *ModelHeader) DependentOn() (map[quad.Value]struct{}, error) {
	return h.objectsOf(cim.PredicateDependentOn)
}
