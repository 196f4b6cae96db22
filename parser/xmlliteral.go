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
	"sort"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/spah-soptim/OpenCGMES/graph"
)

// parseTypeLiteral accumulates the raw XML between the property tags
// into a canonical rdf:XMLLiteral lexical form.
func (p *parser) parseTypeLiteral(subject, property quad.Value, emit emitter) error {
	text, err := p.xmlLiteralAccumulateText()
	if err != nil {
		return err
	}
	emit(subject, property, quad.TypedString{Value: quad.String(text), Type: graph.RDFXMLLiteral})
	return nil
}

// xmlLiteralAccumulateText serializes the events up to the enclosing
// end tag: namespace declarations are emitted when a prefix first
// becomes needed, attributes are sorted by qualified name, and text,
// attribute values and comments are escaped by their respective rules.
func (p *parser) xmlLiteralAccumulateText() (string, error) {
	// namespaces tracks the prefixes already declared within the
	// literal; a stack entry per open element.
	namespaces := map[string]string{}
	var stackNamespaces []map[string]string

	var sb strings.Builder
	depth := 0
	for {
		if err := p.nextEventRaw(); err != nil {
			return "", err
		}
		switch p.cur.kind {
		case evStart:
			depth++
			stackNamespaces = append(stackNamespaces, namespaces)
			next := make(map[string]string, len(namespaces))
			for k, v := range namespaces {
				next[k] = v
			}
			namespaces = next

			start := p.cur.start
			sb.WriteString("<")
			sb.WriteString(p.literalQName(start.Name))
			p.xmlLiteralNamespaces(namespaces, start, &sb)
			xmlLiteralAttributes(p, start, &sb)
			sb.WriteString(">")

		case evEnd:
			depth--
			if depth < 0 {
				return sb.String(), nil
			}
			namespaces = stackNamespaces[len(stackNamespaces)-1]
			stackNamespaces = stackNamespaces[:len(stackNamespaces)-1]
			sb.WriteString("</")
			sb.WriteString(p.literalQName(p.cur.end.Name))
			sb.WriteString(">")

		case evChars:
			sb.WriteString(xmlLiteralEscapeText(p.cur.chars))

		case evComment:
			sb.WriteString("<!--")
			sb.WriteString(p.cur.chars)
			sb.WriteString("-->")

		case evPI:
			sb.WriteString("<?")
			sb.WriteString(p.cur.piTarget)
			sb.WriteString(" ")
			sb.WriteString(p.cur.piData)
			sb.WriteString("?>")

		default:
			return "", p.errorf("unexpected event in rdf:XMLLiteral: %s", p.cur.kind)
		}
	}
}

// literalQName renders an element or attribute name with its in-scope
// prefix.
func (p *parser) literalQName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	if prefix, ok := p.prefixFor(n.Space); ok && prefix != "" {
		return prefix + ":" + n.Local
	}
	return n.Local
}

// xmlLiteralNamespaces declares the namespaces first needed by this
// element's name and attributes, sorted by prefix.
func (p *parser) xmlLiteralNamespaces(namespaces map[string]string, start xml.StartElement, sb *strings.Builder) {
	outputNS := map[string]string{}
	p.xmlLiteralNamespaceQName(outputNS, namespaces, start.Name)
	for _, a := range start.Attr {
		if _, isDecl := xmlnsDecl(a); isDecl {
			continue
		}
		if a.Name.Space == "" || a.Name.Space == "xml" {
			continue
		}
		p.xmlLiteralNamespaceQName(outputNS, namespaces, a.Name)
	}

	prefixes := make([]string, 0, len(outputNS))
	for prefix := range outputNS {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		uri := outputNS[prefix]
		sb.WriteString(" ")
		if prefix == "" {
			sb.WriteString(`xmlns="`)
		} else {
			sb.WriteString("xmlns:")
			sb.WriteString(prefix)
			sb.WriteString(`="`)
		}
		sb.WriteString(uri)
		sb.WriteString(`"`)
	}
}

// xmlLiteralNamespaceQName records one name's namespace when its prefix
// is not yet declared, or was declared with a different value.
func (p *parser) xmlLiteralNamespaceQName(outputNS, namespaces map[string]string, n xml.Name) {
	if n.Space == "" {
		return
	}
	prefix, ok := p.prefixFor(n.Space)
	if !ok {
		return
	}
	if declared, ok := namespaces[prefix]; !ok || declared != n.Space {
		outputNS[prefix] = n.Space
		namespaces[prefix] = n.Space
	}
}

// xmlLiteralAttributes writes the element's attributes sorted by
// qualified name.
func xmlLiteralAttributes(p *parser, start xml.StartElement, sb *strings.Builder) {
	attrs := map[string]string{}
	for _, a := range start.Attr {
		if _, isDecl := xmlnsDecl(a); isDecl {
			continue
		}
		name := a.Name.Local
		if a.Name.Space == "xml" {
			name = "xml:" + a.Name.Local
		} else if a.Name.Space != "" {
			name = p.literalQName(a.Name)
		}
		attrs[name] = a.Value
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(" ")
		sb.WriteString(name)
		sb.WriteString(`="`)
		sb.WriteString(xmlLiteralEscapeAttr(attrs[name]))
		sb.WriteString(`"`)
	}
}

// xmlLiteralEscapeText escapes text used in XML content.
func xmlLiteralEscapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// xmlLiteralEscapeAttr escapes text used in an XML attribute value.
func xmlLiteralEscapeAttr(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
