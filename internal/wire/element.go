// Package wire converts between the provider's XML payloads and a generic
// element tree.
//
// Lookups use namespace-qualified paths in Clark notation
// ("{namespace}local/{namespace}child"); build them with Qualify.
package wire

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Element is a node of a decoded or to-be-encoded XML document.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Text     string
	Children []*Element
}

// NewElement returns an element with the given local name and no namespace.
// Children without a namespace inherit the default namespace of their
// parent when encoded.
func NewElement(name string) *Element {
	return &Element{Name: xml.Name{Local: name}}
}

// NewRequest returns a root request element carrying the API namespace.
func NewRequest(namespace, name string) *Element {
	return &Element{Name: xml.Name{Space: namespace, Local: name}}
}

// SetAttr sets an unqualified attribute, coercing value to a string.
// An existing attribute with the same name is overwritten in place.
func (e *Element) SetAttr(key string, value any) *Element {
	v := fmt.Sprint(value)
	for i := range e.Attrs {
		if e.Attrs[i].Name.Space == "" && e.Attrs[i].Name.Local == key {
			e.Attrs[i].Value = v
			return e
		}
	}
	e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Local: key}, Value: v})
	return e
}

// Append adds child elements, skipping nil ones.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// SubElement creates, appends and returns a new child element.
func (e *Element) SubElement(name string) *Element {
	child := NewElement(name)
	e.Children = append(e.Children, child)
	return child
}

// Attr returns the value of an unqualified attribute.
func (e *Element) Attr(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == key {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the attribute value or "" when absent.
func (e *Element) AttrValue(key string) string {
	v, _ := e.Attr(key)
	return v
}

// Items returns the element's attributes as a flat map. Namespace
// declarations are not included.
func (e *Element) Items() map[string]string {
	items := make(map[string]string, len(e.Attrs))
	for _, a := range e.Attrs {
		if a.Name.Local == "xmlns" || a.Name.Space == "xmlns" {
			continue
		}
		items[a.Name.Local] = a.Value
	}
	return items
}

// FindAll returns the elements reached by following a qualified path from
// e. Each segment matches direct children only, in document order.
func (e *Element) FindAll(qualifiedPath string) []*Element {
	if e == nil {
		return nil
	}
	segments, err := splitQualified(qualifiedPath)
	if err != nil {
		return nil
	}

	current := []*Element{e}
	for _, seg := range segments {
		var next []*Element
		for _, el := range current {
			for _, child := range el.Children {
				if child.Name == seg {
					next = append(next, child)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// Find returns the first element matching the qualified path, or nil.
func (e *Element) Find(qualifiedPath string) *Element {
	found := e.FindAll(qualifiedPath)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// Iter returns e and all its descendants in document order.
func (e *Element) Iter() []*Element {
	if e == nil {
		return nil
	}
	all := []*Element{e}
	for _, c := range e.Children {
		all = append(all, c.Iter()...)
	}
	return all
}

// Qualify turns a slash-separated path into its namespace-qualified form:
// Qualify(ns, "addresses/public") == "{ns}addresses/{ns}public".
func Qualify(namespace, path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = "{" + namespace + "}" + p
	}
	return strings.Join(parts, "/")
}

// splitQualified parses a Clark-notation path. Namespaces may contain '/',
// so the path cannot simply be split on it.
func splitQualified(path string) ([]xml.Name, error) {
	var names []xml.Name
	rest := path
	for rest != "" {
		var name xml.Name
		if strings.HasPrefix(rest, "{") {
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				return nil, fmt.Errorf("wire: unterminated namespace in path %q", path)
			}
			name.Space = rest[1:end]
			rest = rest[end+1:]
		}
		local := rest
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			local = rest[:idx]
			rest = rest[idx+1:]
		} else {
			rest = ""
		}
		if local == "" {
			return nil, fmt.Errorf("wire: empty segment in path %q", path)
		}
		name.Local = local
		names = append(names, name)
	}
	return names, nil
}
