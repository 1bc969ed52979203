package wire

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ContentTypeXML is sent with every POST and PUT body.
const ContentTypeXML = "application/xml; charset=UTF-8"

// MalformedResponseError is returned when a body that should be XML cannot
// be parsed. Body holds the raw bytes for diagnostics.
type MalformedResponseError struct {
	Body   []byte
	Driver string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: failed to parse XML: %v", e.Driver, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Payload is the result of decoding a response body.
type Payload struct {
	// Root is the parsed document, nil for empty or passthrough bodies.
	Root *Element
	// Raw is the body exactly as received.
	Raw []byte
}

// NoContent reports whether the response had an empty body.
func (p Payload) NoContent() bool { return len(p.Raw) == 0 }

// Decoder parses response bodies for one provider variant.
type Decoder struct {
	// Driver identifies the client in MalformedResponseError.
	Driver string

	// RequireXMLContentType makes Decode parse only bodies whose
	// Content-Type mentions application/xml; other bodies are returned
	// unparsed.
	RequireXMLContentType bool
}

// Decode parses raw according to the decoder's rules. An empty body is not
// an error.
func (d Decoder) Decode(raw []byte, contentType string) (Payload, error) {
	if len(raw) == 0 {
		return Payload{}, nil
	}
	if d.RequireXMLContentType && !HasContentType(contentType, "application/xml") {
		return Payload{Raw: raw}, nil
	}

	root, err := Parse(raw)
	if err != nil {
		return Payload{}, &MalformedResponseError{Body: raw, Driver: d.Driver, Err: err}
	}
	return Payload{Root: root, Raw: raw}, nil
}

// HasContentType reports whether header contains want, ignoring case.
func HasContentType(header, want string) bool {
	if header == "" {
		return false
	}
	return strings.Contains(strings.ToLower(header), strings.ToLower(want))
}

// Parse builds an element tree from an XML document. Names carry their
// resolved namespace.
func Parse(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			} else if len(bytes.TrimSpace(t)) > 0 {
				return nil, errors.New("text outside of root element")
			}
		}
	}

	if root == nil {
		return nil, errors.New("no root element")
	}
	if len(stack) != 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// Encode serializes an element tree. A root element carrying a namespace
// emits it as the default xmlns declaration.
func Encode(root *Element) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := encodeElement(enc, root); err != nil {
		return nil, fmt.Errorf("wire: failed to encode %s: %w", root.Name.Local, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("wire: failed to encode %s: %w", root.Name.Local, err)
	}
	return buf.Bytes(), nil
}

func encodeElement(enc *xml.Encoder, el *Element) error {
	start := xml.StartElement{Name: el.Name, Attr: el.Attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if el.Text != "" {
		if err := enc.EncodeToken(xml.CharData(el.Text)); err != nil {
			return err
		}
	}
	for _, c := range el.Children {
		if err := encodeElement(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// MetadataElement renders metadata as <metadata><meta key="k">v</meta>...
// Keys are written in sorted order. Returns nil for an empty map.
func MetadataElement(metadata map[string]string) *Element {
	if len(metadata) == 0 {
		return nil
	}
	el := NewElement("metadata")
	for _, k := range sortedKeys(metadata) {
		meta := el.SubElement("meta").SetAttr("key", k)
		meta.Text = metadata[k]
	}
	return el
}

// PersonalityElement renders injected files as
// <personality><file path="p">base64</file>... Returns nil for an empty map.
func PersonalityElement(files map[string][]byte) *Element {
	if len(files) == 0 {
		return nil
	}
	el := NewElement("personality")
	for _, path := range sortedKeys(files) {
		file := el.SubElement("file").SetAttr("path", path)
		file.Text = base64.StdEncoding.EncodeToString(files[path])
	}
	return el
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
