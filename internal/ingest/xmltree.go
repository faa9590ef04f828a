package ingest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const (
	attrPrefix   = "@_"
	textNodeName = "#text"
)

type xmlFrame struct {
	name     string
	children map[string]any
	text     strings.Builder
}

// value collapses the frame: text-only elements become their trimmed text,
// anything with attributes or children becomes a map (mixed text under #text).
func (f *xmlFrame) value() any {
	text := strings.TrimSpace(f.text.String())
	if len(f.children) == 0 {
		return text
	}
	if text != "" {
		f.children[textNodeName] = text
	}
	return f.children
}

func (f *xmlFrame) add(name string, v any) {
	if f.children == nil {
		f.children = make(map[string]any)
	}
	switch existing := f.children[name].(type) {
	case nil:
		f.children[name] = v
	case []any:
		f.children[name] = append(existing, v)
	default:
		f.children[name] = []any{existing, v}
	}
}

// decodeXMLTree reads a document into nested maps keyed by element name.
// Repeated siblings become []any, attributes are stored as "@_name" and all
// text stays a string.
func decodeXMLTree(content []byte) (map[string]any, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	root := &xmlFrame{children: make(map[string]any)}
	stack := []*xmlFrame{root}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			frame := &xmlFrame{name: t.Name.Local}
			for _, attr := range t.Attr {
				frame.add(attrPrefix+attr.Name.Local, attr.Value)
			}
			stack = append(stack, frame)
		case xml.EndElement:
			if len(stack) == 1 {
				return nil, errors.New("unexpected closing tag </" + t.Name.Local + ">")
			}
			stack = stack[:len(stack)-1]
			stack[len(stack)-1].add(top.name, top.value())
		case xml.CharData:
			top.text.Write(t)
		}
	}
	if len(stack) != 1 {
		return nil, errors.New("unexpected end of document inside <" + stack[len(stack)-1].name + ">")
	}
	return root.children, nil
}
