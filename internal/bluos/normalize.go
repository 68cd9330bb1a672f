package bluos

import (
	"fmt"
	"strings"

	"github.com/clbanning/mxj/v2"
)

// The mxj node-tree conventions this normalizer consumes: attribute
// keys carry a "-" prefix, element character data sits under "#text",
// a repeated child parses to []interface{} while a lone child parses to
// a plain map (or a bare string when the element has no attributes).
const (
	attrPrefix = "-"
	cdataKey   = "#text"
)

// normalizeBody parses one response body and folds it into a canonical
// Record per the endpoint descriptor.
func normalizeBody(ep endpoint, body []byte) (Record, error) {
	tree, err := mxj.NewMapXml(body)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w: %v", ep.name, ErrMalformedResponse, err)
	}
	return normalizeTree(ep, map[string]any(tree))
}

// normalizeTree unwraps the endpoint's root element and normalizes it.
// A missing root is malformed: an empty Record would hide real protocol
// breakage from pollers that cannot inspect the raw body.
func normalizeTree(ep endpoint, tree map[string]any) (Record, error) {
	rootVal, ok := tree[ep.root]
	if !ok {
		return Record{}, fmt.Errorf("%s: missing <%s> root element: %w", ep.name, ep.root, ErrMalformedResponse)
	}
	switch node := rootVal.(type) {
	case map[string]any:
		return normalizeNode(ep, node), nil
	case nil:
		// Self-closing root, e.g. an empty <playlists/>.
		return newRecord(), nil
	case string:
		// Root with bare character data and nothing else.
		rec := newRecord()
		rec.Fields[cdataKey] = node
		applyTextAlias(ep, rec)
		return rec, nil
	default:
		return Record{}, fmt.Errorf("%s: unexpected %T under <%s>: %w", ep.name, rootVal, ep.root, ErrMalformedResponse)
	}
}

// normalizeNode converts one element node. Attributes and character
// data become scalar fields; child elements become child Records. Tags
// the schema declares repeatable are coerced to sequences regardless of
// how many siblings the parser saw, which is the one spot where a
// one-element collection and a larger one would otherwise diverge.
func normalizeNode(ep endpoint, node map[string]any) Record {
	rec := newRecord()
	for key, val := range node {
		name := strings.TrimPrefix(key, attrPrefix)
		switch v := val.(type) {
		case string:
			if ep.repeatable(name) {
				rec.Lists[name] = []Record{scalarRecord(ep, v)}
				continue
			}
			rec.Fields[name] = v
		case map[string]any:
			child := normalizeNode(ep, v)
			rec.Lists[name] = []Record{child}
		case []any:
			rec.Lists[name] = normalizeSiblings(ep, v)
		case nil:
			// Empty element such as <sleep/>: present but valueless.
			if ep.repeatable(name) {
				rec.Lists[name] = []Record{}
				continue
			}
			rec.Fields[name] = ""
		default:
			rec.Fields[name] = fmt.Sprint(v)
		}
	}
	applyTextAlias(ep, rec)
	return rec
}

func normalizeSiblings(ep endpoint, siblings []any) []Record {
	out := make([]Record, 0, len(siblings))
	for _, item := range siblings {
		switch v := item.(type) {
		case map[string]any:
			out = append(out, normalizeNode(ep, v))
		case string:
			out = append(out, scalarRecord(ep, v))
		case nil:
			out = append(out, newRecord())
		default:
			out = append(out, scalarRecord(ep, fmt.Sprint(v)))
		}
	}
	return out
}

// scalarRecord wraps a bare-text element, e.g. <name>Party time</name>
// with no attributes, so collections stay uniformly Record-shaped.
func scalarRecord(ep endpoint, text string) Record {
	rec := newRecord()
	rec.Fields[cdataKey] = text
	applyTextAlias(ep, rec)
	return rec
}

// applyTextAlias enforces the label invariant: whenever the endpoint
// declares an alias source and the element carries it, the Record also
// exposes it as "text". An existing text field always wins.
func applyTextAlias(ep endpoint, rec Record) {
	if ep.textAlias == "" {
		return
	}
	if _, ok := rec.Fields["text"]; ok {
		return
	}
	if src, ok := rec.Fields[ep.textAlias]; ok {
		rec.Fields["text"] = src
	}
}
