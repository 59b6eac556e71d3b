// Package irishrail provides access to the Irish Rail realtime XML feeds.
package irishrail

import (
	"encoding/xml"
	"fmt"
)

// Document is a parsed feed response. Child elements are matched by local
// name, so callers never deal with the feed namespace directly.
type Document struct {
	root element
}

type element struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []element `xml:",any"`
}

// ParseDocument reads a feed document from raw XML bytes.
func ParseDocument(data []byte) (*Document, error) {
	var root element
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing feed document: %w", err)
	}
	return &Document{root: root}, nil
}

// Record is one flat record projected out of a feed document.
// A value is nil when the mapped child element is absent.
type Record map[string]*string

// MapRecords projects every occurrence of recordTag in doc into a Record using
// fieldMap, which maps output field names to source child tag names. Records
// come back in document order, one per tag occurrence, with no deduplication
// and no type coercion. A record element with none of the mapped children
// still yields a record of all-nil values.
func MapRecords(doc *Document, recordTag string, fieldMap map[string]string) []Record {
	records := make([]Record, 0)
	if doc == nil {
		return records
	}
	for i := range doc.root.Children {
		el := &doc.root.Children[i]
		if el.XMLName.Local != recordTag {
			continue
		}
		record := make(Record, len(fieldMap))
		for field, tag := range fieldMap {
			record[field] = childText(el, tag)
		}
		records = append(records, record)
	}
	return records
}

// childText returns the text content of the first child of el with the given
// local tag name, or nil if no such child exists.
func childText(el *element, tag string) *string {
	for i := range el.Children {
		if el.Children[i].XMLName.Local == tag {
			text := el.Children[i].Text
			return &text
		}
	}
	return nil
}
