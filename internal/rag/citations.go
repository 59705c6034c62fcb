// Package rag - citations.go maps citation markers in generated text back
// to the retrieved documents.
//
// The router response is expected to echo the positional [Source N]
// markers from the augmented prompt. Extraction is post-hoc: markers are
// collected from the response and looked up against the document sequence
// by position. Markers pointing outside the sequence are ignored.
package rag

import (
	"regexp"
	"strconv"

	"github.com/caremesh/triage-gateway/external"
)

// Citation is one cited document, keyed in the citation map by the marker
// index as a string ("1", "2", ...).
type Citation struct {
	Title    string `json:"title"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

var citationMarker = regexp.MustCompile(`\[Source (\d+)\]`)

// ExtractCitations collects [Source N] markers from the response and
// resolves them positionally against docs. Returns nil when nothing was
// cited.
func ExtractCitations(response string, docs []external.Document) map[string]Citation {
	matches := citationMarker.FindAllStringSubmatch(response, -1)
	if len(matches) == 0 {
		return nil
	}

	citations := make(map[string]Citation)
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(docs) {
			continue
		}
		key := m[1]
		if _, ok := citations[key]; ok {
			continue
		}
		doc := docs[n-1]
		citations[key] = Citation{
			Title:    doc.Title,
			Source:   doc.Source,
			Category: doc.Category,
		}
	}
	if len(citations) == 0 {
		return nil
	}
	return citations
}
