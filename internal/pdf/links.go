// Package pdf extracts hyperlinks from raw PDF bytes. Link annotations
// are read through pdfcpu; a raw byte scan catches URLs that only appear
// in the text stream.
package pdf

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	// uriEntryRe matches /URI action entries in the PDF object stream.
	uriEntryRe = regexp.MustCompile(`/URI\s*\(([^)]+)\)`)
	// inlineLinkRe matches URLs and mailto links embedded in text.
	inlineLinkRe = regexp.MustCompile(`(?:https?://|mailto:)[^\s<>()"']+`)
)

// Extractor pulls the raw hyperlink set out of a PDF document.
type Extractor struct {
	conf *model.Configuration
}

// NewExtractor creates an Extractor with relaxed validation so slightly
// malformed candidate uploads still yield their links.
func NewExtractor() *Extractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Extractor{conf: conf}
}

// ExtractLinks returns the deduplicated, sorted set of hyperlinks found in
// the document. Annotation parse failures are not fatal; the byte scan
// still runs so a damaged annotation table does not lose every link.
func (e *Extractor) ExtractLinks(data []byte) ([]string, error) {
	found := make(map[string]struct{})

	if pageAnnots, err := api.Annotations(bytes.NewReader(data), nil, e.conf); err == nil {
		for _, annots := range pageAnnots {
			annot, ok := annots[model.AnnLink]
			if !ok {
				continue
			}
			for _, renderer := range annot.Map {
				link, ok := renderer.(model.LinkAnnotation)
				if !ok {
					continue
				}
				if uri := strings.TrimSpace(link.URI); uri != "" {
					found[uri] = struct{}{}
				}
			}
		}
	}

	scanBytes(data, found)

	links := make([]string, 0, len(found))
	for link := range found {
		links = append(links, link)
	}
	sort.Strings(links)
	return links, nil
}

// scanBytes collects /URI entries and inline URLs from the raw byte
// stream into found.
func scanBytes(data []byte, found map[string]struct{}) {
	for _, match := range uriEntryRe.FindAllSubmatch(data, -1) {
		if uri := strings.TrimSpace(string(match[1])); uri != "" {
			found[uri] = struct{}{}
		}
	}
	for _, match := range inlineLinkRe.FindAll(data, -1) {
		link := strings.TrimRight(string(match), ".,;")
		if link != "" {
			found[link] = struct{}{}
		}
	}
}
