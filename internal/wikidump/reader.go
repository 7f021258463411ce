// Package wikidump streams pages out of a MediaWiki XML export.
package wikidump

import (
	"compress/bzip2"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Page is one <page> element of the export: its title and the wikitext
// of its latest revision.
type Page struct {
	Title string `xml:"title"`
	Text  string `xml:"revision>text"`
}

// Reader decodes pages from an export stream one at a time, so a full
// dump never has to fit in memory.
type Reader struct {
	dec    *xml.Decoder
	closer io.Closer
}

// New reads pages from an already-open export stream.
func New(r io.Reader) *Reader {
	return &Reader{dec: xml.NewDecoder(r)}
}

// Open opens a dump file, transparently decompressing when the path
// ends in .bz2.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump: %w", err)
	}

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(f)
	}

	reader := New(r)
	reader.closer = f

	return reader, nil
}

// Next returns the next page that has both a title and text. io.EOF
// signals the end of the dump.
func (r *Reader) Next() (Page, error) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			// io.EOF passes through untouched.
			if err == io.EOF {
				return Page{}, err
			}

			return Page{}, fmt.Errorf("failed to read XML token: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "page" {
			continue
		}

		var p Page
		if err := r.dec.DecodeElement(&p, &start); err != nil {
			return Page{}, fmt.Errorf("failed to decode page element: %w", err)
		}

		if p.Title == "" || p.Text == "" {
			continue
		}

		return p, nil
	}
}

// Close closes the underlying file when the reader owns one.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}

	return nil
}
