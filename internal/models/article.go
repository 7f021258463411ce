// Package models defines the data types flowing through the dataset pipeline.
package models

// Article is one raw page as stored by the importer. Immutable once
// written to the store.
type Article struct {
	ID      int64
	Title   string
	Content string
}

// CleanedArticle is an article whose wikitext survived classification
// and was reduced to plain text. It only lives for one processing pass.
type CleanedArticle struct {
	Title   string
	Content string
}
