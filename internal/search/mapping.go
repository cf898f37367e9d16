package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve mapping for item documents: English
// stemming on the three text fields, keyword analysis on tags so compound
// names like "divide-and-conquer" stay intact.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	summaryFieldMapping := bleve.NewTextFieldMapping()
	summaryFieldMapping.Analyzer = en.AnalyzerName
	summaryFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("summary", summaryFieldMapping)

	// Body can be large; searchable but not stored.
	bodyFieldMapping := bleve.NewTextFieldMapping()
	bodyFieldMapping.Analyzer = en.AnalyzerName
	bodyFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("body", bodyFieldMapping)

	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = keyword.Name
	tagsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	idFieldMapping := bleve.NewNumericFieldMapping()
	idFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}
