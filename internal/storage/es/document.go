package es

import (
	"time"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
)

// KBDocument is the indexed form of a benchmark document.
type KBDocument struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Topic     string    `json:"topic,omitempty"`
	IndexedAt time.Time `json:"indexed_at"`
}

const analyzerName = "kb_english"

type IndexBuilder struct {
	now func() time.Time
}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{now: time.Now}
}

func (b *IndexBuilder) mapToESDocument(d dataset.Document) KBDocument {
	return KBDocument{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Topic:     d.Topic,
		IndexedAt: b.now().UTC(),
	}
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				analyzerName: types.StandardAnalyzer{
					Stopwords: []string{"_english_"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":         types.NewKeywordProperty(),
			"title":      b.createTextPropertyWithKeyword(analyzerName),
			"content":    b.createTextProperty(analyzerName),
			"topic":      types.NewKeywordProperty(),
			"indexed_at": types.NewDateProperty(),
		},
	}
}

func (b *IndexBuilder) createTextProperty(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	return textProp
}

func (b *IndexBuilder) createTextPropertyWithKeyword(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
