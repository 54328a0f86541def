// Package dataset provides benchmark corpora: documents to index, queries to
// run and the ground truth used for quality scoring.
package dataset

// GroundTruth maps query text to the raw ids of its relevant documents.
// Ids keep whatever shape the fixture or generator produced.
type GroundTruth map[string][]any

type Document struct {
	ID       string            `json:"id" yaml:"id"`
	Title    string            `json:"title" yaml:"title"`
	Content  string            `json:"content" yaml:"content"`
	Topic    string            `json:"topic,omitempty" yaml:"topic,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Corpus is everything one benchmark run needs at a given scale.
type Corpus struct {
	Scale     Scale
	Documents []Document
	Queries   []string
	Truth     GroundTruth
}

// SizeBytes approximates the corpus footprint for storage cost estimation.
func (c *Corpus) SizeBytes() int64 {
	var n int64
	for _, d := range c.Documents {
		n += int64(len(d.ID) + len(d.Title) + len(d.Content))
	}
	return n
}
