package dataset

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
)

type topic struct {
	name     string
	summary  string
	keywords []string
}

var topics = []topic{
	{"machine learning", "Machine learning lets computers learn patterns from data without explicit rules.",
		[]string{"training", "features", "labels", "generalization", "overfitting"}},
	{"deep learning", "Deep learning uses multi-layer neural networks to learn data representations.",
		[]string{"neural", "layers", "backpropagation", "activation", "gradients"}},
	{"natural language processing", "Natural language processing teaches computers to understand and generate human language.",
		[]string{"tokens", "syntax", "semantics", "translation", "parsing"}},
	{"computer vision", "Computer vision extracts meaningful information from images and video.",
		[]string{"pixels", "detection", "segmentation", "convolution", "cameras"}},
	{"recommender systems", "Recommender systems predict what a user will like from behaviour and preferences.",
		[]string{"ratings", "collaborative", "filtering", "ranking", "personalization"}},
	{"knowledge graphs", "A knowledge graph is a structured semantic store of entities and their relations.",
		[]string{"entities", "relations", "ontology", "triples", "reasoning"}},
	{"reinforcement learning", "Reinforcement learning trains agents to act by interacting with an environment.",
		[]string{"reward", "policy", "agent", "exploration", "environment"}},
	{"transfer learning", "Transfer learning reuses knowledge learned in one domain in a related one.",
		[]string{"pretrained", "finetuning", "domain", "adaptation", "backbone"}},
	{"federated learning", "Federated learning trains shared models without moving raw data off devices.",
		[]string{"privacy", "devices", "aggregation", "clients", "decentralized"}},
	{"model compression", "Model compression shrinks neural models so they are cheaper to deploy.",
		[]string{"pruning", "quantization", "distillation", "sparsity", "latency"}},
}

var queryTemplates = []string{
	"what is %s",
	"explain %s in detail",
	"how does %s work",
	"applications of %s",
	"%s best practices",
	"introduction to %s",
}

// Generator builds deterministic synthetic corpora. The same seed and
// parameters always produce the same documents, queries and truth.
type Generator struct {
	seed          int64
	contentLength int
}

type GeneratorOption func(*Generator)

// WithContentLength sets the approximate document length in bytes.
func WithContentLength(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.contentLength = n
		}
	}
}

func NewGenerator(seed int64, opts ...GeneratorOption) *Generator {
	g := &Generator{seed: seed, contentLength: 500}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a corpus for scale with queriesPerTopic queries per topic
// that has at least one document. Each query's truth is every document of its topic.
func (g *Generator) Generate(scale Scale, queriesPerTopic int) (*Corpus, error) {
	count := scale.DocCount()
	if count == 0 {
		return nil, fmt.Errorf("scale %q cannot be generated", scale)
	}
	if queriesPerTopic <= 0 {
		queriesPerTopic = 2
	}
	queriesPerTopic = min(queriesPerTopic, len(queryTemplates))

	rng := rand.New(rand.NewSource(g.seed))

	c := &Corpus{
		Scale:     scale,
		Documents: make([]Document, 0, count),
		Truth:     make(GroundTruth),
	}

	byTopic := make(map[string][]any)
	for i := 0; i < count; i++ {
		t := topics[rng.Intn(len(topics))]
		doc := Document{
			ID:      fmt.Sprintf("doc_%04d", i),
			Title:   fmt.Sprintf("%s - document %d", t.name, i+1),
			Content: g.expand(rng, t),
			Topic:   t.name,
			Metadata: map[string]string{
				"generated": "true",
				"index":     fmt.Sprint(i),
			},
		}
		c.Documents = append(c.Documents, doc)
		byTopic[t.name] = append(byTopic[t.name], doc.ID)
	}

	for _, t := range topics {
		ids, ok := byTopic[t.name]
		if !ok {
			continue
		}
		for i := 0; i < queriesPerTopic; i++ {
			q := fmt.Sprintf(queryTemplates[i], t.name)
			c.Queries = append(c.Queries, q)
			c.Truth[q] = ids
		}
	}

	slog.Debug("generated corpus",
		"scale", scale,
		"documents", len(c.Documents),
		"queries", len(c.Queries),
		"seed", g.seed)

	return c, nil
}

func (g *Generator) expand(rng *rand.Rand, t topic) string {
	var b strings.Builder
	b.WriteString(t.summary)
	for b.Len() < g.contentLength {
		kw := t.keywords[rng.Intn(len(t.keywords))]
		fmt.Fprintf(&b, " In %s, %s matters for real systems.", t.name, kw)
	}
	return b.String()
}
