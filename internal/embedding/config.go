package embedding

// Config selects the embedding backend for the vector baseline.
// Bound from KBBENCH_EMBEDDING_* variables.
type Config struct {
	BaseURL   string `envconfig:"BASE_URL" default:"http://localhost:11434"`
	Model     string `envconfig:"MODEL" default:"qwen3-embedding:0.6b"`
	MaxLength int    `envconfig:"MAX_LENGTH"`
}

func (c Config) Options() []EmbedderOption {
	return []EmbedderOption{
		WithExecutorModel(c.Model),
		WithExecutorMaxLength(c.MaxLength),
	}
}
