package es

import "github.com/elastic/go-elasticsearch/v8"

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
	APIKey    string
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	// Retries happen in the runner, never in the client.
	cfg := elasticsearch.Config{
		Addresses:    config.Addresses,
		DisableRetry: true,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}
	if config.APIKey != "" {
		cfg.APIKey = config.APIKey
	}

	client, err := elasticsearch.NewTypedClient(cfg)

	return client, err
}
