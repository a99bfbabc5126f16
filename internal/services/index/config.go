// File: internal/services/index/config.go
package index

import "fmt"

type Config struct {
	// Path of the persisted JSON document holding all entries.
	Path string
}

func DefaultConfig() *Config {
	return &Config{Path: "knowledge_base.json"}
}

func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("index path is required")
	}
	return nil
}
