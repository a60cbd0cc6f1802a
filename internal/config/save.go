package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"qkart/internal/log"
)

// SaveEndpoint writes api.endpoint into the config file, keeping comments and
// every other section intact. The file is created if it does not exist.
func SaveEndpoint(configPath, endpoint string) error {
	if err := ValidateAPI(APIConfig{Endpoint: endpoint}); err != nil {
		return err
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // G304: user config path
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	api := mappingValue(root, "api")
	if api == nil {
		api = &yaml.Node{Kind: yaml.MappingNode}
		root.Content = append(root.Content, scalar("api"), api)
	}
	if api.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: api is not a mapping")
	}

	if v := mappingValue(api, "endpoint"); v != nil {
		v.Kind = yaml.ScalarNode
		v.Tag = "!!str"
		v.Value = endpoint
	} else {
		api.Content = append(api.Content, scalar("endpoint"), scalar(endpoint))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	log.Info(log.CatConfig, "Saved endpoint", "path", configPath, "endpoint", endpoint)
	return nil
}

// mappingValue returns the value node stored under key, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
