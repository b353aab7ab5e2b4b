package bulk

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/shipdeck/shipdeck-cli/internal/workflow"
	"gopkg.in/yaml.v3"
)

const MaxBatchSize = 200

// BatchConfig represents a bulk action loaded from a file: one action
// applied to a list of record ids.
type BatchConfig struct {
	Action string            `json:"action" yaml:"action"`
	Scope  string            `json:"scope,omitempty" yaml:"scope,omitempty"`
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	IDs    []string          `json:"ids" yaml:"ids"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// LoadBatchConfig loads a batch action from file(s). Multiple files must
// agree on the action; their id lists are combined.
func LoadBatchConfig(paths []string) (*BatchConfig, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files specified")
	}

	if len(paths) == 1 {
		return ParseBatchConfig(paths[0])
	}

	return combineBatchConfigs(paths)
}

// ParseBatchConfig parses a single file as a batch action
func ParseBatchConfig(path string) (*BatchConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".jsonl" {
		return parseJSONL(content)
	}

	if ext == ".md" || ext == ".markdown" {
		return parseMarkdown(content)
	}

	var config BatchConfig
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(content, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	} else {
		if err := json.Unmarshal(content, &config); err != nil {
			// Files without a known extension get one more chance as YAML
			if yerr := yaml.Unmarshal(content, &config); yerr != nil {
				return nil, fmt.Errorf("failed to parse %s: not valid JSON or YAML", path)
			}
		}
	}

	return validateBatchConfig(&config)
}

// combineBatchConfigs merges multiple batch files into one action
func combineBatchConfigs(paths []string) (*BatchConfig, error) {
	combined := &BatchConfig{}

	for _, path := range paths {
		config, err := ParseBatchConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		if combined.Action == "" {
			combined.Action = config.Action
			combined.Scope = config.Scope
			combined.Params = config.Params
		} else if combined.Action != config.Action {
			return nil, fmt.Errorf("conflicting actions across files: %q vs %q in %s",
				combined.Action, config.Action, path)
		}

		combined.IDs = append(combined.IDs, config.IDs...)
	}

	combined.Title = fmt.Sprintf("Batch of %d records", len(combined.IDs))

	return validateBatchConfig(combined)
}

// parseJSONL parses a JSONL file: one record per line, each carrying the
// action (first line wins) and an id.
func parseJSONL(content []byte) (*BatchConfig, error) {
	config := &BatchConfig{}
	scanner := bufio.NewScanner(bytes.NewReader(content))

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var item struct {
			Action string `json:"action,omitempty"`
			Scope  string `json:"scope,omitempty"`
			ID     string `json:"id"`
		}

		if err := json.Unmarshal([]byte(line), &item); err != nil {
			return nil, fmt.Errorf("failed to parse JSONL line: %w", err)
		}

		if config.Action == "" && item.Action != "" {
			config.Action = item.Action
		}
		if config.Scope == "" && item.Scope != "" {
			config.Scope = item.Scope
		}
		if item.ID != "" {
			config.IDs = append(config.IDs, item.ID)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading JSONL file: %w", err)
	}

	config.Title = fmt.Sprintf("Batch of %d records", len(config.IDs))

	return validateBatchConfig(config)
}

// parseMarkdown parses a markdown file: action metadata in YAML front
// matter, one record id per non-empty body line. List markers and inline
// comments are tolerated so files read naturally.
func parseMarkdown(content []byte) (*BatchConfig, error) {
	var config BatchConfig
	rest, err := frontmatter.Parse(bytes.NewReader(content), &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}

	for _, line := range strings.Split(string(rest), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		config.IDs = append(config.IDs, line)
	}

	return validateBatchConfig(&config)
}

func validateBatchConfig(config *BatchConfig) (*BatchConfig, error) {
	if config.Action == "" {
		return nil, fmt.Errorf("action is required")
	}

	if config.Scope == "" {
		config.Scope = "orders"
	}
	if config.Scope != "orders" && config.Scope != "returns" {
		return nil, fmt.Errorf("scope must be \"orders\" or \"returns\" (got %q)", config.Scope)
	}

	if config.Scope == "orders" {
		if _, ok := workflow.OrderActionByKey(config.Action); !ok {
			return nil, fmt.Errorf("unknown order action %q", config.Action)
		}
	}

	config.IDs = dedupeIDs(config.IDs)

	if len(config.IDs) == 0 {
		return nil, fmt.Errorf("at least one record id is required")
	}
	if len(config.IDs) > MaxBatchSize {
		return nil, fmt.Errorf("batch size exceeds maximum of %d records (got %d)",
			MaxBatchSize, len(config.IDs))
	}

	if config.Title == "" {
		config.Title = fmt.Sprintf("Batch of %d records", len(config.IDs))
	}

	return config, nil
}

// dedupeIDs drops repeated ids while preserving first-seen order
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
