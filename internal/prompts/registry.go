package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"viralcopy/backend/internal/platform/logger"
)

// ErrTemplateNotFound is returned by Resolve when no template is registered
// under the requested key.
var ErrTemplateNotFound = fmt.Errorf("prompt template not found")

// RegeneratePrefix is the naming convention separating regeneration templates
// from first-generation templates. A community key "ppomppu" looks up
// "regenerate_ppomppu" on the regeneration path; there is no flag in the
// template format itself, so prompt authors can fully customize regeneration
// behavior per community.
const RegeneratePrefix = "regenerate_"

// Registry holds all templates discovered at startup. It is populated once
// and read-only afterwards, so concurrent readers need no locking. Construct
// it explicitly and inject it; tests build one from fixture templates without
// touching the filesystem.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry builds a registry from an explicit template set. Keys are
// lower-cased. Templates with invalid system prompts are rejected.
func NewRegistry(templates []*Template) (*Registry, error) {
	r := &Registry{templates: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		key := strings.ToLower(strings.TrimSpace(t.Key))
		if key == "" {
			return nil, fmt.Errorf("template %q has no key", t.Name)
		}
		if err := validateTemplate(t); err != nil {
			return nil, fmt.Errorf("template %q: %w", key, err)
		}
		t.Key = key
		r.templates[key] = t
	}
	return r, nil
}

// LoadDir scans dir for *.yaml files and registers each under its lower-cased
// filename stem. A file that fails to parse, or whose system_prompt
// references an undeclared placeholder, is logged and skipped; the remaining
// templates still load. Config changes require a process restart.
func LoadDir(dir string, log *logger.Logger) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt directory %s: %w", dir, err)
	}

	r := &Registry{templates: make(map[string]*Template)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("failed to read prompt file", "file", entry.Name(), "error", err)
			continue
		}

		var t Template
		if err := yaml.Unmarshal(data, &t); err != nil {
			log.Error("failed to parse prompt file", "file", entry.Name(), "error", err)
			continue
		}

		key := strings.ToLower(strings.TrimSuffix(entry.Name(), ".yaml"))
		t.Key = key

		if err := validateTemplate(&t); err != nil {
			log.Error("invalid prompt template", "file", entry.Name(), "error", err)
			continue
		}

		r.templates[key] = &t
		log.Info("prompt template loaded", "key", key, "version", t.Version)
	}

	if len(r.templates) == 0 {
		return nil, fmt.Errorf("no usable prompt templates in %s", dir)
	}
	return r, nil
}

// Resolve returns the template registered under key, or ErrTemplateNotFound.
func (r *Registry) Resolve(key string) (*Template, error) {
	t, ok := r.templates[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, key)
	}
	return t, nil
}

// Communities returns the first-generation community keys in sorted order,
// excluding regenerate_* entries.
func (r *Registry) Communities() []string {
	keys := make([]string, 0, len(r.templates))
	for key := range r.templates {
		if strings.HasPrefix(key, RegeneratePrefix) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// validateTemplate checks at load time that every placeholder in the system
// prompt is one the formatter can supply, so a template/schema mismatch
// surfaces at startup instead of on first use.
func validateTemplate(t *Template) error {
	if strings.TrimSpace(t.SystemPrompt) == "" {
		return fmt.Errorf("system_prompt is empty")
	}
	placeholders, err := extractPlaceholders(t.SystemPrompt)
	if err != nil {
		return err
	}
	for _, name := range placeholders {
		if !isDeclaredVariable(t, name) {
			return fmt.Errorf("system_prompt references undeclared variable {%s}", name)
		}
	}
	return nil
}
