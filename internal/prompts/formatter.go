package prompts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ErrTemplateVariableMissing is returned when an instruction string
// references a placeholder the formatter cannot supply. Load-time validation
// makes this a configuration bug rather than a runtime condition.
var ErrTemplateVariableMissing = fmt.Errorf("template variable missing")

// PreviousContent is the serialized form of one previously generated record,
// substituted into regeneration prompts as {previousContents}.
type PreviousContent struct {
	ID   int    `json:"id"`
	Tone string `json:"tone"`
	Text string `json:"text"`
}

// FormatRequest carries the caller-supplied values for one formatting pass.
// Every field is optional except what the template actually references;
// absent fields substitute as the empty string, never as a missing variable.
type FormatRequest struct {
	ProductName      string
	Price            string
	ProductAttribute string

	// Emphasis fields, each free text.
	Event   string
	Card    string
	Coupon  string
	Keyword string
	Etc     string

	BestCase string

	// Regeneration context.
	RegenerateReason string
	PreviousContents []PreviousContent
}

// Format substitutes every placeholder in the template's instruction string
// with the corresponding request or style value and returns the final
// instruction text sent to the generation API.
func Format(t *Template, req FormatRequest) (string, error) {
	vars := buildVars(t, req)
	return substitute(t.SystemPrompt, vars)
}

// buildVars assembles the full substitution map: caller-supplied product and
// emphasis values plus the template's own style block, so one instruction
// string can reference both.
func buildVars(t *Template, req FormatRequest) map[string]string {
	return map[string]string{
		"productName":       req.ProductName,
		"price":             req.Price,
		"productAttribute":  req.ProductAttribute,
		"event":             req.Event,
		"card":              req.Card,
		"coupon":            req.Coupon,
		"keyword":           req.Keyword,
		"etc":               req.Etc,
		"bestCase":          req.BestCase,
		"regenerateReason":  req.RegenerateReason,
		"previousContents":  serializePrevious(req.PreviousContents),
		"coreMessage":       t.CommunityStyle.Core,
		"tone":              t.CommunityStyle.Tone,
		"characteristics":   strings.Join(t.CommunityStyle.Characteristics, ", "),
		"professionalTerms": professionalTermsLabel(t.CommunityStyle.ProfessionalTerms),
	}
}

func professionalTermsLabel(on bool) string {
	if on {
		return "전문용어 사용"
	}
	return "전문용어 사용 안 함"
}

// serializePrevious renders the prior result set as a JSON array. The
// formatter accepts the structured list and serializes it here so formatting
// stays idempotent regardless of caller convention. HTML escaping is off to
// keep Korean text and quotes readable inside the prompt.
func serializePrevious(records []PreviousContent) string {
	if len(records) == 0 {
		return ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

// isDeclaredVariable reports whether the formatter can supply a value for the
// named placeholder. The set is static; templates listing extra
// input_variables in their metadata still only get these.
func isDeclaredVariable(t *Template, name string) bool {
	// The template parameter is kept so per-template variables can be added
	// later without changing call sites.
	_ = t
	switch name {
	case "productName", "price", "productAttribute",
		"event", "card", "coupon", "keyword", "etc",
		"bestCase", "regenerateReason", "previousContents",
		"coreMessage", "tone", "characteristics", "professionalTerms":
		return true
	}
	return false
}

// extractPlaceholders returns the placeholder names referenced by an
// instruction string, in order of first appearance. "{{" and "}}" are
// literal-brace escapes; a lone unmatched brace is a syntax error.
func extractPlaceholders(s string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	i := 0
	for i < len(s) {
		switch s[i] {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				i += 2
				continue
			}
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated placeholder at offset %d", i)
			}
			name := s[i+1 : i+1+end]
			if !isIdentifier(name) {
				return nil, fmt.Errorf("invalid placeholder name %q", name)
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			i += end + 2
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				i += 2
				continue
			}
			return nil, fmt.Errorf("unmatched '}' at offset %d", i)
		default:
			i++
		}
	}
	return names, nil
}

// substitute replaces every {name} in s with vars[name] and unescapes doubled
// braces. Placeholder syntax follows the template files' Python-format
// heritage.
func substitute(s string, vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		switch s[i] {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated placeholder at offset %d", i)
			}
			name := s[i+1 : i+1+end]
			value, ok := vars[name]
			if !ok {
				return "", fmt.Errorf("%w: {%s}", ErrTemplateVariableMissing, name)
			}
			b.WriteString(value)
			i += end + 2
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", fmt.Errorf("unmatched '}' at offset %d", i)
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String(), nil
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
