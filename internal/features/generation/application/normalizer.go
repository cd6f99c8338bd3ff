package application

import (
	"encoding/json"
	"strings"

	"viralcopy/backend/internal/features/generation/domain"
)

// Normalizer converts the raw text a generation model returns into the fixed
// GeneratedRecord list the rest of the application works with. The model is
// asked for JSON but not trusted to produce it: the response may be an object
// keyed by tone, an array of {tone, text} objects, or arbitrary text, with or
// without a markdown code fence around it. Normalization is total: any
// non-empty input yields at least one record and never an error.
type Normalizer struct {
	vocabulary []domain.ToneMapping
}

// NewNormalizer builds a normalizer over the given tone vocabulary. A nil
// vocabulary uses the default set.
func NewNormalizer(vocabulary []domain.ToneMapping) *Normalizer {
	if vocabulary == nil {
		vocabulary = domain.DefaultToneVocabulary
	}
	return &Normalizer{vocabulary: vocabulary}
}

// parsedKind tags the shape the response parsed as. The shape is decided by
// a sequential match (object, then array, then text), never by inspecting a
// dynamically-typed value after the fact.
type parsedKind int

const (
	parsedAsText parsedKind = iota
	parsedAsObject
	parsedAsArray
)

type objectEntry struct {
	Content string `json:"content"`
}

type arrayEntry struct {
	Tone string `json:"tone"`
	Text string `json:"text"`
}

type parsedResponse struct {
	kind   parsedKind
	object map[string]objectEntry
	array  []arrayEntry
}

// Normalize returns the ordered record list for a raw model response. IDs are
// assigned densely from 1 in the order records are encountered; if no usable
// records can be extracted the entire original text becomes a single
// plain-text record.
func (n *Normalizer) Normalize(raw string) []domain.GeneratedRecord {
	parsed := parse(stripFence(raw))

	var records []domain.GeneratedRecord
	switch parsed.kind {
	case parsedAsObject:
		for _, mapping := range n.vocabulary {
			entry, ok := parsed.object[mapping.Key]
			if !ok {
				continue
			}
			records = append(records, domain.GeneratedRecord{
				ID:   len(records) + 1,
				Tone: mapping.Label,
				Text: entry.Content,
			})
		}
	case parsedAsArray:
		for _, entry := range parsed.array {
			if entry.Tone == "" || entry.Text == "" {
				continue
			}
			records = append(records, domain.GeneratedRecord{
				ID:   len(records) + 1,
				Tone: entry.Tone,
				Text: entry.Text,
			})
		}
	}

	if len(records) == 0 {
		return []domain.GeneratedRecord{{ID: 1, Tone: domain.PlainTextTone, Text: raw}}
	}
	return records
}

// parse attempts the object shape, then the array shape, then gives up and
// reports text. Candidates not starting with '{' or '[' skip straight to
// text since json.Unmarshal would accept bare literals we don't want.
func parse(candidate string) parsedResponse {
	trimmed := strings.TrimSpace(candidate)
	if strings.HasPrefix(trimmed, "{") {
		var object map[string]objectEntry
		if err := json.Unmarshal([]byte(trimmed), &object); err == nil {
			return parsedResponse{kind: parsedAsObject, object: object}
		}
	}
	if strings.HasPrefix(trimmed, "[") {
		var array []arrayEntry
		if err := json.Unmarshal([]byte(trimmed), &array); err == nil {
			return parsedResponse{kind: parsedAsArray, array: array}
		}
	}
	return parsedResponse{kind: parsedAsText}
}

// stripFence extracts the content of the first fenced code block, tolerating
// a language tag after the opening fence. Without a closing fence the whole
// text is treated as an unfenced candidate.
func stripFence(raw string) string {
	start := strings.Index(raw, "```")
	if start < 0 {
		return raw
	}
	rest := raw[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		// Drop the language tag line ("json", "JSON", or nothing).
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || isLanguageTag(tag) {
			rest = rest[nl+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return raw
	}
	return rest[:end]
}

func isLanguageTag(tag string) bool {
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
