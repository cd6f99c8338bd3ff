package domain

// ToneMapping binds one tone key the model may return to its display label.
type ToneMapping struct {
	Key   string
	Label string
}

// DefaultToneVocabulary is the controlled vocabulary used when normalizing
// object-shaped responses, in enumeration order. It is data, not a constant
// baked into the parser: the normalizer takes a vocabulary so new tones can
// be added without touching parsing code.
var DefaultToneVocabulary = []ToneMapping{
	{Key: "information", Label: "정보 전달형"},
	{Key: "review", Label: "후기형"},
	{Key: "humorous", Label: "유머러스한 톤"},
	{Key: "friendly", Label: "친근한 톤"},
	{Key: "urgency", Label: "긴급성/마감임박형"},
	{Key: "storytelling", Label: "스토리텔링형"},
}

// Sentinel tone labels.
const (
	// PlainTextTone labels the single record produced when a response is not
	// parseable JSON (or parses to nothing usable).
	PlainTextTone = "AI 생성"

	// FailureTone labels the single record returned when generation fails
	// after all retries.
	FailureTone = "생성 실패"
)
