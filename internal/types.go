package internal

// Tone selects the register the translation should be written in.
type Tone string

const (
	ToneNeutral   Tone = "neutral"
	ToneFormal    Tone = "formal"
	ToneInformal  Tone = "informal"
	ToneTechnical Tone = "technical"
)

// Defaults for the segmenter and the rolling context window. Values follow
// the limits the LLM endpoint handles comfortably for document-sized inputs.
const (
	DefaultMaxChunkLength   = 5000
	DefaultOverlapWindow    = 200
	DefaultMaxContextLength = 200
)

// TranslationConfig carries every per-request translation parameter through
// the pipeline. It is plain data; the prompt package renders it into the
// instruction payload sent to the translation service.
type TranslationConfig struct {
	// SourceLang is an ISO 639-1 code. Empty or "auto" triggers detection.
	SourceLang string
	// TargetLang is required.
	TargetLang string

	Tone   Tone
	Domain string
	// Glossary is a "term:definition;term:definition" string. The prompt
	// package reformats it into one line per entry.
	Glossary string

	// Context is the rolling window of previously translated output,
	// threaded by the driver. Never shared across documents.
	Context string

	MaxChunkLength   int
	OverlapWindow    int
	MaxContextLength int

	// ContinueOnError keeps going after a failed unit, preserving the
	// original text for that unit. When false the first failure aborts.
	ContinueOnError bool
	// BatchParagraphs translates each paragraph's segments in a single
	// delimiter-joined call instead of one call per segment.
	BatchParagraphs bool
	// PreserveMarkers tells the model to keep [PHn] placeholder markers
	// intact. Set by the plain-text path when markup protection is on.
	PreserveMarkers bool
}

// Normalized returns a copy with zero-valued limits replaced by defaults
// and an unrecognized tone coerced to neutral.
func (c TranslationConfig) Normalized() TranslationConfig {
	if c.MaxChunkLength <= 0 {
		c.MaxChunkLength = DefaultMaxChunkLength
	}
	if c.OverlapWindow <= 0 {
		c.OverlapWindow = DefaultOverlapWindow
	}
	if c.MaxContextLength <= 0 {
		c.MaxContextLength = DefaultMaxContextLength
	}
	switch c.Tone {
	case ToneNeutral, ToneFormal, ToneInformal, ToneTechnical:
	default:
		c.Tone = ToneNeutral
	}
	return c
}
