// Package prompt renders a TranslationConfig into the instruction payload
// sent to the translation service. Rendering is pure and deterministic:
// the same config and text always produce the same payload.
package prompt

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/dverbin/doctran/internal"
	"github.com/dverbin/doctran/internal/placeholder"
)

// WrapperTag encloses the translation in the model's response so the
// driver can strip everything the model adds around it.
const WrapperTag = "translated_text"

// LanguageName returns the English display name for an ISO 639-1 code
// ("de" → "German"). Unparseable codes are passed through unchanged so the
// model can still make sense of them.
func LanguageName(code string) string {
	if code == "" || code == "auto" {
		return "the detected language"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return name
}

// ToneClause maps the tone enum to its instruction sentence. Unrecognized
// values fall back to neutral.
func ToneClause(tone internal.Tone, domain string) string {
	switch tone {
	case internal.ToneFormal:
		return "Use a formal and professional tone appropriate for official documents, academic writing, or business communications."
	case internal.ToneInformal:
		return "Use an informal and conversational tone that is friendly and engaging."
	case internal.ToneTechnical:
		if domain != "" {
			return fmt.Sprintf("Use a technical and specialized tone appropriate for %s, incorporating industry-specific terminology.", domain)
		}
		return "Use a technical and specialized tone appropriate for professional writing."
	default:
		return "Use a neutral tone that is objective, informative, and unbiased."
	}
}

// DomainClause returns the terminology hint for the domain, or a no-op
// sentence when no domain is set.
func DomainClause(domain string) string {
	if domain == "" {
		return "No specific domain requirements."
	}
	return fmt.Sprintf("Use terminology and phrases specific to the %s field to ensure the translation is appropriate for it.", domain)
}

// GlossaryClause reformats a "term:definition;term:definition" string into
// one "term: definition" line per entry. An empty glossary yields an empty
// clause, omitted from the payload entirely.
func GlossaryClause(glossary string) string {
	if strings.TrimSpace(glossary) == "" {
		return ""
	}
	var lines []string
	for _, entry := range strings.Split(glossary, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		term, def, found := strings.Cut(entry, ":")
		if found {
			lines = append(lines, fmt.Sprintf("%s: %s", strings.TrimSpace(term), strings.TrimSpace(def)))
		} else {
			lines = append(lines, term)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "Use the following glossary to ensure accurate translations:\n" + strings.Join(lines, "\n")
}

// Build renders the full instruction payload for one translation unit.
// The model is instructed to return only the translation, enclosed in
// <translated_text></translated_text>, and to treat the rolling context as
// already-translated material that must not be retranslated.
func Build(text string, cfg internal.TranslationConfig) string {
	var sb strings.Builder

	sb.WriteString("You are an expert translator.\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString("1. Accuracy: The translation should be accurate and convey the same meaning as the original text.\n")
	sb.WriteString("2. Fluency: The translated text should be natural and fluent in the target language.\n")
	sb.WriteString("3. Style: Maintain the original style and tone of the text as much as possible.\n")
	sb.WriteString("4. Context: Consider the context enclosed in <context></context> when translating. The context is previously translated output and may be empty; do not retranslate it.\n")
	sb.WriteString("5. No Unnecessary Translations: Do not translate proper nouns, brands, places, addresses, URLs, email addresses, phone numbers, or any element that would lose its meaning or functionality if translated.\n")
	sb.WriteString("6. Domain-Specific Terminology: " + DomainClause(cfg.Domain) + "\n")
	sb.WriteString("7. Tone: " + ToneClause(cfg.Tone, cfg.Domain) + "\n")
	sb.WriteString("8. Idioms and Cultural References: Adapt idiomatic expressions and culturally specific references to their equivalents in the target language.\n")
	sb.WriteString("9. Formatting: Preserve the original formatting of the text, including line breaks and emphasis. Keep carriage return characters if they are used in the source text.\n")
	sb.WriteString("10. Separators: If the source text contains the unit separator character (U+001F), keep every separator in place and translate each separated part independently.\n")
	sb.WriteString(fmt.Sprintf("11. Output Requirements: Provide only the translated text enclosed within <%s></%s>. Do not add explanations, notes, or any text outside of this.\n", WrapperTag, WrapperTag))

	n := 12
	if cfg.PreserveMarkers {
		sb.WriteString(fmt.Sprintf("%d. Placeholders: %s\n", n, placeholder.InstructionHint()))
		n++
	}
	if clause := GlossaryClause(cfg.Glossary); clause != "" {
		sb.WriteString(fmt.Sprintf("%d. Glossary: %s\n", n, clause))
	}

	sb.WriteString(fmt.Sprintf("\nTranslate the text enclosed in <source_text></source_text> from %s to %s.\n\n",
		LanguageName(cfg.SourceLang), LanguageName(cfg.TargetLang)))
	sb.WriteString(fmt.Sprintf("<context>%s</context>\n", cfg.Context))
	sb.WriteString(fmt.Sprintf("<source_text>%s</source_text>\n", text))
	sb.WriteString(fmt.Sprintf("<%s>", WrapperTag))

	return sb.String()
}
