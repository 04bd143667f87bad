package llm

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/alhariq/mahkah/pkg/types"
)

// ParseStoryResponse turns raw model text into a StoryResult, applying
// the repair ladder in order:
//
//  1. strip markdown code fences and any prose before the first '{';
//  2. parse as JSON; on success, backfill missing narrative fields
//     with localized placeholders and default is_plant to true;
//  3. on failure, if the text looks truncated (more '{' than '}'),
//     close a possibly-open trailing string, append the missing braces,
//     and parse once more;
//  4. if repair also fails, return ErrMalformedOutput. The parser never
//     fabricates story content.
func ParseStoryResponse(text string, lang types.Language) (*types.StoryResult, error) {
	clean := extractJSON(text)

	var result types.StoryResult
	if err := json.Unmarshal([]byte(clean), &result); err == nil {
		result.ApplyDefaults(lang)
		return &result, nil
	}

	repaired, ok := repairTruncatedJSON(clean)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedOutput, truncateForLog(text))
	}

	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return nil, fmt.Errorf("%w: repair failed: %q", ErrMalformedOutput, truncateForLog(text))
	}

	log.Printf("response_parser: recovered truncated story JSON (%d bytes)", len(text))
	result.ApplyDefaults(lang)
	return &result, nil
}

// extractJSON strips markdown code-fence wrapping and leading prose so
// the parser sees the JSON object itself. LLMs add fences and
// explanations despite instructions.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	if start := strings.Index(text, "{"); start > 0 {
		text = text[start:]
	}
	return text
}

// repairTruncatedJSON attempts to complete a JSON object cut off
// mid-generation. If the count of '{' exceeds the count of '}', the
// text likely hit the output-token limit: close a dangling quoted
// string when one is open, then append the missing closing braces.
// Returns the repaired text and whether a repair was attempted.
func repairTruncatedJSON(text string) (string, bool) {
	open := strings.Count(text, "{")
	closed := strings.Count(text, "}")
	if open <= closed {
		return "", false
	}

	fixed := text
	lastQuote := strings.LastIndex(fixed, `"`)
	afterLastQuote := fixed[lastQuote+1:]
	if afterLastQuote != "" && !strings.Contains(afterLastQuote, `"`) &&
		!strings.HasSuffix(strings.TrimSpace(afterLastQuote), "}") {
		// Generation stopped inside a string value.
		fixed += `..."`
	}

	fixed += strings.Repeat("}", open-closed)
	return fixed, true
}

// truncateForLog bounds error detail so a whole malformed story never
// lands in a log line.
func truncateForLog(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
