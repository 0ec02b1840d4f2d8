package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

var thinkPattern = func() *regexp2.Regexp {
	re := regexp2.MustCompile(`<think>.*?</think>`, regexp2.Singleline)
	re.MatchTimeout = time.Second
	return re
}()

// StripThink removes every <think>...</think> span, including spans that
// cross line breaks, and trims the surrounding whitespace.
func StripThink(text string) (string, error) {
	cleaned, err := thinkPattern.Replace(text, "", -1, -1)
	if err != nil {
		return "", fmt.Errorf("failed to strip think content: %w", err)
	}
	return strings.TrimSpace(cleaned), nil
}
