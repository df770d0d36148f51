package gemini

import (
	"context"
	"fmt"
)

// Disabled stands in when no API key is configured; every call errors, which
// the gateway turns into its static fallbacks.
type Disabled struct{}

func (Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("gemini client disabled: GEMINI_API_KEY not set")
}
