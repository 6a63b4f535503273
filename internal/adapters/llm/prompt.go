// Package llm holds what the hours normalizer providers share: the prompt,
// response decoding and request throttling.
package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikey/cafe-hours/internal/core"
)

// SystemPrompt is sent as the system message where the provider supports one
const SystemPrompt = "You convert café opening hours into a compact weekly syntax. Respond only with JSON."

const promptFormat = `Rewrite the following opening hours of a café into this syntax:
- Rules are separated by "; ".
- A rule is day names, a space, then one or more HH:MM-HH:MM ranges separated by commas.
- Day names are Mo, Tu, We, Th, Fr, Sa, Su. Use ranges like Mo-Fr and lists like Mo,We.
- Use 24-hour times. A range past midnight is written on the day it starts, e.g. Fr 22:00-02:00.
- Seasonal hours start with a month range and a colon, e.g. Dec-Feb: Mo-Su 10:00-20:00.
- Leave out days the café is closed. A café open around the clock is 24/7.

Respond with a JSON object containing:
- opening_hours: string (the hours in the syntax above)
- confident: boolean (false if the text does not describe weekly opening hours)

Opening hours:
%s

Respond only with the JSON object and nothing else.`

// Response represents the structured response from the LLM
type Response struct {
	OpeningHours string `json:"opening_hours"`
	Confident    bool   `json:"confident"`
}

// Prompt formats the user prompt for text
func Prompt(text string) string {
	return fmt.Sprintf(promptFormat, text)
}

// ParseResponse decodes the model output, tolerating text around the JSON object
func ParseResponse(responseText string) (string, error) {
	var resp Response
	if err := json.Unmarshal([]byte(responseText), &resp); err != nil {
		start := strings.Index(responseText, "{")
		end := strings.LastIndex(responseText, "}")
		if start < 0 || end <= start {
			return "", fmt.Errorf("failed to extract JSON from LLM response: %w", err)
		}
		if err := json.Unmarshal([]byte(responseText[start:end+1]), &resp); err != nil {
			return "", fmt.Errorf("failed to parse LLM response as JSON: %w", err)
		}
	}

	hours := strings.TrimSpace(resp.OpeningHours)
	if !resp.Confident || hours == "" {
		return "", core.ErrNotNormalized
	}
	return hours, nil
}
