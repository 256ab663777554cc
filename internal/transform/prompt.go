package transform

import (
	"encoding/json"
	"fmt"

	"github.com/jorge-barreto/relnotes/internal/release"
)

// DefaultProduct names the product in the system instruction when none is configured.
const DefaultProduct = "Gameball"

// PromptDefaults fill the feature target shape when an entry leaves
// platform, plan or channel empty.
type PromptDefaults struct {
	Platform string
	Plan     string
	Channel  string
}

// DefaultPromptDefaults are used when the config sets none.
var DefaultPromptDefaults = PromptDefaults{
	Platform: "All",
	Plan:     "All Plans",
	Channel:  "All",
}

// SystemPrompt returns the fixed tone and format instruction.
func SystemPrompt(product string) string {
	if product == "" {
		product = DefaultProduct
	}
	return fmt.Sprintf(`You are a technical writer for a SaaS product called %s. Your job is to transform raw product requirements and user stories into polished, customer-facing release notes.

Rules:
1. Write in active voice, present tense
2. Focus on user benefits, not technical implementation
3. Be concise - 1-2 sentences for descriptions
4. Use professional but friendly tone
5. Never use "As a... I want... So that..." format
6. Remove all internal references, ticket IDs, dates in titles
7. Convert technical jargon to user-friendly language
8. Output valid JSON only - no markdown, no explanations`, product)
}

const featureTemplate = `Transform this product feature into a clean release note entry.

Input:
%s

Output a JSON object with this exact structure:
{
  "title": "Clean feature title without dates, ticket IDs, or prefixes like [HSA]",
  "platform": "%s",
  "plan": "%s",
  "channel": "%s",
  "description": "1-2 sentence marketing description focusing on user benefit",
  "capabilities": [
    {
      "title": "Capability category name",
      "items": ["Clear benefit point 1", "Clear benefit point 2", "Clear benefit point 3"]
    }
  ]
}

Rules:
- Title should be clean and descriptive (e.g., "Coupon Image Support" not "[Due Date 5 Feb] HSA: Support Coupon Images")
- Description should explain what users can now do and why it matters
- Capabilities should have 1-3 categories with 2-4 bullet points each
- Each bullet point should be a clear, actionable benefit
- Remove all HTML tags
- Remove user story format (As a... I want... So that...)

Return ONLY the JSON object, no other text.`

const improvementTemplate = `Transform this product improvement into a clean release note entry.

Input:
%s

Output a JSON object with this exact structure:
{
  "title": "Clean improvement title",
  "overview": "Brief 1-2 sentence context of what was improved and why",
  "whatsNew": [
    {
      "title": "What's New category",
      "description": "Brief description of changes",
      "items": ["Specific improvement 1", "Specific improvement 2"]
    }
  ]
}

Rules:
- Title should be clean and descriptive
- Overview should explain the context briefly
- whatsNew should highlight key changes
- Remove all HTML tags and user story format
- Focus on what developers/users can now do

Return ONLY the JSON object, no other text.`

// FeaturePrompt embeds the serialized feature, including any fields the
// model does not name, and the target shape.
func FeaturePrompt(f release.Feature, d PromptDefaults) (string, error) {
	input, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing feature: %w", err)
	}
	return fmt.Sprintf(featureTemplate, input,
		orDefault(f.Platform, d.Platform),
		orDefault(f.Plan, d.Plan),
		orDefault(f.Channel, d.Channel),
	), nil
}

// ImprovementPrompt embeds the serialized improvement and the target shape.
func ImprovementPrompt(imp release.Improvement) (string, error) {
	input, err := json.MarshalIndent(imp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing improvement: %w", err)
	}
	return fmt.Sprintf(improvementTemplate, input), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
