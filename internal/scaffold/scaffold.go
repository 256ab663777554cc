package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/relnotes/internal/config"
	"github.com/jorge-barreto/relnotes/internal/ux"
)

// ExampleRecord is the name of the sample input written by Init.
const ExampleRecord = "release.example.json"

var configTemplate = `# relnotes configuration. Every key is optional.
product: Gameball

generator:
  provider: groq          # groq, openai, or anthropic
  model: llama-3.3-70b-versatile
  temperature: 0.3
  max-tokens: 4000
  requests-per-minute: 0  # 0 = unlimited
  timeout: 0              # seconds per call, 0 = transport default

prompt-defaults:
  platform: All
  plan: All Plans
  channel: All

clickup:
  workspace-id: "3477524"
  doc-id: 3a40m-33560
  parent-page-id: 3a40m-31220

artifacts-dir: .relnotes/runs
`

var recordTemplate = `{
  "date": "05 of February 2026",
  "release": "049",
  "dateRange": "22 Jan - 05 Feb",
  "duration": "2 weeks",
  "newFeatures": [
    {
      "title": "[Due Date 5 Feb] HSA: Support Coupon Images",
      "platform": "Web",
      "description": "<p>As a merchant I want to attach an image to a coupon so that customers recognise it.</p>",
      "userStory": "As a merchant I want coupon images so that rewards look appealing",
      "capabilities": [
        {
          "title": "Coupon media",
          "items": ["Upload an image per coupon", "Preview before publishing"]
        },
        "Images show in the customer widget"
      ]
    }
  ],
  "improvements": [
    {
      "title": "Faster coupon search",
      "overview": "Searching large coupon lists is now faster.",
      "endpoint": "GET /api/v4/coupons",
      "details": [
        { "title": "Pagination", "description": "Results are returned in pages of 50." }
      ]
    }
  ],
  "bugFixes": [
    "Fixed a crash when opening an expired coupon",
    { "title": "Widget", "description": "Points balance now refreshes after redemption." }
  ]
}
`

// Init writes an example config and input record to targetDir.
func Init(targetDir string) error {
	configPath := filepath.Join(targetDir, config.DefaultPath)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.DefaultPath, targetDir)
	}

	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.DefaultPath, err)
	}

	recordPath := filepath.Join(targetDir, ExampleRecord)
	if _, err := os.Stat(recordPath); err == nil {
		ux.Warn("%s already exists, leaving it unchanged", ExampleRecord)
	} else if err := os.WriteFile(recordPath, []byte(recordTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", ExampleRecord, err)
	}

	out := ux.Out
	fmt.Fprintf(out, "\n%s%s✓ Initialized relnotes%s\n\n", ux.Bold, ux.Green, ux.Reset)
	fmt.Fprintf(out, "  Created:\n")
	fmt.Fprintf(out, "    %s%s%s         configuration\n", ux.Cyan, config.DefaultPath, ux.Reset)
	fmt.Fprintf(out, "    %s%s%s  example release record\n\n", ux.Cyan, ExampleRecord, ux.Reset)
	fmt.Fprintf(out, "  Next steps:\n")
	fmt.Fprintf(out, "    1. Preview: %srelnotes render %s%s\n", ux.Cyan, ExampleRecord, ux.Reset)
	fmt.Fprintf(out, "    2. Set %sGROQ_API_KEY%s and run %srelnotes run %s --no-publish%s\n", ux.Cyan, ux.Reset, ux.Cyan, ExampleRecord, ux.Reset)
	fmt.Fprintf(out, "    3. Set %sCLICKUP_API_TOKEN%s to publish\n\n", ux.Cyan, ux.Reset)

	return nil
}
