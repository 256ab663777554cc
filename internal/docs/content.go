package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with relnotes",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, environment variables, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "record",
		Title:   "Release Record Format",
		Summary: "The JSON input shape for features, improvements, and bug fixes",
		Content: topicRecord,
	},
	{
		Name:    "transform",
		Title:   "Content Transformation",
		Summary: "How entries are rewritten and when the original is kept",
		Content: topicTransform,
	},
	{
		Name:    "identifier",
		Title:   "Release Identifiers",
		Summary: "How R26.049-0205 style page names are derived",
		Content: topicIdentifier,
	},
	{
		Name:    "publish",
		Title:   "Publishing to ClickUp",
		Summary: "Page creation, addressing, and failure handling",
		Content: topicPublish,
	},
}

const topicQuickstart = `Quick Start
===========

1. Scaffold a config and an example record:

    relnotes init

   This creates .relnotes.yaml and release.example.json.

2. Render the record to markdown without any external calls:

    relnotes render release.example.json

   The document goes to stdout. PAGE_NAME=<identifier> is printed on
   stderr so workflow steps can capture it.

3. Rewrite the entries into customer-facing prose:

    export GROQ_API_KEY=...
    relnotes transform release.example.json transformed.json

4. Do everything in one go and publish the page:

    export CLICKUP_API_TOKEN=...
    relnotes run release.example.json

   Add --no-publish to stop after writing the markdown file, or
   --skip-transform to render the record as-is.

Variables in a .env file in the working directory are loaded
automatically.
`

const topicConfig = `Configuration Reference
=======================

relnotes reads .relnotes.yaml from the working directory (override
with --config). A missing file is not an error; every key has a default.

  product: Gameball           Product named in the system instruction.

  generator:
    provider: groq            groq, openai, or anthropic.
    model: <per provider>     groq: llama-3.3-70b-versatile
                              openai: gpt-4o-mini
                              anthropic: claude-3-5-haiku-latest
    base-url: ""              Override the provider endpoint.
    temperature: 0.3          Between 0 and 2.
    max-tokens: 4000
    requests-per-minute: 0    Space out calls; 0 means no limit.
    timeout: 0                Seconds per call; 0 keeps the transport default.

  prompt-defaults:            Filled into the feature target shape when
    platform: All             an entry leaves the field empty.
    plan: All Plans
    channel: All

  clickup:
    workspace-id: "3477524"
    doc-id: 3a40m-33560
    parent-page-id: 3a40m-31220
    base-url: ""              Override the API endpoint.

  artifacts-dir: .relnotes/runs   Where run records are written.

Environment variables
---------------------

  GROQ_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY
      Credential for the configured provider. Required by transform
      and run (unless --skip-transform).

  CLICKUP_API_TOKEN
      Required by publish and run (unless --no-publish).

  CLICKUP_WORKSPACE_ID, CLICKUP_DOC_ID, CLICKUP_PARENT_PAGE_ID
      Override the clickup block.

  RELNOTES_MODEL
      Override generator.model.
`

const topicRecord = `Release Record Format
=====================

  {
    "date": "05 of February 2026",
    "release": "049",
    "dateRange": "22 Jan - 05 Feb",
    "duration": "2 weeks",
    "newFeatures": [ ... ],
    "improvements": [ ... ],
    "bugFixes": [ ... ]
  }

Missing sequences are treated as empty.

Feature fields: title, platform (default Web), plan (default All Plans),
channel (default All), description, overview, capabilities, whatsNew.
A capability is either a string bullet or {"title", "items"}.

Improvement fields: title, overview, description, endpoint, whatsNew,
details. A detail is {"title", "description"}.

whatsNew items are {"title", "description", "items"} for both kinds.

A bug fix is either a string or {"title", "description"}. With no bug
fixes the section reads N/A.

Any other fields on a feature or improvement (user stories, acceptance
criteria, ticket links) are kept. They are shown to the generator as
context and written back out unchanged when an entry is not rewritten.

Use --html on render to convert HTML in descriptions to markdown.
`

const topicTransform = `Content Transformation
======================

transform and run send each feature, then each improvement, to the
generator one at a time and in input order. Bug fixes are never sent.

Every call carries a fixed system instruction (active voice, present
tense, no ticket IDs, no user-story phrasing, JSON only) and an
instruction holding the entry as JSON plus the target shape:

  feature      {title, platform, plan, channel, description, capabilities}
  improvement  {title, overview, whatsNew}

The reply is decoded in three steps:

  1. the whole reply as a JSON object
  2. the span from the first { to the last }
  3. otherwise the original entry is kept

A failed call (network error, HTTP error, timeout) also keeps the
original entry. Calls are never retried, and one bad entry never stops
the batch.

The transformed record does not carry "duration". run restores it from
the input before rendering; keep the input if you render a transformed
file yourself.

Each run writes a record to <artifacts-dir>/<run-id>.json after the
batch, listing which entries were rewritten and why any were kept.
`

const topicIdentifier = `Release Identifiers
===================

Pages are named R{YY}.{NNN}-{MM}{DD}, for example R26.049-0205.

  YY   last two characters of the year in "date"
  NNN  digits of "release", left-padded to 3 ("Q3-W1" gives 031,
       a label without digits gives 000)
  MM   month number from the English month name; unknown names give 01
  DD   day, padded to 2

"date" must look like "<day> of <Month> <year>". When it does not,
render and ident fall back to Release-<release>, and publish falls back
to the markdown file name without .md.

publish reads the identifier back from the rendered header
(**Date:** ... | **Release:** ...), so a file renamed on disk still
publishes under its release name. Use --name to override.
`

const topicPublish = `Publishing to ClickUp
=====================

  relnotes publish R26.049-0205.md

creates one page under the configured parent page:

  POST https://api.clickup.com/api/v3/workspaces/{workspace}/docs/{doc}/pages
  {"name": ..., "parent_page_id": ..., "content": <markdown>}

On success the page ID and a link are printed:

  https://app.clickup.com/{workspace}/docs/{doc}?block={page-id}

A non-2xx response stops the command with the status code and response
body. Page creation is a single request and is not retried.
`
