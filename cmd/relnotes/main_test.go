package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/relnotes/internal/config"
	"github.com/jorge-barreto/relnotes/internal/release"
	"github.com/jorge-barreto/relnotes/internal/runlog"
	"github.com/jorge-barreto/relnotes/internal/ux"
)

const sampleJSON = `{
  "date": "05 of February 2026",
  "release": "049",
  "dateRange": "22 Jan - 05 Feb",
  "duration": "2 weeks",
  "newFeatures": [{"title": "[HSA] coupon images", "userStory": "As a merchant..."}],
  "improvements": [{"title": "search speed"}],
  "bugFixes": ["Fixed login"]
}`

type harness struct {
	dir    string
	config string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, configYAML string) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		dir:    dir,
		config: filepath.Join(dir, ".relnotes.yaml"),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	configYAML += "artifacts-dir: " + filepath.Join(dir, "runs") + "\n"
	require.NoError(t, os.WriteFile(h.config, []byte(configYAML), 0644))
	require.NoError(t, os.WriteFile(h.path("release.json"), []byte(sampleJSON), 0644))

	old := ux.Out
	ux.Out = h.stderr
	t.Cleanup(func() { ux.Out = old })

	for _, k := range []string{"GROQ_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "CLICKUP_API_TOKEN",
		"CLICKUP_WORKSPACE_ID", "CLICKUP_DOC_ID", "CLICKUP_PARENT_PAGE_ID", "RELNOTES_MODEL"} {
		t.Setenv(k, "")
	}
	return h
}

func (h *harness) path(name string) string { return filepath.Join(h.dir, name) }

func (h *harness) run(args ...string) error {
	app := newApp()
	app.Writer = h.stdout
	app.ErrWriter = h.stderr
	return app.Run(context.Background(), append([]string{"relnotes", "--config", h.config}, args...))
}

func (h *harness) runRecords(t *testing.T) []*runlog.Run {
	t.Helper()
	entries, err := os.ReadDir(h.path("runs"))
	require.NoError(t, err)
	var runs []*runlog.Run
	for _, e := range entries {
		r, err := runlog.Load(filepath.Join(h.path("runs"), e.Name()))
		require.NoError(t, err)
		runs = append(runs, r)
	}
	return runs
}

// fakeGroq answers every chat completion with reply and records the prompts.
type fakeGroq struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	status  int
}

func (f *fakeGroq) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.mu.Lock()
	if len(body.Messages) == 2 {
		f.prompts = append(f.prompts, body.Messages[1].Content)
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
		io.WriteString(w, `{"error":{"message":"unavailable"}}`)
		return
	}
	content, _ := json.Marshal(f.reply)
	io.WriteString(w, `{"id":"c","object":"chat.completion","created":1,"model":"m","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":`+string(content)+`}}]}`)
}

// fakeClickUp records created pages.
type fakeClickUp struct {
	mu    sync.Mutex
	names []string
	auth  string
}

func (f *fakeClickUp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.mu.Lock()
	f.names = append(f.names, body.Name)
	f.auth = r.Header.Get("Authorization")
	f.mu.Unlock()
	io.WriteString(w, `{"id":"page-42"}`)
}

func TestRender_WritesFileAndPageName(t *testing.T) {
	h := newHarness(t, "")
	out := h.path("out.md")

	require.NoError(t, h.run("render", h.path("release.json"), out))

	md, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(md), "**Date:** 05 of February 2026 | **Release:** 049 | From 22 Jan - 05 Feb [2 weeks]")
	assert.Contains(t, string(md), "[HSA] coupon images")
	assert.Contains(t, h.stderr.String(), "PAGE_NAME=R26.049-0205\n")
}

func TestRender_MissingArgument(t *testing.T) {
	h := newHarness(t, "")
	err := h.run("render")
	assert.ErrorContains(t, err, "input file argument is required")
}

func TestRender_MalformedInput(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, os.WriteFile(h.path("bad.json"), []byte("{nope"), 0644))
	err := h.run("render", h.path("bad.json"), h.path("out.md"))
	assert.ErrorContains(t, err, "parsing release record")
	_, statErr := os.Stat(h.path("out.md"))
	assert.True(t, os.IsNotExist(statErr), "no output should be written")
}

func TestIdent(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run("ident", h.path("release.json")))
	assert.Equal(t, "R26.049-0205\n", h.stdout.String())
}

func TestTransform_MissingCredential(t *testing.T) {
	h := newHarness(t, "")
	err := h.run("transform", h.path("release.json"), h.path("out.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrMissingCredential))
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestTransform_WritesRecordAndRun(t *testing.T) {
	groq := &fakeGroq{reply: `{"title":"Coupon Image Support","description":"Add images to coupons."}`}
	srv := httptest.NewServer(groq)
	defer srv.Close()

	h := newHarness(t, "product: Acme\ngenerator:\n  base-url: "+srv.URL+"/\n")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	out := h.path("transformed.json")

	require.NoError(t, h.run("transform", h.path("release.json"), out))

	rec, err := release.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "Coupon Image Support", rec.NewFeatures[0].Title)
	assert.Equal(t, "Coupon Image Support", rec.Improvements[0].Title)
	assert.Empty(t, rec.Duration)
	require.Len(t, rec.BugFixes, 1)
	assert.Equal(t, "Fixed login", rec.BugFixes[0].Text)

	require.Len(t, groq.prompts, 2)
	assert.Contains(t, groq.prompts[0], `"userStory": "As a merchant..."`)
	assert.Contains(t, groq.prompts[1], `"title": "search speed"`)

	assert.Contains(t, h.stderr.String(), "Feature 1/1: [HSA] coupon images...")

	runs := h.runRecords(t)
	require.Len(t, runs, 1)
	assert.Equal(t, runlog.StatusCompleted, runs[0].Status)
	assert.Equal(t, 2, runs[0].Transformed)
	assert.Equal(t, "R26.049-0205", runs[0].Identifier)
}

func TestTransform_ServiceDownKeepsOriginals(t *testing.T) {
	groq := &fakeGroq{status: http.StatusServiceUnavailable}
	srv := httptest.NewServer(groq)
	defer srv.Close()

	h := newHarness(t, "generator:\n  base-url: "+srv.URL+"/\n")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	out := h.path("transformed.json")

	require.NoError(t, h.run("transform", h.path("release.json"), out))

	rec, err := release.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "[HSA] coupon images", rec.NewFeatures[0].Title)
	assert.Contains(t, string(rec.NewFeatures[0].Extra["userStory"]), "As a merchant")
	assert.Equal(t, "search speed", rec.Improvements[0].Title)
	assert.Len(t, groq.prompts, 2, "one call per entry, no retries")

	runs := h.runRecords(t)
	require.Len(t, runs, 1)
	assert.Equal(t, runlog.StatusPartial, runs[0].Status)
	assert.Equal(t, 2, runs[0].Fallbacks)
}

func TestRun_SkipTransformNoPublish(t *testing.T) {
	h := newHarness(t, "")
	out := h.path("notes.md")

	require.NoError(t, h.run("run", "--skip-transform", "--no-publish", "--out", out, h.path("release.json")))

	md, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(md), "[HSA] coupon images")

	runs := h.runRecords(t)
	require.Len(t, runs, 1)
	assert.Equal(t, out, runs[0].Output)
	assert.Empty(t, runs[0].PageID)
}

func TestRun_FullPipeline(t *testing.T) {
	groq := &fakeGroq{reply: "Here is the entry:\n{\"title\":\"Polished\"}"}
	gsrv := httptest.NewServer(groq)
	defer gsrv.Close()
	cu := &fakeClickUp{}
	csrv := httptest.NewServer(cu)
	defer csrv.Close()

	h := newHarness(t, "generator:\n  base-url: "+gsrv.URL+"/\nclickup:\n  base-url: "+csrv.URL+"\n")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("CLICKUP_API_TOKEN", "pk_test")
	out := h.path("R26.049-0205.md")

	require.NoError(t, h.run("run", "--out", out, h.path("release.json")))

	md, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(md), "### 1. Polished")
	assert.Contains(t, string(md), "[2 weeks]", "duration is restored before rendering")
	assert.Contains(t, string(md), "- Fixed login")

	assert.Equal(t, []string{"R26.049-0205"}, cu.names)
	assert.Equal(t, "pk_test", cu.auth)
	assert.Contains(t, h.stderr.String(), "page-42")

	runs := h.runRecords(t)
	require.Len(t, runs, 1)
	assert.Equal(t, "page-42", runs[0].PageID)
}

func TestRun_ChecksCredentialsBeforeWork(t *testing.T) {
	h := newHarness(t, "")
	t.Setenv("GROQ_API_KEY", "gsk-test")

	err := h.run("run", "--out", h.path("x.md"), h.path("release.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLICKUP_API_TOKEN")
	_, statErr := os.Stat(h.path("x.md"))
	assert.True(t, os.IsNotExist(statErr), "nothing should be written before credentials are checked")
}

func TestPublish_NameFromDocument(t *testing.T) {
	cu := &fakeClickUp{}
	srv := httptest.NewServer(cu)
	defer srv.Close()

	h := newHarness(t, "clickup:\n  base-url: "+srv.URL+"\n")
	t.Setenv("CLICKUP_API_TOKEN", "pk_test")
	doc := h.path("notes.md")
	require.NoError(t, os.WriteFile(doc, []byte("# What's New?\n\n**Date:** 5 of March 2026 | **Release:** Q1-W3 | From x []\n"), 0644))

	require.NoError(t, h.run("publish", doc))
	assert.Equal(t, []string{"R26.013-0305"}, cu.names)
	assert.Contains(t, h.stderr.String(), "https://app.clickup.com/3477524/docs/3a40m-33560?block=page-42")
}

func TestPublish_NameFlagAndFallback(t *testing.T) {
	cu := &fakeClickUp{}
	srv := httptest.NewServer(cu)
	defer srv.Close()

	h := newHarness(t, "clickup:\n  base-url: "+srv.URL+"\n")
	t.Setenv("CLICKUP_API_TOKEN", "pk_test")
	doc := h.path("hotfix.md")
	require.NoError(t, os.WriteFile(doc, []byte("no header here\n"), 0644))

	require.NoError(t, h.run("publish", doc))
	require.NoError(t, h.run("publish", "--name", "Custom", doc))
	assert.Equal(t, []string{"hotfix", "Custom"}, cu.names)
}

func TestPublish_APIErrorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, "forbidden")
	}))
	defer srv.Close()

	h := newHarness(t, "clickup:\n  base-url: "+srv.URL+"\n")
	t.Setenv("CLICKUP_API_TOKEN", "pk_test")
	doc := h.path("notes.md")
	require.NoError(t, os.WriteFile(doc, []byte("x"), 0644))

	err := h.run("publish", doc)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "403 - forbidden"), "got %v", err)
}

func TestDocs(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run("docs"))
	assert.Contains(t, h.stdout.String(), "quickstart")

	h.stdout.Reset()
	require.NoError(t, h.run("docs", "identifier"))
	assert.Contains(t, h.stdout.String(), "R{YY}.{NNN}-{MM}{DD}")
}
