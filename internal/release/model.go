package release

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is the structured representation of one release's notes.
type Record struct {
	Date         string        `json:"date"`
	Release      string        `json:"release"`
	DateRange    string        `json:"dateRange"`
	Duration     string        `json:"duration,omitempty"`
	NewFeatures  []Feature     `json:"newFeatures"`
	Improvements []Improvement `json:"improvements"`
	BugFixes     []BugFix      `json:"bugFixes"`
}

// Feature is a new-feature entry. Platform, Plan and Channel fall back to
// renderer defaults when empty.
type Feature struct {
	Title        string         `json:"title"`
	Platform     string         `json:"platform,omitempty"`
	Plan         string         `json:"plan,omitempty"`
	Channel      string         `json:"channel,omitempty"`
	Description  string         `json:"description,omitempty"`
	Overview     string         `json:"overview,omitempty"`
	Capabilities []Capability   `json:"capabilities,omitempty"`
	WhatsNew     []WhatsNewItem `json:"whatsNew,omitempty"`

	// Extra holds input fields the model does not name (user stories,
	// acceptance criteria, ...). They are written back out unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// Improvement is an entry under "Other Improvements".
type Improvement struct {
	Title       string         `json:"title"`
	Overview    string         `json:"overview,omitempty"`
	Description string         `json:"description,omitempty"`
	Endpoint    string         `json:"endpoint,omitempty"`
	WhatsNew    []WhatsNewItem `json:"whatsNew,omitempty"`
	Details     []Detail       `json:"details,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// WhatsNewItem is shared by features and improvements.
type WhatsNewItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Items       []string `json:"items,omitempty"`
}

// Detail is a titled paragraph on an improvement.
type Detail struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Capability is either a plain bullet (Group == nil) or a titled group of bullets.
type Capability struct {
	Text  string
	Group *CapabilityGroup
}

// CapabilityGroup is the object form of a capability.
type CapabilityGroup struct {
	Title string   `json:"title"`
	Items []string `json:"items,omitempty"`
}

// Bullet returns a plain-string capability.
func Bullet(text string) Capability {
	return Capability{Text: text}
}

// Group returns a titled capability.
func Group(title string, items ...string) Capability {
	return Capability{Group: &CapabilityGroup{Title: title, Items: items}}
}

func (c Capability) MarshalJSON() ([]byte, error) {
	if c.Group == nil {
		return json.Marshal(c.Text)
	}
	return json.Marshal(c.Group)
}

func (c *Capability) UnmarshalJSON(data []byte) error {
	*c = Capability{}
	if isJSONString(data) {
		return json.Unmarshal(data, &c.Text)
	}
	// null and objects without a title both decode to an untitled group,
	// which the renderer skips.
	c.Group = &CapabilityGroup{}
	if isJSONNull(data) {
		return nil
	}
	if err := json.Unmarshal(data, c.Group); err != nil {
		return fmt.Errorf("capability: %w", err)
	}
	return nil
}

// BugFix is either a plain string (Entry == nil) or a titled entry.
type BugFix struct {
	Text  string
	Entry *BugFixEntry
}

// BugFixEntry is the object form of a bug fix.
type BugFixEntry struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Fix returns a plain-string bug fix.
func Fix(text string) BugFix {
	return BugFix{Text: text}
}

// TitledFix returns an object-form bug fix.
func TitledFix(title, description string) BugFix {
	return BugFix{Entry: &BugFixEntry{Title: title, Description: description}}
}

func (b BugFix) MarshalJSON() ([]byte, error) {
	if b.Entry == nil {
		return json.Marshal(b.Text)
	}
	return json.Marshal(b.Entry)
}

func (b *BugFix) UnmarshalJSON(data []byte) error {
	*b = BugFix{}
	if isJSONString(data) {
		return json.Unmarshal(data, &b.Text)
	}
	b.Entry = &BugFixEntry{}
	if isJSONNull(data) {
		return nil
	}
	if err := json.Unmarshal(data, b.Entry); err != nil {
		return fmt.Errorf("bug fix: %w", err)
	}
	return nil
}

var featureKeys = []string{"title", "platform", "plan", "channel", "description", "overview", "capabilities", "whatsNew"}

var improvementKeys = []string{"title", "overview", "description", "endpoint", "whatsNew", "details"}

func (f Feature) MarshalJSON() ([]byte, error) {
	type plain Feature
	return marshalWithExtra(plain(f), f.Extra)
}

func (f *Feature) UnmarshalJSON(data []byte) error {
	type plain Feature
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("feature: %w", err)
	}
	extra, err := unknownFields(data, featureKeys)
	if err != nil {
		return fmt.Errorf("feature: %w", err)
	}
	*f = Feature(p)
	f.Extra = extra
	return nil
}

func (i Improvement) MarshalJSON() ([]byte, error) {
	type plain Improvement
	return marshalWithExtra(plain(i), i.Extra)
}

func (i *Improvement) UnmarshalJSON(data []byte) error {
	type plain Improvement
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("improvement: %w", err)
	}
	extra, err := unknownFields(data, improvementKeys)
	if err != nil {
		return fmt.Errorf("improvement: %w", err)
	}
	*i = Improvement(p)
	i.Extra = extra
	return nil
}

// unknownFields returns the object members of data whose keys are not in known.
func unknownFields(data []byte, known []string) (map[string]json.RawMessage, error) {
	if isJSONNull(data) {
		return nil, nil
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// marshalWithExtra encodes v and appends extra members that v does not already define.
func marshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := fields[k]; !ok {
			fields[k] = raw
		}
	}
	return json.Marshal(fields)
}

func isJSONString(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
