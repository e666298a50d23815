package lesson

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

const topicPlaceholder = "{topic}"

var (
	// ErrEmptyCatalog is returned when a catalog defines no topics.
	ErrEmptyCatalog = errors.New("catalog: no topics")
	// ErrEmptyDrill is returned when a catalog defines no shadowing lines.
	ErrEmptyDrill = errors.New("catalog: no drill lines")
	// ErrDuplicateTopic is returned when two topics share a name.
	ErrDuplicateTopic = errors.New("catalog: duplicate topic")
	// ErrMissingFallback is returned when the generic example or opening is absent.
	ErrMissingFallback = errors.New("catalog: fallback example and opening are required")
)

// Line is one utterance of an example dialogue.
type Line struct {
	Speaker string `yaml:"speaker"`
	Text    string `yaml:"line"`
}

// String renders the line as `Speaker: "text"`.
func (l Line) String() string {
	return fmt.Sprintf("%s: \"%s\"", l.Speaker, l.Text)
}

// Topic is a role-play scenario. Example and Opening are optional.
type Topic struct {
	Name    string `yaml:"name"`
	Opening string `yaml:"opening"`
	Example []Line `yaml:"example"`
}

type fallbackSection struct {
	Opening string `yaml:"opening"`
	Example []Line `yaml:"example"`
}

type catalogFile struct {
	Topics   []Topic         `yaml:"topics"`
	Fallback fallbackSection `yaml:"fallback"`
	Drill    []string        `yaml:"drill"`
}

// Catalog is the immutable lesson content. It is safe for concurrent use.
type Catalog struct {
	topics   []Topic
	index    map[string]int
	fallback fallbackSection
	drill    []string
}

// DefaultCatalog parses the content compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// LoadCatalog reads a catalog from path. An empty path yields the default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates YAML catalog content.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return newCatalog(file)
}

func newCatalog(file catalogFile) (*Catalog, error) {
	if len(file.Topics) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(file.Drill) == 0 {
		return nil, ErrEmptyDrill
	}
	if len(file.Fallback.Example) == 0 || strings.TrimSpace(file.Fallback.Opening) == "" {
		return nil, ErrMissingFallback
	}

	c := &Catalog{
		topics:   make([]Topic, 0, len(file.Topics)),
		index:    make(map[string]int, len(file.Topics)),
		fallback: file.Fallback,
		drill:    append([]string(nil), file.Drill...),
	}
	for i, t := range file.Topics {
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			return nil, fmt.Errorf("catalog: topic #%d has no name", i+1)
		}
		if _, dup := c.index[t.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTopic, t.Name)
		}
		c.index[t.Name] = len(c.topics)
		c.topics = append(c.topics, t)
	}
	return c, nil
}

// Topics returns the topic names in catalog order.
func (c *Catalog) Topics() []string {
	out := make([]string, len(c.topics))
	for i, t := range c.topics {
		out[i] = t.Name
	}
	return out
}

// Has reports whether name is a catalog topic.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Example returns the dialogue for topic, or the generic one with the topic name substituted.
func (c *Catalog) Example(topic string) []Line {
	if i, ok := c.index[topic]; ok && len(c.topics[i].Example) > 0 {
		return append([]Line(nil), c.topics[i].Example...)
	}
	out := make([]Line, len(c.fallback.Example))
	for i, l := range c.fallback.Example {
		out[i] = Line{Speaker: l.Speaker, Text: strings.ReplaceAll(l.Text, topicPlaceholder, topic)}
	}
	return out
}

// Opening returns the role-play opener for topic, or the generic one.
func (c *Catalog) Opening(topic string) string {
	if i, ok := c.index[topic]; ok && strings.TrimSpace(c.topics[i].Opening) != "" {
		return c.topics[i].Opening
	}
	return c.fallback.Opening
}

// Drill returns the shadowing lines in order.
func (c *Catalog) Drill() []string {
	return append([]string(nil), c.drill...)
}

// DrillLen is the number of shadowing lines.
func (c *Catalog) DrillLen() int { return len(c.drill) }

// DrillLine returns the shadowing line at i; ok is false when i is out of range.
func (c *Catalog) DrillLine(i int) (string, bool) {
	if i < 0 || i >= len(c.drill) {
		return "", false
	}
	return c.drill[i], true
}

// Pick chooses a topic uniformly at random, never returning exclude unless it is the
// only topic.
func (c *Catalog) Pick(r *rand.Rand, exclude string) string {
	candidates := make([]string, 0, len(c.topics))
	for _, t := range c.topics {
		if t.Name != exclude {
			candidates = append(candidates, t.Name)
		}
	}
	if len(candidates) == 0 {
		candidates = c.Topics()
	}
	return candidates[r.IntN(len(candidates))]
}
