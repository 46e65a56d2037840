package phrase

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed phrases.yaml
var defaultCatalog []byte

var (
	ErrUnknownPhrase = errors.New("unknown phrase key")
	ErrEmptyPhrase   = errors.New("phrase has no variants")
)

// Catalog holds the parsed text variants keyed by "group.name".
type Catalog struct {
	sets map[string][]*template.Template
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse reads a YAML catalog of the form group -> name -> [variants].
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("phrase.Parse: %w", err)
	}

	c := &Catalog{sets: make(map[string][]*template.Template)}
	for group, names := range raw {
		for name, variants := range names {
			key := group + "." + name
			if len(variants) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrEmptyPhrase, key)
			}
			tpls := make([]*template.Template, 0, len(variants))
			for i, v := range variants {
				tpl, err := template.New(fmt.Sprintf("%s[%d]", key, i)).Option("missingkey=error").Parse(v)
				if err != nil {
					return nil, fmt.Errorf("phrase.Parse %s: %w", key, err)
				}
				tpls = append(tpls, tpl)
			}
			c.sets[key] = tpls
		}
	}
	return c, nil
}

// Keys lists every key in the catalog, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.sets))
	for k := range c.sets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of variants for key, or 0.
func (c *Catalog) Len(key string) int {
	return len(c.sets[key])
}

// Render picks one variant of key with sel and executes it with data.
func (c *Catalog) Render(sel Selector, key string, data any) (string, error) {
	tpls, ok := c.sets[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPhrase, key)
	}
	tpl := tpls[sel.Pick(len(tpls))]

	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("phrase.Render %s: %w", key, err)
	}
	return sb.String(), nil
}
