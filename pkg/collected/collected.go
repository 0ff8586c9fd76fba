// Package collected holds the dependency lists produced by a build tool,
// one list per build variant.
//
// The on-disk form is JSON (YAML is accepted too):
//
//	{
//	  "variants": {
//	    "release": {
//	      "com.squareup.okio:okio": ["3.6.0"],
//	      "androidx.core:core": ["1.12.0", "1.10.0"]
//	    }
//	  }
//	}
//
// Key order is significant: dependencies are processed in file order, and
// the first version of each entry is the resolved one.
package collected

import (
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/noticer/pkg/coord"
	"github.com/matzehuels/noticer/pkg/errors"
)

// Entry is one dependency and its candidate versions.
type Entry struct {
	UniqueID string
	Versions []string
}

// Coordinate returns the coordinate for the first candidate version.
// ok is false when the entry has no version or a malformed unique id.
func (e Entry) Coordinate() (c coord.Coordinate, ok bool) {
	group, artifact, found := strings.Cut(e.UniqueID, ":")
	if !found || group == "" || artifact == "" || len(e.Versions) == 0 {
		return coord.Coordinate{}, false
	}
	return coord.New(group, artifact, e.Versions[0]), true
}

// Dependencies is an ordered dependency list.
type Dependencies []Entry

// UnmarshalYAML decodes a {uniqueId: [versions]} mapping, keeping key order.
func (d *Dependencies) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return errors.New(errors.ErrCodeInvalidInput, "line %d: dependencies must be an object", n.Line)
	}
	out := make(Dependencies, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var versions []string
		if err := n.Content[i+1].Decode(&versions); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "versions of %s", n.Content[i].Value)
		}
		out = append(out, Entry{UniqueID: n.Content[i].Value, Versions: versions})
	}
	*d = out
	return nil
}

// MarshalYAML encodes the list as an ordered mapping.
func (d Dependencies) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range d {
		var versions yaml.Node
		if err := versions.Encode(e.Versions); err != nil {
			return nil, err
		}
		versions.Style = yaml.FlowStyle
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: e.UniqueID}, &versions)
	}
	return n, nil
}

// Container maps variant names to their dependency lists.
type Container struct {
	Variants map[string]Dependencies
	names    []string
}

// Add appends a variant, replacing one with the same name.
func (c *Container) Add(name string, deps Dependencies) {
	if c.Variants == nil {
		c.Variants = make(map[string]Dependencies)
	}
	if _, ok := c.Variants[name]; !ok {
		c.names = append(c.names, name)
	}
	c.Variants[name] = deps
}

// Names returns variant names in file order. Variants set directly on the
// map, without [Container.Add], follow in lexical order.
func (c *Container) Names() []string {
	names := append([]string(nil), c.names...)
	if len(names) == len(c.Variants) {
		return names
	}
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	var extra []string
	for n := range c.Variants {
		if !known[n] {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// ForVariant returns the dependencies of one variant. An empty name merges
// all variants: the first occurrence fixes an entry's position and later
// versions are appended without duplicates.
func (c *Container) ForVariant(name string) (Dependencies, error) {
	if name != "" {
		deps, ok := c.Variants[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeVariantNotFound, "variant %q not found (have %s)", name, strings.Join(c.Names(), ", "))
		}
		return deps, nil
	}

	var merged Dependencies
	index := make(map[string]int)
	for _, v := range c.Names() {
		for _, e := range c.Variants[v] {
			i, ok := index[e.UniqueID]
			if !ok {
				index[e.UniqueID] = len(merged)
				merged = append(merged, Entry{UniqueID: e.UniqueID, Versions: append([]string(nil), e.Versions...)})
				continue
			}
			for _, ver := range e.Versions {
				if !contains(merged[i].Versions, ver) {
					merged[i].Versions = append(merged[i].Versions, ver)
				}
			}
		}
	}
	return merged, nil
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// UnmarshalYAML decodes {"variants": {...}} keeping variant order.
func (c *Container) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return errors.New(errors.ErrCodeInvalidInput, "line %d: expected an object", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != "variants" {
			continue
		}
		variants := n.Content[i+1]
		if variants.Kind != yaml.MappingNode {
			return errors.New(errors.ErrCodeInvalidInput, "line %d: variants must be an object", variants.Line)
		}
		for j := 0; j+1 < len(variants.Content); j += 2 {
			var deps Dependencies
			if err := variants.Content[j+1].Decode(&deps); err != nil {
				return err
			}
			c.Add(variants.Content[j].Value, deps)
		}
	}
	return nil
}

// MarshalYAML encodes the container with variants in insertion order.
func (c Container) MarshalYAML() (any, error) {
	variants := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range c.Names() {
		var deps yaml.Node
		if err := deps.Encode(c.Variants[name]); err != nil {
			return nil, err
		}
		variants.Content = append(variants.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, &deps)
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "variants"}, variants,
	}}, nil
}

// Parse decodes a container from JSON or YAML.
func Parse(data []byte) (*Container, error) {
	var c Container
	if err := yaml.Unmarshal(data, &c); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse dependency list")
	}
	if c.Variants == nil {
		c.Variants = make(map[string]Dependencies)
	}
	return &c, nil
}

// Load reads a container from path.
func Load(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return Parse(data)
}
