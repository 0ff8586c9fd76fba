package override

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/noticer/pkg/descriptor"
	"github.com/matzehuels/noticer/pkg/library"
	"github.com/matzehuels/noticer/pkg/license"
)

var hashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

type licenseEntry struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Year    string `yaml:"year"`
	SPDXID  string `yaml:"spdxId"`
	Content string `yaml:"content"`
}

func (e licenseEntry) license() license.License {
	l := license.New(e.Name, e.URL, e.Year)
	l.SPDXID = strings.TrimSpace(e.SPDXID)
	l.Content = e.Content
	return l
}

// licenseRef is either a hash string or an inline license.
type licenseRef struct {
	Hash   string
	Inline *licenseEntry
}

// UnmarshalYAML accepts a scalar hash or a license mapping.
func (r *licenseRef) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		h := strings.ToLower(strings.TrimSpace(n.Value))
		if !hashPattern.MatchString(h) {
			return fmt.Errorf("line %d: license reference %q is not a hash", n.Line, n.Value)
		}
		r.Hash = h
		return nil
	case yaml.MappingNode:
		var e licenseEntry
		if err := n.Decode(&e); err != nil {
			return err
		}
		if strings.TrimSpace(e.Name) == "" && strings.TrimSpace(e.URL) == "" {
			return fmt.Errorf("line %d: inline license needs a name or url", n.Line)
		}
		r.Inline = &e
		return nil
	default:
		return fmt.Errorf("line %d: license must be a hash or an object", n.Line)
	}
}

type libraryEntry struct {
	UniqueID        string                   `yaml:"uniqueId"`
	ArtifactVersion string                   `yaml:"artifactVersion"`
	Name            string                   `yaml:"name"`
	Description     string                   `yaml:"description"`
	Website         string                   `yaml:"website"`
	Developers      []descriptor.Developer   `yaml:"developers"`
	Organization    *descriptor.Organization `yaml:"organization"`
	SCM             *descriptor.SCM          `yaml:"scm"`
	Licenses        []licenseRef             `yaml:"licenses"`
}

func (e libraryEntry) library() (library.Library, []license.License) {
	lib := library.Library{
		UniqueID:        strings.TrimSpace(e.UniqueID),
		ArtifactVersion: strings.TrimSpace(e.ArtifactVersion),
		Name:            strings.TrimSpace(e.Name),
		Description:     e.Description,
		Website:         strings.TrimSpace(e.Website),
		Developers:      e.Developers,
		Organization:    e.Organization,
		SCM:             e.SCM,
	}
	if lib.Name == "" {
		lib.Name = lib.UniqueID
	}

	var inline []license.License
	hashes := make(map[string]struct{})
	for _, ref := range e.Licenses {
		if ref.Inline != nil {
			l := ref.Inline.license()
			inline = append(inline, l)
			hashes[l.Hash()] = struct{}{}
			continue
		}
		hashes[ref.Hash] = struct{}{}
	}
	lib.Licenses = make([]string, 0, len(hashes))
	for h := range hashes {
		lib.Licenses = append(lib.Licenses, h)
	}
	sort.Strings(lib.Licenses)
	return lib, inline
}
