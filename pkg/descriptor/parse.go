package descriptor

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/noticer/pkg/coord"
	"github.com/matzehuels/noticer/pkg/errors"
)

// Parser turns a descriptor byte stream into a Record.
type Parser interface {
	Parse(r io.Reader) (*Record, error)
}

// POMParser parses Maven POM descriptors.
type POMParser struct{}

// Parse reads, repairs and parses a POM.
func (POMParser) Parse(r io.Reader) (*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "read descriptor")
	}
	return Parse(data)
}

// ReadFile reads the descriptor at path and parses it. The second return
// value reports whether [Repair] had to drop leading bytes.
func ReadFile(path string) (*Record, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	repaired, changed := Repair(data)
	rec, err := parseRepaired(repaired)
	return rec, changed, err
}

// Repair trims surrounding whitespace and drops any bytes before the first
// '<'. It reports whether bytes other than whitespace were dropped.
func Repair(data []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '<' {
		return trimmed, false
	}
	idx := bytes.IndexByte(trimmed, '<')
	if idx < 0 {
		return trimmed, true
	}
	return trimmed[idx:], true
}

// Parse repairs and parses descriptor text.
func Parse(data []byte) (*Record, error) {
	repaired, _ := Repair(data)
	return parseRepaired(repaired)
}

func parseRepaired(data []byte) (*Record, error) {
	if len(data) == 0 || data[0] != '<' {
		return nil, errors.New(errors.ErrCodeInvalidDescriptor, "descriptor has no XML content")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "parse descriptor")
	}
	project := doc.Root()
	if project == nil || project.Tag != "project" {
		return nil, errors.New(errors.ErrCodeInvalidDescriptor, "descriptor root is not <project>")
	}

	rec := &Record{
		GroupID:     childText(project, "groupId"),
		ArtifactID:  childText(project, "artifactId"),
		Version:     childText(project, "version"),
		Name:        childText(project, "name"),
		Description: childText(project, "description"),
		HomePage:    childText(project, "url"),
	}

	if p := project.SelectElement("parent"); p != nil {
		parent := coord.New(childText(p, "groupId"), childText(p, "artifactId"), childText(p, "version"))
		rec.Parent = &parent
	}

	if s := project.SelectElement("scm"); s != nil {
		rec.SCM = &SCM{
			Connection:          childText(s, "connection"),
			DeveloperConnection: childText(s, "developerConnection"),
			URL:                 childText(s, "url"),
		}
	}

	for _, l := range project.FindElements("./licenses/license") {
		lic := RawLicense{Name: childText(l, "name"), URL: childText(l, "url")}
		if lic.Name == "" && lic.URL == "" {
			continue
		}
		rec.Licenses = append(rec.Licenses, lic)
	}

	for _, d := range project.FindElements("./developers/developer") {
		dev := Developer{Name: childText(d, "name"), OrganisationURL: childText(d, "organizationUrl")}
		if dev.Name == "" {
			dev.Name = childText(d, "id")
		}
		if dev.Name == "" && dev.OrganisationURL == "" {
			continue
		}
		rec.Developers = append(rec.Developers, dev)
	}

	if o := project.SelectElement("organization"); o != nil {
		org := Organization{Name: childText(o, "name"), URL: childText(o, "url")}
		if org.Name != "" || org.URL != "" {
			rec.Organization = &org
		}
	}

	interpolate(rec, properties(project))
	return rec, nil
}

func childText(el *etree.Element, tag string) string {
	c := el.SelectElement(tag)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}

func properties(project *etree.Element) map[string]string {
	props := make(map[string]string)
	if p := project.SelectElement("properties"); p != nil {
		for _, c := range p.ChildElements() {
			props[c.Tag] = strings.TrimSpace(c.Text())
		}
	}
	return props
}

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

func interpolate(rec *Record, props map[string]string) {
	c := rec.Coordinate()
	builtins := map[string]string{
		"project.groupId":    c.Group,
		"project.artifactId": c.Artifact,
		"project.version":    c.Version,
		"project.name":       rec.Name,
		"pom.groupId":        c.Group,
		"pom.artifactId":     c.Artifact,
		"pom.version":        c.Version,
	}
	if rec.Parent != nil {
		builtins["project.parent.groupId"] = rec.Parent.Group
		builtins["project.parent.artifactId"] = rec.Parent.Artifact
		builtins["project.parent.version"] = rec.Parent.Version
	}

	expand := func(s string) string {
		if !strings.Contains(s, "${") {
			return s
		}
		return placeholder.ReplaceAllStringFunc(s, func(m string) string {
			key := m[2 : len(m)-1]
			if v, ok := props[key]; ok && !strings.Contains(v, "${") {
				return v
			}
			if v, ok := builtins[key]; ok && v != "" {
				return v
			}
			return m
		})
	}

	rec.Name = expand(rec.Name)
	rec.Description = expand(rec.Description)
	rec.HomePage = expand(rec.HomePage)
	rec.Version = expand(rec.Version)
	if rec.SCM != nil {
		rec.SCM.URL = expand(rec.SCM.URL)
		rec.SCM.Connection = expand(rec.SCM.Connection)
		rec.SCM.DeveloperConnection = expand(rec.SCM.DeveloperConnection)
	}
	for i := range rec.Licenses {
		rec.Licenses[i].Name = expand(rec.Licenses[i].Name)
		rec.Licenses[i].URL = expand(rec.Licenses[i].URL)
	}
	if rec.Organization != nil {
		rec.Organization.Name = expand(rec.Organization.Name)
		rec.Organization.URL = expand(rec.Organization.URL)
	}
}
