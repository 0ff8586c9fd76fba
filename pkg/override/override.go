// Package override reads operator-supplied library and license entries from
// an override directory.
//
// # Layout
//
//	<dir>/licenses/*.{json,yaml,yml}   one license per file, or a list
//	<dir>/libraries/*.{json,yaml,yml}  one library per file, or a list
//
// Files are read in lexical order. JSON is read with the YAML decoder, so
// both formats share one code path.
//
// # Licenses
//
// A license entry has the fields of [license.License]. Its key is the content
// hash, so an entry that matches a resolved license replaces it (typically
// adding text). When name is omitted the file stem is used.
//
// # Libraries
//
// A library entry has the fields of [library.Library]. Its licenses list may
// mix hash references and inline {name, url} entries:
//
//	uniqueId: com.example:internal-sdk
//	name: Internal SDK
//	licenses:
//	  - 9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08
//	  - name: Proprietary
//	    url: https://example.com/license
//
// Inline entries are hashed and returned alongside the libraries.
package override

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/noticer/pkg/errors"
	"github.com/matzehuels/noticer/pkg/library"
	"github.com/matzehuels/noticer/pkg/license"
)

// Subdirectory names inside an override directory.
const (
	LicensesDir  = "licenses"
	LibrariesDir = "libraries"
)

// Reader reads override entries from disk.
type Reader struct{}

// ReadLicenses returns the license entries under dir/licenses.
// A missing subdirectory yields no entries; dir itself must exist.
func (Reader) ReadLicenses(dir string) ([]license.License, error) {
	files, err := list(dir, LicensesDir)
	if err != nil {
		return nil, err
	}

	var out []license.License
	for _, f := range files {
		var entries []licenseEntry
		if err := decodeFile(f, &entries); err != nil {
			return nil, err
		}
		stem := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		for i, e := range entries {
			l := e.license()
			if l.Name == "" {
				l.Name = stem
			}
			if l.Name == "" && l.URL == "" {
				return nil, errors.New(errors.ErrCodeInvalidOverride, "%s: entry %d has no name or url", f, i)
			}
			out = append(out, l)
		}
	}
	return out, nil
}

// ReadLibraries returns the library entries under dir/libraries together
// with the licenses they declare inline.
func (Reader) ReadLibraries(dir string) ([]library.Library, []license.License, error) {
	files, err := list(dir, LibrariesDir)
	if err != nil {
		return nil, nil, err
	}

	var (
		libs     []library.Library
		licenses []license.License
	)
	for _, f := range files {
		var entries []libraryEntry
		if err := decodeFile(f, &entries); err != nil {
			return nil, nil, err
		}
		for i, e := range entries {
			if strings.TrimSpace(e.UniqueID) == "" {
				return nil, nil, errors.New(errors.ErrCodeInvalidOverride, "%s: entry %d has no uniqueId", f, i)
			}
			lib, inline := e.library()
			libs = append(libs, lib)
			licenses = append(licenses, inline...)
		}
	}
	return libs, licenses, nil
}

func list(dir, sub string) ([]string, error) {
	if info, err := os.Stat(dir); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "override directory %s", dir)
	} else if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "override path %s is not a directory", dir)
	}

	entries, err := os.ReadDir(filepath.Join(dir, sub))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", filepath.Join(dir, sub))
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, sub, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// decodeFile decodes a file holding either one entry or a list of entries.
func decodeFile[T any](path string, out *[]T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOverride, err, "parse %s", path)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]

	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(out); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOverride, err, "decode %s", path)
		}
	case yaml.MappingNode:
		var v T
		if err := root.Decode(&v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOverride, err, "decode %s", path)
		}
		*out = append(*out, v)
	default:
		return errors.New(errors.ErrCodeInvalidOverride, "%s: expected an object or a list", path)
	}
	return nil
}
