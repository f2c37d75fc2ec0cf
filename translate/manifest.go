// Manifest-driven bulk warm-up of a Cache (component M)

package translate

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/valyala/fastjson"
	"gopkg.in/yaml.v2"
)

// trailingComma matches a dangling comma before a closing brace, tolerated since manifests are
// hand-edited by data maintainers.
var trailingComma = regexp.MustCompile(`,\s*?\n\s*}`)

// Manifest lists the logical translation-file paths a caller wants preloaded into a Cache, plus
// an optional per-entry overlay toggle. It is a thin JSON (or YAML) document. Since manifests are
// hand-edited by data maintainers and tend to pick up trailing commas, a comma directly before a
// closing brace on a following line is stripped (see trailingComma) before fastjson parses it.
type Manifest struct {
	Files []ManifestEntry
}

type ManifestEntry struct {
	Path      string
	NoOverlay bool //If true, this entry is loaded without overlay merging even if the cache has one
}

var manifestParserPool fastjson.ParserPool

// LoadManifest reads and parses a manifest file at p. Files with a ".yaml"/".yml" extension are
// parsed as YAML; everything else is parsed as (trailing-comma-tolerant) JSON.
func LoadManifest(p string) (*Manifest, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(path.Ext(p))
	if ext == ".yaml" || ext == ".yml" {
		return ParseManifestYAML(data)
	}
	return ParseManifest(data)
}

// yamlManifest mirrors Manifest's JSON shape for YAML documents, which data maintainers tend to
// prefer for hand-written manifests over JSON's stricter quoting rules.
type yamlManifest struct {
	Files []struct {
		Path      string `yaml:"path"`
		NoOverlay bool   `yaml:"no_overlay"`
	} `yaml:"files"`
}

// ParseManifestYAML parses a manifest document in YAML form:
//
//	files:
//	  - path: stat_descriptions.txt
//	  - path: skill_stat_descriptions.txt
//	    no_overlay: true
func ParseManifestYAML(data []byte) (*Manifest, error) {
	var y yamlManifest
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	m := &Manifest{}
	for _, entry := range y.Files {
		m.Files = append(m.Files, ManifestEntry{Path: entry.Path, NoOverlay: entry.NoOverlay})
	}
	return m, nil
}

// ParseManifest parses a manifest document already in memory. Expected shape:
//
//	{"files": [{"path": "stat_descriptions.txt"}, {"path": "skill_stat_descriptions.txt", "no_overlay": true}]}
//
// A bare array of path strings is also accepted as a shorthand.
func ParseManifest(data []byte) (*Manifest, error) {
	data = trailingComma.ReplaceAll(data, []byte{'}'})

	p := manifestParserPool.Get()
	defer manifestParserPool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	m := &Manifest{}
	switch v.Type() {
	case fastjson.TypeArray:
		for _, entry := range v.GetArray() {
			m.Files = append(m.Files, ManifestEntry{Path: string(entry.GetStringBytes())})
		}
	case fastjson.TypeObject:
		arr := v.GetArray("files")
		for _, entry := range arr {
			m.Files = append(m.Files, ManifestEntry{
				Path:      string(entry.GetStringBytes("path")),
				NoOverlay: entry.GetBool("no_overlay"),
			})
		}
	default:
		return nil, fmt.Errorf("manifest: expected a JSON array or object, got %s", v.Type())
	}
	return m, nil
}

// WarmFromManifest loads every entry in m into c, continuing past individual failures and
// collecting them so one bad path doesn't abort the rest of the warm-up. NoOverlay entries are
// loaded through a separate Cache sharing the same base directory but no overlay, and the result
// is stored in c under the entry's name unless c already holds one.
func (c *Cache) WarmFromManifest(m *Manifest) []error {
	var errs []error
	var noOverlayCache *Cache

	for _, entry := range m.Files {
		if entry.NoOverlay && c.overlayDir != "" {
			if noOverlayCache == nil {
				noOverlayCache = NewCache(c.baseDir, "")
			}
			f, err := noOverlayCache.Get(entry.Path)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", entry.Path, err))
				continue
			}
			key := normalizeName(entry.Path)
			c.mu.Lock()
			if _, ok := c.entries[key]; !ok {
				c.entries[key] = f
			}
			c.mu.Unlock()
			continue
		}
		if _, err := c.Get(entry.Path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.Path, err))
		}
	}
	return errs
}
