package generator

import (
	"sort"
	"strconv"
	"strings"
)

// Import paths of the metadata packages the generated files call into
const (
	gildImportPath         = "github.com/gildlabs/gild/pkg/gild"
	authenticateImportPath = "github.com/gildlabs/gild/pkg/gild/authenticate"
	injectImportPath       = "github.com/gildlabs/gild/pkg/gild/inject"
	mountImportPath        = "github.com/gildlabs/gild/pkg/gild/mount"
	openapiImportPath      = "github.com/gildlabs/gild/pkg/gild/openapi"
	repositoryImportPath   = "github.com/gildlabs/gild/pkg/gild/repository"
)

// importSet collects the imports one generated file needs and renders them
// as deduplicated, sorted import lines
type importSet struct {
	plain   map[string]bool
	aliased map[string]string // path -> alias
}

func newImportSet() *importSet {
	return &importSet{
		plain:   make(map[string]bool),
		aliased: make(map[string]string),
	}
}

// add records a plain import
func (s *importSet) add(path string) {
	if path != "" {
		s.plain[path] = true
	}
}

// addAliased records an import under an explicit package name. The alias is
// dropped when it matches the path's last element.
func (s *importSet) addAliased(alias, path string) {
	if path == "" {
		return
	}
	if alias == "" || alias == pathBase(path) {
		s.add(path)
		return
	}
	s.aliased[path] = alias
}

// lines renders the collected imports sorted by import path
func (s *importSet) lines() []string {
	type entry struct {
		path string
		line string
	}
	entries := make([]entry, 0, len(s.plain)+len(s.aliased))
	for path := range s.plain {
		if _, ok := s.aliased[path]; ok {
			continue
		}
		entries = append(entries, entry{path: path, line: strconv.Quote(path)})
	}
	for path, alias := range s.aliased {
		entries = append(entries, entry{path: path, line: alias + " " + strconv.Quote(path)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.line
	}
	return lines
}

func pathBase(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
