package deploy

import (
	"sort"
	"strings"
)

// Framework is one entry of the catalog offered by the creation form.
type Framework struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`
	Language string `json:"language" yaml:"language"`
	Port     int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// FrameworkGroups is the body of GET /api/frameworks, keyed by language.
type FrameworkGroups map[string][]Framework

// Catalog is an ordered set of frameworks.
type Catalog struct {
	items []Framework
	index map[string]int
}

var builtinFrameworks = []Framework{
	{ID: "django", Name: "Django", Version: "4.x", Language: "python", Port: 8000},
	{ID: "flask", Name: "Flask", Version: "3.x", Language: "python", Port: 5000},
	{ID: "fastapi", Name: "FastAPI", Version: "latest", Language: "python", Port: 8000},
	{ID: "nodejs", Name: "Node.js/Express", Version: "20.x", Language: "javascript", Port: 3000},
	{ID: "express", Name: "Express", Version: "4.x", Language: "javascript", Port: 3000},
	{ID: "react", Name: "React", Version: "18.x", Language: "javascript", Port: 3000},
	{ID: "vue", Name: "Vue.js", Version: "3.x", Language: "javascript", Port: 8080},
	{ID: "nextjs", Name: "Next.js", Version: "14.x", Language: "javascript", Port: 3000},
	{ID: "laravel", Name: "Laravel", Version: "10.x", Language: "php", Port: 8000},
	{ID: "symfony", Name: "Symfony", Version: "6.x", Language: "php", Port: 8000},
	{ID: "springboot", Name: "Spring Boot", Version: "3.x", Language: "java", Port: 8080},
}

// DefaultCatalog returns the frameworks the backend supports out of the box.
func DefaultCatalog() *Catalog {
	return NewCatalog(builtinFrameworks)
}

// NewCatalog builds a catalog keeping the first occurrence of every id.
func NewCatalog(frameworks []Framework) *Catalog {
	c := &Catalog{index: make(map[string]int, len(frameworks))}
	for _, f := range frameworks {
		f.ID = strings.ToLower(f.ID)
		if _, dup := c.index[f.ID]; dup || f.ID == "" {
			continue
		}
		c.index[f.ID] = len(c.items)
		c.items = append(c.items, f)
	}
	return c
}

// WithRemote overlays names and versions announced by the backend. Entries the
// backend lists but the catalog does not know are appended; built-in ports are kept.
func (c *Catalog) WithRemote(groups FrameworkGroups) *Catalog {
	merged := append([]Framework(nil), c.items...)
	idx := make(map[string]int, len(c.index))
	for k, v := range c.index {
		idx[k] = v
	}

	languages := make([]string, 0, len(groups))
	for lang := range groups {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	for _, lang := range languages {
		for _, f := range groups[lang] {
			id := strings.ToLower(f.ID)
			if id == "" {
				continue
			}
			if i, ok := idx[id]; ok {
				if f.Name != "" {
					merged[i].Name = f.Name
				}
				if f.Version != "" {
					merged[i].Version = f.Version
				}
				continue
			}
			f.ID = id
			f.Language = lang
			idx[id] = len(merged)
			merged = append(merged, f)
		}
	}
	return NewCatalog(merged)
}

// Supported reports whether id (case-insensitive) is in the catalog.
func (c *Catalog) Supported(id string) bool {
	_, ok := c.index[strings.ToLower(id)]
	return ok
}

// Get returns the framework for id.
func (c *Catalog) Get(id string) (Framework, bool) {
	i, ok := c.index[strings.ToLower(id)]
	if !ok {
		return Framework{}, false
	}
	return c.items[i], true
}

// All returns the frameworks in catalog order.
func (c *Catalog) All() []Framework {
	return append([]Framework(nil), c.items...)
}

// Grouped renders the catalog in the GET /api/frameworks shape.
func (c *Catalog) Grouped() FrameworkGroups {
	groups := FrameworkGroups{}
	for _, f := range c.items {
		groups[f.Language] = append(groups[f.Language], Framework{ID: f.ID, Name: f.Name, Version: f.Version})
	}
	return groups
}

// Len is the number of frameworks.
func (c *Catalog) Len() int {
	return len(c.items)
}
