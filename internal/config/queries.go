package config

import (
	"fmt"
	"strconv"
)

// Query is a named SQL statement saved on a profile.
type Query struct {
	Name string `yaml:"name"`
	Id   int    `yaml:"id"`
	SQL  string `yaml:"sql"`
}

func nextQueryId(queries map[string]Query) int {
	maxID := 0
	for _, q := range queries {
		if q.Id > maxID {
			maxID = q.Id
		}
	}
	return maxID + 1
}

// SaveQuery adds a new query to the profile and assigns it an ID.
// If the query already exists (by name), it returns an error.
func (p *Profile) SaveQuery(name, sql string) (Query, error) {
	if p.Queries == nil {
		p.Queries = make(map[string]Query)
	}
	if _, exists := p.Queries[name]; exists {
		return Query{}, fmt.Errorf("query '%s' already exists", name)
	}
	q := Query{Name: name, Id: nextQueryId(p.Queries), SQL: sql}
	p.Queries[name] = q
	return q, nil
}

// FindQuery looks a saved query up by numeric ID or by name.
func (p *Profile) FindQuery(selector string) (Query, bool) {
	if id, err := strconv.Atoi(selector); err == nil {
		for _, q := range p.Queries {
			if q.Id == id {
				return q, true
			}
		}
		return Query{}, false
	}
	q, ok := p.Queries[selector]
	return q, ok
}
