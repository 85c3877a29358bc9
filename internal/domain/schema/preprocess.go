// Package schema joins relations onto the entities they connect.
package schema

import (
	"fmt"

	"github.com/openkraft/lowgen/internal/domain"
)

// Preprocess returns copies of entities, each carrying every relation in
// which it is the source or the target. A relation end matches an entity by
// ID or by name. Neither input slice is modified.
func Preprocess(entities []domain.Entity, relations []domain.Relation) []domain.Entity {
	out := make([]domain.Entity, len(entities))
	for i, e := range entities {
		c := e
		c.Fields = append([]domain.Field(nil), e.Fields...)
		c.Relations = nil
		for _, r := range relations {
			if refersTo(r.SourceEntityID, e) || refersTo(r.TargetEntityID, e) {
				c.Relations = append(c.Relations, r)
			}
		}
		out[i] = c
	}
	return out
}

func refersTo(ref string, e domain.Entity) bool {
	return ref != "" && (ref == e.ID || ref == e.Name)
}

// Validate reports structural problems in a schema: duplicate or missing
// entity names, relations pointing at unknown entities and unknown relation
// types. An empty result means the schema is usable.
func Validate(entities []domain.Entity, relations []domain.Relation) []string {
	var problems []string
	known := make(map[string]bool, len(entities)*2)
	seen := make(map[string]bool, len(entities))
	for i, e := range entities {
		if e.Name == "" {
			problems = append(problems, fmt.Sprintf("entities[%d]: name is required", i))
			continue
		}
		if seen[e.Name] {
			problems = append(problems, fmt.Sprintf("duplicate entity %q", e.Name))
		}
		seen[e.Name] = true
		known[e.Name] = true
		if e.ID != "" {
			known[e.ID] = true
		}
	}
	for _, r := range relations {
		switch r.Type {
		case domain.RelationOneToOne, domain.RelationOneToMany, domain.RelationManyToOne, domain.RelationManyToMany:
		default:
			problems = append(problems, fmt.Sprintf("relation %s: unknown type %q", r.ID, r.Type))
		}
		if !known[r.SourceEntityID] {
			problems = append(problems, fmt.Sprintf("relation %s: unknown source entity %q", r.ID, r.SourceEntityID))
		}
		if !known[r.TargetEntityID] {
			problems = append(problems, fmt.Sprintf("relation %s: unknown target entity %q", r.ID, r.TargetEntityID))
		}
	}
	return problems
}
