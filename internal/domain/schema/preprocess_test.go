package schema_test

import (
	"testing"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() ([]domain.Entity, []domain.Relation) {
	entities := []domain.Entity{
		{ID: "e1", Name: "Customer"},
		{ID: "e2", Name: "Order"},
		{ID: "e3", Name: "Product"},
	}
	relations := []domain.Relation{
		{ID: "r1", Type: domain.RelationOneToMany, SourceEntityID: "e1", TargetEntityID: "e2"},
		{ID: "r2", Type: domain.RelationManyToMany, SourceEntityID: "e2", TargetEntityID: "e3"},
	}
	return entities, relations
}

func TestPreprocess_AttachesRelationsOnBothEnds(t *testing.T) {
	entities, relations := fixture()

	out := schema.Preprocess(entities, relations)
	require.Len(t, out, 3)

	assert.Len(t, out[0].Relations, 1)
	assert.Equal(t, "r1", out[0].Relations[0].ID)

	require.Len(t, out[1].Relations, 2)
	assert.Equal(t, "r1", out[1].Relations[0].ID)
	assert.Equal(t, "r2", out[1].Relations[1].ID)

	assert.Len(t, out[2].Relations, 1)
}

func TestPreprocess_DoesNotMutateInput(t *testing.T) {
	entities, relations := fixture()

	_ = schema.Preprocess(entities, relations)

	for _, e := range entities {
		assert.Nil(t, e.Relations)
	}
	assert.Equal(t, "e1", relations[0].SourceEntityID)
}

func TestPreprocess_MatchesByName(t *testing.T) {
	entities := []domain.Entity{{Name: "Order"}, {Name: "Invoice"}}
	relations := []domain.Relation{{ID: "r", Type: domain.RelationOneToOne, SourceEntityID: "Order", TargetEntityID: "Invoice"}}

	out := schema.Preprocess(entities, relations)
	assert.True(t, out[0].HasRelations())
	assert.True(t, out[1].HasRelations())
}

func TestPreprocess_Empty(t *testing.T) {
	assert.Empty(t, schema.Preprocess(nil, nil))
}

func TestValidate(t *testing.T) {
	entities, relations := fixture()
	assert.Empty(t, schema.Validate(entities, relations))

	entities = append(entities, domain.Entity{Name: "Order"}, domain.Entity{})
	relations = append(relations, domain.Relation{ID: "r3", Type: "oneToFew", SourceEntityID: "e1", TargetEntityID: "ghost"})

	problems := schema.Validate(entities, relations)
	assert.Contains(t, problems, `duplicate entity "Order"`)
	assert.Contains(t, problems, "entities[4]: name is required")
	assert.Contains(t, problems, `relation r3: unknown type "oneToFew"`)
	assert.Contains(t, problems, `relation r3: unknown target entity "ghost"`)
}
