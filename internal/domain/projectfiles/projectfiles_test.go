package projectfiles_test

import (
	"encoding/json"
	"testing"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/projectfiles"
	"github.com/openkraft/lowgen/internal/domain/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextFor(t *testing.T, name string) *domain.GenerationContext {
	t.Helper()
	s, ok := strategy.Builtin(name)
	require.True(t, ok)
	return &domain.GenerationContext{
		Strategy: &s,
		Entities: []domain.Entity{{ID: "1", Name: "Order"}, {ID: "2", Name: "OrderItem"}},
		Project:  domain.Project{Name: "Shop Service", Version: "1.2.0"},
		Options:  domain.GenerationOptions{OutputDir: "out"},
	}
}

func TestBuild_NestJS(t *testing.T) {
	files, err := projectfiles.Build(contextFor(t, strategy.NestJSStandard))
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "out/package.json", files[0].Path)
	assert.Equal(t, domain.FileTypeConfig, files[0].Type)
	assert.Equal(t, "out/tsconfig.json", files[1].Path)

	var pkg struct {
		Name         string            `json:"name"`
		Version      string            `json:"version"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal([]byte(files[0].Content), &pkg))
	assert.Equal(t, "shop-service", pkg.Name)
	assert.Equal(t, "1.2.0", pkg.Version)
	assert.Equal(t, "^10.0.0", pkg.Dependencies["@nestjs/common"])
	assert.Equal(t, "^0.14.0", pkg.Dependencies["class-validator"])
}

func TestBuild_SpringBoot(t *testing.T) {
	files, err := projectfiles.Build(contextFor(t, strategy.SpringBootStandard))
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "out/pom.xml", files[0].Path)
	assert.Contains(t, files[0].Content, "<artifactId>spring-boot-starter-data-jpa</artifactId>")
	assert.Contains(t, files[0].Content, "<groupId>org.springdoc</groupId>")
	assert.Contains(t, files[0].Content, "<groupId>com.example.shopservice</groupId>")
	assert.Equal(t, "out/src/main/resources/application.yml", files[1].Path)
	assert.Contains(t, files[1].Content, "name: shop-service")
}

func TestBuild_Go(t *testing.T) {
	gctx := contextFor(t, strategy.GoStandard)
	gctx.Project.Module = "github.com/acme/shop"

	files, err := projectfiles.Build(gctx)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "out/go.mod", files[0].Path)
	assert.Contains(t, files[0].Content, "module github.com/acme/shop\n")
	assert.Contains(t, files[0].Content, "\tgithub.com/google/uuid v1.6.0\n")

	reg := files[1]
	assert.Equal(t, "out/internal/registry/registry.go", reg.Path)
	assert.Contains(t, reg.Content, "// Code generated by lowgen. DO NOT EDIT.")
	assert.Contains(t, reg.Content, "package registry")
	assert.Contains(t, reg.Content, `"github.com/acme/shop/internal/domain"`)
	assert.Contains(t, reg.Content, `"OrderItem": "order_items"`)
	assert.Contains(t, reg.Content, "func NewOrder() *domain.Order")
}

func TestBuild_UnknownFrameworkProducesNothing(t *testing.T) {
	s := domain.GenerationStrategy{Name: "x", Framework: "custom"}
	files, err := projectfiles.Build(&domain.GenerationContext{Strategy: &s})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFrameworks(t *testing.T) {
	assert.Equal(t, []string{"go", "nestjs", "spring-boot"}, projectfiles.Frameworks())
}

func TestEntityDoc(t *testing.T) {
	gctx := contextFor(t, strategy.NestJSStandard)
	e := domain.Entity{
		ID:   "1",
		Name: "OrderItem",
		Fields: []domain.Field{
			{Name: "quantity", Type: "number", Required: true},
		},
		Relations: []domain.Relation{
			{ID: "r1", Type: domain.RelationManyToOne, SourceEntityID: "2", TargetEntityID: "1", Field: "order"},
		},
	}

	doc := projectfiles.EntityDoc(e, gctx)
	assert.Equal(t, "out/docs/order-item.md", doc.Path)
	assert.Equal(t, domain.FileTypeDoc, doc.Type)
	assert.Contains(t, doc.Content, "# Order Item\n")
	assert.Contains(t, doc.Content, "Table: `order_items`")
	assert.Contains(t, doc.Content, "| quantity | number | yes | no |  |")
	assert.Contains(t, doc.Content, "| manyToOne | OrderItem | Order | order |")
}
