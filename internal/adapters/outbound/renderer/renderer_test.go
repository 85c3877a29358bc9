package renderer_test

import (
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/lowgen/internal/adapters/outbound/renderer"
	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/strategy"
)

func shop(t *testing.T, strategyName string) (*domain.GenerationContext, domain.Entity, domain.Entity) {
	t.Helper()
	st, ok := strategy.Builtin(strategyName)
	require.True(t, ok)

	rel := domain.Relation{
		ID:             "r1",
		Type:           domain.RelationManyToOne,
		SourceEntityID: "order",
		TargetEntityID: "customer",
		Field:          "customer",
	}
	order := domain.Entity{
		ID:   "order",
		Name: "Order",
		Fields: []domain.Field{
			{Name: "id", Type: "uuid"},
			{Name: "reference", Type: "string", Required: true, Unique: true, Length: 32},
			{Name: "total", Type: "decimal"},
			{Name: "placedAt", Type: "datetime"},
		},
		Relations: []domain.Relation{rel},
	}
	customer := domain.Entity{
		ID:        "customer",
		Name:      "Customer",
		Fields:    []domain.Field{{Name: "email", Type: "email", Required: true}},
		Relations: []domain.Relation{rel},
	}
	gctx := &domain.GenerationContext{
		Strategy: &st,
		Entities: []domain.Entity{order, customer},
		Project:  domain.Project{Name: "Shop", Module: "example.com/shop"},
		Options:  domain.GenerationOptions{OutputDir: "out"},
	}
	return gctx, order, customer
}

func TestNew_LoadsEveryBuiltinTemplate(t *testing.T) {
	r, err := renderer.New("")
	require.NoError(t, err)

	for _, st := range strategy.Builtins() {
		for _, m := range st.Templates {
			assert.True(t, r.HasTemplate(m.TemplateID), "%s: %s", st.Name, m.TemplateID)
		}
	}
	assert.True(t, r.HasTemplate("nestjs-service.test"))
	assert.True(t, r.HasTemplate("spring-service.test"))
	assert.True(t, r.HasTemplate("go-service.test"))
	assert.False(t, r.HasTemplate("nestjs-missing"))
}

func TestRender_NestJSEntity(t *testing.T) {
	r, err := renderer.New("")
	require.NoError(t, err)
	gctx, order, customer := shop(t, strategy.NestJSStandard)

	out, err := r.Render(context.Background(), "nestjs-entity", order, gctx)
	require.NoError(t, err)
	assert.Contains(t, out, "@Entity('orders')")
	assert.Contains(t, out, "export class Order {")
	assert.Contains(t, out, "@Column({ unique: true, length: 32 })")
	assert.Contains(t, out, "reference!: string;")
	assert.Contains(t, out, "total?: number;")
	assert.Contains(t, out, "@ManyToOne(() => Customer)")
	assert.Contains(t, out, "import { Customer } from './customer.entity';")
	assert.NotContains(t, out, "  id?:")

	out, err = r.Render(context.Background(), "nestjs-entity", customer, gctx)
	require.NoError(t, err)
	assert.Contains(t, out, "@OneToMany(() => Order, (other) => other.customer)")
	assert.Contains(t, out, "orders?: Order[];")
}

func TestRender_NestJSDtoFeatures(t *testing.T) {
	r, err := renderer.New("")
	require.NoError(t, err)
	gctx, order, _ := shop(t, strategy.NestJSStandard)

	out, err := r.Render(context.Background(), "nestjs-dto", order, gctx)
	require.NoError(t, err)
	assert.Contains(t, out, "export class CreateOrderDto {")
	assert.Contains(t, out, "export class UpdateOrderDto {")
	assert.Contains(t, out, "export class QueryOrderDto {")
	assert.Contains(t, out, "from 'class-validator'")
	assert.Contains(t, out, "@ApiProperty()")

	gctx.Strategy.Features = nil
	out, err = r.Render(context.Background(), "nestjs-dto", order, gctx)
	require.NoError(t, err)
	assert.NotContains(t, out, "class-validator")
	assert.NotContains(t, out, "@nestjs/swagger")
}

func TestRender_SpringController(t *testing.T) {
	r, err := renderer.New("")
	require.NoError(t, err)
	gctx, order, _ := shop(t, strategy.SpringBootStandard)
	gctx.Project.Module = ""

	out, err := r.Render(context.Background(), "spring-controller", order, gctx)
	require.NoError(t, err)
	assert.Contains(t, out, "package com.example.shop.controller;")
	assert.Contains(t, out, `@RequestMapping("/api/orders")`)
	assert.Contains(t, out, "public class OrderController extends OrderBaseController {")
}

func TestRender_GoTemplatesParse(t *testing.T) {
	r, err := renderer.New("")
	require.NoError(t, err)
	gctx, order, _ := shop(t, strategy.GoStandard)

	ids := []string{
		"go-entity", "go-repository", "go-base-service", "go-service",
		"go-base-handler", "go-handler", "go-input", "go-service.test",
	}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			out, err := r.Render(context.Background(), id, order, gctx)
			require.NoError(t, err)
			_, err = parser.ParseFile(token.NewFileSet(), id+".go", out, parser.AllErrors)
			assert.NoError(t, err, out)
		})
	}
}

func TestRender_GoEntity(t *testing.T) {
	r, err := renderer.New("")
	require.NoError(t, err)
	gctx, order, _ := shop(t, strategy.GoStandard)

	out, err := r.Render(context.Background(), "go-entity", order, gctx)
	require.NoError(t, err)
	assert.Contains(t, out, "type Order struct {")
	assert.Contains(t, out, "PlacedAt time.Time")
	assert.Contains(t, out, `validate:"required,max=32"`)
	assert.Contains(t, out, "Customer *Customer")
}

func TestRender_GoHandlerImportsModule(t *testing.T) {
	r, err := renderer.New("")
	require.NoError(t, err)
	gctx, order, _ := shop(t, strategy.GoStandard)

	out, err := r.Render(context.Background(), "go-handler", order, gctx)
	require.NoError(t, err)
	assert.Contains(t, out, `import "example.com/shop/internal/service"`)
	assert.Contains(t, out, "func NewOrderHandler(svc *service.OrderService) *OrderHandler {")
}

func TestNew_OverrideDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nestjs-entity.tmpl"), []byte("custom {{.ClassName}}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.tmpl"), []byte("{{.TableName}}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	r, err := renderer.New(dir)
	require.NoError(t, err)
	gctx, order, _ := shop(t, strategy.NestJSStandard)

	out, err := r.Render(context.Background(), "nestjs-entity", order, gctx)
	require.NoError(t, err)
	assert.Equal(t, "custom Order", out)

	out, err = r.Render(context.Background(), "extra", order, gctx)
	require.NoError(t, err)
	assert.Equal(t, "orders", out)
	assert.NotContains(t, r.TemplateIDs(), "notes")
}

func TestNew_BadOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.tmpl"), []byte("{{.Name"), 0o644))

	_, err := renderer.New(dir)
	assert.ErrorContains(t, err, "parsing template broken")
}

func TestRender_Errors(t *testing.T) {
	r, err := renderer.New("")
	require.NoError(t, err)
	gctx, order, _ := shop(t, strategy.NestJSStandard)

	_, err = r.Render(context.Background(), "nope", order, gctx)
	assert.ErrorContains(t, err, `template "nope" not found`)

	_, err = r.Render(context.Background(), "nestjs-entity", order, &domain.GenerationContext{})
	assert.ErrorContains(t, err, "no strategy")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Render(ctx, "nestjs-entity", order, gctx)
	assert.ErrorIs(t, err, context.Canceled)
}
