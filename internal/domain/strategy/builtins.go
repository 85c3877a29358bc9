// Package strategy holds the built-in generation strategies and strategy
// document validation.
package strategy

import "github.com/openkraft/lowgen/internal/domain"

// Built-in strategy names.
const (
	NestJSStandard     = "nestjs-standard"
	SpringBootStandard = "spring-boot-standard"
	GoStandard         = "go-standard"
)

// Builtins returns fresh copies of the built-in strategies.
func Builtins() []domain.GenerationStrategy {
	return []domain.GenerationStrategy{nestJS(), springBoot(), goStandard()}
}

// Builtin returns the built-in strategy with the given name.
func Builtin(name string) (domain.GenerationStrategy, bool) {
	for _, s := range Builtins() {
		if s.Name == name {
			return s, true
		}
	}
	return domain.GenerationStrategy{}, false
}

func nestJS() domain.GenerationStrategy {
	return domain.GenerationStrategy{
		Name:        NestJSStandard,
		Description: "NestJS standard layered architecture with base and biz separation",
		Framework:   "nestjs",
		Layers:      []domain.Layer{domain.LayerBase, domain.LayerBiz},
		Features:    []string{"swagger", "validation", "testing", "caching"},
		FileStructure: domain.FileStructure{
			BaseDir: "src",
			Directories: map[string]string{
				"entities":    "entities",
				"services":    "services",
				"controllers": "controllers",
				"dtos":        "dto",
				"modules":     "modules",
				"tests":       "__tests__",
				"configs":     "config",
			},
			FileNaming: domain.FileNaming{
				Pattern: "{name}.{type}.{ext}",
				Casing:  "kebabCase",
				Extensions: map[string]string{
					"entity":     "ts",
					"service":    "ts",
					"controller": "ts",
					"dto":        "ts",
					"module":     "ts",
					"test":       "spec.ts",
				},
			},
		},
		NamingConventions: domain.NamingConventions{
			Entity:     domain.NamePattern{ClassName: "{EntityName}", FileName: "{entity-name}.entity", TableName: "{entity_names}"},
			Service:    domain.NamePattern{ClassName: "{EntityName}Service", FileName: "{entity-name}.service"},
			Controller: domain.NamePattern{ClassName: "{EntityName}Controller", FileName: "{entity-name}.controller", RoutePath: "{entity-names}"},
			DTO: domain.NamePattern{
				CreateClassName: "Create{EntityName}Dto",
				UpdateClassName: "Update{EntityName}Dto",
				QueryClassName:  "Query{EntityName}Dto",
				FileName:        "{entity-name}.dto",
			},
		},
		Dependencies: []domain.DependencyConfig{
			{Name: "@nestjs/common", Version: "^10.0.0", Type: "dependency"},
			{Name: "@nestjs/typeorm", Version: "^10.0.0", Type: "dependency"},
			{Name: "typeorm", Version: "^0.3.0", Type: "dependency"},
			{Name: "@nestjs/swagger", Version: "^7.0.0", Type: "dependency", Optional: true},
			{Name: "class-validator", Version: "^0.14.0", Type: "dependency", Optional: true},
			{Name: "class-transformer", Version: "^0.5.0", Type: "dependency", Optional: true},
		},
		Templates: []domain.TemplateMapping{
			{TemplateID: "nestjs-entity", OutputPath: "entities/{entity-name}.entity.ts", Layer: domain.LayerBase, Priority: 1},
			{TemplateID: "nestjs-base-service", OutputPath: "services/{entity-name}-base.service.ts", Layer: domain.LayerBase, Priority: 2},
			{TemplateID: "nestjs-service", OutputPath: "services/{entity-name}.service.ts", Layer: domain.LayerBiz, Priority: 3},
			{TemplateID: "nestjs-base-controller", OutputPath: "controllers/{entity-name}-base.controller.ts", Layer: domain.LayerBase, Priority: 4},
			{TemplateID: "nestjs-controller", OutputPath: "controllers/{entity-name}.controller.ts", Layer: domain.LayerBiz, Priority: 5},
			{TemplateID: "nestjs-dto", OutputPath: "dto/{entity-name}.dto.ts", Layer: domain.LayerBase, Priority: 6},
			{TemplateID: "nestjs-module", OutputPath: "modules/{entity-name}.module.ts", Layer: domain.LayerBase, Priority: 7},
		},
	}
}

func springBoot() domain.GenerationStrategy {
	return domain.GenerationStrategy{
		Name:        SpringBootStandard,
		Description: "Spring Boot standard layered architecture with base and biz separation",
		Framework:   "spring-boot",
		Layers:      []domain.Layer{domain.LayerBase, domain.LayerBiz},
		Features:    []string{"swagger", "validation", "testing"},
		FileStructure: domain.FileStructure{
			BaseDir: "src/main/java",
			Directories: map[string]string{
				"entities":    "entity",
				"services":    "service",
				"controllers": "controller",
				"dtos":        "dto",
				"modules":     "config",
				"tests":       "src/test/java",
				"configs":     "config",
			},
			FileNaming: domain.FileNaming{
				Pattern: "{Name}.java",
				Casing:  "pascalCase",
				Extensions: map[string]string{
					"entity":     "java",
					"service":    "java",
					"controller": "java",
					"dto":        "java",
					"test":       "java",
				},
			},
		},
		NamingConventions: domain.NamingConventions{
			Entity:     domain.NamePattern{ClassName: "{EntityName}", FileName: "{EntityName}", TableName: "{entity_names}"},
			Service:    domain.NamePattern{ClassName: "{EntityName}Service", FileName: "{EntityName}Service"},
			Controller: domain.NamePattern{ClassName: "{EntityName}Controller", FileName: "{EntityName}Controller", RoutePath: "/api/{entity-names}"},
			DTO: domain.NamePattern{
				CreateClassName: "Create{EntityName}Request",
				UpdateClassName: "Update{EntityName}Request",
				QueryClassName:  "{EntityName}Query",
				FileName:        "{EntityName}DTO",
			},
		},
		Dependencies: []domain.DependencyConfig{
			{Name: "spring-boot-starter-web", Version: "3.1.0", Type: "dependency"},
			{Name: "spring-boot-starter-data-jpa", Version: "3.1.0", Type: "dependency"},
			{Name: "spring-boot-starter-validation", Version: "3.1.0", Type: "dependency", Optional: true},
			{Name: "springdoc-openapi-starter-webmvc-ui", Version: "2.1.0", Type: "dependency", Optional: true},
		},
		Templates: []domain.TemplateMapping{
			{TemplateID: "spring-entity", OutputPath: "entity/{EntityName}.java", Layer: domain.LayerBase, Priority: 1},
			{TemplateID: "spring-repository", OutputPath: "repository/{EntityName}Repository.java", Layer: domain.LayerBase, Priority: 2},
			{TemplateID: "spring-base-service", OutputPath: "service/{EntityName}BaseService.java", Layer: domain.LayerBase, Priority: 3},
			{TemplateID: "spring-service", OutputPath: "service/{EntityName}Service.java", Layer: domain.LayerBiz, Priority: 4},
			{TemplateID: "spring-base-controller", OutputPath: "controller/{EntityName}BaseController.java", Layer: domain.LayerBase, Priority: 5},
			{TemplateID: "spring-controller", OutputPath: "controller/{EntityName}Controller.java", Layer: domain.LayerBiz, Priority: 6},
			{TemplateID: "spring-dto", OutputPath: "dto/{EntityName}DTO.java", Layer: domain.LayerBase, Priority: 7},
		},
	}
}

func goStandard() domain.GenerationStrategy {
	return domain.GenerationStrategy{
		Name:        GoStandard,
		Description: "Go service layout with generated base types and hand-written service and handler layers",
		Framework:   "go",
		Layers:      []domain.Layer{domain.LayerBase, domain.LayerBiz},
		Features:    []string{"validation", "testing"},
		FileStructure: domain.FileStructure{
			BaseDir: "internal",
			Directories: map[string]string{
				"entities":    "domain",
				"services":    "service",
				"controllers": "handler",
				"repository":  "repository",
				"configs":     "config",
			},
			FileNaming: domain.FileNaming{
				Pattern: "{name}_{type}.{ext}",
				Casing:  "snakeCase",
				Extensions: map[string]string{
					"entity":     "go",
					"service":    "go",
					"controller": "go",
					"test":       "_test.go",
				},
			},
		},
		NamingConventions: domain.NamingConventions{
			Entity:     domain.NamePattern{ClassName: "{EntityName}", FileName: "{entity_name}", TableName: "{entity_names}"},
			Service:    domain.NamePattern{ClassName: "{EntityName}Service", FileName: "{entity_name}_service"},
			Controller: domain.NamePattern{ClassName: "{EntityName}Handler", FileName: "{entity_name}_handler", RoutePath: "/{entity-names}"},
			DTO: domain.NamePattern{
				CreateClassName: "Create{EntityName}Input",
				UpdateClassName: "Update{EntityName}Input",
				QueryClassName:  "{EntityName}Filter",
				FileName:        "{entity_name}_input",
			},
		},
		Dependencies: []domain.DependencyConfig{
			{Name: "github.com/google/uuid", Version: "v1.6.0", Type: "dependency"},
			{Name: "github.com/go-playground/validator/v10", Version: "v10.30.1", Type: "dependency", Optional: true},
		},
		Templates: []domain.TemplateMapping{
			{TemplateID: "go-entity", OutputPath: "domain/{entity_name}.go", Layer: domain.LayerBase, Priority: 1},
			{TemplateID: "go-repository", OutputPath: "repository/{entity_name}_repository.go", Layer: domain.LayerBase, Priority: 2},
			{TemplateID: "go-base-service", OutputPath: "service/{entity_name}_base.go", Layer: domain.LayerBase, Priority: 3},
			{TemplateID: "go-service", OutputPath: "service/{entity_name}_service.go", Layer: domain.LayerBiz, Priority: 4},
			{TemplateID: "go-base-handler", OutputPath: "handler/{entity_name}_base.go", Layer: domain.LayerBase, Priority: 5},
			{TemplateID: "go-handler", OutputPath: "handler/{entity_name}_handler.go", Layer: domain.LayerBiz, Priority: 6},
			{TemplateID: "go-input", OutputPath: "domain/{entity_name}_input.go", Layer: domain.LayerBase, Priority: 7, Conditions: []string{"feature:validation"}},
		},
	}
}
