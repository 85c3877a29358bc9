package projectfiles

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/openkraft/lowgen/internal/domain"
)

type packageJSON struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Description      string            `json:"description,omitempty"`
	Private          bool              `json:"private"`
	Scripts          map[string]string `json:"scripts"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
}

func buildNestJS(gctx *domain.GenerationContext) ([]domain.GeneratedFile, error) {
	pkg := packageJSON{
		Name:        projectName(gctx.Project),
		Version:     projectVersion(gctx.Project),
		Description: gctx.Project.Description,
		Private:     true,
		Scripts: map[string]string{
			"build":      "nest build",
			"start":      "nest start",
			"start:dev":  "nest start --watch",
			"test":       "jest",
			"test:watch": "jest --watch",
		},
	}
	for _, d := range gctx.Strategy.Dependencies {
		var dst *map[string]string
		switch d.Type {
		case "devDependency":
			dst = &pkg.DevDependencies
		case "peerDependency":
			dst = &pkg.PeerDependencies
		default:
			dst = &pkg.Dependencies
		}
		if *dst == nil {
			*dst = make(map[string]string)
		}
		(*dst)[d.Name] = d.Version
	}
	if gctx.Options.GenerateTests {
		if pkg.DevDependencies == nil {
			pkg.DevDependencies = make(map[string]string)
		}
		pkg.DevDependencies["@nestjs/testing"] = "^10.0.0"
		pkg.DevDependencies["jest"] = "^29.0.0"
	}

	manifest, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding package.json: %w", err)
	}

	return []domain.GeneratedFile{
		configFile(path.Join(gctx.Options.OutputDir, "package.json"), string(manifest)+"\n"),
		configFile(path.Join(gctx.Options.OutputDir, "tsconfig.json"), tsconfig),
	}, nil
}

const tsconfig = `{
  "compilerOptions": {
    "module": "commonjs",
    "declaration": true,
    "removeComments": true,
    "emitDecoratorMetadata": true,
    "experimentalDecorators": true,
    "allowSyntheticDefaultImports": true,
    "target": "ES2021",
    "sourceMap": true,
    "outDir": "./dist",
    "baseUrl": "./",
    "incremental": true,
    "skipLibCheck": true,
    "strictNullChecks": true
  }
}
`
