package domain

// GenerationStrategy describes how entities map to files for one framework.
type GenerationStrategy struct {
	Name              string             `json:"name"                   yaml:"name"        validate:"required"`
	Description       string             `json:"description,omitempty"  yaml:"description,omitempty"`
	Framework         string             `json:"framework"              yaml:"framework"   validate:"required"`
	Layers            []Layer            `json:"layers,omitempty"       yaml:"layers,omitempty"   validate:"dive,oneof=base biz"`
	Features          []string           `json:"features,omitempty"     yaml:"features,omitempty"`
	FileStructure     FileStructure      `json:"file_structure"         yaml:"file_structure"`
	NamingConventions NamingConventions  `json:"naming_conventions"     yaml:"naming_conventions"`
	Dependencies      []DependencyConfig `json:"dependencies,omitempty" yaml:"dependencies,omitempty" validate:"dive"`
	Templates         []TemplateMapping  `json:"templates"              yaml:"templates"   validate:"required,min=1,dive"`
}

// HasFeature reports whether the strategy enables the named feature.
func (s GenerationStrategy) HasFeature(name string) bool {
	for _, f := range s.Features {
		if f == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so registry callers cannot mutate stored values.
func (s GenerationStrategy) Clone() GenerationStrategy {
	c := s
	c.Layers = append([]Layer(nil), s.Layers...)
	c.Features = append([]string(nil), s.Features...)
	c.Dependencies = append([]DependencyConfig(nil), s.Dependencies...)
	c.Templates = make([]TemplateMapping, len(s.Templates))
	for i, t := range s.Templates {
		t.Conditions = append([]string(nil), t.Conditions...)
		c.Templates[i] = t
	}
	c.FileStructure.Directories = copyStringMap(s.FileStructure.Directories)
	c.FileStructure.FileNaming.Extensions = copyStringMap(s.FileStructure.FileNaming.Extensions)
	return c
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type FileStructure struct {
	BaseDir     string            `json:"base_dir"              yaml:"base_dir"`
	Directories map[string]string `json:"directories,omitempty" yaml:"directories,omitempty"`
	FileNaming  FileNaming        `json:"file_naming"           yaml:"file_naming"`
}

type FileNaming struct {
	Pattern    string            `json:"pattern,omitempty"    yaml:"pattern,omitempty"`
	Casing     string            `json:"casing,omitempty"     yaml:"casing,omitempty" validate:"omitempty,oneof=kebabCase camelCase pascalCase snakeCase"`
	Extensions map[string]string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// NamingConventions hold placeholder patterns for generated names per artifact.
type NamingConventions struct {
	Entity     NamePattern `json:"entity"     yaml:"entity"`
	Service    NamePattern `json:"service"    yaml:"service"`
	Controller NamePattern `json:"controller" yaml:"controller"`
	DTO        NamePattern `json:"dto"        yaml:"dto"`
}

// NamePattern patterns use the same placeholders as output paths.
type NamePattern struct {
	ClassName       string `json:"class_name,omitempty"        yaml:"class_name,omitempty"`
	FileName        string `json:"file_name,omitempty"         yaml:"file_name,omitempty"`
	TableName       string `json:"table_name,omitempty"        yaml:"table_name,omitempty"`
	RoutePath       string `json:"route_path,omitempty"        yaml:"route_path,omitempty"`
	CreateClassName string `json:"create_class_name,omitempty" yaml:"create_class_name,omitempty"`
	UpdateClassName string `json:"update_class_name,omitempty" yaml:"update_class_name,omitempty"`
	QueryClassName  string `json:"query_class_name,omitempty"  yaml:"query_class_name,omitempty"`
}

type DependencyConfig struct {
	Name        string `json:"name"                  yaml:"name"    validate:"required"`
	Version     string `json:"version"               yaml:"version" validate:"required"`
	Type        string `json:"type"                  yaml:"type"    validate:"omitempty,oneof=dependency devDependency peerDependency"`
	Framework   string `json:"framework,omitempty"   yaml:"framework,omitempty"`
	Optional    bool   `json:"optional,omitempty"    yaml:"optional,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// TemplateMapping binds a template to an output path pattern and a layer.
type TemplateMapping struct {
	TemplateID string   `json:"template_id"          yaml:"template_id" validate:"required"`
	OutputPath string   `json:"output_path"          yaml:"output_path" validate:"required"`
	Layer      Layer    `json:"layer"                yaml:"layer"       validate:"oneof=base biz"`
	Priority   int      `json:"priority"             yaml:"priority"`
	Conditions []string `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// StrategyPatch is a partial strategy update. Nil fields are left unchanged.
type StrategyPatch struct {
	Description       *string            `json:"description,omitempty"        yaml:"description,omitempty"`
	Framework         *string            `json:"framework,omitempty"          yaml:"framework,omitempty"`
	Layers            []Layer            `json:"layers,omitempty"             yaml:"layers,omitempty"`
	Features          []string           `json:"features,omitempty"           yaml:"features,omitempty"`
	FileStructure     *FileStructure     `json:"file_structure,omitempty"     yaml:"file_structure,omitempty"`
	NamingConventions *NamingConventions `json:"naming_conventions,omitempty" yaml:"naming_conventions,omitempty"`
	Dependencies      []DependencyConfig `json:"dependencies,omitempty"       yaml:"dependencies,omitempty"`
	Templates         []TemplateMapping  `json:"templates,omitempty"          yaml:"templates,omitempty"`
}

// Apply merges the patch into s and returns the result. The name never changes.
func (p StrategyPatch) Apply(s GenerationStrategy) GenerationStrategy {
	out := s.Clone()
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Framework != nil {
		out.Framework = *p.Framework
	}
	if p.Layers != nil {
		out.Layers = p.Layers
	}
	if p.Features != nil {
		out.Features = p.Features
	}
	if p.FileStructure != nil {
		out.FileStructure = *p.FileStructure
	}
	if p.NamingConventions != nil {
		out.NamingConventions = *p.NamingConventions
	}
	if p.Dependencies != nil {
		out.Dependencies = p.Dependencies
	}
	if p.Templates != nil {
		out.Templates = p.Templates
	}
	return out
}
