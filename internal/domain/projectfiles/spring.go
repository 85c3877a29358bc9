package projectfiles

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/openkraft/lowgen/internal/domain"
)

type mavenDependency struct {
	GroupID    string
	ArtifactID string
	Version    string
	Optional   bool
}

type pomData struct {
	GroupID      string
	ArtifactID   string
	Version      string
	Name         string
	Description  string
	BootVersion  string
	Dependencies []mavenDependency
	Tests        bool
}

var pomTmpl = template.Must(template.New("pom").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0"
         xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
         xsi:schemaLocation="http://maven.apache.org/POM/4.0.0 https://maven.apache.org/xsd/maven-4.0.0.xsd">
    <modelVersion>4.0.0</modelVersion>

    <parent>
        <groupId>org.springframework.boot</groupId>
        <artifactId>spring-boot-starter-parent</artifactId>
        <version>{{.BootVersion}}</version>
        <relativePath/>
    </parent>

    <groupId>{{.GroupID}}</groupId>
    <artifactId>{{.ArtifactID}}</artifactId>
    <version>{{.Version}}</version>
    <name>{{.Name}}</name>
{{- if .Description}}
    <description>{{.Description}}</description>
{{- end}}

    <properties>
        <java.version>17</java.version>
    </properties>

    <dependencies>
{{- range .Dependencies}}
        <dependency>
            <groupId>{{.GroupID}}</groupId>
            <artifactId>{{.ArtifactID}}</artifactId>
            <version>{{.Version}}</version>
{{- if .Optional}}
            <optional>true</optional>
{{- end}}
        </dependency>
{{- end}}
{{- if .Tests}}
        <dependency>
            <groupId>org.springframework.boot</groupId>
            <artifactId>spring-boot-starter-test</artifactId>
            <scope>test</scope>
        </dependency>
{{- end}}
    </dependencies>

    <build>
        <plugins>
            <plugin>
                <groupId>org.springframework.boot</groupId>
                <artifactId>spring-boot-maven-plugin</artifactId>
            </plugin>
        </plugins>
    </build>
</project>
`))

var applicationTmpl = template.Must(template.New("application").Parse(`spring:
  application:
    name: {{.Name}}
  datasource:
    url: jdbc:h2:mem:{{.ArtifactID}}
  jpa:
    hibernate:
      ddl-auto: update
    open-in-view: false
server:
  port: 8080
`))

func buildSpringBoot(gctx *domain.GenerationContext) ([]domain.GeneratedFile, error) {
	name := projectName(gctx.Project)
	data := pomData{
		GroupID:     JavaGroup(gctx.Project),
		ArtifactID:  name,
		Version:     projectVersion(gctx.Project),
		Name:        name,
		Description: gctx.Project.Description,
		BootVersion: "3.1.0",
		Tests:       gctx.Options.GenerateTests,
	}
	for _, d := range gctx.Strategy.Dependencies {
		dep := mavenCoordinates(d)
		if dep.GroupID == "org.springframework.boot" && dep.ArtifactID == "spring-boot-starter-web" {
			data.BootVersion = dep.Version
		}
		data.Dependencies = append(data.Dependencies, dep)
	}

	var pom, app bytes.Buffer
	if err := pomTmpl.Execute(&pom, data); err != nil {
		return nil, fmt.Errorf("rendering pom.xml: %w", err)
	}
	if err := applicationTmpl.Execute(&app, data); err != nil {
		return nil, fmt.Errorf("rendering application.yml: %w", err)
	}

	out := gctx.Options.OutputDir
	return []domain.GeneratedFile{
		configFile(path.Join(out, "pom.xml"), pom.String()),
		configFile(path.Join(out, "src/main/resources/application.yml"), app.String()),
	}, nil
}

// mavenCoordinates accepts "group:artifact" names and infers the group for
// the Spring starters and springdoc.
func mavenCoordinates(d domain.DependencyConfig) mavenDependency {
	dep := mavenDependency{ArtifactID: d.Name, Version: d.Version, Optional: d.Optional}
	if group, artifact, ok := strings.Cut(d.Name, ":"); ok {
		dep.GroupID, dep.ArtifactID = group, artifact
		return dep
	}
	switch {
	case strings.HasPrefix(d.Name, "spring-boot-"):
		dep.GroupID = "org.springframework.boot"
	case strings.HasPrefix(d.Name, "springdoc-"):
		dep.GroupID = "org.springdoc"
	default:
		dep.GroupID = d.Name
	}
	return dep
}

// JavaGroup is the Maven group and base Java package of a project.
func JavaGroup(p domain.Project) string {
	if p.Module != "" {
		return p.Module
	}
	return "com.example." + strings.ReplaceAll(projectName(p), "-", "")
}
