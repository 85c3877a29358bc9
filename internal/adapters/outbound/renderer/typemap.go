package renderer

import "strings"

// typeInfo is how a schema field type is spelled in one target language,
// with the import it needs.
type typeInfo struct {
	Name   string
	Import string
}

var typeTable = map[string]map[string]typeInfo{
	"ts": {
		"string":   {Name: "string"},
		"text":     {Name: "string"},
		"email":    {Name: "string"},
		"uuid":     {Name: "string"},
		"int":      {Name: "number"},
		"integer":  {Name: "number"},
		"long":     {Name: "number"},
		"number":   {Name: "number"},
		"float":    {Name: "number"},
		"decimal":  {Name: "number"},
		"boolean":  {Name: "boolean"},
		"bool":     {Name: "boolean"},
		"date":     {Name: "Date"},
		"datetime": {Name: "Date"},
		"json":     {Name: "Record<string, unknown>"},
	},
	"java": {
		"string":   {Name: "String"},
		"text":     {Name: "String"},
		"email":    {Name: "String"},
		"uuid":     {Name: "UUID", Import: "java.util.UUID"},
		"int":      {Name: "Integer"},
		"integer":  {Name: "Integer"},
		"long":     {Name: "Long"},
		"number":   {Name: "Double"},
		"float":    {Name: "Double"},
		"decimal":  {Name: "BigDecimal", Import: "java.math.BigDecimal"},
		"boolean":  {Name: "Boolean"},
		"bool":     {Name: "Boolean"},
		"date":     {Name: "LocalDate", Import: "java.time.LocalDate"},
		"datetime": {Name: "LocalDateTime", Import: "java.time.LocalDateTime"},
		"json":     {Name: "String"},
	},
	"go": {
		"string":   {Name: "string"},
		"text":     {Name: "string"},
		"email":    {Name: "string"},
		"uuid":     {Name: "uuid.UUID", Import: "github.com/google/uuid"},
		"int":      {Name: "int"},
		"integer":  {Name: "int64"},
		"long":     {Name: "int64"},
		"number":   {Name: "float64"},
		"float":    {Name: "float64"},
		"decimal":  {Name: "float64"},
		"boolean":  {Name: "bool"},
		"bool":     {Name: "bool"},
		"date":     {Name: "time.Time", Import: "time"},
		"datetime": {Name: "time.Time", Import: "time"},
		"json":     {Name: "json.RawMessage", Import: "encoding/json"},
	},
}

var fallbackType = map[string]string{
	"ts":   "unknown",
	"java": "String",
	"go":   "string",
}

// languageOf maps a framework to the language its templates emit.
func languageOf(framework string) string {
	switch framework {
	case "spring-boot":
		return "java"
	case "go":
		return "go"
	default:
		return "ts"
	}
}

func lookupType(lang, schemaType string) typeInfo {
	if t, ok := typeTable[lang][strings.ToLower(schemaType)]; ok {
		return t
	}
	return typeInfo{Name: fallbackType[lang]}
}

// tsValidator is the class-validator decorator for a TypeScript type.
func tsValidator(tsType string) string {
	switch tsType {
	case "string":
		return "IsString"
	case "number":
		return "IsNumber"
	case "boolean":
		return "IsBoolean"
	case "Date":
		return "IsDate"
	default:
		return ""
	}
}
