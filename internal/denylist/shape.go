package denylist

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Shape names the container layout a payload was recognized as.
type Shape string

const (
	ShapeList   Shape = "list"
	ShapeMap    Shape = "map"
	ShapeAbsent Shape = "absent"
)

const (
	listShapeSchema = `{
  "type": "object",
  "required": ["entries"],
  "properties": {"entries": {"type": "array"}}
}`
	mapShapeSchema = `{
  "type": "object",
  "required": ["entries_by_pan"],
  "properties": {"entries_by_pan": {"type": "object"}}
}`
)

var (
	listShape = mustCompileSchema("mem://denylist/list-shape.json", listShapeSchema)
	mapShape  = mustCompileSchema("mem://denylist/map-shape.json", mapShapeSchema)
)

func mustCompileSchema(url, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("add schema resource %s: %v", url, err))
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", url, err))
	}
	return schema
}

// container is the payload resolved to exactly one known layout.
type container struct {
	shape   Shape
	list    []any
	byPAN   map[string]any
	reasons map[string]any
}

// classify resolves the payload layout once. The list layout wins when a
// payload carries both. An unrecognized payload keeps no catalog.
func classify(payload any) container {
	obj, ok := payload.(map[string]any)
	if !ok {
		return container{shape: ShapeAbsent}
	}
	reasons, _ := obj["reasons"].(map[string]any)

	if listShape.Validate(payload) == nil {
		list, _ := obj["entries"].([]any)
		return container{shape: ShapeList, list: list, reasons: reasons}
	}
	if mapShape.Validate(payload) == nil {
		byPAN, _ := obj["entries_by_pan"].(map[string]any)
		return container{shape: ShapeMap, byPAN: byPAN, reasons: reasons}
	}
	return container{shape: ShapeAbsent}
}
