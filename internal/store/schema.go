package store

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func compileSchemas() {
	schemas = make(map[string]*jsonschema.Schema)
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		schemasErr = err
		return
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	var names []string
	for _, e := range entries {
		body, err := schemaFS.ReadFile("schemas/" + e.Name())
		if err != nil {
			schemasErr = err
			return
		}
		if err := compiler.AddResource(e.Name(), bytes.NewReader(body)); err != nil {
			schemasErr = fmt.Errorf("add schema %s: %w", e.Name(), err)
			return
		}
		names = append(names, e.Name())
	}
	for _, name := range names {
		s, err := compiler.Compile(name)
		if err != nil {
			schemasErr = fmt.Errorf("compile schema %s: %w", name, err)
			return
		}
		schemas[strings.TrimSuffix(name, ".schema.json")] = s
	}
}

// validateCollection checks a decoded collection against its embedded schema.
// Collections without a schema are accepted as-is.
func validateCollection(collection string, doc any) error {
	schemasOnce.Do(compileSchemas)
	if schemasErr != nil {
		return schemasErr
	}
	s, ok := schemas[collection]
	if !ok {
		return nil
	}
	err := s.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &DecodeError{Collection: collection, Err: err}
	}
	leaf := firstLeaf(ve)
	return &DecodeError{
		Collection: collection,
		Path:       jsonPointerToPath(leaf.InstanceLocation),
		Err:        errors.New(leaf.Message),
	}
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// jsonPointerToPath turns "/0/tasks/2/id" into "[0].tasks[2].id".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var path string
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
