// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package schema

import (
	"sort"

	"github.com/graphql-go/graphql"
	"github.com/samber/oops"
)

// Module is one entity's contribution to the composed schema.
//
// Types lists the base object types the module owns; ownership is
// exclusive, two modules may not declare the same type name.
// Extensions adds fields to types owned by other modules, keyed by the
// extended type's name. Queries and Mutations contribute root fields.
type Module struct {
	Name       string
	Types      []graphql.Type
	Extensions map[string]graphql.Fields
	Queries    graphql.Fields
	Mutations  graphql.Fields
}

// Compose merges the given modules into one executable schema.
//
// Construction fails, rather than silently overwriting, when two
// modules own the same type name, contribute the same root field, or
// extend a type no module owns. Callers are expected to treat an error
// here as fatal at startup.
func Compose(modules ...Module) (graphql.Schema, error) {
	if len(modules) == 0 {
		return graphql.Schema{}, oops.Code("SCHEMA_EMPTY").Errorf("no modules to compose")
	}

	typeOwner := make(map[string]string)
	objects := make(map[string]*graphql.Object)
	for _, mod := range modules {
		for _, typ := range mod.Types {
			name := typ.Name()
			if owner, ok := typeOwner[name]; ok {
				return graphql.Schema{}, oops.Code("SCHEMA_DUPLICATE_TYPE").
					With("type", name).
					With("modules", []string{owner, mod.Name}).
					Errorf("type %q declared by both %q and %q", name, owner, mod.Name)
			}
			typeOwner[name] = mod.Name
			if obj, ok := typ.(*graphql.Object); ok {
				objects[name] = obj
			}
		}
	}

	for _, mod := range modules {
		for typeName, fields := range mod.Extensions {
			obj, ok := objects[typeName]
			if !ok {
				return graphql.Schema{}, oops.Code("SCHEMA_UNKNOWN_TYPE").
					With("type", typeName).
					With("module", mod.Name).
					Errorf("module %q extends unknown type %q", mod.Name, typeName)
			}
			for fieldName, field := range fields {
				if _, exists := obj.Fields()[fieldName]; exists {
					return graphql.Schema{}, oops.Code("SCHEMA_DUPLICATE_FIELD").
						With("type", typeName).
						With("field", fieldName).
						With("module", mod.Name).
						Errorf("module %q redefines field %q on type %q", mod.Name, fieldName, typeName)
				}
				obj.AddFieldConfig(fieldName, field)
			}
		}
	}

	queries, err := mergeRootFields(modules, "Query")
	if err != nil {
		return graphql.Schema{}, err
	}
	mutations, err := mergeRootFields(modules, "Mutation")
	if err != nil {
		return graphql.Schema{}, err
	}
	if len(queries) == 0 {
		return graphql.Schema{}, oops.Code("SCHEMA_EMPTY").Errorf("composed schema has no query fields")
	}

	config := graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queries,
		}),
	}
	if len(mutations) > 0 {
		config.Mutation = graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: mutations,
		})
	}

	schema, err := graphql.NewSchema(config)
	if err != nil {
		return graphql.Schema{}, oops.Code("SCHEMA_INVALID").Wrap(err)
	}
	return schema, nil
}

func mergeRootFields(modules []Module, root string) (graphql.Fields, error) {
	merged := graphql.Fields{}
	owner := make(map[string]string)
	for _, mod := range modules {
		fields := mod.Queries
		if root == "Mutation" {
			fields = mod.Mutations
		}
		// Deterministic iteration so collision errors always name the
		// same pair of modules.
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if prev, ok := owner[name]; ok {
				return nil, oops.Code("SCHEMA_DUPLICATE_FIELD").
					With("root", root).
					With("field", name).
					With("modules", []string{prev, mod.Name}).
					Errorf("%s field %q declared by both %q and %q", root, name, prev, mod.Name)
			}
			owner[name] = mod.Name
			merged[name] = fields[name]
		}
	}
	return merged, nil
}
