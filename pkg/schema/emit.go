// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"

	"carvel.dev/cfnschema/pkg/catalog"
	"carvel.dev/cfnschema/pkg/orderedmap"
)

const mapKeyPattern = "[a-zA-Z0-9]+"

type Options struct {
	Draft             Draft
	IncludeIntrinsics bool
}

// UsesIntrinsics reports whether emitted nodes refer to the Expression
// definition.
func (o Options) UsesIntrinsics() bool {
	return o.Draft == Draft07 && o.IncludeIntrinsics
}

// Definition is the emitted schema node of one catalog type.
type Definition struct {
	// QualifiedName is the catalog key.
	QualifiedName string
	// GroupingName decides group membership; property types owned by a
	// resource use the resource's name.
	GroupingName string
	ID           string
	Resource     bool
	Node         *orderedmap.Map
}

type Emitter struct {
	opts Options
}

func NewEmitter(opts Options) *Emitter {
	if opts.Draft == "" {
		opts.Draft = DefaultDraft
	}
	return &Emitter{opts}
}

func (e *Emitter) Options() Options { return e.opts }

// Emit returns one definition per resource type followed by one per
// property type, each section sorted by qualified name.
func (e *Emitter) Emit(cat *catalog.Catalog) ([]Definition, error) {
	table := cat.PropertyTypeTable()
	resolver := NewResolver(table)
	ids := map[string]string{}

	var result []Definition

	for _, name := range cat.SortedResourceTypeNames() {
		def := Definition{
			QualifiedName: name,
			GroupingName:  name,
			ID:            resolver.DefinitionID(name),
			Resource:      true,
		}
		node, err := e.resourceNode(name, resolver.OwnerID(name), cat.ResourceTypes[name], resolver)
		if err != nil {
			return nil, err
		}
		def.Node = node
		result = append(result, def)
	}

	for _, entry := range table.Entries() {
		def := Definition{
			QualifiedName: entry.Key,
			GroupingName:  entry.GroupingName(),
			ID:            resolver.DefinitionID(entry.Key),
		}
		node, err := e.propertyTypeNode(entry.Key, resolver.OwnerID(entry.Key), entry.Definition, resolver)
		if err != nil {
			return nil, err
		}
		def.Node = node
		result = append(result, def)
	}

	for _, def := range result {
		if other, found := ids[def.ID]; found {
			return nil, fmt.Errorf("Expected unique definition names, but '%s' and '%s' are both named '%s'",
				other, def.QualifiedName, def.ID)
		}
		ids[def.ID] = def.QualifiedName
	}

	return result, nil
}

func (e *Emitter) resourceNode(name, ownerID string, def catalog.TypeDefinition, resolver *Resolver) (*orderedmap.Map, error) {
	//type: object
	//properties:
	//  Type: {type: string, enum: [<name>]}
	//  Properties: {type: object, properties: ..., additionalProperties: false}
	//  DependsOn: ...
	//required: [Type, Properties]
	//additionalProperties: false
	node := orderedmap.NewMap()
	node.Set("type", objectType)
	setDescription(node, def.Documentation)

	props := node.PutMap("properties")

	typeProp := props.PutMap("Type")
	typeProp.Set("description", "Type of resource equals only "+name)
	typeProp.Set("type", stringType)
	typeProp.Set("enum", []interface{}{name})

	inner := props.PutMap("Properties")
	inner.Set("type", objectType)
	required, err := e.addProperties(inner.PutMap("properties"), name, ownerID, def, resolver)
	if err != nil {
		return nil, err
	}
	if len(required) > 0 {
		inner.Set("required", required)
	}
	inner.Set("additionalProperties", false)

	addDependsOn(props)

	nodeRequired := []interface{}{"Type"}
	if len(required) > 0 {
		nodeRequired = append(nodeRequired, "Properties")
	}
	node.Set("required", nodeRequired)
	node.Set("additionalProperties", false)
	return node, nil
}

func (e *Emitter) propertyTypeNode(name, ownerID string, def catalog.TypeDefinition, resolver *Resolver) (*orderedmap.Map, error) {
	node := orderedmap.NewMap()
	node.Set("type", objectType)
	setDescription(node, def.Documentation)

	required, err := e.addProperties(node.PutMap("properties"), name, ownerID, def, resolver)
	if err != nil {
		return nil, err
	}
	if len(required) > 0 {
		node.Set("required", required)
	}
	node.Set("additionalProperties", false)
	return node, nil
}

// addProperties lowers each property in name order and returns the
// (sorted) names of required properties.
func (e *Emitter) addProperties(props *orderedmap.Map, typeName, ownerID string,
	def catalog.TypeDefinition, resolver *Resolver) ([]interface{}, error) {

	var required []interface{}

	for _, propName := range def.SortedPropertyNames() {
		prop := def.Properties[propName]

		field, err := e.field(prop, ownerID, resolver)
		if err != nil {
			return nil, &catalog.DescriptorError{Owner: typeName, Property: propName, Err: err}
		}
		props.Set(propName, field)

		if prop.IsRequired() {
			required = append(required, propName)
		}
	}
	return required, nil
}

func (e *Emitter) field(prop catalog.PropertyDescriptor, ownerID string, resolver *Resolver) (*orderedmap.Map, error) {
	shape, err := prop.Shape()
	if err != nil {
		return nil, err
	}

	node := orderedmap.NewMap()

	switch typedShape := shape.(type) {
	case catalog.ObjectRef:
		node.Set("$ref", Ref(resolver.ReferenceTarget(ownerID, typedShape.Name)))

	case catalog.Primitive:
		setDescription(node, prop.Documentation)
		err = e.addPrimitive(node, typedShape.Kind)

	case catalog.List:
		setDescription(node, prop.Documentation)
		node.Set("type", "array")
		err = e.addItem(node.PutMap("items"), typedShape.Item, ownerID, resolver)
		if prop.IsUnique() {
			node.Set("uniqueItems", true)
		}
		node.Set("minItems", 0)

	case catalog.Map:
		setDescription(node, prop.Documentation)
		node.Set("type", objectType)
		err = e.addItem(node.PutMap("patternProperties").PutMap(mapKeyPattern), typedShape.Item, ownerID, resolver)

	default:
		return nil, fmt.Errorf("Unexpected shape %T", shape)
	}

	if err != nil {
		return nil, err
	}
	return node, nil
}

func (e *Emitter) addItem(node *orderedmap.Map, item catalog.ItemShape, ownerID string, resolver *Resolver) error {
	switch typedItem := item.(type) {
	case catalog.Primitive:
		return e.addPrimitive(node, typedItem.Kind)
	case catalog.ObjectRef:
		node.Set("$ref", Ref(resolver.ReferenceTarget(ownerID, typedItem.Name)))
		return nil
	default:
		return fmt.Errorf("Unexpected item shape %T", item)
	}
}

func setDescription(node *orderedmap.Map, doc string) {
	if doc != "" {
		node.Set("description", doc)
	}
}
