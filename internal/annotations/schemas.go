package annotations

import (
	"fmt"

	"github.com/gildlabs/gild/internal/utils"
)

// Built-in annotation schemas

// ControllerAnnotationSchema defines the schema for //gild::controller annotations
var ControllerAnnotationSchema = AnnotationSchema{
	Type:        ControllerAnnotation,
	Description: "Marks a struct as an HTTP controller whose methods may carry routes",
	Parameters: map[string]ParameterSpec{
		"Path": {
			Type:         StringType,
			Required:     false,
			DefaultValue: "/",
			Description:  "Base path prefixed to every route on the controller",
			Validator:    ValidateRoutePath,
		},
		"Tags": TagsParameterSpec("Documentation tags applied to every route on the controller"),
	},
	Examples: []string{
		"//gild::controller",
		"//gild::controller -Path=/books",
		"//gild::controller -Path=/books -Tags=books,catalog",
	},
}

// RouteAnnotationSchema defines the schema for //gild::route annotations
var RouteAnnotationSchema = AnnotationSchema{
	Type:        RouteAnnotation,
	Description: "Binds a controller method to an HTTP verb and path template",
	Parameters: map[string]ParameterSpec{
		"verb":        VerbParameterSpec(),
		"path":        RoutePathParameterSpec(),
		"Summary":     DescriptionParameterSpec("One-line summary for documentation"),
		"Description": DescriptionParameterSpec("Longer description for documentation"),
		"OperationId": {
			Type:        StringType,
			Required:    false,
			Description: "Stable operation identifier; defaults to the method name",
			Validator:   ValidateTypeName,
		},
		"Tags":       TagsParameterSpec("Documentation tags for this route, replacing the controller tags"),
		"Deprecated": FlagParameterSpec("Marks the route as deprecated in documentation"),
	},
	Validators: []CustomValidator{ValidateRouteParameters},
	Examples: []string{
		"//gild::route GET /books",
		"//gild::route GET /books/{id}",
		"//gild::route POST /books -Summary=\"Create a book\"",
		"//gild::route DELETE /books/{id} -Tags=admin -Deprecated",
	},
}

// ParamAnnotationSchema defines the schema for //gild::param annotations
var ParamAnnotationSchema = AnnotationSchema{
	Type:        ParamAnnotation,
	Description: "Describes a request parameter of a routed method",
	Parameters: map[string]ParameterSpec{
		"location": {
			Type:        StringType,
			Required:    true,
			Description: "Where the parameter arrives: path, query, or header",
			Validator:   ValidateParamLocation,
		},
		"name": {
			Type:        StringType,
			Required:    true,
			Description: "Parameter name as it appears on the wire",
			Validator:   ValidateNotEmpty,
		},
		"type": {
			Type:        StringType,
			Required:    false,
			Description: "Value type; omit it to request schema inference from the method signature",
			Validator:   ValidateParamType,
		},
		"Items": {
			Type:         StringType,
			Required:     false,
			DefaultValue: "string",
			Description:  "Item type for array parameters",
			Validator:    ValidateParamItemType,
		},
		"Required": {
			Type:        BoolType,
			Required:    false,
			Description: "Whether the parameter must be present; path parameters are always required",
		},
		"Description": DescriptionParameterSpec("Parameter description for documentation"),
		"Index": {
			Type:        IntType,
			Required:    false,
			Description: "Explicit method parameter index when it cannot be taken from annotation order",
			Validator:   ValidateNonNegative,
		},
	},
	Validators: []CustomValidator{ValidateParamCombination},
	Examples: []string{
		"//gild::param path id integer",
		"//gild::param query limit integer -Required=false",
		"//gild::param query tags array -Items=string",
		"//gild::param header X-Request-Id uuid",
		"//gild::param query filter",
	},
}

// BodyAnnotationSchema defines the schema for //gild::body annotations
var BodyAnnotationSchema = AnnotationSchema{
	Type:        BodyAnnotation,
	Description: "Describes the request body of a routed method; at most one per method",
	Parameters: map[string]ParameterSpec{
		"Model": {
			Type:        StringType,
			Required:    false,
			Description: "Model type providing the body schema; omit it to request inference",
			Validator:   ValidateTypeName,
		},
		"Required": {
			Type:         BoolType,
			Required:     false,
			DefaultValue: true,
			Description:  "Whether the body must be present",
		},
		"ContentType": {
			Type:         StringType,
			Required:     false,
			DefaultValue: "application/json",
			Description:  "Content type the body is decoded from",
			Validator:    ValidateNotEmpty,
		},
		"Description": DescriptionParameterSpec("Body description for documentation"),
	},
	Examples: []string{
		"//gild::body",
		"//gild::body -Model=CreateBookInput",
		"//gild::body -Required=false -Description=\"Optional patch document\"",
	},
}

// InjectAnnotationSchema defines the schema for //gild::inject annotations
var InjectAnnotationSchema = AnnotationSchema{
	Type:        InjectAnnotation,
	Description: "Requests a dependency binding for a field or method parameter",
	Parameters: map[string]ParameterSpec{
		"key": {
			Type:        StringType,
			Required:    false,
			Description: "Binding key to resolve; required unless -Context or -Tag is used",
			Validator:   ValidateNotEmpty,
		},
		"Optional": FlagParameterSpec("Resolves to the zero value instead of failing when the binding is absent"),
		"Getter":   FlagParameterSpec("Injects a getter function for the binding instead of the value"),
		"Setter":   FlagParameterSpec("Injects a setter function for the binding instead of the value"),
		"Context":  FlagParameterSpec("Injects the request context itself"),
		"Tag": {
			Type:        StringType,
			Required:    false,
			Description: "Injects every binding registered under the tag",
			Validator:   ValidateNotEmpty,
		},
	},
	Validators: []CustomValidator{ValidateInjectParameters},
	Examples: []string{
		"//gild::inject bookService",
		"//gild::inject currentUser -Optional",
		"//gild::inject currentUser -Getter",
		"//gild::inject -Context",
		"//gild::inject -Tag=repository",
	},
}

// AuthenticateAnnotationSchema defines the schema for //gild::authenticate annotations
var AuthenticateAnnotationSchema = AnnotationSchema{
	Type:        AuthenticateAnnotation,
	Description: "Enforces or skips an authentication strategy on a route or controller",
	Parameters: map[string]ParameterSpec{
		"strategy": {
			Type:        StringType,
			Required:    false,
			Description: "Strategy name to enforce; required unless -Skip is used",
			Validator:   ValidateNotEmpty,
		},
		"Skip": FlagParameterSpec("Disables authentication inherited from the controller"),
		"Options": {
			Type:        StringSliceType,
			Required:    false,
			Description: "Strategy options as name:value entries",
		},
	},
	Validators: []CustomValidator{ValidateAuthenticateParameters},
	Examples: []string{
		"//gild::authenticate jwt",
		"//gild::authenticate jwt -Options=scope:admin",
		"//gild::authenticate -Skip",
	},
}

// ModelAnnotationSchema defines the schema for //gild::model annotations
var ModelAnnotationSchema = AnnotationSchema{
	Type:        ModelAnnotation,
	Description: "Marks a struct as a persistable model",
	Parameters: map[string]ParameterSpec{
		"Name": {
			Type:        StringType,
			Required:    false,
			Description: "Model name when it differs from the struct name",
			Validator:   ValidateNotEmpty,
		},
		"Description": DescriptionParameterSpec("Model description for documentation"),
		"Strict":      FlagParameterSpec("Rejects properties that are not declared on the model"),
	},
	Examples: []string{
		"//gild::model",
		"//gild::model -Name=books -Strict",
	},
}

// PropertyAnnotationSchema defines the schema for //gild::property annotations
var PropertyAnnotationSchema = AnnotationSchema{
	Type:        PropertyAnnotation,
	Description: "Describes a model field beyond what its Go type conveys",
	Parameters: map[string]ParameterSpec{
		"Type": {
			Type:        StringType,
			Required:    false,
			Description: "Property type; omit it to request inference from the field type",
			Validator:   ValidatePropertyType,
		},
		"Items": {
			Type:        StringType,
			Required:    false,
			Description: "Item type for array properties",
			Validator:   ValidatePropertyType,
		},
		"Id":        FlagParameterSpec("Marks the field as the model identifier"),
		"Generated": FlagParameterSpec("Marks the field value as generated by the data source"),
		"Required":  FlagParameterSpec("Marks the field as required on writes"),
		"Index":     FlagParameterSpec("Requests a data source index on the field"),
		"Unique":    FlagParameterSpec("Requests a unique data source index on the field"),
		"Default": {
			Type:        StringType,
			Required:    false,
			Description: "Default value applied when the field is absent",
		},
		"Description": DescriptionParameterSpec("Property description for documentation"),
	},
	Examples: []string{
		"//gild::property -Id -Generated",
		"//gild::property -Type=string -Required",
		"//gild::property -Type=array -Items=string",
		"//gild::property -Unique -Description=\"ISBN-13\"",
	},
}

// RepositoryAnnotationSchema defines the schema for //gild::repository annotations
var RepositoryAnnotationSchema = AnnotationSchema{
	Type:        RepositoryAnnotation,
	Description: "Binds a repository struct to the model it persists",
	Parameters: map[string]ParameterSpec{
		"model": {
			Type:        StringType,
			Required:    true,
			Description: "Model type the repository persists",
			Validator:   ValidateTypeName,
		},
		"datasource": {
			Type:         StringType,
			Required:     false,
			DefaultValue: "default",
			Description:  "Named data source the repository runs against",
			Validator:    ValidateNotEmpty,
		},
	},
	Examples: []string{
		"//gild::repository Book",
		"//gild::repository Book analytics",
	},
}

// RelationAnnotationSchema defines the schema for //gild::relation annotations.
// The kind parses so users get a targeted rejection rather than an
// unknown-kind error; its validator fails every instance.
var RelationAnnotationSchema = AnnotationSchema{
	Type:        RelationAnnotation,
	Description: "Reserved for model relations, which cannot be registered",
	Parameters:  map[string]ParameterSpec{},
	Validators:  []CustomValidator{ValidateRelationUnsupported},
	Examples: []string{
		"//gild::relation",
	},
}

// GetBuiltinSchemas returns every builtin schema in registration order
func GetBuiltinSchemas() []AnnotationSchema {
	return []AnnotationSchema{
		ControllerAnnotationSchema,
		RouteAnnotationSchema,
		ParamAnnotationSchema,
		BodyAnnotationSchema,
		InjectAnnotationSchema,
		AuthenticateAnnotationSchema,
		ModelAnnotationSchema,
		PropertyAnnotationSchema,
		RepositoryAnnotationSchema,
		RelationAnnotationSchema,
	}
}

// RegisterBuiltinSchemas registers every builtin schema with the registry
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	for _, schema := range GetBuiltinSchemas() {
		if err := registry.Register(schema.Type, schema); err != nil {
			return utils.WrapRegisterError(fmt.Sprintf("builtin schema '%s'", schema.Type), err)
		}
	}
	return nil
}
