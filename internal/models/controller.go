package models

// ControllerMetadata represents an annotated controller struct and its routes
type ControllerMetadata struct {
	BaseMetadataTrait
	TagsTrait
	SourceTrait
	BasePath       string              // URL prefix for all routes on this controller
	Authentication *AuthMetadata       // class-level authentication requirement
	Injections     []InjectionMetadata // constructor parameter and field injections
	Constructor    string              // constructor function name, empty when none found
	Routes         []RouteMetadata     // routes in declaration order
}

// RouteMetadata represents one HTTP route handler method
type RouteMetadata struct {
	TagsTrait
	SourceTrait
	HandlerName    string              // name of the handler method
	Verb           string              // canonical HTTP verb (GET, POST, ...)
	Path           string              // path template with {name} placeholders
	OperationID    string              // stable operation identifier
	Summary        string              // one-line documentation summary
	Description    string              // longer documentation text
	Deprecated     bool                // documented as deprecated
	Authentication *AuthMetadata       // method-level requirement, overrides the controller's
	Parameters     []ParameterMetadata // request parameters in declaration order
	Body           *BodyMetadata       // request body, at most one per method
}

// ParameterMetadata represents a declared request parameter
type ParameterMetadata struct {
	Name        string    // wire name of the parameter
	Location    string    // path, query, or header
	Type        string    // canonical type token, empty requests inference
	Items       string    // item type token for array parameters
	Required    bool      // resolved requirement, always true for path
	Description string    // documentation text
	Index       int       // parameter ordinal on the method site
	Source      SourceRef // declaration site
}

// BodyMetadata represents the declared request body of a handler
type BodyMetadata struct {
	Model       string    // model type providing the schema, empty requests inference
	Required    bool      // whether the body must be present
	ContentType string    // content type the body is decoded from
	Description string    // documentation text
	Index       int       // parameter ordinal on the method site
	Source      SourceRef // declaration site
}

// AuthMetadata represents an authentication requirement or an explicit skip
type AuthMetadata struct {
	Strategy string       // strategy name, empty when Skip is set
	Skip     bool         // disables authentication inherited from the controller
	Options  []AuthOption // strategy options in declaration order
	Source   SourceRef    // declaration site
}

// AuthOption is one name:value strategy option
type AuthOption struct {
	Name  string
	Value string
}

// InjectionMetadata represents one dependency injection request
type InjectionMetadata struct {
	Key        string           // binding key, empty for tag and context injections
	Variant    InjectionVariant // value, getter, setter, or context
	Optional   bool             // zero value instead of failure when unbound
	Tag        string           // tag pattern for tag injections
	Target     InjectionTarget  // field or constructor parameter
	FieldName  string           // set for field targets
	ParamIndex int              // set for constructor parameter targets
	GoType     string           // declared Go type of the target
	Source     SourceRef        // declaration site
}
