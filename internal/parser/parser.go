package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/gildlabs/gild/internal/annotations"
	"github.com/gildlabs/gild/internal/models"
)

// Parser scans Go source for gild annotations and builds package metadata
type Parser struct {
	fileSet *token.FileSet
	engine  annotations.ParserEngine
}

// NewParser creates a source scanner backed by the builtin annotation schemas
func NewParser() *Parser {
	return &Parser{
		fileSet: token.NewFileSet(),
		engine:  annotations.NewParser(annotations.BuiltinRegistry()),
	}
}

// ParseSource parses annotations from a single source string
func (p *Parser) ParseSource(filename, source string) (*models.PackageMetadata, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeSource,
			File:    filename,
			Message: fmt.Sprintf("failed to parse source: %v", err),
			Cause:   err,
		}
	}

	metadata := &models.PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: "./",
	}

	s := p.newScan()
	s.collectFile(file, filename)
	s.assemble(metadata)
	if err := s.err(); err != nil {
		return nil, err
	}
	return metadata, nil
}

// ParseDirectory scans every Go file of the package in the given directory.
// Test files never carry component annotations and are skipped.
func (p *Parser) ParseDirectory(path string) (*models.PackageMetadata, error) {
	notTest := func(info fs.FileInfo) bool {
		return !strings.HasSuffix(info.Name(), "_test.go")
	}
	pkgs, err := parser.ParseDir(p.fileSet, path, notTest, parser.ParseComments)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeSource,
			File:    path,
			Message: fmt.Sprintf("failed to parse directory: %v", err),
			Cause:   err,
		}
	}
	if len(pkgs) == 0 {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeSource,
			File:    path,
			Message: fmt.Sprintf("no Go packages found in %s", path),
		}
	}
	if len(pkgs) > 1 {
		names := make([]string, 0, len(pkgs))
		for name := range pkgs {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeSource,
			File:    path,
			Message: fmt.Sprintf("multiple packages found in %s: %s", path, strings.Join(names, ", ")),
		}
	}

	var pkg *ast.Package
	var packageName string
	for name, found := range pkgs {
		pkg = found
		packageName = name
	}

	metadata := &models.PackageMetadata{
		PackageName: packageName,
		PackagePath: path,
	}

	// Files are walked in name order so component order is stable across runs
	fileNames := make([]string, 0, len(pkg.Files))
	for name := range pkg.Files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	s := p.newScan()
	for _, name := range fileNames {
		s.collectFile(pkg.Files[name], name)
	}
	s.assemble(metadata)
	if err := s.err(); err != nil {
		return nil, err
	}
	return metadata, nil
}

// structDecl is a struct type declaration found during the collect pass
type structDecl struct {
	name       string
	doc        *ast.CommentGroup
	structType *ast.StructType
	fileName   string
}

// methodDecl is a method declaration found during the collect pass
type methodDecl struct {
	recvName string
	decl     *ast.FuncDecl
	fileName string
}

// functionDecl is a free function, a constructor candidate
type functionDecl struct {
	decl     *ast.FuncDecl
	fileName string
}

// scan accumulates declarations across the files of one package and turns
// them into metadata once every file has been collected
type scan struct {
	parser    *Parser
	structs   []structDecl
	methods   []methodDecl
	functions []functionDecl
	errs      []annotations.AnnotationError
}

func (p *Parser) newScan() *scan {
	return &scan{parser: p}
}

func (s *scan) err() error {
	switch len(s.errs) {
	case 0:
		return nil
	case 1:
		return s.errs[0]
	default:
		return &annotations.MultipleAnnotationErrors{Errors: s.errs}
	}
}

func (s *scan) collect(err error) {
	if annotationErr, ok := err.(annotations.AnnotationError); ok {
		s.errs = append(s.errs, annotationErr)
		return
	}
	s.errs = append(s.errs, &annotations.SchemaError{Msg: err.Error()})
}

// collectFile gathers annotated declarations from one file in source order
func (s *scan) collectFile(file *ast.File, fileName string) {
	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.GenDecl:
			if node.Tok != token.TYPE {
				return true
			}
			for _, spec := range node.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				structType, ok := typeSpec.Type.(*ast.StructType)
				if !ok {
					continue
				}
				doc := typeSpec.Doc
				if doc == nil && len(node.Specs) == 1 {
					doc = node.Doc
				}
				s.structs = append(s.structs, structDecl{
					name:       typeSpec.Name.Name,
					doc:        doc,
					structType: structType,
					fileName:   fileName,
				})
			}
		case *ast.FuncDecl:
			if node.Recv != nil {
				if recvName := receiverTypeName(node); recvName != "" {
					s.methods = append(s.methods, methodDecl{
						recvName: recvName,
						decl:     node,
						fileName: fileName,
					})
				}
				return true
			}
			s.functions = append(s.functions, functionDecl{decl: node, fileName: fileName})
		}
		return true
	})
}

// assemble builds package metadata from the collected declarations. Structs
// are processed first so routes and constructors can attach to them.
func (s *scan) assemble(metadata *models.PackageMetadata) {
	for _, sd := range s.structs {
		s.processStruct(sd, metadata)
	}

	controllers := make(map[string]*models.ControllerMetadata)
	for i := range metadata.Controllers {
		controllers[metadata.Controllers[i].StructName] = &metadata.Controllers[i]
	}

	for _, md := range s.methods {
		s.processMethod(md, controllers)
	}
	for _, fd := range s.functions {
		s.processFunction(fd, controllers)
	}
}

// parseDoc parses the gild annotations of one comment group, in order.
// Parse and validation failures are collected, not returned.
func (s *scan) parseDoc(doc *ast.CommentGroup, target, fileName string) []*annotations.ParsedAnnotation {
	if doc == nil {
		return nil
	}
	var parsed []*annotations.ParsedAnnotation
	for _, comment := range doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}
		position := s.parser.fileSet.Position(comment.Pos())
		location := annotations.SourceLocation{
			File:   fileName,
			Line:   position.Line,
			Column: position.Column,
		}
		annotation, err := s.parser.engine.ParseAnnotation(comment.Text, location)
		if err != nil {
			s.collect(err)
			continue
		}
		annotation.Target = target
		parsed = append(parsed, annotation)
	}
	return parsed
}

func (s *scan) processStruct(sd structDecl, metadata *models.PackageMetadata) {
	parsed := s.parseDoc(sd.doc, sd.name, sd.fileName)

	var controllerAnn, modelAnn, repositoryAnn, authAnn *annotations.ParsedAnnotation
	for _, a := range parsed {
		switch a.Type {
		case annotations.ControllerAnnotation:
			if controllerAnn != nil {
				s.duplicateKind(a)
				continue
			}
			controllerAnn = a
		case annotations.ModelAnnotation:
			if modelAnn != nil {
				s.duplicateKind(a)
				continue
			}
			modelAnn = a
		case annotations.RepositoryAnnotation:
			if repositoryAnn != nil {
				s.duplicateKind(a)
				continue
			}
			repositoryAnn = a
		case annotations.AuthenticateAnnotation:
			if authAnn != nil {
				s.duplicateKind(a)
				continue
			}
			authAnn = a
		default:
			s.misplaced(a)
		}
	}

	if authAnn != nil && controllerAnn == nil {
		s.errs = append(s.errs, &annotations.SchemaError{
			Msg:  fmt.Sprintf("authenticate annotation on %s requires a gild::controller annotation on the struct", sd.name),
			Loc:  authAnn.Location,
			Hint: "Class-level authentication applies to the routes of a controller",
		})
		authAnn = nil
	}

	injections, properties := s.collectFields(sd, controllerAnn != nil, modelAnn != nil)

	if controllerAnn != nil {
		builder := models.NewMetadataBuilder(sd.name, sd.name).
			WithSource(sourceRef(controllerAnn.Location)).
			WithTags(controllerAnn.GetStringSlice("Tags")...)
		if authAnn != nil {
			builder = builder.WithAuthentication(s.buildAuth(authAnn))
		}
		if len(injections) > 0 {
			builder = builder.WithInjections(injections...)
		}
		controller := builder.BuildController(controllerAnn.GetString("Path", "/"), "", nil)
		metadata.Controllers = append(metadata.Controllers, *controller)
	}

	if modelAnn != nil {
		name := modelAnn.GetString("Name")
		if name == "" {
			name = sd.name
		}
		model := models.NewMetadataBuilder(sd.name, sd.name).
			WithSource(sourceRef(modelAnn.Location)).
			BuildModel(name, modelAnn.GetString("Description"), modelAnn.GetBool("Strict"), properties)
		metadata.Models = append(metadata.Models, *model)
	}

	if repositoryAnn != nil {
		repository := models.NewMetadataBuilder(sd.name, sd.name).
			WithSource(sourceRef(repositoryAnn.Location)).
			BuildRepository(repositoryAnn.GetString("model"), repositoryAnn.GetString("datasource", "default"))
		metadata.Repositories = append(metadata.Repositories, *repository)
	}
}

// collectFields reads inject and property annotations off struct fields
func (s *scan) collectFields(sd structDecl, isController, isModel bool) ([]models.InjectionMetadata, []models.PropertyMetadata) {
	var injections []models.InjectionMetadata
	var properties []models.PropertyMetadata

	for _, field := range sd.structType.Fields.List {
		if field.Doc == nil {
			continue
		}
		target := sd.name
		if len(field.Names) > 0 {
			target = sd.name + "." + field.Names[0].Name
		}
		for _, a := range s.parseDoc(field.Doc, target, sd.fileName) {
			switch a.Type {
			case annotations.InjectAnnotation:
				if !isController {
					s.errs = append(s.errs, &annotations.SchemaError{
						Msg:  fmt.Sprintf("inject annotation on field %s requires a gild::controller annotation on %s", target, sd.name),
						Loc:  a.Location,
						Hint: "Field injection is resolved when the controller is constructed",
					})
					continue
				}
				if len(field.Names) == 0 {
					s.embeddedField(a, sd.name)
					continue
				}
				for _, name := range field.Names {
					injections = append(injections, models.InjectionMetadata{
						Key:       a.GetString("key"),
						Variant:   injectionVariant(a),
						Optional:  a.GetBool("Optional"),
						Tag:       a.GetString("Tag"),
						Target:    models.InjectField,
						FieldName: name.Name,
						GoType:    typeString(field.Type),
						Source:    sourceRef(a.Location),
					})
				}
			case annotations.PropertyAnnotation:
				if !isModel {
					s.errs = append(s.errs, &annotations.SchemaError{
						Msg:  fmt.Sprintf("property annotation on field %s requires a gild::model annotation on %s", target, sd.name),
						Loc:  a.Location,
						Hint: "Properties describe the fields of a persistable model",
					})
					continue
				}
				if len(field.Names) == 0 {
					s.embeddedField(a, sd.name)
					continue
				}
				for _, name := range field.Names {
					properties = append(properties, models.PropertyMetadata{
						FieldName:   name.Name,
						JSONName:    jsonFieldName(name.Name, field.Tag),
						GoType:      typeString(field.Type),
						Type:        canonicalToken(a, "Type", annotations.CanonicalPropertyType),
						Items:       canonicalToken(a, "Items", annotations.CanonicalPropertyType),
						ID:          a.GetBool("Id"),
						Generated:   a.GetBool("Generated"),
						Required:    a.GetBool("Required"),
						Indexed:     a.GetBool("Index"),
						Unique:      a.GetBool("Unique"),
						Default:     a.GetString("Default"),
						Description: a.GetString("Description"),
						Source:      sourceRef(a.Location),
					})
				}
			default:
				s.misplaced(a)
			}
		}
	}

	return injections, properties
}

func (s *scan) processMethod(md methodDecl, controllers map[string]*models.ControllerMetadata) {
	target := md.recvName + "." + md.decl.Name.Name
	parsed := s.parseDoc(md.decl.Doc, target, md.fileName)
	if len(parsed) == 0 {
		return
	}

	var routeAnn, authAnn *annotations.ParsedAnnotation
	var ordered []*annotations.ParsedAnnotation
	for _, a := range parsed {
		switch a.Type {
		case annotations.RouteAnnotation:
			if routeAnn != nil {
				s.duplicateKind(a)
				continue
			}
			routeAnn = a
		case annotations.ParamAnnotation, annotations.BodyAnnotation:
			ordered = append(ordered, a)
		case annotations.AuthenticateAnnotation:
			if authAnn != nil {
				s.duplicateKind(a)
				continue
			}
			authAnn = a
		default:
			s.misplaced(a)
		}
	}

	if routeAnn == nil && len(ordered) == 0 && authAnn == nil {
		return
	}

	controller, ok := controllers[md.recvName]
	if !ok {
		s.errs = append(s.errs, &annotations.SchemaError{
			Msg:  fmt.Sprintf("route annotations on %s require a gild::controller annotation on %s", target, md.recvName),
			Loc:  parsed[0].Location,
			Hint: fmt.Sprintf("Annotate the %s struct with gild::controller", md.recvName),
		})
		return
	}

	if routeAnn == nil {
		s.errs = append(s.errs, &annotations.SchemaError{
			Msg:  fmt.Sprintf("%s declares request annotations without a gild::route annotation", target),
			Loc:  parsed[0].Location,
			Hint: "Declare the route first, e.g. gild::route GET /books",
		})
		return
	}

	route := s.buildRoute(routeAnn, authAnn, ordered, md)
	controller.Routes = append(controller.Routes, *route)
}

// buildRoute assembles one route. Parameters and the body share a single
// ordinal sequence in declaration order, with -Index as an explicit override.
func (s *scan) buildRoute(routeAnn, authAnn *annotations.ParsedAnnotation, ordered []*annotations.ParsedAnnotation, md methodDecl) *models.RouteMetadata {
	route := &models.RouteMetadata{
		HandlerName: md.decl.Name.Name,
		Verb:        strings.ToUpper(routeAnn.GetString("verb")),
		Path:        routeAnn.GetString("path"),
		OperationID: routeAnn.GetString("OperationId"),
		Summary:     routeAnn.GetString("Summary"),
		Description: routeAnn.GetString("Description"),
		Deprecated:  routeAnn.GetBool("Deprecated"),
	}
	route.Tags = routeAnn.GetStringSlice("Tags")
	route.Source = sourceRef(routeAnn.Location)
	if authAnn != nil {
		route.Authentication = s.buildAuth(authAnn)
	}

	placeholders := pathPlaceholders(route.Path)
	declared := make(map[string]bool)
	taken := make(map[int]annotations.SourceLocation)
	ordinal := 0

	for _, a := range ordered {
		switch a.Type {
		case annotations.ParamAnnotation:
			parameter := s.buildParameter(a)
			parameter.Index = ordinal
			if a.HasParameter("Index") {
				parameter.Index = a.GetInt("Index")
			}
			if previous, used := taken[parameter.Index]; used {
				s.errs = append(s.errs, &annotations.ValidationError{
					Parameter: "Index",
					Expected:  "a unique parameter ordinal per method",
					Actual:    fmt.Sprintf("ordinal %d already used on line %d", parameter.Index, previous.Line),
					Loc:       a.Location,
					Hint:      "Give each parameter its own -Index or drop the overrides to use declaration order",
				})
			}
			taken[parameter.Index] = a.Location
			ordinal = parameter.Index + 1

			if parameter.Location == "path" {
				declared[parameter.Name] = true
				if !placeholderExists(placeholders, parameter.Name) {
					s.errs = append(s.errs, &annotations.ValidationError{
						Parameter: "name",
						Expected:  fmt.Sprintf("a {%s} placeholder in route path '%s'", parameter.Name, route.Path),
						Actual:    fmt.Sprintf("path parameter '%s' with no matching placeholder", parameter.Name),
						Loc:       a.Location,
						Hint:      fmt.Sprintf("Add {%s} to the route path or change the parameter location", parameter.Name),
					})
				}
			}
			route.Parameters = append(route.Parameters, *parameter)

		case annotations.BodyAnnotation:
			if route.Body != nil {
				s.errs = append(s.errs, &annotations.ValidationError{
					Parameter: "body",
					Expected:  "a single request body declaration per route",
					Actual:    "a second gild::body annotation",
					Loc:       a.Location,
					Hint:      "Merge the body declarations or move one to another handler",
				})
				continue
			}
			body := s.buildBody(a)
			body.Index = ordinal
			taken[body.Index] = a.Location
			ordinal++
			route.Body = body
		}
	}

	// Path placeholders nobody declared become inferred string parameters so
	// the route still documents and coerces them
	for _, name := range placeholders {
		if declared[name] {
			continue
		}
		route.Parameters = append(route.Parameters, models.ParameterMetadata{
			Name:     name,
			Location: "path",
			Required: true,
			Index:    ordinal,
			Source:   sourceRef(routeAnn.Location),
		})
		ordinal++
	}

	return route
}

func (s *scan) buildParameter(a *annotations.ParsedAnnotation) *models.ParameterMetadata {
	location := a.GetString("location")
	required := a.GetBool("Required")
	if location == "path" {
		required = true
	}
	return &models.ParameterMetadata{
		Name:        a.GetString("name"),
		Location:    location,
		Type:        canonicalToken(a, "type", annotations.CanonicalParamType),
		Items:       canonicalToken(a, "Items", annotations.CanonicalParamType),
		Required:    required,
		Description: a.GetString("Description"),
		Source:      sourceRef(a.Location),
	}
}

func (s *scan) buildBody(a *annotations.ParsedAnnotation) *models.BodyMetadata {
	return &models.BodyMetadata{
		Model:       a.GetString("Model"),
		Required:    a.GetBool("Required", true),
		ContentType: a.GetString("ContentType"),
		Description: a.GetString("Description"),
		Source:      sourceRef(a.Location),
	}
}

func (s *scan) buildAuth(a *annotations.ParsedAnnotation) *models.AuthMetadata {
	auth := &models.AuthMetadata{
		Strategy: a.GetString("strategy"),
		Skip:     a.GetBool("Skip"),
		Source:   sourceRef(a.Location),
	}
	for _, option := range a.GetStringSlice("Options") {
		parts := strings.SplitN(option, ":", 2)
		if len(parts) != 2 {
			continue
		}
		auth.Options = append(auth.Options, models.AuthOption{
			Name:  strings.TrimSpace(parts[0]),
			Value: strings.TrimSpace(parts[1]),
		})
	}
	return auth
}

// processFunction attaches constructors and their inject annotations to
// controllers. Inject annotations pair with constructor parameters in order.
func (s *scan) processFunction(fd functionDecl, controllers map[string]*models.ControllerMetadata) {
	name := fd.decl.Name.Name

	var injectAnns []*annotations.ParsedAnnotation
	for _, a := range s.parseDoc(fd.decl.Doc, name, fd.fileName) {
		switch a.Type {
		case annotations.InjectAnnotation:
			injectAnns = append(injectAnns, a)
		default:
			s.misplaced(a)
		}
	}

	structName, ok := constructorTarget(fd.decl)
	if !ok {
		if len(injectAnns) > 0 {
			s.errs = append(s.errs, &annotations.SchemaError{
				Msg:  fmt.Sprintf("inject annotations on %s require a constructor returning the component type", name),
				Loc:  injectAnns[0].Location,
				Hint: "Constructors are named New<Type> and return the type they build",
			})
		}
		return
	}

	controller, isController := controllers[structName]
	if !isController {
		if len(injectAnns) > 0 {
			s.errs = append(s.errs, &annotations.SchemaError{
				Msg:  fmt.Sprintf("inject annotations on %s require a gild::controller annotation on %s", name, structName),
				Loc:  injectAnns[0].Location,
				Hint: fmt.Sprintf("Annotate the %s struct with gild::controller", structName),
			})
		}
		return
	}

	if controller.Constructor == "" {
		controller.Constructor = name
	}
	if len(injectAnns) == 0 {
		return
	}

	paramTypes := constructorParamTypes(fd.decl.Type.Params)
	if len(injectAnns) > len(paramTypes) {
		s.errs = append(s.errs, &annotations.ValidationError{
			Parameter: "inject",
			Expected:  fmt.Sprintf("one annotation per constructor parameter (%d)", len(paramTypes)),
			Actual:    fmt.Sprintf("%d inject annotations", len(injectAnns)),
			Loc:       injectAnns[len(paramTypes)].Location,
			Hint:      "Inject annotations pair with constructor parameters in order",
		})
		injectAnns = injectAnns[:len(paramTypes)]
	}
	for i, a := range injectAnns {
		controller.Injections = append(controller.Injections, models.InjectionMetadata{
			Key:        a.GetString("key"),
			Variant:    injectionVariant(a),
			Optional:   a.GetBool("Optional"),
			Tag:        a.GetString("Tag"),
			Target:     models.InjectConstructorParam,
			ParamIndex: i,
			GoType:     paramTypes[i],
			Source:     sourceRef(a.Location),
		})
	}
}

func (s *scan) duplicateKind(a *annotations.ParsedAnnotation) {
	s.errs = append(s.errs, &annotations.SchemaError{
		Msg:  fmt.Sprintf("%s declares more than one gild::%s annotation", a.Target, a.Type),
		Loc:  a.Location,
		Hint: "Remove the duplicate annotation",
	})
}

func (s *scan) misplaced(a *annotations.ParsedAnnotation) {
	s.errs = append(s.errs, &annotations.SchemaError{
		Msg:  fmt.Sprintf("gild::%s annotation is not valid on %s", a.Type, a.Target),
		Loc:  a.Location,
		Hint: placementHint(a.Type),
	})
}

func (s *scan) embeddedField(a *annotations.ParsedAnnotation, structName string) {
	s.errs = append(s.errs, &annotations.SchemaError{
		Msg:  fmt.Sprintf("gild::%s annotations are not supported on embedded fields of %s", a.Type, structName),
		Loc:  a.Location,
		Hint: "Name the field to annotate it",
	})
}

func placementHint(t annotations.AnnotationType) string {
	switch t {
	case annotations.ControllerAnnotation, annotations.ModelAnnotation, annotations.RepositoryAnnotation:
		return "Declare it on a struct type"
	case annotations.RouteAnnotation, annotations.ParamAnnotation, annotations.BodyAnnotation:
		return "Declare it on a controller method"
	case annotations.InjectAnnotation:
		return "Declare it on a controller field or its constructor"
	case annotations.PropertyAnnotation:
		return "Declare it on a model struct field"
	case annotations.AuthenticateAnnotation:
		return "Declare it on a controller struct or a route method"
	default:
		return "Check where this annotation kind may appear"
	}
}

func injectionVariant(a *annotations.ParsedAnnotation) models.InjectionVariant {
	switch {
	case a.GetBool("Getter"):
		return models.InjectionGetter
	case a.GetBool("Setter"):
		return models.InjectionSetter
	case a.GetBool("Context"):
		return models.InjectionContext
	default:
		return models.InjectionValue
	}
}

// canonicalToken returns the canonical form of a type token parameter, or
// empty when the parameter was omitted and inference is requested
func canonicalToken(a *annotations.ParsedAnnotation, param string, canonical func(string) (string, bool)) string {
	if !a.HasParameter(param) {
		return ""
	}
	raw := a.GetString(param)
	if c, ok := canonical(raw); ok {
		return c
	}
	return raw
}

func sourceRef(loc annotations.SourceLocation) models.SourceRef {
	return models.SourceRef{File: loc.File, Line: loc.Line}
}

// jsonFieldName resolves the wire name of a struct field from its json tag.
// Untagged fields and fields tagged json:"-" keep the Go field name.
func jsonFieldName(fieldName string, tag *ast.BasicLit) string {
	if tag == nil {
		return fieldName
	}
	unquoted, err := strconv.Unquote(tag.Value)
	if err != nil {
		return fieldName
	}
	name, _, _ := strings.Cut(reflect.StructTag(unquoted).Get("json"), ",")
	if name == "" || name == "-" {
		return fieldName
	}
	return name
}

// pathPlaceholders lists {name} placeholders in order of appearance. Route
// validation has already rejected malformed braces.
func pathPlaceholders(path string) []string {
	var names []string
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			return names
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			return names
		}
		names = append(names, path[start+1:start+end])
		path = path[start+end+1:]
	}
}

func placeholderExists(placeholders []string, name string) bool {
	for _, placeholder := range placeholders {
		if placeholder == name {
			return true
		}
	}
	return false
}

func receiverTypeName(decl *ast.FuncDecl) string {
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return ""
	}
	switch recv := decl.Recv.List[0].Type.(type) {
	case *ast.StarExpr:
		if ident, ok := recv.X.(*ast.Ident); ok {
			return ident.Name
		}
	case *ast.Ident:
		return recv.Name
	}
	return ""
}

// constructorTarget reports the type a constructor builds. A constructor is
// a free function New<Type> whose first result is Type or *Type.
func constructorTarget(decl *ast.FuncDecl) (string, bool) {
	name := decl.Name.Name
	if !strings.HasPrefix(name, "New") || len(name) == len("New") {
		return "", false
	}
	if decl.Type.Results == nil || len(decl.Type.Results.List) == 0 {
		return "", false
	}
	result := decl.Type.Results.List[0].Type
	if star, ok := result.(*ast.StarExpr); ok {
		result = star.X
	}
	ident, ok := result.(*ast.Ident)
	if !ok || ident.Name != name[len("New"):] {
		return "", false
	}
	return ident.Name, true
}

// constructorParamTypes flattens a parameter list into one type per declared
// parameter name, so (a, b int) yields two entries
func constructorParamTypes(fields *ast.FieldList) []string {
	var types []string
	if fields == nil {
		return types
	}
	for _, field := range fields.List {
		goType := typeString(field.Type)
		if len(field.Names) == 0 {
			types = append(types, goType)
			continue
		}
		for range field.Names {
			types = append(types, goType)
		}
	}
	return types
}

// typeString renders an AST type expression as declared source text
func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.SelectorExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name + "." + t.Sel.Name
		}
		return t.Sel.Name
	case *ast.ArrayType:
		return "[]" + typeString(t.Elt)
	case *ast.MapType:
		return "map[" + typeString(t.Key) + "]" + typeString(t.Value)
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return "interface{}"
		}
		return "interface"
	case *ast.Ellipsis:
		return "..." + typeString(t.Elt)
	case *ast.FuncType:
		var b strings.Builder
		b.WriteString("func(")
		if t.Params != nil {
			for i, param := range t.Params.List {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(typeString(param.Type))
			}
		}
		b.WriteString(")")
		if t.Results != nil && len(t.Results.List) > 0 {
			if len(t.Results.List) == 1 {
				b.WriteString(" " + typeString(t.Results.List[0].Type))
			} else {
				b.WriteString(" (")
				for i, result := range t.Results.List {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(typeString(result.Type))
				}
				b.WriteString(")")
			}
		}
		return b.String()
	default:
		return "unknown"
	}
}
