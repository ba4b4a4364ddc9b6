package generator

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gildlabs/gild/internal/models"
	"github.com/gildlabs/gild/internal/utils"
)

// Generator renders the per-package registration files that record
// annotation metadata and bind controllers for mounting
type Generator struct {
	templates *TemplateRegistry
	index     *modelIndex
}

// NewGenerator creates a generator backed by the default template registry
func NewGenerator() *Generator {
	return &Generator{templates: DefaultTemplateRegistry}
}

// Generate renders one registration file per annotated package. Packages
// without annotations produce no file. Body model references resolve across
// every package of the run, so all scanned packages must be passed together.
func (g *Generator) Generate(pkgs ...*models.PackageMetadata) ([]models.GeneratedFile, error) {
	for _, pkg := range pkgs {
		if pkg == nil {
			return nil, fmt.Errorf("package metadata cannot be nil")
		}
	}
	g.index = indexModels(pkgs)

	var files []models.GeneratedFile
	for _, pkg := range pkgs {
		if !pkg.HasAnnotations() {
			continue
		}
		file, err := g.renderPackage(pkg)
		if err != nil {
			return nil, utils.WrapGenerateError("package "+pkg.PackageName, err)
		}
		files = append(files, file)
	}
	return files, nil
}

// renderPackage assembles and formats the registration file of one package
func (g *Generator) renderPackage(pkg *models.PackageMetadata) (models.GeneratedFile, error) {
	imports := newImportSet()
	imports.add(gildImportPath)

	var steps []stepData
	var bindings []string

	for i := range pkg.Controllers {
		controller := &pkg.Controllers[i]
		controllerSteps, err := g.controllerSteps(controller, pkg, imports)
		if err != nil {
			return models.GeneratedFile{}, err
		}
		steps = append(steps, controllerSteps...)

		binding, err := g.renderBinding(controller)
		if err != nil {
			return models.GeneratedFile{}, err
		}
		bindings = append(bindings, binding)
		imports.add(mountImportPath)
	}

	for i := range pkg.Models {
		modelSteps, err := modelSteps(&pkg.Models[i])
		if err != nil {
			return models.GeneratedFile{}, err
		}
		steps = append(steps, modelSteps...)
		imports.add(repositoryImportPath)
	}

	for i := range pkg.Repositories {
		repo := &pkg.Repositories[i]
		steps = append(steps, stepData{Site: classSite(repo.StructName), Payload: repositoryExpr(repo)})
		imports.add(repositoryImportPath)
	}

	header, err := ExecuteTemplate("file-header", g.templates.MustGet("file-header"), fileHeaderData{
		PackageName: pkg.PackageName,
		Imports:     imports.lines(),
	})
	if err != nil {
		return models.GeneratedFile{}, err
	}
	register, err := ExecuteTemplate("register-metadata", g.templates.MustGet("register-metadata"), registerData{
		PackageName: pkg.PackageName,
		Steps:       steps,
	})
	if err != nil {
		return models.GeneratedFile{}, err
	}

	var content strings.Builder
	content.WriteString(header)
	content.WriteString("\n")
	content.WriteString(register)
	for _, binding := range bindings {
		content.WriteString("\n")
		content.WriteString(binding)
	}

	filePath := filepath.Join(pkg.PackagePath, utils.GeneratedFileName)
	formatted, err := utils.FormatGoSource(filePath, []byte(content.String()))
	if err != nil {
		return models.GeneratedFile{}, fmt.Errorf("rendered registration file does not format: %w", err)
	}

	return models.GeneratedFile{
		PackageName: pkg.PackageName,
		ImportPath:  pkg.ImportPath,
		FilePath:    filePath,
		Content:     string(formatted),
	}, nil
}

// controllerSteps renders the registration steps of one controller: the
// class api payload, authentication, injections, then every route with its
// parameters and body in ordinal order
func (g *Generator) controllerSteps(c *models.ControllerMetadata, pkg *models.PackageMetadata, imports *importSet) ([]stepData, error) {
	class := c.StructName
	steps := []stepData{{Site: classSite(class), Payload: apiExpr(c)}}
	imports.add(openapiImportPath)

	if c.Authentication != nil {
		steps = append(steps, stepData{Site: classSite(class), Payload: requirementExpr(c.Authentication)})
		imports.add(authenticateImportPath)
	}

	for i := range c.Injections {
		injection := &c.Injections[i]
		payload, err := bindingExpr(injection, class)
		if err != nil {
			return nil, err
		}
		site := propertySite(class, injection.FieldName)
		if injection.Target == models.InjectConstructorParam {
			site = constructorSite(class, injection.ParamIndex)
		}
		steps = append(steps, stepData{Site: site, Payload: payload})
		imports.add(injectImportPath)
	}

	for i := range c.Routes {
		route := &c.Routes[i]
		steps = append(steps, stepData{Site: methodSite(class, route.HandlerName), Payload: routeExpr(route)})
		if route.Authentication != nil {
			steps = append(steps, stepData{Site: methodSite(class, route.HandlerName), Payload: requirementExpr(route.Authentication)})
			imports.add(authenticateImportPath)
		}
		argumentSteps, err := g.argumentSteps(class, route, pkg, imports)
		if err != nil {
			return nil, err
		}
		steps = append(steps, argumentSteps...)
	}
	return steps, nil
}

// argumentSteps renders the parameter and body steps of one route, ordered
// by their ordinals so registration order matches declaration order
func (g *Generator) argumentSteps(class string, route *models.RouteMetadata, pkg *models.PackageMetadata, imports *importSet) ([]stepData, error) {
	type argument struct {
		index   int
		payload string
	}
	arguments := make([]argument, 0, len(route.Parameters)+1)

	for i := range route.Parameters {
		parameter := &route.Parameters[i]
		payload, err := paramExpr(parameter)
		if err != nil {
			return nil, generationError(parameter.Source, err)
		}
		arguments = append(arguments, argument{index: parameter.Index, payload: payload})
	}
	if route.Body != nil {
		payload, err := g.bodyExpr(route.Body, pkg, imports)
		if err != nil {
			return nil, generationError(route.Body.Source, err)
		}
		arguments = append(arguments, argument{index: route.Body.Index, payload: payload})
	}
	sort.SliceStable(arguments, func(i, j int) bool { return arguments[i].index < arguments[j].index })

	steps := make([]stepData, 0, len(arguments))
	for _, arg := range arguments {
		steps = append(steps, stepData{
			Site:    paramSite(class, route.HandlerName, arg.index),
			Payload: arg.payload,
		})
	}
	return steps, nil
}

// modelSteps renders the registration steps of one model and its properties
func modelSteps(model *models.ModelMetadata) ([]stepData, error) {
	steps := []stepData{{Site: classSite(model.StructName), Payload: modelExpr(model)}}
	for i := range model.Properties {
		property := &model.Properties[i]
		payload, err := propertyExpr(property)
		if err != nil {
			return nil, generationError(property.Source, err)
		}
		steps = append(steps, stepData{
			Site:    propertySite(model.StructName, property.FieldName),
			Payload: payload,
		})
	}
	return steps, nil
}

// renderBinding renders the mount binding constructor of one controller
func (g *Generator) renderBinding(c *models.ControllerMetadata) (string, error) {
	data := bindingData{StructName: c.StructName}
	for i := range c.Routes {
		data.Handlers = append(data.Handlers, handlerData{
			Name:   strconv.Quote(c.Routes[i].HandlerName),
			Method: c.Routes[i].HandlerName,
		})
	}
	return ExecuteTemplate("controller-binding", g.templates.MustGet("controller-binding"), data)
}

// generationError wraps a failure with the declaration site it traces to
func generationError(source models.SourceRef, err error) error {
	if generr, ok := err.(*models.GeneratorError); ok {
		return generr
	}
	return &models.GeneratorError{
		Type:    models.ErrorTypeGeneration,
		File:    source.File,
		Line:    source.Line,
		Message: err.Error(),
		Cause:   err,
	}
}
