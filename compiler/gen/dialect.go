package gen

import (
	"path"

	"github.com/dave/jennifer/jen"

	"github.com/amanteaux/daogen/schema"
)

// RuntimePkg is the import path of the package imported by generated code.
const RuntimePkg = "github.com/amanteaux/daogen"

// OnceHeader is the header of generate-once files. Unlike DefaultHeader it
// does not mark the file as generated, the file belongs to the user.
const OnceHeader = "This file was generated once by daogen and will not be overwritten: you can freely change it."

// Renderer renders the Go source of a planned artifact.
type Renderer interface {
	Render(rc *RenderContext) (*jen.File, error)
}

// The RendererFunc type is an adapter to allow the use of ordinary
// functions as Renderer.
type RendererFunc func(*RenderContext) (*jen.File, error)

// Render calls f(rc).
func (f RendererFunc) Render(rc *RenderContext) (*jen.File, error) {
	return f(rc)
}

// RenderContext gives a renderer access to the plan being rendered and to
// the identities of the other artifacts of its table.
type RenderContext struct {
	Plan     *Plan
	Config   *Config
	strategy Strategy
}

// NewRenderContext returns the context rendering p.
func NewRenderContext(c *Config, s Strategy, p *Plan) *RenderContext {
	return &RenderContext{Plan: p, Config: c, strategy: s}
}

// Table returns the table of the plan.
func (rc *RenderContext) Table() *schema.Table {
	return rc.Plan.Table
}

// Identity returns the identity of the artifact of the plan table in the
// given mode.
func (rc *RenderContext) Identity(mode Mode) (Identity, error) {
	return rc.strategy.Resolve(rc.Plan.Table, mode)
}

// ImportPath returns the import path of the package of id.
func (rc *RenderContext) ImportPath(id Identity) string {
	return path.Join(rc.Config.Module, id.Dir())
}

// FieldName returns the Go name of the field holding column c.
func (rc *RenderContext) FieldName(c *schema.Column) (string, error) {
	id, err := rc.strategy.Resolve(c, ModeMethod)
	if err != nil {
		return "", err
	}
	return id.ClassName, nil
}

// Header returns the header comment of the rendered file.
func (rc *RenderContext) Header() string {
	if rc.Plan.Policy == PolicyOnceIfAbsent {
		return OnceHeader
	}
	return rc.Config.header()
}

// NewFile returns an empty file in the package of the plan, with its
// header comment.
func (rc *RenderContext) NewFile() *jen.File {
	f := jen.NewFilePathName(rc.ImportPath(rc.Plan.Identity), rc.Plan.Identity.PackageName())
	f.HeaderComment(rc.Header())
	return f
}
