package sql

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/amanteaux/daogen/compiler/gen"
)

// Renderer renders the artifacts of every mode owning a file.
type Renderer struct{}

var _ gen.Renderer = (*Renderer)(nil)

// NewRenderer returns the jennifer renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render implements gen.Renderer.
func (r *Renderer) Render(rc *gen.RenderContext) (*jen.File, error) {
	n, err := resolveNames(rc)
	if err != nil {
		return nil, err
	}
	switch mode := rc.Plan.Mode; mode {
	case gen.ModeTable:
		return genTable(rc, n), nil
	case gen.ModeValue:
		return genValue(rc, n), nil
	case gen.ModeInterface:
		return genInterface(rc, n), nil
	case gen.ModeRecord:
		return genRecord(rc, n), nil
	case gen.ModeDAOBase:
		return genDAOBase(rc, n)
	case gen.ModeBean:
		return genBean(rc, n)
	case gen.ModeDAOChild:
		return genDAOChild(rc, n)
	default:
		return nil, fmt.Errorf("sql: no renderer for mode %s", mode)
	}
}

// NewGenerator returns a generator rendering with the jennifer renderer.
// Options may replace the renderer.
func NewGenerator(c *gen.Config, opts ...gen.GeneratorOption) (*gen.Generator, error) {
	return gen.NewGenerator(c, append([]gen.GeneratorOption{gen.WithRenderer(NewRenderer())}, opts...)...)
}
