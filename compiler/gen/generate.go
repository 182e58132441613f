package gen

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amanteaux/daogen/schema"
)

// Generator walks a schema model and emits its artifacts.
type Generator struct {
	config   *Config
	strategy Strategy
	synth    Synthesizer
	planner  *Planner
	renderer Renderer
	writer   SourceWriter
	logger   *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithStrategy sets the naming strategy.
func WithStrategy(s Strategy) GeneratorOption {
	return func(g *Generator) {
		g.strategy = s
	}
}

// WithSynthesizer sets the DAO synthesizer.
func WithSynthesizer(s Synthesizer) GeneratorOption {
	return func(g *Generator) {
		g.synth = s
	}
}

// WithRenderer sets the renderer. A renderer is required.
func WithRenderer(r Renderer) GeneratorOption {
	return func(g *Generator) {
		g.renderer = r
	}
}

// WithWriter sets the source writer. Defaults to a FileWriter rooted at the
// target directory.
func WithWriter(w SourceWriter) GeneratorOption {
	return func(g *Generator) {
		g.writer = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = l
	}
}

// NewGenerator returns a generator for the given configuration. It fails
// with a *ConfigError when the configuration is incomplete or no renderer
// is set.
//
// Example:
//
//	import "github.com/amanteaux/daogen/compiler/gen/sql"
//
//	g, err := gen.NewGenerator(cfg, gen.WithRenderer(sql.NewRenderer()))
//	if err != nil {
//	    return err
//	}
//	report, err := g.GenerateWithChildren(db)
func NewGenerator(c *Config, opts ...GeneratorOption) (*Generator, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config is required")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{config: c}
	for _, opt := range opts {
		opt(g)
	}
	if g.renderer == nil {
		return nil, NewConfigError("Renderer", nil, "no renderer set: use WithRenderer")
	}
	if g.strategy == nil {
		g.strategy = NewStrategy(c)
	}
	if g.synth == nil {
		g.synth = NewSynthesizer(g.strategy, c)
	}
	if g.writer == nil {
		g.writer = NewFileWriter(c.Target)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}
	g.planner = NewPlanner(g.strategy, g.synth)
	return g, nil
}

// Generate emits the regenerated artifacts of every table of db.
// Only configuration errors abort the run; other failures are recorded in
// the report.
func (g *Generator) Generate(db *schema.Database) (*Report, error) {
	return g.run(db, false)
}

// GenerateWithChildren emits the regenerated artifacts, then the
// generate-once beans and DAO children of every non-empty schema.
func (g *Generator) GenerateWithChildren(db *schema.Database) (*Report, error) {
	if g.config.ChildPackage == "" {
		return nil, NewConfigError("ChildPackage", nil, "child package is required to generate child entities")
	}
	return g.run(db, true)
}

func (g *Generator) run(db *schema.Database, children bool) (*Report, error) {
	start := time.Now()
	db.Link()
	report := &Report{}
	claimed := make(claims)
	tables := make(map[*schema.Schema][]*TablePlan, len(db.Schemas))
	for _, s := range db.Schemas {
		for _, t := range s.Tables {
			tp, err := g.planner.PlanTable(t)
			if err != nil {
				return report, err
			}
			if tp.Skip != nil {
				g.logger.Info("skipping DAO", "table", t.QualifiedName(), "reason", tp.Skip)
				report.Skips = append(report.Skips, Skip{
					Schema: s.Name,
					Table:  t.Name,
					Mode:   ModeDAOBase,
					Reason: tp.Skip.Error(),
				})
			}
			for _, p := range tp.Plans {
				g.emit(p, claimed, report)
			}
			tables[s] = append(tables[s], tp)
		}
	}
	if children {
		g.logger.Info("generating child entities once")
		for _, s := range db.Schemas {
			if len(s.Tables) == 0 {
				continue
			}
			plans, err := g.planner.PlanChildren(tables[s])
			if err != nil {
				return report, err
			}
			for _, p := range plans {
				g.emit(p, claimed, report)
			}
		}
	}
	report.Elapsed = time.Since(start)
	g.logger.Info("generation done", "summary", report.Summary())
	return report, nil
}

// claims maps the file and the type of every emitted artifact to its plan.
// Files are keyed in lower case, since two tables differing only by case
// would clash on a case-insensitive file system.
type claims map[string]*Plan

// claim records p, or returns the plan already owning its file or its type
// name within the package.
func (c claims) claim(p *Plan) *Plan {
	keys := []string{
		"file:" + strings.ToLower(p.Identity.Path),
		"type:" + p.Identity.Package + "." + p.Identity.ClassName,
	}
	for _, k := range keys {
		if prev, ok := c[k]; ok {
			return prev
		}
	}
	for _, k := range keys {
		c[k] = p
	}
	return nil
}

func (g *Generator) emit(p *Plan, claimed claims, report *Report) {
	entry := Entry{Identity: p.Identity, Mode: p.Mode, Policy: p.Policy}
	fail := func(err error) {
		g.logger.Error("artifact failed", "path", p.Identity.Path, "mode", p.Mode, "error", err)
		entry.Outcome, entry.Err = OutcomeFailed, err
		report.add(entry)
	}
	skip := func() {
		g.logger.Debug("artifact exists", "path", p.Identity.Path, "mode", p.Mode)
		entry.Outcome = OutcomeSkippedExists
		report.add(entry)
	}
	if p.Err != nil {
		fail(p.Err)
		return
	}
	if prev := claimed.claim(p); prev != nil {
		fail(NewSchemaError(p.Table.QualifiedName(), "", fmt.Sprintf("%s %s collides with the %s of table %s",
			p.Mode, p.Identity.Path, prev.Mode, prev.Table.QualifiedName()), nil))
		return
	}
	if p.Policy == PolicyOnceIfAbsent {
		exists, err := g.writer.Exists(p.Identity.Path)
		if err != nil {
			fail(artifactError("check", p, err))
			return
		}
		if exists {
			skip()
			return
		}
	}
	f, err := g.renderer.Render(NewRenderContext(g.config, g.strategy, p))
	if err != nil {
		fail(artifactError("render", p, err))
		return
	}
	if ew, ok := g.writer.(ExclusiveWriter); ok && p.Policy == PolicyOnceIfAbsent {
		created, err := ew.WriteNew(p.Identity.Path, f)
		switch {
		case err != nil:
			fail(artifactError("write", p, err))
			return
		case !created:
			skip()
			return
		}
	} else if err := g.writer.Write(p.Identity.Path, f); err != nil {
		fail(artifactError("write", p, err))
		return
	}
	g.logger.Debug("artifact generated", "path", p.Identity.Path, "mode", p.Mode)
	entry.Outcome = OutcomeGenerated
	report.add(entry)
}

// artifactError wraps a failure of phase on the artifact planned by p.
func artifactError(phase string, p *Plan, cause error) *GenerationError {
	err := NewGenerationError(phase, p.Identity.Path, "", cause)
	err.Table, err.Mode = p.Table.QualifiedName(), p.Mode
	return err
}
