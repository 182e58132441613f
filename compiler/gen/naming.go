package gen

import (
	"go/token"
	"path"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/amanteaux/daogen/schema"
)

// Identity locates a generated artifact.
type Identity struct {
	// ClassName is the name of the generated type or method.
	ClassName string `json:"class_name" yaml:"class_name" msgpack:"class_name"`
	// Package is the dot-separated package of the type, relative to the
	// target directory. Empty for methods.
	Package string `json:"package,omitempty" yaml:"package,omitempty" msgpack:"package,omitempty"`
	// Path is the slash-separated file path, relative to the target
	// directory. Empty for methods.
	Path string `json:"path,omitempty" yaml:"path,omitempty" msgpack:"path,omitempty"`
}

// Dir returns the slash-separated package directory.
func (id Identity) Dir() string {
	return strings.ReplaceAll(id.Package, ".", "/")
}

// PackageName returns the name of the Go package clause.
func (id Identity) PackageName() string {
	if i := strings.LastIndexByte(id.Package, '.'); i >= 0 {
		return id.Package[i+1:]
	}
	return id.Package
}

// Strategy resolves the identity of the artifact generated for a definition
// in a mode.
type Strategy interface {
	Resolve(def schema.Definition, mode Mode) (Identity, error)
}

// DefaultStrategy names artifacts after the output names of the schema
// definitions.
//
//	orders, ModeValue     -> Orders           in <package>
//	orders, ModeRecord    -> OrdersRecord     in <package>
//	orders, ModeDAOBase   -> AbstractOrdersDao in <package>.daos
//	orders, ModeInterface -> IOrders          in <package>
//	orders, ModeBean      -> Orders           in <child>.beans
//	orders, ModeDAOChild  -> OrdersDao        in <child>.daos
//	orders, ModeTable     -> OrdersTable      in <package>
//
// When the database has more than one schema, the lower-cased schema name
// is inserted right after the root package.
type DefaultStrategy struct {
	config *Config
}

var _ Strategy = (*DefaultStrategy)(nil)

// NewStrategy returns the default strategy for the given configuration.
func NewStrategy(c *Config) *DefaultStrategy {
	return &DefaultStrategy{config: c}
}

// Resolve implements Strategy.
func (s *DefaultStrategy) Resolve(def schema.Definition, mode Mode) (Identity, error) {
	if !mode.Valid() {
		return Identity{}, NewConfigError("Mode", mode, "unknown mode")
	}
	id := Identity{ClassName: ClassName(def.OutputName(), mode)}
	if !mode.File() {
		return id, nil
	}
	pkg, err := s.packageName(def, mode)
	if err != nil {
		return Identity{}, err
	}
	id.Package = pkg
	id.Path = path.Join(id.Dir(), id.ClassName+"."+s.config.extension())
	return id, nil
}

// ImportPath returns the import path of the package of id.
func (s *DefaultStrategy) ImportPath(id Identity) string {
	return path.Join(s.config.Module, id.Dir())
}

func (s *DefaultStrategy) packageName(def schema.Definition, mode Mode) (string, error) {
	rule := modeRules[mode]
	pkg := s.config.Package
	if rule.child {
		if s.config.ChildPackage == "" {
			return "", NewConfigError("ChildPackage", nil, "child package is required for mode "+mode.String())
		}
		pkg = s.config.ChildPackage
	}
	if pkg == "" {
		return "", NewConfigError("Package", nil, "package is required for mode "+mode.String())
	}
	if db := def.Database(); db != nil && db.MultiSchema() {
		if sc := def.Schema(); sc != nil {
			pkg += "." + PackageSegment(sc.OutputName())
		}
	}
	if rule.sub != "" {
		pkg += "." + rule.sub
	}
	return pkg, nil
}

// ClassName returns the type name of the artifact generated for a definition
// with the given output name.
func ClassName(name string, mode Mode) string {
	base := Identifier(name)
	if !mode.Valid() {
		return base
	}
	rule := modeRules[mode]
	return rule.prefix + base + rule.suffix
}

// Identifier returns the exported Go identifier for a database name:
// camel-cased, with invalid characters replaced by underscores.
func Identifier(name string) string {
	s := sanitize(inflect.Camelize(name))
	if r := firstRune(s); !unicode.IsUpper(r) {
		s = "X" + s
	}
	return s
}

var lower = cases.Lower(language.Und)

// PackageSegment returns the package segment for a database name.
func PackageSegment(name string) string {
	s := lower.String(sanitize(name))
	if r := firstRune(s); !unicode.IsLetter(r) {
		s = "x" + s
	}
	if token.IsKeyword(s) {
		s += "_"
	}
	return s
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, s)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
