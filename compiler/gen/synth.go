package gen

import (
	"fmt"

	"github.com/amanteaux/daogen/schema"
	"github.com/amanteaux/daogen/schema/field"
)

// MethodKind is the body kind of a synthesized DAO method.
type MethodKind uint8

// List of method kinds.
const (
	KindBulkFetch MethodKind = iota
	KindUniqueFetch
	KindIdentityGet
	KindIdentitySet
	KindIsNew
	KindSaveDispatch
)

var kindNames = [...]string{
	KindBulkFetch:    "bulk_fetch",
	KindUniqueFetch:  "unique_fetch",
	KindIdentityGet:  "identity_get",
	KindIdentitySet:  "identity_set",
	KindIsNew:        "is_new",
	KindSaveDispatch: "save_dispatch",
}

// String returns the name of the kind.
func (k MethodKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ValueKind is the shape of a method parameter or result.
type ValueKind uint8

// List of value kinds.
const (
	ValueContext  ValueKind = iota // context.Context
	ValueObject                    // the object type of the DAO
	ValueObjects                   // a slice of objects
	ValueColumn                    // the Go type of a column
	ValueIdentity                  // a pointer to the identity type
	ValueBool                      // bool
	ValueError                     // error
)

// Value is a parameter or a result of a method.
type Value struct {
	Name     string
	Kind     ValueKind
	Type     *field.TypeInfo // set for ValueColumn and ValueIdentity
	Variadic bool
}

// Method describes a synthesized DAO method.
type Method struct {
	Name    string
	Kind    MethodKind
	Column  *schema.Column // nil for methods not derived from a column
	Params  []Value
	Returns []Value
}

// MethodSet is the ordered set of methods of a DAO.
type MethodSet []Method

// Lookup returns the method with the given name.
func (ms MethodSet) Lookup(name string) (Method, bool) {
	for _, m := range ms {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// OfKind returns the methods of the given kind, in order.
func (ms MethodSet) OfKind(k MethodKind) MethodSet {
	var out MethodSet
	for _, m := range ms {
		if m.Kind == k {
			out = append(out, m)
		}
	}
	return out
}

// KeyColumn holds the key information of a column.
type KeyColumn struct {
	Column *schema.Column
	// SinglePrimaryKey reports if the column is the only column of the
	// primary key.
	SinglePrimaryKey bool
	// UniqueKeys are the unique keys having the column as their only
	// column, in declaration order.
	UniqueKeys []*schema.Key
}

// Unique reports if the column is the only column of a unique key.
func (k KeyColumn) Unique() bool { return len(k.UniqueKeys) > 0 }

// KeyColumns returns the key information of every column of t, in column
// order. The table must be linked.
func KeyColumns(t *schema.Table) []KeyColumn {
	keys := make([]KeyColumn, 0, len(t.Columns))
	for _, c := range t.Columns {
		kc := KeyColumn{
			Column:           c,
			SinglePrimaryKey: t.PrimaryKey != nil && t.PrimaryKey.Single() && t.PrimaryKey.Columns[0] == c,
		}
		for _, k := range t.UniqueKeys {
			if k.Single() && k.Columns[0] == c {
				kc.UniqueKeys = append(kc.UniqueKeys, k)
			}
		}
		keys = append(keys, kc)
	}
	return keys
}

// DAO is the structural description of the data-access type of a table.
type DAO struct {
	Table *schema.Table
	// Identity is the single primary-key column.
	Identity *schema.Column
	// IdentityType is the mapped type of the identity column.
	IdentityType *field.TypeInfo
	Keys         []KeyColumn
	Methods      MethodSet
	// GenerateID reports if Save asks the identifier generator for the
	// identity of new objects.
	GenerateID bool
}

// Synthesizer derives the data-access type of a table.
type Synthesizer interface {
	// Synthesize returns the DAO of t. It returns an error wrapping
	// ErrNoSingleColumnKey when t has no single-column primary key and a
	// *SchemaError when t is invalid.
	Synthesize(t *schema.Table) (*DAO, error)
}

// DefaultSynthesizer derives the DAO methods from the table keys.
type DefaultSynthesizer struct {
	strategy   Strategy
	generateID bool
}

var _ Synthesizer = (*DefaultSynthesizer)(nil)

// NewSynthesizer returns a synthesizer naming methods with s.
func NewSynthesizer(s Strategy, c *Config) *DefaultSynthesizer {
	return &DefaultSynthesizer{strategy: s, generateID: c.GenerateID}
}

// Synthesize implements Synthesizer.
func (s *DefaultSynthesizer) Synthesize(t *schema.Table) (*DAO, error) {
	if err := t.Validate(); err != nil {
		return nil, NewSchemaError(t.QualifiedName(), "", "invalid table", err)
	}
	pk := t.PrimaryKey
	if pk == nil || !pk.Single() {
		return nil, fmt.Errorf("%w: table %s", ErrNoSingleColumnKey, t.QualifiedName())
	}
	id := pk.Columns[0]
	dao := &DAO{
		Table:        t,
		Identity:     id,
		IdentityType: id.Type,
		Keys:         KeyColumns(t),
		GenerateID:   s.generateID,
	}
	object := Value{Name: "object", Kind: ValueObject}
	ctx := Value{Name: "ctx", Kind: ValueContext}
	identity := Value{Name: "id", Kind: ValueIdentity, Type: id.Type}
	dao.Methods = MethodSet{
		{Name: "GetId", Kind: KindIdentityGet, Column: id, Params: []Value{object}, Returns: []Value{identity}},
		{Name: "SetId", Kind: KindIdentitySet, Column: id, Params: []Value{object, identity}},
		{Name: "IsNew", Kind: KindIsNew, Params: []Value{object}, Returns: []Value{{Kind: ValueBool}}},
		{Name: "Save", Kind: KindSaveDispatch, Params: []Value{ctx, object}, Returns: []Value{{Kind: ValueError}}},
	}
	for _, kc := range dao.Keys {
		mid, err := s.strategy.Resolve(kc.Column, ModeMethod)
		if err != nil {
			return nil, err
		}
		dao.Methods = append(dao.Methods, Method{
			Name:    "FetchBy" + mid.ClassName,
			Kind:    KindBulkFetch,
			Column:  kc.Column,
			Params:  []Value{ctx, {Name: "values", Kind: ValueColumn, Type: kc.Column.Type, Variadic: true}},
			Returns: []Value{{Kind: ValueObjects}, {Kind: ValueError}},
		})
		// One unique fetch per column, however many single-column unique
		// keys it belongs to.
		if kc.Unique() {
			dao.Methods = append(dao.Methods, Method{
				Name:    "FetchOneBy" + mid.ClassName,
				Kind:    KindUniqueFetch,
				Column:  kc.Column,
				Params:  []Value{ctx, {Name: "value", Kind: ValueColumn, Type: kc.Column.Type}},
				Returns: []Value{{Kind: ValueObject}, {Kind: ValueError}},
			})
		}
	}
	seen := make(map[string]*schema.Column, len(dao.Methods))
	for _, m := range dao.Methods {
		if prev, ok := seen[m.Name]; ok && m.Column != prev {
			return nil, NewSchemaError(t.QualifiedName(), m.Column.Name, fmt.Sprintf("method %s collides with column %q", m.Name, prev.Name), nil)
		}
		seen[m.Name] = m.Column
	}
	return dao, nil
}
