package daogen

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator provides identities for new objects.
type IDGenerator interface {
	// Generate returns a new value of the given identity type.
	Generate(ctx context.Context, typ reflect.Type) (any, error)
}

// The IDGeneratorFunc type is an adapter to allow the use of ordinary
// functions as IDGenerator.
type IDGeneratorFunc func(context.Context, reflect.Type) (any, error)

// Generate calls f(ctx, typ).
func (f IDGeneratorFunc) Generate(ctx context.Context, typ reflect.Type) (any, error) {
	return f(ctx, typ)
}

// NewID asks gen for an identity of type T. Values of a convertible type,
// such as an int64 asked as int32, are converted.
func NewID[T any](ctx context.Context, gen IDGenerator) (T, error) {
	var zero T
	typ := reflect.TypeFor[T]()
	v, err := gen.Generate(ctx, typ)
	if err != nil {
		return zero, err
	}
	if id, ok := v.(T); ok {
		return id, nil
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || !rv.Type().ConvertibleTo(typ) {
		return zero, fmt.Errorf("daogen: generated identity %T is not convertible to %s", v, typ)
	}
	return rv.Convert(typ).Interface().(T), nil
}

type noIDGenerator struct{}

func (noIDGenerator) Generate(context.Context, reflect.Type) (any, error) {
	return nil, ErrNoIDGenerator
}

var (
	uuidType   = reflect.TypeFor[uuid.UUID]()
	stringType = reflect.TypeFor[string]()
)

// UUIDGenerator generates random identities for uuid.UUID and string
// identity types.
type UUIDGenerator struct{}

// Generate implements IDGenerator.
func (UUIDGenerator) Generate(_ context.Context, typ reflect.Type) (any, error) {
	switch typ {
	case uuidType:
		return uuid.New(), nil
	case stringType:
		return uuid.NewString(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedIDType, typ)
	}
}

// SequenceGenerator generates increasing identities for integer identity
// types. It is safe for concurrent use.
type SequenceGenerator struct {
	next atomic.Int64
}

// NewSequenceGenerator returns a sequence starting at start.
func NewSequenceGenerator(start int64) *SequenceGenerator {
	g := &SequenceGenerator{}
	g.next.Store(start)
	return g
}

// Generate implements IDGenerator.
func (g *SequenceGenerator) Generate(_ context.Context, typ reflect.Type) (any, error) {
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedIDType, typ)
	}
	n := g.next.Add(1) - 1
	id := reflect.New(typ).Elem()
	if id.CanInt() {
		if id.OverflowInt(n) {
			return nil, fmt.Errorf("daogen: sequence value %d overflows %s", n, typ)
		}
		id.SetInt(n)
		return id.Interface(), nil
	}
	if n < 0 || id.OverflowUint(uint64(n)) {
		return nil, fmt.Errorf("daogen: sequence value %d overflows %s", n, typ)
	}
	id.SetUint(uint64(n))
	return id.Interface(), nil
}
