package daogen

import "context"

// Persister is implemented by generated DAOs. T is the identity type.
type Persister[PT any, T any] interface {
	IsNew(object PT) bool
	SetId(object PT, id *T)
	Insert(ctx context.Context, objects ...PT) error
	Update(ctx context.Context, objects ...PT) error
}

// Save inserts object when it is new and updates it otherwise. A new object
// first receives an identity from gen when gen is not nil. DAOs generating
// identities pass their IDGenerator, which fails with ErrNoIDGenerator when
// none is configured.
func Save[PT any, T any](ctx context.Context, p Persister[PT, T], gen IDGenerator, object PT) error {
	if !p.IsNew(object) {
		return p.Update(ctx, object)
	}
	if gen != nil {
		id, err := NewID[T](ctx, gen)
		if err != nil {
			return err
		}
		p.SetId(object, &id)
	}
	return p.Insert(ctx, object)
}
