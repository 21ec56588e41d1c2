package mutator

// identityCache maps original nodes to the nodes produced for them, keyed
// by identity. Definitions and other owned nodes live in values;
// references live in refs. A definition of a foreign unit that is used as
// a reference goes to refs, so it never collides with a copied definition.
//
// Every produced node is registered as mapping to itself as well, so a
// traversal that meets the copy instead of the original finds it too.
type identityCache struct {
	values map[any]any
	refs   map[any]any
}

func newIdentityCache() *identityCache {
	return &identityCache{
		values: make(map[any]any),
		refs:   make(map[any]any),
	}
}

func (c *identityCache) value(orig any) (any, bool) {
	v, ok := c.values[orig]
	return v, ok
}

func (c *identityCache) setValue(orig, cp any) {
	c.values[orig] = cp
	c.values[cp] = cp
}

func (c *identityCache) ref(orig any) (any, bool) {
	v, ok := c.refs[orig]
	return v, ok
}

func (c *identityCache) setRef(orig, cp any) {
	c.refs[orig] = cp
	c.refs[cp] = cp
}

func (c *identityCache) len() int { return len(c.values) + len(c.refs) }

func lookup[T any](m map[any]any, orig any) (T, bool) {
	v, ok := m[orig]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
