package ecs

// column is the type-erased half of a [*typedColumn][T]: just enough
// surface for the universe to manage storage without knowing T, mirroring
// the original's `ComponentVec` trait object.
type column interface {
	clear(index uint32)
	shrinkToFit()
}

// typedColumn stores one optional T per entity index, directly mirroring
// ComponentVecImpl<T>'s Vec<Option<T>> backend.
type typedColumn[T any] struct {
	backend []*T
}

func newTypedColumn[T any]() *typedColumn[T] {
	return &typedColumn[T]{}
}

func (c *typedColumn[T]) get(index uint32) (*T, bool) {
	if int(index) >= len(c.backend) {
		return nil, false
	}

	v := c.backend[index]
	if v == nil {
		return nil, false
	}

	return v, true
}

func (c *typedColumn[T]) set(index uint32, value T) {
	i := int(index)
	if i < len(c.backend) {
		c.backend[i] = &value

		return
	}

	grown := make([]*T, i+1)
	copy(grown, c.backend)
	grown[i] = &value
	c.backend = grown
}

func (c *typedColumn[T]) isSet(index uint32) bool {
	_, ok := c.get(index)

	return ok
}

// take clears and returns the component at index. Panics if the
// component isn't present, mirroring ComponentVecImpl::take.
func (c *typedColumn[T]) take(index uint32) T {
	v, ok := c.get(index)
	if !ok {
		panic("ecs: component doesn't exist")
	}

	c.backend[index] = nil

	return *v
}

func (c *typedColumn[T]) clear(index uint32) {
	if int(index) < len(c.backend) {
		c.backend[index] = nil
	}
}

// shrinkToFit drops trailing unset slots, mirroring
// ComponentVecImpl::shrink_to_fit.
func (c *typedColumn[T]) shrinkToFit() {
	end := len(c.backend)
	for end > 0 && c.backend[end-1] == nil {
		end--
	}

	c.backend = c.backend[:end:end]
}
