package simulation

import (
	"fmt"
	"sort"
)

// stagedBuilder is what a feature module collects before finalize. Each
// builder knows the index of the system it is bound to and how to construct
// its operator from the live registry state.
type stagedBuilder[O any] interface {
	systemIndex() int
	build(reg *registry) (O, error)
}

// entry is one element of a sealed feature operator list.
type entry[O any] struct {
	sysIdx int
	op     O
}

// featureModule is the generic staging-then-sealed container shared by all
// feature categories. Before finalize it accumulates builders; finalize is a
// one-way transition producing the immutable operator list, stably sorted by
// system index. Builder registration order is preserved for equal indices,
// which fixes dispatch order for operators touching the same system.
type featureModule[O any] struct {
	name   string
	staged []stagedBuilder[O]
	ops    []entry[O]
	sealed bool
}

func newFeatureModule[O any](name string) *featureModule[O] {
	return &featureModule[O]{name: name}
}

func (m *featureModule[O]) add(b stagedBuilder[O]) error {
	if m.sealed {
		return fmt.Errorf("cannot attach %s: %w", m.name, ErrSealed)
	}
	m.staged = append(m.staged, b)
	return nil
}

func (m *featureModule[O]) finalize(reg *registry) error {
	if m.sealed {
		return fmt.Errorf("finalizing %s twice: %w", m.name, ErrSealed)
	}
	m.ops = make([]entry[O], 0, len(m.staged))
	for _, b := range m.staged {
		op, err := b.build(reg)
		if err != nil {
			return fmt.Errorf("finalizing %s for system %d: %w", m.name, b.systemIndex(), err)
		}
		m.ops = append(m.ops, entry[O]{sysIdx: b.systemIndex(), op: op})
	}
	sort.SliceStable(m.ops, func(i, j int) bool {
		return m.ops[i].sysIdx < m.ops[j].sysIdx
	})
	m.staged = nil
	m.sealed = true
	return nil
}

// each iterates the sealed operator list in its frozen order.
func (m *featureModule[O]) each(fn func(sysIdx int, op O)) {
	for _, e := range m.ops {
		fn(e.sysIdx, e.op)
	}
}
