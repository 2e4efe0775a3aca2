package constants

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFOO declares its constants out of textual order on purpose: the
// container must follow creation order, not the Attrs order.
func newFOO(t *testing.T) (*Container, []*SimpleConstant) {
	t.Helper()

	c2 := New()
	c3 := New()
	c1 := New()

	foo, err := Define("FOO", Attrs{
		{"CONSTANT1", c1},
		{"CONSTANT2", c2},
		{"CONSTANT3", c3},
	})
	require.NoError(t, err)
	return foo, []*SimpleConstant{c2, c3, c1}
}

func TestContainer_Identity(t *testing.T) {
	foo, _ := newFOO(t)

	assert.Equal(t, "FOO", foo.Name())
	assert.Equal(t, "FOO", foo.FullName())
	assert.Equal(t, "<constants container 'FOO'>", foo.String())
	assert.Nil(t, foo.Parent())
	assert.False(t, foo.IsGroup())
	assert.Equal(t, BaseClass, foo.ConstantClass())
}

func TestContainer_OrderedAccessors(t *testing.T) {
	foo, want := newFOO(t)
	wantNames := []string{"CONSTANT2", "CONSTANT3", "CONSTANT1"}
	wantMembers := []Member{want[0], want[1], want[2]}

	assert.Equal(t, wantNames, foo.Names())
	assert.Equal(t, wantNames, slices.Collect(foo.IterNames()))
	assert.Equal(t, wantNames, slices.Collect(foo.All()))

	assert.Equal(t, wantMembers, foo.Constants())
	assert.Equal(t, wantMembers, slices.Collect(foo.IterConstants()))
	assert.Equal(t, wantMembers, foo.Values())
	assert.Equal(t, wantMembers, slices.Collect(foo.IterValues()))

	items := foo.Items()
	require.Len(t, items, 3)
	for i, it := range items {
		assert.Equal(t, wantNames[i], it.Name)
		assert.Same(t, want[i], it.Member)
	}

	var iterNames []string
	for name, m := range foo.IterItems() {
		iterNames = append(iterNames, name)
		assert.Equal(t, name, m.Name())
	}
	assert.Equal(t, wantNames, iterNames)

	// Repeated calls are stable.
	assert.Equal(t, foo.Names(), foo.Names())
}

func TestContainer_IteratorsStopEarly(t *testing.T) {
	foo, _ := newFOO(t)

	var seen []string
	for name := range foo.IterNames() {
		seen = append(seen, name)
		break
	}
	assert.Equal(t, []string{"CONSTANT2"}, seen)

	count := 0
	for range foo.IterItems() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestContainer_ItemsIsACopy(t *testing.T) {
	foo, _ := newFOO(t)

	items := foo.Items()
	items[0].Name = "MUTATED"

	assert.Equal(t, "CONSTANT2", foo.Names()[0])
}

func TestContainer_Lookup(t *testing.T) {
	foo, want := newFOO(t)

	tests := []struct {
		name    string
		lookup  string
		want    Member
		wantErr string
	}{
		{name: "present", lookup: "CONSTANT2", want: want[0]},
		{name: "last", lookup: "CONSTANT1", want: want[2]},
		{
			name:    "missing",
			lookup:  "CONSTANT_X",
			wantErr: `missing constant: constant "CONSTANT_X" is not present in "<constants container 'FOO'>"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := foo.Lookup(tt.lookup)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrMissingConstant)
				assert.EqualError(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestContainer_MustLookupPanicsOnMissing(t *testing.T) {
	foo, want := newFOO(t)

	assert.Same(t, want[0], foo.MustLookup("CONSTANT2"))
	assert.Panics(t, func() { foo.MustLookup("CONSTANT_X") })
}

func TestContainer_Get(t *testing.T) {
	foo, want := newFOO(t)
	fallback := New()

	assert.Same(t, want[0], foo.Get("CONSTANT2", nil))
	assert.Nil(t, foo.Get("CONSTANT_X", nil))
	assert.Same(t, fallback, foo.Get("CONSTANT_X", fallback))
}

func TestContainer_ContainsAndLen(t *testing.T) {
	foo, _ := newFOO(t)

	assert.Equal(t, 3, foo.Len())
	assert.True(t, foo.Contains("CONSTANT2"))
	assert.True(t, foo.HasName("CONSTANT2"))
	assert.False(t, foo.Contains("CONSTANT_X"))
	assert.False(t, foo.HasName("CONSTANT_X"))
}

func TestContainer_InstantiateAlwaysFails(t *testing.T) {
	foo, _ := newFOO(t)
	empty := MustDefine("EMPTY", nil)
	narrow := MustDefine("NARROW", Attrs{{"A", New()}}, WithConstantClass(ClassOf[*SimpleConstant]()))

	for _, c := range []*Container{foo, empty, narrow, {}} {
		err := c.Instantiate()
		require.ErrorIs(t, err, ErrContainerMisused)
		assert.Contains(t, err.Error(), c.String())
	}

	assert.EqualError(t, foo.Instantiate(),
		`container misused: "<constants container 'FOO'>" cannot be instantiated: constant containers are not designed for that`)
}

func TestContainer_ToPrimitive(t *testing.T) {
	foo, _ := newFOO(t)

	assert.Equal(t, Primitive{
		"name": "FOO",
		"items": []Primitive{
			{"name": "CONSTANT2"},
			{"name": "CONSTANT3"},
			{"name": "CONSTANT1"},
		},
	}, foo.ToPrimitive(context.Background()))
}

func TestContainer_ZeroValueIsEmpty(t *testing.T) {
	var c Container

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Contains("A"))
	assert.Empty(t, c.Names())
	_, err := c.Lookup("A")
	assert.ErrorIs(t, err, ErrMissingConstant)
}
