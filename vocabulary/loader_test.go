package vocabulary

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/candv/constants"
	"github.com/c360studio/candv/ext"
	"github.com/c360studio/candv/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusYAML = `
name: Status
class: verbose_value
constants:
  - name: Active
    value: 1
    verbose_name: Active
    help_text: In use
  - name: Review
    value: 2
    group:
      class: simple
      constants:
        - name: Pending
        - name: Rejected
  - name: Archived
    value: 3
`

func compileOne(t *testing.T, src string) *constants.Container {
	t.Helper()

	docs, err := ParseBytes([]byte(src))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	c, err := NewLoader(nil, registry.New(nil)).Compile(docs[0])
	require.NoError(t, err)
	return c
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCompile_DocumentOrderIsMemberOrder(t *testing.T) {
	status := compileOne(t, statusYAML)

	assert.Equal(t, "Status", status.Name())
	assert.Equal(t, []string{"Active", "Review", "Archived"}, status.Names())
	assert.Equal(t, ext.VerboseValuesClass, status.ConstantClass())

	active := status.MustLookup("Active").(ext.VerboseValued)
	assert.Equal(t, 1, active.Value())
	assert.Equal(t, "Active", active.VerboseName())
	assert.Equal(t, "In use", active.HelpText())
	assert.Equal(t, "Status.Active", active.FullName())
}

func TestCompile_Group(t *testing.T) {
	status := compileOne(t, statusYAML)

	review, ok := status.Group("Review")
	require.True(t, ok)
	assert.Equal(t, "Status.Review", review.FullName())
	assert.Equal(t, []string{"Pending", "Rejected"}, review.Names())
	assert.Equal(t, constants.BaseClass, review.ConstantClass())

	v, ok := ext.GroupValue(review)
	require.True(t, ok)
	assert.Equal(t, 2, v)

	assert.Equal(t, []any{1, 2, 3}, ext.ValuesOf(status))
}

func TestCompile_ToPrimitive(t *testing.T) {
	status := compileOne(t, statusYAML)
	p := status.ToPrimitive(context.Background())

	require.Len(t, p.Items(), status.Len())
	review := p.Items()[1]
	assert.Equal(t, "Review", review["name"])
	assert.Equal(t, 2, review["value"])
	assert.Nil(t, review["verbose_name"])
	assert.Len(t, review.Items(), 2)
}

func TestCompile_KindDefaults(t *testing.T) {
	c := compileOne(t, `
name: Mixed
constants:
  - name: Plain
  - name: Valued
    kind: value
    value: [1, 2]
  - name: Verbose
    kind: verbose
    verbose_name: Loud
`)

	assert.Equal(t, []string{"Plain", "Valued", "Verbose"}, c.Names())

	_, isSimple := c.MustLookup("Plain").(*constants.SimpleConstant)
	assert.True(t, isSimple)

	valued := c.MustLookup("Valued").(ext.Valued)
	assert.Equal(t, []any{1, 2}, valued.Value())

	verbose := c.MustLookup("Verbose").(ext.Verbosed)
	assert.Equal(t, "Loud", verbose.VerboseName())
}

func TestCompile_NarrowClassExcludesBroaderKinds(t *testing.T) {
	c := compileOne(t, `
name: Sizes
class: value
constants:
  - name: Small
    value: 1
  - name: Note
    kind: simple
`)

	assert.Equal(t, []string{"Small"}, c.Names())
	note, ok := c.Attr("Note")
	require.True(t, ok)
	assert.Equal(t, "__UNBOUND__.Note", note.(constants.Constant).FullName())
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown kind",
			src:     "name: X\nconstants:\n  - name: A\n    kind: fancy\n",
			wantErr: ErrUnknownKind,
			wantMsg: `"fancy" for X.A`,
		},
		{
			name:    "unknown class",
			src:     "name: X\nclass: fancy\nconstants: []\n",
			wantErr: ErrUnknownKind,
			wantMsg: `class "fancy"`,
		},
		{
			name:    "unknown group class",
			src:     "name: X\nconstants:\n  - name: A\n    group:\n      class: fancy\n      constants: []\n",
			wantErr: ErrUnknownKind,
			wantMsg: "X.A",
		},
		{
			name:    "duplicate name",
			src:     "name: X\nconstants:\n  - name: A\n  - name: A\n",
			wantErr: ErrDuplicateName,
			wantMsg: "X.A",
		},
		{
			name:    "duplicate name in group",
			src:     "name: X\nconstants:\n  - name: G\n    group:\n      constants:\n        - name: A\n        - name: A\n",
			wantErr: ErrDuplicateName,
			wantMsg: "X.G.A",
		},
		{
			name:    "missing constant name",
			src:     "name: X\nconstants:\n  - kind: simple\n",
			wantErr: ErrInvalidDocument,
			wantMsg: "constant 1 of X has no name",
		},
		{
			name:    "value on simple",
			src:     "name: X\nconstants:\n  - name: A\n    value: 1\n",
			wantErr: ErrFieldNotAllowed,
			wantMsg: "value on simple constant X.A",
		},
		{
			name:    "verbose name on value",
			src:     "name: X\nconstants:\n  - name: A\n    kind: value\n    verbose_name: A\n",
			wantErr: ErrFieldNotAllowed,
			wantMsg: "verbose_name/help_text on value constant X.A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := ParseBytes([]byte(tt.src))
			require.NoError(t, err)

			_, err = NewLoader(nil, registry.New(nil)).Compile(docs[0])
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("multiple documents", func(t *testing.T) {
		docs, err := ParseBytes([]byte("name: A\nconstants: []\n---\nname: B\nconstants: []\n"))
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "A", docs[0].Name)
		assert.Equal(t, "B", docs[1].Name)
	})

	t.Run("empty input", func(t *testing.T) {
		docs, err := ParseBytes(nil)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := ParseBytes([]byte("name: A\ncolour: red\n"))
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := ParseBytes([]byte("constants: []\n"))
		require.ErrorIs(t, err, ErrInvalidDocument)
		assert.Contains(t, err.Error(), "document 1 has no name")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse(strings.NewReader("name: [unterminated\n"))
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "status.yaml", statusYAML+"---\nname: Other\nconstants:\n  - name: X\n")

	file, err := NewLoader(nil, registry.New(nil)).LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, file.Path)
	require.Len(t, file.Containers, 2)
	assert.Equal(t, "Status", file.Containers[0].Name())
	assert.Equal(t, "Other", file.Containers[1].Name())
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, dir, "bad.yaml", "name: X\nconstants:\n  - name: A\n    kind: fancy\n")
	_, err = Load(bad)
	require.ErrorIs(t, err, ErrUnknownKind)
	assert.Contains(t, err.Error(), bad)
}

func TestLoadGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "name: B\nconstants: []\n")
	writeFile(t, dir, "a.yaml", "name: A\nconstants: []\n")
	writeFile(t, dir, "nested/deep/c.yaml", "name: C\nconstants: []\n")
	writeFile(t, dir, "notes.txt", "not yaml")

	files, err := NewLoader(nil, registry.New(nil)).LoadGlob(
		filepath.Join(dir, "**", "*.yaml"),
		filepath.Join(dir, "a.yaml"),
	)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		for _, c := range f.Containers {
			names = append(names, c.Name())
		}
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestMatch_NoFiles(t *testing.T) {
	_, err := Match(filepath.Join(t.TempDir(), "*.yaml"))
	assert.ErrorContains(t, err, "no vocabulary files match pattern")
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []string{KindSimple, KindVerbose, KindValue, KindVerboseValue}, Kinds.Names())
	for _, name := range Kinds.Names() {
		_, ok := classes[name]
		assert.True(t, ok, "class for kind %s", name)
		assert.NotEmpty(t, Kinds.MustLookup(name).(ext.Verbosed).HelpText())
	}
}
