package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/pkg/memdom"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCompileExpr(t *testing.T) {
	out, err := run(t, "", "compile", "-e", "<div>hi,{{message}}</div>")
	require.NoError(t, err)
	assert.Contains(t, out, "const { toDisplayString: _toDisplayString, createElementVNode: _createElementVNode } = Vue")
	assert.Contains(t, out, "_createElementVNode('div', null, 'hi,' + _toDisplayString(_ctx.message))")
}

func TestCompileStdinAndAST(t *testing.T) {
	out, err := run(t, "<p>{{x}}</p>", "compile", "--ast", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Element <p> 1:1")
	assert.Contains(t, out, "Interpolation {{ x }}")
}

func TestCompileErrors(t *testing.T) {
	_, err := run(t, "", "compile")
	assert.Equal(t, "X001", errors.Code(err))

	_, err = run(t, "", "compile", "-e", "<div><span></div>")
	assert.Equal(t, "C001", errors.Code(err))
}

func TestRenderWithYAMLBindings(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "state.yaml")
	require.NoError(t, os.WriteFile(data, []byte("user:\n  name: Ada\n  age: 36\n"), 0644))

	out, err := run(t, "", "render", "-e", "<p>{{user.name}} is {{user.age}}</p>", "--data", data)
	require.NoError(t, err)
	assert.Equal(t, "<p>Ada is 36</p>\n", out)
}

func TestRenderBadBindings(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(data, []byte("[1,2]"), 0644))

	_, err := run(t, "", "render", "-e", "<p>x</p>", "--data", data)
	assert.Equal(t, "X002", errors.Code(err))
}

func TestDiffRotation(t *testing.T) {
	res := diffLists([]any{1, 2, 3}, []any{3, 1, 2}, true)

	assert.Equal(t, "<ul><li>1</li><li>2</li><li>3</li></ul>", res.before)
	assert.Equal(t, "<ul><li>3</li><li>1</li><li>2</li></ul>", res.after)
	assert.Equal(t, 1, res.host.Count(memdom.OpMove))
	assert.Zero(t, res.host.Count(memdom.OpRemove))
	assert.Zero(t, res.host.Count(memdom.OpCreateElement))
}

func TestDiffCommand(t *testing.T) {
	out, err := run(t, "", "diff", "--from", "a,b,c", "--to", "c,a,b")
	require.NoError(t, err)
	assert.Contains(t, out, "Move")
	assert.Contains(t, out, "after:  <ul><li>c</li><li>a</li><li>b</li></ul>")

	_, err = run(t, "", "diff", "--from", "1,1", "--to", "1")
	assert.Equal(t, "X003", errors.Code(err))
}

func TestBench(t *testing.T) {
	out, err := run(t, "", "bench", "--sizes", "8", "-n", "3", "--case", "reverse", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "reverse")

	_, err = run(t, "", "bench", "--case", "nope")
	assert.Error(t, err)
}

func TestParseKeys(t *testing.T) {
	keys, err := parseKeys(" 1, b ,3")
	require.NoError(t, err)
	assert.Equal(t, []any{1, "b", 3}, keys)

	_, err = parseKeys("1,,2")
	assert.Error(t, err)
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, "", "render", "-e", "<p>x</p>", "--log-level", "loud")
	assert.Equal(t, "G002", errors.Code(err))
}
