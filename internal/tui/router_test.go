package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazymesh/lazymesh/internal/core"
)

func newTestRouter() *Router {
	return NewRouter(NewMethodTable())
}

func TestRoute_PromptPendingBypassesParsing(t *testing.T) {
	r := newTestRouter()

	// Even a line that looks like a command is the prompt's answer.
	action, err := r.Route(":plan prod", true)
	require.NoError(t, err)
	assert.Equal(t, PromptAnswer{Line: ":plan prod"}, action)
}

func TestRoute_EmptyLine(t *testing.T) {
	r := newTestRouter()

	for _, line := range []string{"", "   ", "\t"} {
		action, err := r.Route(line, false)
		require.NoError(t, err)
		assert.Equal(t, NoOp{}, action)
	}
}

func TestRoute_Help(t *testing.T) {
	r := newTestRouter()

	action, err := r.Route("?", false)
	require.NoError(t, err)
	assert.Equal(t, ShowHelp{}, action)
}

func TestRoute_BareMetaListsMethods(t *testing.T) {
	r := newTestRouter()

	action, err := r.Route(":", false)
	require.NoError(t, err)
	assert.Equal(t, ListMethods{}, action)
}

func TestRoute_MethodCall(t *testing.T) {
	r := newTestRouter()

	action, err := r.Route(":environments", false)
	require.NoError(t, err)
	assert.Equal(t, MethodCall{Name: "environments", Args: []Arg{}}, action)
}

func TestRoute_MethodArgsCoerced(t *testing.T) {
	r := newTestRouter()

	action, err := r.Route(`:audit start=2024-01-01 5 true rest`, false)
	require.NoError(t, err)

	call, ok := action.(MethodCall)
	require.True(t, ok)
	assert.Equal(t, "audit", call.Name)
	require.Len(t, call.Args, 4)
	assert.Equal(t, Arg{Name: "start", Value: "2024-01-01"}, call.Args[0])
	assert.Equal(t, Arg{Value: int64(5)}, call.Args[1])
	assert.Equal(t, Arg{Value: true}, call.Args[2])
	assert.Equal(t, Arg{Value: "rest"}, call.Args[3])
}

func TestRoute_PlanMethodDenied(t *testing.T) {
	r := newTestRouter()

	_, err := r.Route(":plan prod", false)
	require.Error(t, err)
	assert.True(t, core.HasCode(err, core.CodeMethodDenied))
	assert.Contains(t, err.Error(), "`p`")
}

func TestRoute_UnknownMethod(t *testing.T) {
	r := newTestRouter()

	_, err := r.Route(":frobnicate", false)
	require.Error(t, err)
	assert.True(t, core.HasCode(err, core.CodeUnknownMethod))
}

func TestRoute_ShellEscape(t *testing.T) {
	r := newTestRouter()

	action, err := r.Route("!ls -la /tmp", false)
	require.NoError(t, err)
	assert.Equal(t, ShellExec{Command: "ls -la /tmp"}, action)
}

func TestRoute_EmptyShell(t *testing.T) {
	r := newTestRouter()

	_, err := r.Route("!", false)
	require.Error(t, err)
	assert.True(t, core.HasCode(err, core.CodeEmptyShell))
}

func TestRoute_Builtins(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		line string
		want Builtin
	}{
		{"q", Builtin{Kind: BuiltinQuit}},
		{"quit", Builtin{Kind: BuiltinQuit}},
		{"a", Builtin{Kind: BuiltinAudit}},
		{"audit", Builtin{Kind: BuiltinAudit}},
		{"c", Builtin{Kind: BuiltinCheck}},
		{"d", Builtin{Kind: BuiltinDiff}},
		{"f", Builtin{Kind: BuiltinFetch}},
		{"t", Builtin{Kind: BuiltinTest}},
		{"p", Builtin{Kind: BuiltinPlan}},
		{"p dev", Builtin{Kind: BuiltinPlan, Environment: "dev"}},
		{"plan dev", Builtin{Kind: BuiltinPlan, Environment: "dev"}},
		{"r staging", Builtin{Kind: BuiltinRun, Environment: "staging"}},
		{"run", Builtin{Kind: BuiltinRun}},
	}
	for _, tc := range cases {
		action, err := r.Route(tc.line, false)
		require.NoError(t, err, tc.line)
		assert.Equal(t, tc.want, action, tc.line)
	}
}

func TestRoute_BuiltinRejectsStrayArgument(t *testing.T) {
	r := newTestRouter()

	_, err := r.Route("audit now", false)
	require.Error(t, err)
	assert.True(t, core.HasCode(err, core.CodeBadArgument))
}

func TestRoute_UnknownCommand(t *testing.T) {
	r := newTestRouter()

	_, err := r.Route("frobnicate", false)
	require.Error(t, err)
	assert.True(t, core.HasCode(err, core.CodeUnknownCommand))
}

func TestCoerceLiteral(t *testing.T) {
	cases := []struct {
		in   string
		want any
	}{
		{"5", int64(5)},
		{"-3", int64(-3)},
		{"2.5", 2.5},
		{"true", true},
		{"False", false},
		{`"quoted"`, "quoted"},
		{"'quoted'", "quoted"},
		{"plain", "plain"},
		{" padded ", "padded"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, coerceLiteral(tc.in), tc.in)
	}
}
