package tui

import (
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/lazymesh/lazymesh/internal/core"
)

// Input prefixes recognized by the router.
const (
	metaPrefix  = ":"
	shellPrefix = "!"
)

// Action is one routed outcome of a submitted line. Exactly one Action is
// produced per line; routing failures are returned as errors instead.
type Action interface{ isAction() }

// NoOp is produced for an empty line.
type NoOp struct{}

// PromptAnswer carries a line submitted while a prompt was pending. The line
// bypasses all parsing and never enters the history.
type PromptAnswer struct {
	Line string
}

// ShowHelp prints the static command listing.
type ShowHelp struct{}

// ListMethods prints the names of the callable context methods.
type ListMethods struct{}

// MethodCall invokes one context method by name with coerced arguments.
type MethodCall struct {
	Name string
	Args []Arg
}

// ShellExec runs an external shell command with the configured timeout.
type ShellExec struct {
	Command string
}

// BuiltinKind names the short commands.
type BuiltinKind int

const (
	BuiltinQuit BuiltinKind = iota
	BuiltinAudit
	BuiltinCheck
	BuiltinDiff
	BuiltinPlan
	BuiltinFetch
	BuiltinTest
	BuiltinRun
)

// Builtin is a short command, optionally targeting an environment.
type Builtin struct {
	Kind BuiltinKind
	// Environment overrides the active environment for plan and run.
	Environment string
}

func (NoOp) isAction()         {}
func (PromptAnswer) isAction() {}
func (ShowHelp) isAction()     {}
func (ListMethods) isAction()  {}
func (MethodCall) isAction()   {}
func (ShellExec) isAction()    {}
func (Builtin) isAction()      {}

// Arg is one parsed meta-command argument. Name is empty for positional
// arguments; Value holds the coerced literal.
type Arg struct {
	Name  string
	Value any
}

// builtinWords maps both the single-letter and full-word spellings.
var builtinWords = map[string]BuiltinKind{
	"q": BuiltinQuit, "quit": BuiltinQuit,
	"a": BuiltinAudit, "audit": BuiltinAudit,
	"c": BuiltinCheck, "check": BuiltinCheck,
	"d": BuiltinDiff, "diff": BuiltinDiff,
	"p": BuiltinPlan, "plan": BuiltinPlan,
	"f": BuiltinFetch, "fetch": BuiltinFetch,
	"t": BuiltinTest, "test": BuiltinTest,
	"r": BuiltinRun, "run": BuiltinRun,
}

// takesEnvironment reports whether a builtin accepts a trailing environment
// name.
func takesEnvironment(k BuiltinKind) bool {
	return k == BuiltinPlan || k == BuiltinRun
}

// Router turns submitted lines into actions against a fixed method table.
type Router struct {
	methods *MethodTable
}

// NewRouter creates a router over the given method table.
func NewRouter(methods *MethodTable) *Router {
	return &Router{methods: methods}
}

// Route parses one line. promptPending short-circuits everything: the whole
// line is the prompt's answer. A non-nil error means the line was rejected;
// the caller restores the input text and signals an alert.
func (r *Router) Route(line string, promptPending bool) (Action, error) {
	if promptPending {
		return PromptAnswer{Line: line}, nil
	}

	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return NoOp{}, nil
	case trimmed == "?":
		return ShowHelp{}, nil
	case strings.HasPrefix(trimmed, metaPrefix):
		return r.routeMeta(strings.TrimPrefix(trimmed, metaPrefix))
	case strings.HasPrefix(trimmed, shellPrefix):
		cmd := strings.TrimSpace(strings.TrimPrefix(trimmed, shellPrefix))
		if cmd == "" {
			return nil, core.ErrRouting(core.CodeEmptyShell, "no shell command given")
		}
		return ShellExec{Command: cmd}, nil
	}

	fields := strings.Fields(trimmed)
	kind, ok := builtinWords[strings.ToLower(fields[0])]
	if !ok {
		return nil, core.ErrRouting(core.CodeUnknownCommand,
			"unknown command: "+fields[0])
	}

	b := Builtin{Kind: kind}
	if len(fields) > 1 {
		if !takesEnvironment(kind) {
			return nil, core.ErrRouting(core.CodeBadArgument,
				fields[0]+" takes no arguments")
		}
		b.Environment = fields[1]
	}
	return b, nil
}

func (r *Router) routeMeta(rest string) (Action, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return ListMethods{}, nil
	}

	parts, err := shlex.Split(rest)
	if err != nil {
		return nil, core.ErrRouting(core.CodeBadArgument,
			"malformed arguments: "+err.Error())
	}

	name := parts[0]
	if reason, denied := r.methods.Denied(name); denied {
		return nil, core.ErrRouting(core.CodeMethodDenied, reason)
	}
	if !r.methods.Has(name) {
		return nil, core.ErrRouting(core.CodeUnknownMethod,
			"unknown method: "+name)
	}

	args := make([]Arg, 0, len(parts)-1)
	for _, raw := range parts[1:] {
		args = append(args, parseArg(raw))
	}
	return MethodCall{Name: name, Args: args}, nil
}

// parseArg splits key=value pairs and coerces values to literals.
func parseArg(raw string) Arg {
	if key, value, ok := strings.Cut(raw, "="); ok && key != "" {
		return Arg{Name: key, Value: coerceLiteral(value)}
	}
	return Arg{Value: coerceLiteral(raw)}
}

// coerceLiteral speculatively evaluates a token as a literal: integers,
// floats, booleans, and quoted strings. Anything else stays a trimmed string.
func coerceLiteral(token string) any {
	token = strings.TrimSpace(token)

	if len(token) >= 2 && (token[0] == '"' || token[0] == '\'') {
		quote := token[0]
		if token[len(token)-1] == quote {
			return token[1 : len(token)-1]
		}
	}
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f
	}
	switch strings.ToLower(token) {
	case "true":
		return true
	case "false":
		return false
	}
	return token
}
