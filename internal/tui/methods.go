package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lazymesh/lazymesh/internal/core"
)

// MethodHandler executes one meta-command against the project context. The
// returned string, if non-empty, is appended to the terminal log; most
// handlers write through the injected console instead and return "".
type MethodHandler func(ctx context.Context, pc core.ProjectContext, args []Arg) (string, error)

// Method is one entry in the meta-command table.
type Method struct {
	Name    string
	Summary string
	Handler MethodHandler
}

// MethodTable is the fixed set of context methods reachable through the meta
// prefix. Dispatch is by table lookup; there is no reflective fallback, so an
// unknown name is a routing error and a denied name carries its redirect
// message.
type MethodTable struct {
	methods map[string]Method
	denied  map[string]string
}

// NewMethodTable builds the standard table.
func NewMethodTable() *MethodTable {
	t := &MethodTable{
		methods: make(map[string]Method),
		denied: map[string]string{
			"plan": "plan is not callable directly; use the built-in `p` command",
		},
	}

	t.register(Method{
		Name:    "environments",
		Summary: "list environments from the state store",
		Handler: func(ctx context.Context, pc core.ProjectContext, args []Arg) (string, error) {
			envs, err := pc.ListEnvironments(ctx)
			if err != nil {
				return "", err
			}
			names := make([]string, 0, len(envs))
			for _, e := range envs {
				names = append(names, e.Name)
			}
			return strings.Join(names, "\n"), nil
		},
	})

	t.register(Method{
		Name:    "environment",
		Summary: "show one environment's snapshots",
		Handler: func(ctx context.Context, pc core.ProjectContext, args []Arg) (string, error) {
			name, err := stringArg(args, 0, "name")
			if err != nil {
				return "", err
			}
			env, err := pc.GetEnvironment(ctx, name)
			if err != nil {
				return "", err
			}
			var b strings.Builder
			for _, s := range env.Snapshots {
				fmt.Fprintf(&b, "%s  %s\n", s.Identifier, s.Name)
			}
			return strings.TrimRight(b.String(), "\n"), nil
		},
	})

	t.register(Method{
		Name:    "run",
		Summary: "execute scheduled intervals for an environment",
		Handler: func(ctx context.Context, pc core.ProjectContext, args []Arg) (string, error) {
			env := optionalStringArg(args, 0, "environment", core.DefaultEnvironment)
			return "", pc.Run(ctx, env)
		},
	})

	t.register(Method{
		Name:    "audit",
		Summary: "run audits over a time window (start, end)",
		Handler: func(ctx context.Context, pc core.ProjectContext, args []Arg) (string, error) {
			start := optionalStringArg(args, 0, "start", "1 month ago")
			end := optionalStringArg(args, 1, "end", "today")
			return "", pc.Audit(ctx, start, end)
		},
	})

	t.register(Method{
		Name:    "diff",
		Summary: "diff an environment against local definitions",
		Handler: func(ctx context.Context, pc core.ProjectContext, args []Arg) (string, error) {
			env := optionalStringArg(args, 0, "environment", core.DefaultEnvironment)
			return "", pc.Diff(ctx, env)
		},
	})

	t.register(Method{
		Name:    "test",
		Summary: "run the project's unit tests",
		Handler: func(ctx context.Context, pc core.ProjectContext, args []Arg) (string, error) {
			return "", pc.RunUnitTests(ctx)
		},
	})

	t.register(Method{
		Name:    "info",
		Summary: "print connection and project status",
		Handler: func(ctx context.Context, pc core.ProjectContext, args []Arg) (string, error) {
			return "", pc.PrintInfo(ctx)
		},
	})

	return t
}

func (t *MethodTable) register(m Method) {
	t.methods[m.Name] = m
}

// Has reports whether name is callable.
func (t *MethodTable) Has(name string) bool {
	_, ok := t.methods[name]
	return ok
}

// Denied reports whether name is denylisted, with its redirect message.
func (t *MethodTable) Denied(name string) (string, bool) {
	reason, ok := t.denied[name]
	return reason, ok
}

// Get returns the method for name.
func (t *MethodTable) Get(name string) (Method, bool) {
	m, ok := t.methods[name]
	return m, ok
}

// Names returns the callable method names, sorted. Denied names are not
// listed.
func (t *MethodTable) Names() []string {
	names := make([]string, 0, len(t.methods))
	for name := range t.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Listing renders the table for the bare meta prefix.
func (t *MethodTable) Listing() string {
	var b strings.Builder
	for _, name := range t.Names() {
		fmt.Fprintf(&b, ":%s  %s\n", name, t.methods[name].Summary)
	}
	return strings.TrimRight(b.String(), "\n")
}

func stringArg(args []Arg, pos int, name string) (string, error) {
	v := optionalStringArg(args, pos, name, "")
	if v == "" {
		return "", core.ErrRouting(core.CodeBadArgument, "missing argument: "+name)
	}
	return v, nil
}

// optionalStringArg resolves an argument by keyword first, then position.
func optionalStringArg(args []Arg, pos int, name, fallback string) string {
	for _, a := range args {
		if a.Name == name {
			return fmt.Sprint(a.Value)
		}
	}
	positional := 0
	for _, a := range args {
		if a.Name != "" {
			continue
		}
		if positional == pos {
			return fmt.Sprint(a.Value)
		}
		positional++
	}
	return fallback
}
