package plugin

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// starRule adapts a plugin's analyze callable to the lint.Rule interface.
// Each invocation builds a fresh ctx module over the file under analysis,
// so plugin code never sees another file's state.
type starRule struct {
	meta lint.RuleMetadata
	fn   starlark.Callable
	pool *threadPool
}

func (r *starRule) Metadata() lint.RuleMetadata { return r.meta }

func (r *starRule) Analyze(ctx *lint.Context) error {
	thread := r.pool.get("rule:" + r.meta.ID)
	defer r.pool.put(thread)

	module := r.buildContextModule(ctx)
	if _, err := starlark.Call(thread, r.fn, starlark.Tuple{module}, nil); err != nil {
		return fmt.Errorf("plugin rule %s: %w", r.meta.ID, err)
	}
	return nil
}

// buildContextModule exposes the analysis context to Starlark as a struct:
//
//	ctx.file_path                   path of the file under analysis
//	ctx.source                      raw source text
//	ctx.find_nodes(kind)            nodes of the given kind, traversal order
//	ctx.report(message, ...)        record an issue (node= or line=/column=)
//	ctx.option(name, default=None)  configured per-rule option
func (r *starRule) buildContextModule(ctx *lint.Context) starlark.Value {
	findNodes := starlark.NewBuiltin("find_nodes", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var kind string
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "kind", &kind); err != nil {
			return nil, err
		}
		nodes := ast.FindKind(ctx.Unit(), kind)
		out := make([]starlark.Value, len(nodes))
		for i, n := range nodes {
			out[i] = nodeToStarlark(n)
		}
		return starlark.NewList(out), nil
	})

	report := starlark.NewBuiltin("report", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var (
			message            string
			node               starlark.Value
			line, column       int
			endLine, endColumn int
		)
		err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"message", &message,
			"node?", &node,
			"line?", &line,
			"column?", &column,
			"end_line?", &endLine,
			"end_column?", &endColumn,
		)
		if err != nil {
			return nil, err
		}

		span := ast.Span{
			Start: ast.Position{Line: line, Column: column},
			End:   ast.Position{Line: endLine, Column: endColumn},
		}
		if node != nil && node != starlark.None {
			span, err = spanFromNodeValue(node)
			if err != nil {
				return nil, err
			}
		}
		if span.End.Line == 0 {
			span.End = span.Start
		}
		ctx.ReportAt(span, message)
		return starlark.None, nil
	})

	option := starlark.NewBuiltin("option", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		defaultVal := starlark.Value(starlark.None)
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "default?", &defaultVal); err != nil {
			return nil, err
		}
		raw := lint.Option[any](ctx, name, nil)
		if raw == nil {
			return defaultVal, nil
		}
		converted, err := goToStarlark(raw)
		if err != nil {
			return defaultVal, nil
		}
		return converted, nil
	})

	return starlarkstruct.FromStringDict(starlark.String("ctx"), starlark.StringDict{
		"file_path":  starlark.String(ctx.FilePath()),
		"source":     starlark.String(ctx.Source()),
		"find_nodes": findNodes,
		"report":     report,
		"option":     option,
	})
}

// nodeToStarlark projects a tree node into the flat struct plugin rules
// consume. Only identity and location are exposed; plugins needing deeper
// structure match on the source text.
func nodeToStarlark(n ast.Node) starlark.Value {
	span := n.Span()
	fields := starlark.StringDict{
		"kind":       starlark.String(n.Kind()),
		"line":       starlark.MakeInt(span.Start.Line),
		"column":     starlark.MakeInt(span.Start.Column),
		"end_line":   starlark.MakeInt(span.End.Line),
		"end_column": starlark.MakeInt(span.End.Column),
		"name":       starlark.String(nodeName(n)),
	}
	return starlarkstruct.FromStringDict(starlark.String("node"), fields)
}

// nodeName extracts the most useful display name a node carries.
func nodeName(n ast.Node) string {
	switch node := n.(type) {
	case *ast.Identifier:
		return node.Name
	case *ast.MemberAccess:
		return node.Member
	case *ast.ContractDefinition:
		return node.Name
	case *ast.FunctionDefinition:
		return node.Name
	case *ast.ModifierDefinition:
		return node.Name
	case *ast.EventDefinition:
		return node.Name
	case *ast.StateVariableDeclaration:
		return node.Name
	case *ast.VariableDeclarationStatement:
		return node.Name
	case *ast.Parameter:
		return node.Name
	case *ast.Literal:
		return node.Value
	case *ast.PragmaDirective:
		return node.Name
	default:
		return ""
	}
}

// spanFromNodeValue reads the location attrs back off a node struct passed
// to report(node=...).
func spanFromNodeValue(v starlark.Value) (ast.Span, error) {
	readInt := func(name string) (int, error) {
		raw, ok := attr(v, name)
		if !ok {
			return 0, fmt.Errorf("report: node value has no %q attribute", name)
		}
		i, err := starlark.AsInt32(raw)
		if err != nil {
			return 0, fmt.Errorf("report: node.%s: %w", name, err)
		}
		return i, nil
	}

	var span ast.Span
	var err error
	if span.Start.Line, err = readInt("line"); err != nil {
		return span, err
	}
	if span.Start.Column, err = readInt("column"); err != nil {
		return span, err
	}
	if span.End.Line, err = readInt("end_line"); err != nil {
		return span, err
	}
	if span.End.Column, err = readInt("end_column"); err != nil {
		return span, err
	}
	return span, nil
}
