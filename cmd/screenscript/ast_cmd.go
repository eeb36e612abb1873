package main

import (
	"context"
	"fmt"
	"reflect"

	"github.com/deepnoodle-ai/screenscript"
	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) astCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Display the syntax tree of a script",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.astHandler,
	}
	a.addSourceFlags(cmd)
	cmd.Flags().Int("line", 0, "highlight the statement on this line and the nodes enclosing it")
	return cmd
}

func (a *app) astHandler(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sources, err := a.getSources(cmd, args)
	if err != nil {
		return err
	}
	prog, err := screenscript.Parse(ctx, sources[0].code)
	if err != nil {
		return err
	}
	if a.v.GetString("output") == "json" {
		return writeJSON(a.stdout, nodeToJSON(prog.Root))
	}

	opts := ast.DumpOptions{}
	if line, _ := cmd.Flags().GetInt("line"); line > 0 {
		chain := ast.NewIndex(prog.Root).Enclosing(line - 1)
		if len(chain) == 0 {
			return fmt.Errorf("no statement starts on line %d", line)
		}
		opts.Highlight = make(map[ast.Node]bool, len(chain))
		for _, n := range chain {
			opts.Highlight[n] = true
		}
		highlight := color.New(color.FgYellow, color.Bold).SprintFunc()
		opts.Mark = func(label string) string { return highlight("> " + label) }
	}
	return ast.DumpWith(a.stdout, prog.Root, opts)
}

// astNode represents a node in the JSON AST output
type astNode struct {
	Type     string     `json:"type"`
	Line     int        `json:"line"`
	Value    any        `json:"value,omitempty"`
	Children []*astNode `json:"children,omitempty"`
}

func nodeToJSON(node ast.Node) *astNode {
	if node == nil {
		return nil
	}
	result := &astNode{
		Type: reflect.TypeOf(node).Elem().Name(),
		Line: node.Pos() + 1,
	}
	switch n := node.(type) {
	case *ast.Identifier:
		result.Value = n.Name
	case *ast.IntegerLit:
		result.Value = n.Value
	case *ast.FloatLit:
		result.Value = n.Value
	case *ast.StringLit:
		result.Value = n.Value
	case *ast.BoolLit:
		result.Value = n.Value
	case *ast.ColorLit:
		result.Value = n.String()
	case *ast.BinaryOp:
		result.Value = string(n.Op)
	case *ast.Compare:
		result.Value = string(n.Op)
	case *ast.MethodCall:
		result.Value = n.Name
	case *ast.Cast:
		result.Value = n.TypeName
	}
	for _, child := range ast.Children(node) {
		if c := nodeToJSON(child); c != nil {
			result.Children = append(result.Children, c)
		}
	}
	return result
}
