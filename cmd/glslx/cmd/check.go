package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/glslx-go/cmd/glslx/config"
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/source"
	"github.com/cwbudde/glslx-go/pkg/glslx"
)

var checkDumpAST bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Type-check a shader source without compiling it",
	Long: `Run typeCheck (tokenize + parse + resolve) over a shading-language
source and report diagnostics, without rewriting, renaming, or emitting
anything. Reads from stdin if no file is given.

Examples:
  glslx check shader.glsl
  glslx check --dump-ast shader.glsl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkDumpAST, "dump-ast", false, "dump the resolved AST structure instead of an ok/fail summary")
}

func runCheck(_ *cobra.Command, args []string) error {
	var contents, name string
	if len(args) == 1 {
		name = args[0]
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		contents = string(data)
	} else {
		name = "<stdin>"
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		contents = string(data)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}

	result := glslx.TypeCheck([]*source.Source{source.New(name, contents)}, glslx.Options{
		FileAccess: includeResolver(cfg),
	})

	for _, d := range result.Log.Diagnostics() {
		fmt.Fprint(os.Stderr, d.Format(true))
		fmt.Fprintln(os.Stderr)
	}

	if checkDumpAST {
		dumpNode(result.GlobalAST, 0)
	}

	if result.Log.HasErrors() {
		return fmt.Errorf("type check failed")
	}
	fmt.Println("ok")
	return nil
}

func dumpNode(n *ast.Node, indent int) {
	if n == nil {
		return
	}
	prefix := strings.Repeat("  ", indent)
	line := fmt.Sprintf("%s%s", prefix, n.Kind)
	if n.Literal != "" {
		line += fmt.Sprintf(" %q", n.Literal)
	}
	if n.ResolvedType != nil {
		line += fmt.Sprintf(" : %v", n.ResolvedType)
	}
	fmt.Println(line)
	for _, child := range n.Children {
		dumpNode(child, indent+1)
	}
}
