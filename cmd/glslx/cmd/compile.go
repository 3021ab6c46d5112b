package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/glslx-go/cmd/glslx/config"
	"github.com/cwbudde/glslx-go/internal/source"
	"github.com/cwbudde/glslx-go/pkg/glslx"
	"github.com/cwbudde/glslx-go/pkg/glslx/format"
)

var (
	compileOutput            string
	compileFormat            string
	compileCompactSyntaxTree bool
	compileRemoveWhitespace  bool
	compileRenameSymbols     string
	compileTrimSymbols       bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile shader sources to one string per export",
	Long: `Compile one or more shading-language source files into a compact
shader string per "export"-marked entry point, plus a cross-shader
identifier rename map.

Examples:
  # Compile a shader, print packaged JSON to stdout
  glslx compile shader.glsl

  # Minify and rename internal symbols, write to a file
  glslx compile --remove-whitespace --rename-symbols INTERNAL -o out.json shader.glsl

  # Package as C++ constant declarations
  glslx compile --format cpp shader.glsl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().StringVar(&compileFormat, "format", "json", "output format: json, js, skew, cpp, rust")
	compileCmd.Flags().BoolVar(&compileCompactSyntaxTree, "compact-syntax-tree", false, "merge adjacent declarations and inline single-use const locals")
	compileCmd.Flags().BoolVar(&compileRemoveWhitespace, "remove-whitespace", false, "emit the minimum whitespace the grammar requires")
	compileCmd.Flags().StringVar(&compileRenameSymbols, "rename-symbols", "", "rename policy: ALL, INTERNAL, or NONE (default: config, else NONE)")
	compileCmd.Flags().BoolVar(&compileTrimSymbols, "trim-symbols", true, "drop declarations unreachable from any export")
}

func runCompile(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}

	sources, err := readSources(args)
	if err != nil {
		return err
	}

	policy := cfg.RenamePolicy()
	if compileRenameSymbols != "" {
		policy = parseRenamePolicy(compileRenameSymbols)
	}

	opts := glslx.Options{
		CompactSyntaxTree: compileCompactSyntaxTree || cfg.CompactSyntaxTree,
		RemoveWhitespace:  compileRemoveWhitespace || cfg.RemoveWhitespace,
		RenameSymbols:     policy,
		TrimSymbols:       compileTrimSymbols,
		FileAccess:        includeResolver(cfg),
	}

	result := glslx.Compile(sources, opts)

	if verbose {
		for _, d := range result.Log.Diagnostics() {
			fmt.Fprint(os.Stderr, d.Format(true))
			fmt.Fprintln(os.Stderr)
		}
	}

	if result.Log.HasErrors() {
		return fmt.Errorf("compilation failed with diagnostics")
	}

	output, err := packageResult(result)
	if err != nil {
		return fmt.Errorf("failed to package result: %w", err)
	}

	if compileOutput == "" {
		fmt.Print(output)
		return nil
	}
	return os.WriteFile(compileOutput, []byte(output), 0o644)
}

func packageResult(result *glslx.CompilerResult) (string, error) {
	switch strings.ToLower(compileFormat) {
	case "json":
		return format.JSON(result)
	case "js":
		return format.ConstantDeclarations(result, format.JS), nil
	case "skew":
		return format.ConstantDeclarations(result, format.Skew), nil
	case "cpp":
		return format.ConstantDeclarations(result, format.CPP), nil
	case "rust":
		return format.ConstantDeclarations(result, format.Rust), nil
	default:
		return "", fmt.Errorf("unknown format %q (use json, js, skew, cpp, or rust)", compileFormat)
	}
}

func parseRenamePolicy(s string) glslx.RenameSymbols {
	switch strings.ToUpper(s) {
	case "ALL":
		return glslx.RenameAll
	case "INTERNAL":
		return glslx.RenameInternal
	default:
		return glslx.RenameNone
	}
}

// readSources loads every positional file argument as a source.Source.
func readSources(paths []string) ([]*source.Source, error) {
	sources := make([]*source.Source, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		sources = append(sources, source.New(path, string(content)))
	}
	return sources, nil
}

// includeResolver adapts config.Config's path resolution into a
// glslx.FileAccess that reads and wraps the resolved file.
func includeResolver(cfg *config.Config) glslx.FileAccess {
	return func(includerPath, relativePath string) *source.Source {
		resolved := cfg.ResolveInclude(includerPath, relativePath)
		if resolved == "" {
			return nil
		}
		content, err := os.ReadFile(resolved)
		if err != nil {
			return nil
		}
		return source.New(resolved, string(content))
	}
}
