package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/lexer"
	"github.com/cwbudde/glslx-go/internal/source"
)

var (
	lexEval       string
	lexShowPos    bool
	lexShowKind   bool
	lexOnlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a shader source and print the resulting tokens",
	Long: `Tokenize (lex) a shading-language source and print the resulting
tokens, one per line. Useful for debugging the tokenizer and
understanding how a source is split into lexemes.

Examples:
  glslx lex shader.glsl
  glslx lex -e "vec4 a = vec4(1.0);"
  glslx lex --show-kind --show-pos shader.glsl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowKind, "show-kind", false, "show token kind names")
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "print only diagnostics, not tokens")
}

func runLex(_ *cobra.Command, args []string) error {
	var contents, name string
	switch {
	case lexEval != "":
		contents, name = lexEval, "<eval>"
	case len(args) == 1:
		name = args[0]
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", name, err)
		}
		contents = string(data)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Tokenizing: %s\n", name)
		fmt.Fprintf(os.Stderr, "Input length: %d bytes\n", len(contents))
		fmt.Fprintln(os.Stderr, "---")
	}

	log := errors.NewLog()
	tokens := lexer.Tokenize(source.New(name, contents), log)

	if !lexOnlyErrors {
		for _, tok := range tokens {
			printToken(tok)
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "---")
		fmt.Fprintf(os.Stderr, "Total tokens: %d\n", len(tokens))
	}

	if log.HasErrors() {
		for _, d := range log.Diagnostics() {
			fmt.Fprint(os.Stderr, d.Format(true))
			fmt.Fprintln(os.Stderr)
		}
		return fmt.Errorf("tokenizing reported diagnostics")
	}
	return nil
}

func printToken(tok lexer.Token) {
	var output string
	if lexShowKind {
		output = fmt.Sprintf("[%-16s]", tok.Kind.String())
	}
	text := tok.Text()
	if text == "" {
		output += fmt.Sprintf(" %s", tok.Kind.String())
	} else {
		output += fmt.Sprintf(" %q", text)
	}
	if lexShowPos {
		line, col := tok.Range.Source.LineColumn(tok.Range.Start)
		output += fmt.Sprintf(" @%d:%d", line, col)
	}
	fmt.Println(output)
}
