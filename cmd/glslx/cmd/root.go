package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "glslx",
	Short: "GLSL ES compiler front-end and minifier",
	Long: `glslx is a compiler front-end and minifier for a GLSL ES 1.00/3.00-ish
subset of the OpenGL ES Shading Language.

Given one or more shader source files, it produces one compact shader
string per "export"-marked entry point, along with a global symbol
renaming table that preserves cross-shader references. Output can be
packaged as a JSON document or as constant declarations embedded in a
host program (JS, Skew, C++, Rust).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "glslx.yaml", "project config file (optional)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
