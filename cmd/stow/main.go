package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const (
	languageVersion = "1.0"
	cliToolVersion  = "stow-cli 1.0.0"
)

// cli carries the streams and persistent flags shared by every command.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr *os.File

	strict     bool
	verbose    bool
	errorsPath string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(c.errWriter(), c.paintError(err.Error()))
		return 1
	}
	return 0
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "stow [file]",
		Short: "Stow language interpreter",
		Long: `Run a Stow source file, or start an interactive session when no file is given.

Project settings are read from the nearest stow.yml; dependencies listed there
are installed with "stow deps install".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.runREPL()
			}
			return c.runFile(args[0])
		},
	}
	flags := root.PersistentFlags()
	flags.BoolVar(&c.strict, "strict", false, "stop at the first syntax or runtime error")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log interpreter events to stderr")
	flags.StringVar(&c.errorsPath, "errors", "", "error message catalog (default: ./errors.json)")

	root.AddCommand(
		c.runCommand(),
		c.replCommand(),
		c.tokensCommand(),
		c.astCommand(),
		c.depsCommand(),
		c.versionCommand(),
	)
	return root
}

func (c *cli) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Run a source file, or the manifest's main entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return c.runFile(args[0])
			}
			return c.runManifestMain()
		},
	}
}

func (c *cli) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runREPL()
		},
	}
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.stdout, "%s (language %s)\n", cliToolVersion, languageVersion)
		},
	}
}
