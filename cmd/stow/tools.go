package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stow/interpreter-go/pkg/ast"
	"stow/interpreter-go/pkg/driver"
	"stow/interpreter-go/pkg/lexer"
	"stow/interpreter-go/pkg/parser"
)

func (c *cli) tokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("could not open file '%s': %w", args[0], err)
			}
			for _, tok := range lexer.New(string(source)).Tokenize() {
				fmt.Fprintln(c.stdout, tok.String())
			}
			return nil
		},
	}
}

func (c *cli) astCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the parsed syntax tree of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("could not open file '%s': %w", args[0], err)
			}
			prog, diags := parser.Parse(string(source))
			for _, d := range diags {
				fmt.Fprintf(c.stderr, "warning: %s\n", d)
			}
			if dump := ast.DumpProgram(prog); dump != "" {
				fmt.Fprintln(c.stdout, dump)
			}
			if c.strict && len(diags) > 0 {
				return fmt.Errorf("%d syntax problem(s)", len(diags))
			}
			return nil
		},
	}
}

func (c *cli) depsCommand() *cobra.Command {
	deps := &cobra.Command{
		Use:   "deps",
		Short: "Manage project dependencies",
	}
	deps.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Fetch the dependencies listed in stow.yml and write stow.lock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDepsInstall()
		},
	})
	return deps
}

func (c *cli) runDepsInstall() error {
	manifestPath, err := driver.FindManifest(".")
	if err != nil {
		return err
	}
	if manifestPath == "" {
		return fmt.Errorf("%s not found", driver.ManifestFile)
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	home, err := driver.ResolveHome()
	if err != nil {
		return err
	}
	lock, err := driver.NewInstaller(home, cliToolVersion, c.newLogger()).Install(manifest)
	if err != nil {
		return err
	}
	for _, pkg := range lock.Packages {
		fmt.Fprintf(c.stdout, "%s %s -> %s\n", pkg.Name, pkg.Version, pkg.Dir)
	}
	fmt.Fprintf(c.stdout, "installed %d dependencies; wrote %s\n", len(lock.Packages), lock.Path)
	return nil
}
