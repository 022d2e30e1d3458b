package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/shibukawa/scadparse"
	"github.com/shibukawa/scadparse/ast"
)

// Context carries global flags into every command's Run method.
type Context struct {
	Config string
}

// ParseCmd parses a .scad file and prints its AST.
type ParseCmd struct {
	File            string `arg:"" help:"OpenSCAD file to parse"`
	Format          string `help:"Output format: json or yaml" default:"json" enum:"json,yaml"`
	IncludePosition bool   `help:"Include source position in the output"`
	NoIncludes      bool   `help:"Do not expand include directives; leave them as IncludeStatement nodes"`
}

func (cmd *ParseCmd) Run(ctx *Context) error {
	cfg, err := scadparse.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	options := cfg.DefaultParserOptions
	if cmd.NoIncludes {
		options.ProcessIncludes = false
	}

	file, err := scadparse.ParseFile(cmd.File, options)
	if err != nil {
		return err
	}

	var out []byte
	switch cmd.Format {
	case "yaml":
		out, err = ast.ToYAML(file, cmd.IncludePosition)
	default:
		out, err = ast.ToJSON(file, cmd.IncludePosition)
	}
	if err != nil {
		return fmt.Errorf("encoding AST: %w", err)
	}

	fmt.Println(string(out))
	return nil
}

// ValidateCmd parses a .scad file and reports only success or failure.
type ValidateCmd struct {
	File string `arg:"" help:"OpenSCAD file to validate"`
}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	cfg, err := scadparse.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	color.Blue("Validating %s", cmd.File)
	if _, err := scadparse.ParseFile(cmd.File, cfg.DefaultParserOptions); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
	color.Green("OK")
	return nil
}

// FindLibCmd resolves a library path the way `include`/`use` would.
type FindLibCmd struct {
	CurrentFile string `arg:"" help:"File the library reference appears in"`
	LibFile     string `arg:"" help:"Library path as written in the include/use directive"`
}

func (cmd *FindLibCmd) Run(ctx *Context) error {
	resolved, err := scadparse.FindLibraryFile(cmd.CurrentFile, cmd.LibFile)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
	fmt.Println(resolved)
	return nil
}

// VersionCmd prints the CLI's version.
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Println("scadparse v0.1.0")
	return nil
}

var CLI struct {
	Config   string      `help:"Configuration file path" default:"scadparse.yaml"`
	Parse    ParseCmd    `cmd:"" help:"Parse an OpenSCAD file and print its AST"`
	Validate ValidateCmd `cmd:"" help:"Check an OpenSCAD file for syntax errors"`
	FindLib  FindLibCmd  `cmd:"" help:"Resolve a library include/use path" name:"find-lib"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

func main() {
	color.NoColor = color.NoColor || !isTerminal(os.Stderr)

	kctx := kong.Parse(&CLI)
	appCtx := &Context{Config: CLI.Config}

	err := kctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
