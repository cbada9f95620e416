package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stltree/pkg/compile"
	"github.com/matzehuels/stltree/pkg/errors"
	stlio "github.com/matzehuels/stltree/pkg/io"
	"github.com/matzehuels/stltree/pkg/pipeline"
	"github.com/matzehuels/stltree/pkg/stl"
	"github.com/matzehuels/stltree/pkg/watch"
)

// compileFromConfig is the --compile value when the flag is given bare; it
// selects the command from the config file.
const compileFromConfig = "config"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file; stdout when empty
	format    string   // tex, dot, svg, pdf, png; inferred from output when empty
	fragment  bool     // tikzpicture only, no document preamble
	libraries []string // extra TikZ libraries
	detailed  bool     // node kinds in node-link labels
	scale     float64  // PNG scale factor
	noCache   bool     // bypass the artifact cache
	refresh   bool     // re-render and overwrite cached artifacts
	watch     bool     // re-render whenever the input changes
	compile   string   // typesetting command run on the written .tex
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a formula tree as TikZ, DOT, SVG, PDF or PNG",
		Long: `Render a formula tree read from a JSON or YAML file, or from stdin when
the file is "-" or omitted.

The format defaults to the output file's extension, then to the config file's
render.format. Text formats are written to stdout when no output file is given.`,
		Example: `  stltree render formula.json -o formula.tex
  stltree render formula.yaml -f dot | dot -Tsvg > formula.svg
  stltree render formula.json -o fig.tex --fragment -l arrows
  stltree render formula.json -o formula.tex --compile --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: tex, dot, svg, pdf, png")
	cmd.Flags().BoolVar(&opts.fragment, "fragment", false, "emit only the tikzpicture, without a document preamble")
	cmd.Flags().StringArrayVarP(&opts.libraries, "library", "l", nil, "TikZ library to load (repeatable)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node kinds in node-link diagrams")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached artifact exists")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the input file changes")
	cmd.Flags().StringVar(&opts.compile, "compile", "", "run a typesetting command on the .tex output (bare flag: compile.command from config)")
	cmd.Flags().Lookup("compile").NoOptDefVal = compileFromConfig

	cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"tex", "dot", "svg", "pdf", "png"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// pipelineOptions merges flags over config defaults.
func (c *CLI) pipelineOptions(opts renderOpts) (pipeline.Options, error) {
	p := pipeline.Options{
		Format:     opts.format,
		Standalone: c.Config.Render.Standalone && !opts.fragment,
		Libraries:  c.Config.Render.Libraries,
		Detailed:   opts.detailed,
		Scale:      opts.scale,
		Refresh:    opts.refresh,
		TTL:        c.Config.Cache.TTL,
		Logger:     c.Logger,
	}
	if len(opts.libraries) > 0 {
		p.Libraries = opts.libraries
	}
	if p.Format == "" && opts.output != "" {
		p.Format = pipeline.FormatFromPath(opts.output)
	}
	if p.Format == "" {
		p.Format = c.Config.Render.Format
	}
	if err := p.ValidateAndSetDefaults(); err != nil {
		return p, err
	}

	if opts.output == "" && !pipeline.IsText(p.Format) {
		return p, errors.New(errors.ErrCodeInvalidInput, "%s output is binary, use -o to name a file", p.Format)
	}
	if opts.compile != "" {
		if p.Format != pipeline.FormatTeX || !p.Standalone {
			return p, errors.New(errors.ErrCodeInvalidInput, "--compile needs a standalone tex document")
		}
		if opts.output == "" {
			return p, errors.New(errors.ErrCodeInvalidInput, "--compile needs an output file (-o)")
		}
	}
	return p, nil
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	popts, err := c.pipelineOptions(opts)
	if err != nil {
		return err
	}
	if opts.watch && input == "-" {
		return errors.New(errors.ErrCodeInvalidInput, "--watch needs an input file")
	}

	var compiler *compile.Compiler
	if opts.compile != "" {
		command := opts.compile
		if command == compileFromConfig {
			command = c.Config.Compile.Command
		}
		if compiler, err = compile.New(command, c.Logger); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	once := func(ctx context.Context) error {
		return c.renderOnce(ctx, runner, input, opts.output, popts, compiler)
	}

	if !opts.watch {
		return once(ctx)
	}

	if err := once(ctx); err != nil {
		printError("%s", errors.UserMessage(err))
	}
	w, err := watch.New(watch.Config{Path: input}, c.Logger)
	if err != nil {
		return err
	}
	defer w.Close()
	printInfo("Watching %s (Ctrl-C to stop)", input)
	return w.Watch(ctx, once)
}

func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options, compiler *compile.Compiler) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	tree, err := c.readTree(input)
	if err != nil {
		return err
	}
	result, err := runner.Execute(ctx, tree, opts)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := c.out.Write(result.Artifact)
		return err
	}
	if err := os.WriteFile(output, result.Artifact, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
	}
	prog.done("Rendered "+filepath.Base(output), "format", opts.Format, "cached", result.Cached)
	printFile(output)
	printStats(result.Stats.NodeCount, result.Stats.Depth, result.Cached)

	if compiler == nil {
		return nil
	}
	return c.runCompile(ctx, compiler, output)
}

func (c *CLI) runCompile(ctx context.Context, compiler *compile.Compiler, texPath string) error {
	prog := newProgress(loggerFromContext(ctx))

	var spin *spinner
	if interactive() {
		spin = startSpinner(ctx, uiOut, "Running "+compiler.Program()+"...")
	}
	err := compiler.Compile(ctx, texPath)
	spin.stop()
	if err != nil {
		return err
	}
	prog.done("Compiled "+filepath.Base(texPath), "program", compiler.Program())
	printSuccess("Compiled with %s", compiler.Program())
	printFile(compile.OutputPath(texPath))
	return nil
}

// readTree decodes the tree at path, or from stdin for "-".
func (c *CLI) readTree(path string) (stl.Node, error) {
	if path != "-" {
		return stlio.Import(path)
	}
	data, err := io.ReadAll(c.in)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
	}
	return stlio.Decode(data)
}
