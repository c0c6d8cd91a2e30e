// Command dbadoc converts DocBook XML documents to AsciiDoc.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rgonek/docbook-asciidoc-converter/converter"
	"github.com/rgonek/docbook-asciidoc-converter/docbook"
)

const (
	formatXML  = "xml"
	formatJSON = "json"
)

type cli struct {
	Input           string            `arg:"" optional:"" default:"-" help:"DocBook file to convert (- reads stdin). .xz input is decompressed."`
	Output          string            `name:"output" short:"o" type:"path" help:"Write AsciiDoc to this file instead of stdout."`
	Preset          string            `name:"preset" default:"balanced" enum:"balanced,strict,readable,lossy" help:"Base configuration: balanced|strict|readable|lossy."`
	Config          string            `name:"config" short:"c" type:"path" help:"YAML file with converter settings."`
	AttributesFile  string            `name:"attributes-file" type:"path" help:"YAML mapping of attribute names to values used for substitution."`
	Attribute       map[string]string `name:"attribute" short:"a" mapsep:"none" help:"Attribute substitution as name=value (repeatable)."`
	PreserveIDs     bool              `name:"preserve-ids" help:"Keep element ids verbatim instead of normalizing them."`
	SentencePerLine bool              `name:"sentence-per-line" help:"Put each sentence of a paragraph on its own line."`
	Select          string            `name:"select" help:"XPath expression selecting the element to convert."`
	Format          string            `name:"format" default:"xml" enum:"xml,json" help:"Input format: xml|json."`
	Strict          bool              `name:"strict" help:"Fail on unknown elements and unresolved references."`
	Verbose         bool              `name:"verbose" short:"v" help:"Log debug output."`
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (c *cli) run(ctx context.Context, logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	cfg, err := c.resolveConfig()
	if err != nil {
		return err
	}
	conv, err := converter.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	root, err := c.readTree(stdin)
	if err != nil {
		return err
	}
	logger.Debug("parsed input", "input", c.Input, "format", c.Format, "root", root.Tag)

	sourcePath := c.Input
	if sourcePath == "-" {
		sourcePath = ""
	}
	result, err := conv.ConvertWithContext(ctx, root, converter.ConvertOptions{SourcePath: sourcePath})
	if err != nil {
		return fmt.Errorf("converting %s: %w", c.Input, err)
	}

	for _, w := range result.Warnings {
		logger.Warn("conversion warning", "type", string(w.Type), "element", w.Element, "message", w.Message)
	}
	logger.Debug("converted", "bytes", len(result.AsciiDoc), "warnings", len(result.Warnings))

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(result.AsciiDoc), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	_, err = io.WriteString(stdout, result.AsciiDoc)
	return err
}

func (c *cli) readTree(stdin io.Reader) (converter.Node, error) {
	if c.Format == formatJSON {
		if c.Select != "" {
			return converter.Node{}, fmt.Errorf("--select requires %s input", formatXML)
		}
		var data []byte
		var err error
		if c.Input == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(c.Input)
		}
		if err != nil {
			return converter.Node{}, fmt.Errorf("reading input: %w", err)
		}
		var root converter.Node
		if err := json.Unmarshal(data, &root); err != nil {
			return converter.Node{}, fmt.Errorf("failed to parse node tree JSON: %w", err)
		}
		return root, nil
	}

	opts := docbook.Options{Select: c.Select}
	if c.Input == "-" {
		return docbook.Parse(stdin, opts)
	}
	return docbook.ParseFile(c.Input, opts)
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("dbadoc"),
		kong.Description("Convert DocBook XML to AsciiDoc."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	logger := newLogger(os.Stderr, app.Verbose)
	err := app.run(context.Background(), logger, os.Stdin, os.Stdout)
	ctx.FatalIfErrorf(err)
}
