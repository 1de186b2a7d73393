package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardspace/pkg/cache"
	"github.com/matzehuels/cardspace/pkg/errors"
	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/render/dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file path (default: <layout>.<format>)
	format  string  // output format: "svg", "png" or "dot"
	view    string  // projection plane: "front", "top" or "side"
	scale   float64 // world units per point
	noCache bool    // bypass the artifact cache
}

// renderCommand creates the render command for drawing a layout snapshot.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: dot.FormatSVG, view: string(dot.Front), scale: 4}
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "render [table|sphere|helix|grid|tetrahedron]",
		Short: "Draw a layout as SVG, PNG or Graphviz DOT",
		Long: `Draw a layout as a flat snapshot.

Cards are projected onto the front, top or side plane and placed at fixed
positions in a Graphviz graph. Rendered images are cached.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := c.cfg.Layout.Initial
			if len(args) > 0 {
				name = args[0]
			}
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			src.apply(c)
			return c.runRender(cmd.Context(), name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <layout>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().StringVar(&opts.view, "view", opts.view, "projection: front (default), top, side")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "world units per point")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(dot.FormatSVG, dot.FormatPNG, dot.FormatDOT))
	_ = cmd.RegisterFlagCompletionFunc("view", completeValues(string(dot.Front), string(dot.Top), string(dot.Side)))
	addSourceFlags(cmd, &src)

	return cmd
}

// validateFormat checks the --format flag.
func validateFormat(format string) error {
	switch strings.ToLower(format) {
	case dot.FormatSVG, dot.FormatPNG, dot.FormatDOT:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (want svg, png or dot)", format)
}

// runRender loads records, draws one layout and writes the image.
func (c *CLI) runRender(ctx context.Context, name string, opts renderOpts) error {
	kind, err := parseKind(name)
	if err != nil {
		return err
	}
	view, err := dot.ParseView(opts.view)
	if err != nil {
		return err
	}
	format := strings.ToLower(opts.format)

	set, err := c.loadRecords(ctx, opts.noCache)
	if err != nil {
		return err
	}

	store, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	layoutOpts := c.cfg.LayoutOptions()
	key := c.newKeyer().ArtifactKey(cache.ArtifactKeyOpts{
		Layout:      kind.String(),
		RecordsHash: cache.HashJSON(set.Records),
		Format:      format,
		Scale:       opts.scale,
		OptionsHash: cache.HashJSON([]any{layoutOpts, view}),
	})

	data, cached, err := store.Get(ctx, key)
	if err != nil || !cached {
		targets, err := layout.ComputeFor(kind, set.Records, layoutOpts)
		if err != nil {
			return fmt.Errorf("compute %s: %w", kind, err)
		}
		src := dot.ToDOT(dot.FromTargets(targets, set.Records), dot.Options{
			View:  view,
			Scale: opts.scale,
			Title: kind.String(),
		})

		err = spin(ctx, fmt.Sprintf("Rendering %s...", format), "Render failed", func() error {
			var rerr error
			data, rerr = dot.Render(ctx, src, format)
			return rerr
		})
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}

		if err := store.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			c.Logger.Warn("cache write failed", "err", err)
		}
	}

	output := opts.output
	if output == "" {
		output = fmt.Sprintf("%s.%s", kind, format)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Rendered %s", kind)
	printFile(output)
	printStats(set.Len(), kind.String(), cached)
	return nil
}
