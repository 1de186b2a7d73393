package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardspace/pkg/errors"
	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/records"
)

const kindAll = "all"

// layoutCommand creates the layout command for computing target transforms.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		src     sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [table|sphere|helix|grid|tetrahedron|all]",
		Short: "Compute card target transforms",
		Long: `Compute card target transforms for one layout or all of them.

Records come from the configured source (a generated placeholder set by
default). Only the number of records matters for the geometry: the output
holds one transform per record, in record order.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: append(kindNames(), kindAll),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := kindAll
			if len(args) > 0 {
				name = args[0]
			}
			src.apply(c)
			return c.runLayout(cmd.Context(), name, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addSourceFlags(cmd, &src)

	return cmd
}

// runLayout loads records, computes the layout(s) and writes JSON.
func (c *CLI) runLayout(ctx context.Context, name, output string, noCache bool) error {
	var kind layout.Kind
	if name != kindAll {
		k, err := parseKind(name)
		if err != nil {
			return err
		}
		kind = k
	}

	set, err := c.loadRecords(ctx, noCache)
	if err != nil {
		return err
	}

	opts := c.cfg.LayoutOptions()
	var result any
	if kind == "" {
		all, err := layout.ComputeAll(set.Len(), opts)
		if err != nil {
			return fmt.Errorf("compute layouts: %w", err)
		}
		result = all
	} else {
		targets, err := layout.ComputeFor(kind, set.Records, opts)
		if err != nil {
			return fmt.Errorf("compute %s: %w", kind, err)
		}
		result = targets
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	data = append(data, '\n')

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(set.Len(), name, false)
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render %s", appName, renderHint(name)))
	return nil
}

// parseKind resolves a layout named on the command line. Unlike the
// selector, commands reject unknown names.
func parseKind(name string) (layout.Kind, error) {
	if err := errors.ValidateLayoutName(name); err != nil {
		return "", err
	}
	kind, ok := layout.ParseKind(name)
	if !ok {
		return "", errors.New(errors.ErrCodeUnknownLayout, "unknown layout %q (want one of %s)", name, strings.Join(kindNames(), ", "))
	}
	return kind, nil
}

func renderHint(name string) string {
	if name == kindAll {
		return string(layout.Table)
	}
	return name
}

func kindNames() []string {
	kinds := layout.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}

// addSourceFlags registers flags that override the [source] config section.
func addSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	cmd.Flags().StringVar(&f.kind, "source", "", "record source: placeholder, sheet, mongo (default: from config)")
	cmd.Flags().StringVar(&f.url, "url", "", "published spreadsheet CSV URL (implies --source sheet)")
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "number of placeholder records")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "placeholder seed")
	_ = cmd.RegisterFlagCompletionFunc("source",
		completeValues(records.SourcePlaceholder, records.SourceSheet, records.SourceMongo))
}
