package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/cardspace/pkg/records"
)

// sourceFlags override the [source] config section from the command line.
type sourceFlags struct {
	kind  string
	url   string
	count int
	seed  uint64
}

// apply copies set flags into the loaded config.
func (f sourceFlags) apply(c *CLI) {
	if f.kind != "" {
		c.cfg.Source.Kind = f.kind
	}
	if f.url != "" {
		c.cfg.Source.URL = f.url
		if f.kind == "" {
			c.cfg.Source.Kind = records.SourceSheet
		}
	}
	if f.count > 0 {
		c.cfg.Source.Count = f.count
	}
	if f.seed > 0 {
		c.cfg.Source.Seed = f.seed
	}
}

// loadRecords fetches the configured record set, showing a spinner for
// remote sources.
func (c *CLI) loadRecords(ctx context.Context, noCache bool) (*records.Set, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	provider, closeProvider, err := c.newProvider(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", c.cfg.Source.Kind, err)
	}
	defer closeProvider()

	if c.cfg.Source.Kind == records.SourcePlaceholder {
		return provider.Records(ctx)
	}

	prog := newProgress(c.Logger)

	var set *records.Set
	err = spin(ctx, fetchLabel(c.cfg.Source.Kind), "Fetch failed", func() error {
		var ferr error
		set, ferr = provider.Records(ctx)
		return ferr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	prog.done(fmt.Sprintf("Loaded %d records", set.Len()))
	return set, nil
}

func fetchLabel(source string) string {
	return fmt.Sprintf("Fetching records from %s...", source)
}
