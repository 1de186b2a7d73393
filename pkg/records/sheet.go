package records

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardspace/pkg/cache"
	"github.com/matzehuels/cardspace/pkg/errors"
	"github.com/matzehuels/cardspace/pkg/httputil"
)

// Sheet reads records from a spreadsheet published as CSV.
//
// The first row is the header. Columns named "name" and "image" (case
// insensitive) fill [Record.Name] and [Record.Image]; every other column
// lands in [Record.Fields]. Fully blank rows are skipped.
type Sheet struct {
	URL    string
	Client *http.Client
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger
}

// Records implements [Provider]. A cached body younger than TTL is used
// without a request; otherwise the URL is fetched with retries. Only bodies
// that parse as CSV are cached, and a cached body that no longer parses is
// dropped and refetched.
func (s *Sheet) Records(ctx context.Context) (*Set, error) {
	if err := errors.ValidateURL(s.URL); err != nil {
		return nil, err
	}
	c, keyer, logger := s.deps()
	key := keyer.SheetKey(s.URL)

	if data, ok, err := c.Get(ctx, key); err != nil {
		logger.Warn("sheet cache read failed", "err", err)
	} else if ok {
		if set, err := parseSheet(data); err == nil {
			logger.Debug("sheet cache hit", "url", s.URL)
			return set, nil
		}
		logger.Warn("dropping unreadable cached sheet", "url", s.URL)
		if err := c.Delete(ctx, key); err != nil {
			logger.Warn("sheet cache delete failed", "err", err)
		}
	}

	body, err := s.download(ctx)
	if err != nil {
		return nil, err
	}
	set, err := parseSheet(body)
	if err != nil {
		return nil, err
	}

	ttl := s.TTL
	if ttl == 0 {
		ttl = cache.TTLSheet
	}
	if err := c.Set(ctx, key, body, ttl); err != nil {
		logger.Warn("sheet cache write failed", "err", err)
	}
	return set, nil
}

func (s *Sheet) download(ctx context.Context) ([]byte, error) {
	var body []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		var ferr error
		body, ferr = httputil.Fetch(ctx, s.Client, s.URL)
		return ferr
	})
	return body, err
}

// parseSheet parses a downloaded sheet. Unpublished sheets answer 200 with
// an HTML sign-in page, which is rejected rather than read as one column.
func parseSheet(body []byte) (*Set, error) {
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("<")) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "sheet body is HTML, not CSV; is the sheet published?")
	}
	set, err := ParseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	set.Source = SourceSheet
	return set, nil
}

func (s *Sheet) deps() (cache.Cache, cache.Keyer, *log.Logger) {
	c, keyer, logger := s.Cache, s.Keyer, s.Logger
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return c, keyer, logger
}

// ParseCSV reads a header row followed by record rows.
func ParseCSV(r io.Reader) (*Set, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "csv: missing header row")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "csv header")
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var recs []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "csv row %d", len(recs)+2)
		}
		if blank(row) {
			continue
		}
		recs = append(recs, rowRecord(columns, row))
	}
	reindex(recs)

	return &Set{Columns: columns, Records: recs}, nil
}

func rowRecord(columns, row []string) Record {
	var rec Record
	for i, col := range columns {
		if i >= len(row) {
			break
		}
		val := strings.TrimSpace(row[i])
		switch strings.ToLower(col) {
		case "name":
			rec.Name = val
		case "image":
			rec.Image = val
		default:
			if col == "" {
				continue
			}
			if rec.Fields == nil {
				rec.Fields = make(map[string]string)
			}
			rec.Fields[col] = val
		}
	}
	return rec
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
