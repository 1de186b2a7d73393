package records

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/matzehuels/cardspace/pkg/errors"
)

// DefaultPlaceholderCount is the number of generated records when
// [Placeholder.Count] is zero.
const DefaultPlaceholderCount = 120

var placeholderGroups = []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"}

// Placeholder generates a deterministic record set. The same Count and
// Seed always produce the same records.
type Placeholder struct {
	Count int
	Seed  uint64
}

// Records implements [Provider].
func (p Placeholder) Records(ctx context.Context) (*Set, error) {
	n := p.Count
	if n == 0 {
		n = DefaultPlaceholderCount
	}
	if err := errors.ValidateRecordCount(n); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0xdeadbeef))
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = Record{
			Name: fmt.Sprintf("Card %03d", i+1),
			Fields: map[string]string{
				"symbol": symbol(i),
				"group":  placeholderGroups[i%len(placeholderGroups)],
				"value":  strconv.FormatFloat(rng.Float64()*100, 'f', 2, 64),
			},
		}
	}
	reindex(recs)

	return &Set{
		Source:  SourcePlaceholder,
		Columns: []string{"name", "symbol", "group", "value"},
		Records: recs,
	}, nil
}

// symbol renders i as a short letter code: A..Z, Aa..Zz, then wraps.
func symbol(i int) string {
	first := byte('A' + i%26)
	if i < 26 {
		return string(first)
	}
	second := byte('a' + (i/26-1)%26)
	return string([]byte{first, second})
}
