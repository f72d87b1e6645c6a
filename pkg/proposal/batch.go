package proposal

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one request of a batch.
type BatchItem struct {
	Index   int
	Request Request
	Result  *Result
	Err     error
}

// GenerateBatch generates every request, at most Config.BatchWorkers at a
// time. A failed request does not stop the others; the returned error joins
// the failures and items are in request order. File names are unique
// within the batch: a repeated name gets the 1-based request index as a
// suffix.
func (g *Generator) GenerateBatch(ctx context.Context, reqs []Request) ([]BatchItem, error) {
	items := make([]BatchItem, len(reqs))

	workers := g.engine.Config().BatchWorkers
	if workers < 1 {
		workers = 1
	}
	var eg errgroup.Group
	eg.SetLimit(workers)

	for i, req := range reqs {
		items[i] = BatchItem{Index: i, Request: req}
		eg.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					items[i].Err = RecoverError(r)
				}
			}()
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				return nil
			}
			items[i].Result, items[i].Err = g.Generate(ctx, req)
			return nil
		})
	}
	_ = eg.Wait()
	uniqueFileNames(items)

	errs := NewMultiError()
	for _, item := range items {
		if item.Err != nil {
			errs.Add(fmt.Errorf("proposal %d (%s): %w", item.Index+1, item.Request.Type, item.Err))
		}
	}
	g.logger.WithField("failed", errs.Len()).Info("batch of %d proposals done", len(reqs))
	return items, errs.Err()
}

// uniqueFileNames renames results whose file name, ignoring case, was taken
// by an earlier item.
func uniqueFileNames(items []BatchItem) {
	taken := make(map[string]bool, len(items))
	for i := range items {
		res := items[i].Result
		if res == nil {
			continue
		}
		name := res.FileName
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		for n := items[i].Index + 1; taken[strings.ToLower(name)]; n++ {
			name = base + "_" + strconv.Itoa(n) + ext
		}
		taken[strings.ToLower(name)] = true
		res.FileName = name
	}
}
