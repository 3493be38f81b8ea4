package iocatalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gnames/bosdb/pkg/bosdb"
	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/schema"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const reparseBatch = 200

// reparsed is a herb name or an alias with its canonical form.
type reparsed struct {
	herbID      int64
	alias       string
	name        string
	canonical   string
	canonicalID string
}

// Reparse runs names through a pipeline: all names are loaded first,
// parser workers keep only the names whose canonical form changed, and
// a single saver writes them in batches.
func (s *store) Reparse(ctx context.Context) (bosdb.ReparseStats, error) {
	var stats bosdb.ReparseStats
	if s.pool == nil {
		return stats, catalog.ValidationError("parser pool",
			"is required to reparse names")
	}
	gdb, err := s.conn(ctx)
	if err != nil {
		return stats, err
	}
	start := time.Now()

	// Names are read before any writes start, SQLite does not allow
	// a writer while a read is in progress.
	names, err := loadNames(gdb, &stats)
	if err != nil {
		return stats, wrap("reparse", err)
	}

	chIn := make(chan reparsed)
	chOut := make(chan reparsed)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for _, v := range names {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case chIn <- v:
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for range s.jobs {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return s.reparseWorker(gctx, chIn, chOut)
		})
	}
	go func() {
		wg.Wait()
		close(chOut)
	}()

	g.Go(func() error {
		n, err := s.saveReparsed(gctx, chOut)
		stats.Updated = n
		return err
	})

	if err = g.Wait(); err != nil {
		return stats, err
	}
	slog.Info("Reparse finished",
		"herbs", stats.Herbs,
		"aliases", stats.Aliases,
		"updated", stats.Updated,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return stats, nil
}

func loadNames(gdb *gorm.DB, stats *bosdb.ReparseStats) ([]reparsed, error) {
	var herbs []schema.Herb
	err := gdb.Select("id", "name", "canonical", "canonical_id").
		Order("id").Find(&herbs).Error
	if err != nil {
		return nil, err
	}
	var aliases []schema.Alias
	err = gdb.Select("alias", "herb_id", "canonical").
		Order("alias").Find(&aliases).Error
	if err != nil {
		return nil, err
	}

	res := make([]reparsed, 0, len(herbs)+len(aliases))
	for _, v := range herbs {
		res = append(res, reparsed{
			herbID:      v.ID,
			name:        v.Name,
			canonical:   v.Canonical,
			canonicalID: v.CanonicalID,
		})
	}
	for _, v := range aliases {
		res = append(res, reparsed{
			alias:     v.Alias,
			name:      v.Alias,
			canonical: v.Canonical,
		})
	}
	stats.Herbs, stats.Aliases = len(herbs), len(aliases)
	return res, nil
}

// reparseWorker sends only names whose canonical form changed.
func (s *store) reparseWorker(
	ctx context.Context,
	chIn <-chan reparsed,
	chOut chan<- reparsed,
) error {
	for r := range chIn {
		can, canID := s.pool.Canonical(r.name)
		if r.alias != "" {
			canID = ""
		}
		if can == r.canonical && canID == r.canonicalID {
			continue
		}
		r.canonical, r.canonicalID = can, canID

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- r:
		}
	}
	return nil
}

func (s *store) saveReparsed(
	ctx context.Context,
	chOut <-chan reparsed,
) (int, error) {
	var total int
	batch := make([]reparsed, 0, reparseBatch)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := s.write(ctx, "save reparsed names", func(tx *gorm.DB) error {
			for _, v := range batch {
				if err := updateCanonical(tx, v); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		case r, ok := <-chOut:
			if !ok {
				return total, flush()
			}
			batch = append(batch, r)
			if len(batch) >= reparseBatch {
				if err := flush(); err != nil {
					return total, err
				}
			}
		}
	}
}

func updateCanonical(tx *gorm.DB, r reparsed) error {
	if r.alias != "" {
		return tx.Model(&schema.Alias{}).
			Where("alias = ?", r.alias).
			Update("canonical", r.canonical).Error
	}
	return tx.Model(&schema.Herb{}).
		Where("id = ?", r.herbID).
		Updates(map[string]any{
			"canonical":    r.canonical,
			"canonical_id": r.canonicalID,
		}).Error
}

// Vacuum runs VACUUM on SQLite and VACUUM ANALYZE on PostgreSQL. Both
// must run outside of a transaction.
func (s *store) Vacuum(ctx context.Context) error {
	gdb, err := s.conn(ctx)
	if err != nil {
		return err
	}
	q := "VACUUM"
	if s.op.Driver() == "postgres" {
		q = "VACUUM ANALYZE"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	if err = gdb.Exec(q).Error; err != nil {
		slog.Error("Vacuum failed", "error", err)
		return wrap("vacuum", err)
	}
	slog.Info("Vacuum finished",
		"duration", gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}
