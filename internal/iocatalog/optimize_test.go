package iocatalog_test

import (
	"context"
	"testing"

	"github.com/gnames/bosdb/internal/iocatalog"
	"github.com/gnames/bosdb/internal/iotesting"
	"github.com/gnames/bosdb/pkg/bosdb"
	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/gnames/bosdb/pkg/parserpool"
	"github.com/gnames/gnuuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReparse(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.GetTestConfig(t)
	op := iotesting.OpenStore(t, cfg)

	// names stored without a parser have no canonical forms
	plain := iocatalog.New(op, cfg, nil)
	herbs, err := plain.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)
	mint, err := plain.CreateHerb(ctx, herbs.ID,
		catalog.HerbAttrs{Name: "Mentha piperita L."})
	require.NoError(t, err)
	_, err = plain.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "peppermint"})
	require.NoError(t, err)
	_, err = plain.AttachAlias(ctx, mint.ID, "Mentha spicata L.")
	require.NoError(t, err)

	_, err = plain.Reparse(ctx)
	assert.Equal(t, errcode.ValidationError, catalog.Code(err))

	pool := parserpool.NewPool(2)
	t.Cleanup(pool.Close)
	cat := iocatalog.New(op, cfg, pool)

	stats, err := cat.Reparse(ctx)
	require.NoError(t, err)
	assert.Equal(t, bosdb.ReparseStats{Herbs: 2, Aliases: 1, Updated: 2}, stats)

	it, err := cat.GetItem(ctx, mint.ID)
	require.NoError(t, err)
	h, ok := it.Herb()
	require.True(t, ok)
	assert.Equal(t, "Mentha piperita", h.Canonical)
	assert.Equal(t, gnuuid.New("Mentha piperita").String(), h.CanonicalID)

	aliases, err := cat.ListAliases(ctx, mint.ID)
	require.NoError(t, err)
	require.Len(t, aliases, 1)
	assert.Equal(t, "Mentha spicata", aliases[0].Canonical)

	t.Run("second run changes nothing", func(t *testing.T) {
		stats, err := cat.Reparse(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Updated)
	})
}

func TestVacuum(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	_, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)
	assert.NoError(t, cat.Vacuum(ctx))
}
