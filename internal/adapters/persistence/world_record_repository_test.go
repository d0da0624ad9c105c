package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonycore-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonycore-go/internal/domain/colony"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/test/helpers"
)

func testWorldRecord(t *testing.T, id string, seenAt shared.Tick) *colony.WorldRecord {
	t.Helper()
	rec, err := colony.NewWorldRecord(id, 3, seenAt)
	require.NoError(t, err)
	return rec
}

func TestWorldRepository_SaveAndFind(t *testing.T) {
	repo := persistence.NewGormWorldRepository(helpers.NewTestDB(t))
	ctx := context.Background()

	rec := testWorldRecord(t, "W1", 10)
	rec.ExtractionNodeIDs = []string{"node-a", "node-b"}
	rec.Relays.ControllerRelayID = "relay-ctrl"
	rec.Relays.RefreshedAt = 7
	rec.Stats.AgentsProduced = 4
	require.NoError(t, repo.Save(ctx, rec))

	found, err := repo.FindByID(ctx, "W1")
	require.NoError(t, err)
	assert.Equal(t, rec, found)
}

func TestWorldRepository_SaveIsUpsert(t *testing.T) {
	repo := persistence.NewGormWorldRepository(helpers.NewTestDB(t))
	ctx := context.Background()

	rec := testWorldRecord(t, "W1", 10)
	require.NoError(t, repo.Save(ctx, rec))

	rec.ObserveTier(5)
	rec.MarkSeen(20)
	require.NoError(t, repo.Save(ctx, rec))

	found, err := repo.FindByID(ctx, "W1")
	require.NoError(t, err)
	assert.Equal(t, 5, found.Tier)
	assert.Equal(t, shared.Tick(20), found.SeenAt)
}

func TestWorldRepository_FindMissing(t *testing.T) {
	repo := persistence.NewGormWorldRepository(helpers.NewTestDB(t))

	_, err := repo.FindByID(context.Background(), "ghost")

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestWorldRepository_ListAllOrdered(t *testing.T) {
	repo := persistence.NewGormWorldRepository(helpers.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testWorldRecord(t, "W2", 10)))
	require.NoError(t, repo.Save(ctx, testWorldRecord(t, "W1", 10)))

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "W1", records[0].ID)
	assert.Equal(t, "W2", records[1].ID)
}

func TestWorldRepository_DeleteUnseen(t *testing.T) {
	repo := persistence.NewGormWorldRepository(helpers.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testWorldRecord(t, "W-old", 100)))
	require.NoError(t, repo.Save(ctx, testWorldRecord(t, "W-live", 900)))

	removed, err := repo.DeleteUnseen(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.FindByID(ctx, "W-old")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = repo.FindByID(ctx, "W-live")
	assert.NoError(t, err)
}
