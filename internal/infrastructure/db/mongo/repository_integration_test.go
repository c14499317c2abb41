//go:build integration

package mongo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/frcparts/components-api/internal/core/domain"
)

func setupDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate mongo container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, db, err := Connect(ctx, Config{URI: uri, Database: fmt.Sprintf("frc_test_%d", time.Now().UnixNano())})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return db
}

func strPtr(s string) *string { return &s }

func TestUserRepository_Integration(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	seq := NewSequence(db)
	repo := NewUserRepository(db, seq)
	require.NoError(t, EnsureIndexes(ctx, repo))

	alice, err := repo.Create(ctx, &domain.User{
		Username: "alice", Email: "alice@x.com", PasswordHash: "$2a$12$hash",
		TeamID: strPtr("teamA"), Role: domain.RoleMember, IsActive: true, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)

	bob, err := repo.Create(ctx, &domain.User{Username: "bob", Email: "bob@x.com", Role: domain.RoleMember, IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob.ID)

	_, err = repo.Create(ctx, &domain.User{Username: "alice", Email: "other@x.com", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrUserExists)
	_, err = repo.Create(ctx, &domain.User{Username: "alice2", Email: "alice@x.com", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "teamA", *found.TeamID)
	assert.True(t, found.IsActive)

	byEmail, err := repo.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail.TeamID)

	_, err = repo.FindByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, repo.SetActive(ctx, alice.ID, false))
	require.NoError(t, repo.UpdatePasswordHash(ctx, alice.ID, "$2a$13$newer"))
	found, err = repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, found.IsActive)
	assert.Equal(t, "$2a$13$newer", found.PasswordHash)

	assert.ErrorIs(t, repo.SetActive(ctx, 999, false), domain.ErrUserNotFound)
}

func TestCatalogRepository_Integration(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	repo := NewCatalogRepository(db)
	require.NoError(t, EnsureIndexes(ctx, repo))

	desc := "Brushless motor"
	require.NoError(t, repo.Create(ctx, &domain.PublicComponent{ID: "REV-21-1650", Name: "NEO", Vendor: "REV Robotics", Category: "Motors", Cost: 40, Description: &desc}))
	require.NoError(t, repo.Create(ctx, &domain.PublicComponent{ID: "am-0255", Name: "CIM Motor", Vendor: "AndyMark", Category: "Motors", Cost: 30}))
	require.NoError(t, repo.Create(ctx, &domain.PublicComponent{ID: "REV-11-1271", Name: "Through Bore Encoder", Vendor: "REV Robotics", Category: "Sensors", Cost: 48}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.PublicComponent{ID: "am-0255", Name: "dup"}), domain.ErrComponentExists)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	brushless, err := repo.Search(ctx, domain.CatalogFilter{Text: "BRUSHLESS"})
	require.NoError(t, err)
	require.Len(t, brushless, 1)
	assert.Equal(t, "REV-21-1650", brushless[0].ID)

	cheapRev, err := repo.Search(ctx, domain.CatalogFilter{Vendor: "rev", MaxCost: 45})
	require.NoError(t, err)
	require.Len(t, cheapRev, 1)
	assert.Equal(t, "NEO", cheapRev[0].Name)

	categories, err := repo.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Motors", "Sensors"}, categories)

	vendors, err := repo.DistinctVendors(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AndyMark", "REV Robotics"}, vendors)

	cost := 35.0
	ok, err := repo.Update(ctx, "am-0255", domain.PublicComponentPatch{Cost: &cost})
	require.NoError(t, err)
	assert.True(t, ok)
	updated, err := repo.FindByID(ctx, "am-0255")
	require.NoError(t, err)
	assert.Equal(t, 35.0, updated.Cost)

	ok, err = repo.Update(ctx, "missing", domain.PublicComponentPatch{Cost: &cost})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, "am-0255")
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = repo.FindByID(ctx, "am-0255")
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)
}

func TestInventoryAndActivityRepositories_Integration(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	seq := NewSequence(db)
	inventory := NewInventoryRepository(db, seq)
	activity := NewActivityRepository(db)
	require.NoError(t, EnsureIndexes(ctx, inventory, activity))

	neo := &domain.TeamComponent{TeamID: "teamA", Name: "NEO", Vendor: "REV", Quantity: 4}
	require.NoError(t, inventory.Create(ctx, neo))
	falcon := &domain.TeamComponent{TeamID: "teamB", Name: "Falcon", Vendor: "VEX", Quantity: 2}
	require.NoError(t, inventory.Create(ctx, falcon))
	assert.Equal(t, int64(1), neo.ID)
	assert.Equal(t, int64(2), falcon.ID)
	assert.False(t, neo.LastUpdated.IsZero())

	teamA, err := inventory.ListByTeam(ctx, "teamA")
	require.NoError(t, err)
	require.Len(t, teamA, 1)
	assert.Equal(t, "NEO", teamA[0].Name)

	ok, err := inventory.SetQuantity(ctx, neo.ID, 9)
	require.NoError(t, err)
	assert.True(t, ok)
	row, err := inventory.FindByID(ctx, neo.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, row.Quantity)

	loc := "Bin 4"
	ok, err = inventory.Update(ctx, neo.ID, domain.TeamComponentPatch{Location: &loc})
	require.NoError(t, err)
	assert.True(t, ok)
	row, _ = inventory.FindByID(ctx, neo.ID)
	assert.Equal(t, "Bin 4", *row.Location)

	ok, err = inventory.Delete(ctx, falcon.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = inventory.Delete(ctx, falcon.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, activity.Insert(ctx, &domain.InventoryEvent{
			TeamID: "teamA", ComponentID: int64(i + 1), Action: domain.ActionCreated, Actor: "alice", Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, activity.Insert(ctx, &domain.InventoryEvent{TeamID: "teamB", ComponentID: 9, Action: domain.ActionDeleted, Timestamp: base}))

	events, err := activity.ListByTeam(ctx, "teamA", 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(3), events[0].ComponentID)
	assert.Equal(t, int64(2), events[1].ComponentID)
}
