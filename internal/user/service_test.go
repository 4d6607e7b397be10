package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/tripweaver/internal/api/models"
	"github.com/tripweaver/tripweaver/internal/user"
)

func TestService_EnsureProfile(t *testing.T) {
	ctx := context.Background()
	svc := user.NewService(user.NewInMemoryRepository())

	require.NoError(t, svc.EnsureProfile(ctx, "usr_alice", "Alice"))

	me, err := svc.GetMe(ctx, "usr_alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", me.DisplayName)

	// A second call must not reset the profile.
	name := "Alice Liddell"
	_, err = svc.UpdateMe(ctx, "usr_alice", &models.MeInput{DisplayName: &name})
	require.NoError(t, err)
	require.NoError(t, svc.EnsureProfile(ctx, "usr_alice", "Alice"))

	me, err = svc.GetMe(ctx, "usr_alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", me.DisplayName)
}

func TestService_GetMe_MaterializesMissingProfile(t *testing.T) {
	svc := user.NewService(user.NewInMemoryRepository())

	me, err := svc.GetMe(context.Background(), "usr_legacy")
	require.NoError(t, err)
	assert.Equal(t, "usr_legacy", me.UserID)
	assert.Empty(t, me.DisplayName)
}

func TestService_UpdateMe_MaterializesMissingProfile(t *testing.T) {
	ctx := context.Background()
	svc := user.NewService(user.NewInMemoryRepository())

	name := "Dana"
	me, err := svc.UpdateMe(ctx, "usr_legacy", &models.MeInput{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "usr_legacy", me.UserID)
	assert.Equal(t, "Dana", me.DisplayName)

	// The materialized profile persists.
	me, err = svc.GetMe(ctx, "usr_legacy")
	require.NoError(t, err)
	assert.Equal(t, "Dana", me.DisplayName)
}

func TestService_UpdateMe_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc := user.NewService(user.NewInMemoryRepository())
	require.NoError(t, svc.EnsureProfile(ctx, "usr_alice", "Alice"))

	avatar := "https://img.example/alice.png"
	me, err := svc.UpdateMe(ctx, "usr_alice", &models.MeInput{AvatarURL: &avatar})
	require.NoError(t, err)

	assert.Equal(t, "Alice", me.DisplayName, "absent field is untouched")
	assert.Equal(t, avatar, me.AvatarURL)
	assert.Equal(t, avatar, svc.AvatarURL(ctx, "usr_alice"))
}

func TestService_AvatarURL_MissingProfile(t *testing.T) {
	svc := user.NewService(user.NewInMemoryRepository())
	assert.Empty(t, svc.AvatarURL(context.Background(), "usr_nobody"))
}
