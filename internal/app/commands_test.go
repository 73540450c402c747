package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/chored/internal/commands"
)

func TestRunDone(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()
	_, err := svc.Plan(ctx, false)
	require.NoError(t, err)

	res, err := svc.Run(ctx, "/done dishes 30")
	require.NoError(t, err)
	assert.Equal(t, "Done: Dishes (estimate now 23 min)", res.Message)
	assert.Equal(t, []string{"dishes"}, svc.State().Plan.CompletedIDs)

	res, err = svc.Run(ctx, "done water plants")
	require.NoError(t, err)
	assert.Contains(t, res.Message, "Water plants")
}

func TestRunAddEditDelete(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()

	res, err := svc.Run(ctx, "add mop floor 7 25")
	require.NoError(t, err)
	assert.Equal(t, "Added: mop floor every 7 days, ~25 min", res.Message)

	res, err = svc.Run(ctx, "edit mop name=Mop kitchen floor est=35 last=2/1/2026")
	require.NoError(t, err)
	assert.Equal(t, "Updated: Mop kitchen floor every 7 days, ~35 min, last done 2026-02-01", res.Message)

	_, err = svc.Run(ctx, "edit mop freq=often")
	var ce *commands.CommandError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, commands.ErrCodeInvalidArgument, ce.Code)

	res, err = svc.Run(ctx, "delete mop kitchen floor")
	require.NoError(t, err)
	assert.Equal(t, "Deleted: Mop kitchen floor", res.Message)
	assert.Len(t, svc.State().Tasks, 4)
}

func TestRunRegenAndBudget(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()
	_, err := svc.Plan(ctx, false)
	require.NoError(t, err)

	res, err := svc.Run(ctx, "budget 200")
	require.NoError(t, err)
	assert.Contains(t, res.Message, "200 min")
	assert.Len(t, svc.State().Plan.PickedIDs, 3, "budget changes wait for the next plan")

	res, err = svc.Run(ctx, "regen")
	require.NoError(t, err)
	assert.Equal(t, "Plan rebuilt: 4 chores, 105 min", res.Message)
}

func TestRunUnknownTarget(t *testing.T) {
	svc, _ := seededService(t)
	_, err := svc.Run(context.Background(), "done vacuum")
	assert.ErrorIs(t, err, ErrUnknownRef)
}
