package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
)

func TestBuildGoalUpdate_CompletedStampsCompletedAt(t *testing.T) {
	status := string(models.WorkStatusCompleted)
	sqlStr, _, err := buildGoalUpdate(9, dto.UpdateGoalRequest{Status: &status}).ToSql()
	require.NoError(t, err)

	set := updateSetClause(t, sqlStr)
	assert.Contains(t, set, "status = $")
	assert.Contains(t, set, "completed_at = $")
}

func TestBuildGoalUpdate_ReopeningLeavesCompletedAt(t *testing.T) {
	status := string(models.WorkStatusPending)
	sqlStr, _, err := buildGoalUpdate(9, dto.UpdateGoalRequest{Status: &status}).ToSql()
	require.NoError(t, err)

	set := updateSetClause(t, sqlStr)
	assert.Contains(t, set, "status = $")
	assert.NotContains(t, set, "completed_at")
}

func TestBuildGoalUpdate_PartialPatchTouchesOnlyGivenColumns(t *testing.T) {
	progress := 60
	sqlStr, args, err := buildGoalUpdate(9, dto.UpdateGoalRequest{Progress: &progress}).ToSql()
	require.NoError(t, err)

	set := updateSetClause(t, sqlStr)
	assert.Contains(t, set, "progress = $")
	assert.NotContains(t, set, "status = $")
	assert.NotContains(t, set, "completed_at")
	assert.Contains(t, args, 60)
}
