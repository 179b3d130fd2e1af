package repositories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarbase/scholarbase/internal/app/models"
)

// updateSetClause cuts a generated UPDATE down to everything before the
// RETURNING suffix, which also lists completed_at as an output column.
func updateSetClause(t *testing.T, sqlStr string) string {
	t.Helper()
	idx := strings.Index(sqlStr, "RETURNING")
	require.Greater(t, idx, 0)
	return sqlStr[:idx]
}

func TestBuildTaskStatusUpdate_CompletedStampsCompletedAt(t *testing.T) {
	sqlStr, args, err := buildTaskStatusUpdate(3, models.WorkStatusCompleted).ToSql()
	require.NoError(t, err)

	set := updateSetClause(t, sqlStr)
	assert.Contains(t, set, "completed_at = $")
	assert.Len(t, args, 4)
}

func TestBuildTaskStatusUpdate_ReopeningLeavesCompletedAt(t *testing.T) {
	for _, status := range []models.WorkStatus{models.WorkStatusPending, models.WorkStatusInProgress} {
		t.Run(string(status), func(t *testing.T) {
			sqlStr, args, err := buildTaskStatusUpdate(3, status).ToSql()
			require.NoError(t, err)

			set := updateSetClause(t, sqlStr)
			assert.Contains(t, set, "status = $")
			assert.NotContains(t, set, "completed_at")
			assert.Len(t, args, 3)
		})
	}
}
