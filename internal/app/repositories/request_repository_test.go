package repositories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
)

func TestBuildRequestListQuery_StatusRankOrdering(t *testing.T) {
	rowsBuilder, _ := buildRequestListQuery(dto.RequestListParams{Page: 1, Limit: 20})

	sqlStr, _, err := rowsBuilder.ToSql()
	require.NoError(t, err)

	// Pending requests surface first, then the review pipeline, then the
	// terminal outcomes; ties break on recency.
	rankIdx := strings.Index(sqlStr, requestStatusRank)
	require.GreaterOrEqual(t, rankIdx, 0, "ordering must use the status rank expression")
	dateIdx := strings.Index(sqlStr, "r.submitted_date DESC")
	require.GreaterOrEqual(t, dateIdx, 0)
	assert.Less(t, rankIdx, dateIdx, "status rank must take precedence over recency")

	assert.Contains(t, requestStatusRank, "WHEN 'pending' THEN 0")
	assert.Contains(t, requestStatusRank, "WHEN 'reviewed' THEN 1")
	assert.Contains(t, requestStatusRank, "WHEN 'commented' THEN 2")
	assert.Contains(t, requestStatusRank, "WHEN 'approved' THEN 3")
	assert.Contains(t, requestStatusRank, "WHEN 'rejected' THEN 4")
	assert.Contains(t, requestStatusRank, "ELSE 5")
}

func TestBuildRequestListQuery_Filters(t *testing.T) {
	scholarID := int64(7)
	status := models.RequestStatusPending
	reqType := "travel_grant"
	priority := "high"
	params := dto.RequestListParams{
		ScholarID: &scholarID,
		Status:    &status,
		Type:      &reqType,
		Priority:  &priority,
		Search:    "conference",
		Page:      1,
		Limit:     20,
	}

	rowsBuilder, countBuilder := buildRequestListQuery(params)

	sqlStr, args, err := rowsBuilder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "r.scholar_id = $")
	assert.Contains(t, sqlStr, "r.status = $")
	assert.Contains(t, sqlStr, "r.type = $")
	assert.Contains(t, sqlStr, "r.priority = $")
	assert.Contains(t, sqlStr, "r.description ILIKE $")
	assert.Contains(t, sqlStr, "u.name ILIKE $")
	assert.Contains(t, args, int64(7))
	assert.Contains(t, args, "%conference%")

	countSql, countArgs, err := countBuilder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, countSql, "count(*)")
	assert.NotContains(t, countSql, "ORDER BY")
	assert.Equal(t, len(args), len(countArgs))
}

func TestBuildRequestListQuery_JoinsScholarOwner(t *testing.T) {
	rowsBuilder, _ := buildRequestListQuery(dto.RequestListParams{Page: 1, Limit: 20})

	sqlStr, _, err := rowsBuilder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sqlStr, "JOIN scholars s ON r.scholar_id = s.id")
	assert.Contains(t, sqlStr, "JOIN users u ON s.user_id = u.id")
}
