package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
)

func TestBuildScholarListQuery_Defaults(t *testing.T) {
	rowsBuilder, countBuilder := buildScholarListQuery(dto.ScholarListParams{Page: 1, Limit: 20})

	sqlStr, args, err := rowsBuilder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "FROM scholars s")
	assert.Contains(t, sqlStr, "JOIN users u ON s.user_id = u.id")
	assert.Contains(t, sqlStr, "ORDER BY s.created_at DESC")
	assert.Contains(t, sqlStr, "LIMIT 20")
	assert.Contains(t, sqlStr, "OFFSET 0")
	assert.Empty(t, args)

	countSql, countArgs, err := countBuilder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, countSql, "count(*)")
	assert.NotContains(t, countSql, "ORDER BY")
	assert.Empty(t, countArgs)
}

func TestBuildScholarListQuery_FiltersAndSearch(t *testing.T) {
	program := "Computer Science"
	year := 2
	status := models.ScholarStatusActive
	params := dto.ScholarListParams{
		Program: &program,
		Year:    &year,
		Status:  &status,
		Search:  "ada",
		Page:    1,
		Limit:   20,
	}

	rowsBuilder, countBuilder := buildScholarListQuery(params)

	sqlStr, args, err := rowsBuilder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "s.program = $")
	assert.Contains(t, sqlStr, "s.year = $")
	assert.Contains(t, sqlStr, "s.status = $")
	assert.Contains(t, sqlStr, "u.name ILIKE $")
	assert.Contains(t, sqlStr, "u.email ILIKE $")
	assert.Contains(t, sqlStr, "s.university ILIKE $")
	assert.Contains(t, args, "Computer Science")
	assert.Contains(t, args, "%ada%")

	// Count query carries the same filters so totals match the page
	countSql, countArgs, err := countBuilder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, countSql, "s.program = $")
	assert.Contains(t, countSql, "u.name ILIKE $")
	assert.Equal(t, len(args), len(countArgs))
}

func TestBuildScholarListQuery_SortWhitelist(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"by name ascending", "name", "asc", "ORDER BY u.name ASC"},
		{"by last activity", "lastActivity", "desc", "ORDER BY s.last_activity DESC"},
		{"unknown key falls back", "password", "asc", "ORDER BY s.created_at ASC"},
		{"unknown order falls back", "name", "sideways", "ORDER BY u.name DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rowsBuilder, _ := buildScholarListQuery(dto.ScholarListParams{
				SortBy:    tt.sortBy,
				SortOrder: tt.sortOrder,
				Page:      1,
				Limit:     20,
			})
			sqlStr, _, err := rowsBuilder.ToSql()
			require.NoError(t, err)
			assert.Contains(t, sqlStr, tt.want)
		})
	}
}

func TestBuildScholarListQuery_Offset(t *testing.T) {
	rowsBuilder, _ := buildScholarListQuery(dto.ScholarListParams{Page: 3, Limit: 10})

	sqlStr, _, err := rowsBuilder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sqlStr, "LIMIT 10")
	assert.Contains(t, sqlStr, "OFFSET 20")
}
