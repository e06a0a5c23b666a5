package projection_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chittaranjan27/Task-Board-Application/domain"
	"github.com/chittaranjan27/Task-Board-Application/usecase/projection"
)

// today matches the filter scenarios below
var today = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testBoard() *domain.Board {
	return &domain.Board{
		ID:   "b1",
		Name: "Sprint 1",
		Columns: []domain.Column{
			{
				ID:      "todo",
				Title:   "To Do",
				BoardID: "b1",
				Order:   0,
				Tasks: []domain.Task{
					// stored out of order on purpose
					{ID: "t2", Title: "Fix login bug", Description: "OAuth flow", Priority: domain.PriorityHigh, DueDate: date(2024, 6, 14), ColumnID: "todo", Order: 1},
					{ID: "t1", Title: "Write release notes", Description: "for v2", Priority: domain.PriorityLow, DueDate: date(2024, 6, 15), ColumnID: "todo", Order: 0},
					{ID: "t3", Title: "Plan retro", Description: "", Priority: domain.PriorityMedium, ColumnID: "todo", Order: 2},
				},
			},
			{
				ID:      "doing",
				Title:   "Doing",
				BoardID: "b1",
				Order:   1,
				Tasks: []domain.Task{
					{ID: "t4", Title: "Ship the LOGIN page", Description: "", Priority: domain.PriorityHigh, DueDate: date(2024, 6, 22), ColumnID: "doing", Order: 0},
					{ID: "t5", Title: "Refactor storage", Description: "bolt bucket layout", Priority: domain.PriorityLow, DueDate: date(2024, 6, 23), ColumnID: "doing", Order: 1},
				},
			},
		},
	}
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestUnfilteredReturnsEverythingSortedByOrder(t *testing.T) {
	got := projection.Tasks(testBoard(), projection.Filter{}, today)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(got["todo"]))
	assert.Equal(t, []string{"t4", "t5"}, ids(got["doing"]))
}

func TestProjectionIsPure(t *testing.T) {
	b := testBoard()
	f := projection.Filter{Search: "login", Priority: domain.PriorityHigh}

	first := projection.Tasks(b, f, today)
	second := projection.Tasks(b, f, today)
	assert.Equal(t, first, second, "identical inputs must yield identical output")

	// the canonical board is left untouched
	assert.Equal(t, testBoard(), b)
}

func TestSearchMatchesTitleAndDescription(t *testing.T) {
	got := projection.Tasks(testBoard(), projection.Filter{Search: "login"}, today)
	assert.Equal(t, []string{"t2"}, ids(got["todo"]), "case-insensitive title match")
	assert.Equal(t, []string{"t4"}, ids(got["doing"]))

	got = projection.Tasks(testBoard(), projection.Filter{Search: "bolt"}, today)
	assert.Empty(t, got["todo"])
	assert.Equal(t, []string{"t5"}, ids(got["doing"]), "description matches too")
}

func TestPriorityFilter(t *testing.T) {
	got := projection.Tasks(testBoard(), projection.Filter{Priority: domain.PriorityHigh}, today)
	assert.Equal(t, []string{"t2"}, ids(got["todo"]))
	assert.Equal(t, []string{"t4"}, ids(got["doing"]))

	got = projection.Tasks(testBoard(), projection.Filter{Priority: projection.PriorityAll}, today)
	assert.Len(t, got["todo"], 3)
}

func TestDueDateBuckets(t *testing.T) {
	b := testBoard()

	// overdue: strictly before today; empty due dates never match
	got := projection.Tasks(b, projection.Filter{Due: projection.BucketOverdue}, today)
	assert.Equal(t, []string{"t2"}, ids(got["todo"]))
	assert.Empty(t, got["doing"])

	got = projection.Tasks(b, projection.Filter{Due: projection.BucketToday}, today)
	assert.Equal(t, []string{"t1"}, ids(got["todo"]))

	// week: today through today+7 inclusive; t5 is due on day 8
	got = projection.Tasks(b, projection.Filter{Due: projection.BucketWeek}, today)
	assert.Equal(t, []string{"t1"}, ids(got["todo"]))
	assert.Equal(t, []string{"t4"}, ids(got["doing"]))
}

func TestFiltersCompose(t *testing.T) {
	f := projection.Filter{
		Search:   "fix",
		Priority: domain.PriorityHigh,
		Due:      projection.BucketOverdue,
	}
	got := projection.Tasks(testBoard(), f, today)
	assert.Equal(t, []string{"t2"}, ids(got["todo"]))
	assert.Empty(t, got["doing"])

	// tightening any one criterion empties the result
	f.Priority = domain.PriorityLow
	got = projection.Tasks(testBoard(), f, today)
	assert.Empty(t, got["todo"])
}

func TestNilBoard(t *testing.T) {
	got := projection.Tasks(nil, projection.Filter{}, today)
	assert.Empty(t, got)
}

func TestParseBucket(t *testing.T) {
	b, ok := projection.ParseBucket(" Overdue ")
	require.True(t, ok)
	assert.Equal(t, projection.BucketOverdue, b)

	_, ok = projection.ParseBucket("someday")
	assert.False(t, ok)
}
