package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/storage/schema"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/storage/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewConnection(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, schema.Ensure(context.Background(), db, schema.SQLite))
	return db
}

var testNow = time.Date(2024, 3, 1, 12, 30, 0, 123456000, time.UTC)

func createProject(t *testing.T, r *ProjectRepository, title string, goal int64) *domain.Project {
	t.Helper()
	p := domain.NewProject(domain.ProjectFields{Title: title, Description: "D", Goal: goal, Unit: "pages"}, testNow)
	require.NoError(t, r.Create(context.Background(), p))
	return p
}

func TestProjectRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := NewProjectRepository(newTestDB(t))

	p := createProject(t, r, "Read", 5)
	assert.NotZero(t, p.ID)

	got, err := r.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Read", got.Title)
	assert.Equal(t, "D", got.Description)
	assert.Equal(t, int64(5), got.Goal)
	assert.Equal(t, "pages", got.Unit)
	assert.True(t, testNow.Equal(got.CreatedAsOf), "created_asof %s", got.CreatedAsOf)
	assert.Nil(t, got.UpdatedAsOf)
	assert.NotNil(t, got.Progress)
	assert.Empty(t, got.Progress)
}

func TestProjectRepository_GetMissing(t *testing.T) {
	r := NewProjectRepository(newTestDB(t))

	_, err := r.Get(context.Background(), 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "No project with id 9999", err.Error())
}

func TestProjectRepository_ListNestsProgress(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	projects := NewProjectRepository(db)
	progress := NewProgressRepository(db)

	empty, err := projects.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	a := createProject(t, projects, "A", 10)
	b := createProject(t, projects, "B", 3)
	for _, v := range []int64{2, 4} {
		require.NoError(t, progress.Create(ctx, domain.NewProgress(b.ID, domain.ProgressFields{Value: v}, testNow)))
	}

	list, err := projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Empty(t, list[0].Progress)
	assert.Equal(t, b.ID, list[1].ID)
	require.Len(t, list[1].Progress, 2)
	assert.Equal(t, int64(2), list[1].Progress[0].Value)
	assert.Equal(t, int64(4), list[1].Progress[1].Value)
}

func TestProjectRepository_Update(t *testing.T) {
	ctx := context.Background()
	r := NewProjectRepository(newTestDB(t))
	p := createProject(t, r, "Old", 1)

	later := testNow.Add(time.Hour)
	p.Replace(domain.ProjectFields{Title: "New", Description: "D2", Goal: 8, Unit: "km"}, later)
	require.NoError(t, r.Update(ctx, p))

	got, err := r.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "D2", got.Description)
	assert.Equal(t, int64(8), got.Goal)
	assert.Equal(t, "km", got.Unit)
	require.NotNil(t, got.UpdatedAsOf)
	assert.True(t, later.Equal(*got.UpdatedAsOf))

	missing := &domain.Project{ID: 9999, Title: "X", Description: "Y", Unit: "hours", UpdatedAsOf: &later}
	assert.ErrorIs(t, r.Update(ctx, missing), domain.ErrNotFound)
}

func TestProjectRepository_DeleteCascadesProgress(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	projects := NewProjectRepository(db)
	progress := NewProgressRepository(db)

	p := createProject(t, projects, "A", 10)
	entry := domain.NewProgress(p.ID, domain.ProgressFields{Value: 3}, testNow)
	require.NoError(t, progress.Create(ctx, entry))

	require.NoError(t, projects.Delete(ctx, p.ID))

	_, err := projects.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = progress.Get(ctx, entry.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = projects.Delete(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "No project with id "+strconv.FormatInt(p.ID, 10), err.Error())
}

func TestProjectRepository_Exists(t *testing.T) {
	ctx := context.Background()
	r := NewProjectRepository(newTestDB(t))
	p := createProject(t, r, "A", 1)

	ok, err := r.Exists(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Exists(ctx, p.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProjectRepository_Stats(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	projects := NewProjectRepository(db)
	progress := NewProgressRepository(db)

	done := createProject(t, projects, "done", 5)
	open := createProject(t, projects, "open", 100)
	for _, e := range []struct{ id, v int64 }{{done.ID, 3}, {done.ID, 2}, {open.ID, 1}} {
		require.NoError(t, progress.Create(ctx, domain.NewProgress(e.id, domain.ProgressFields{Value: e.v}, testNow)))
	}

	s, err := projects.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Projects: 2, ProgressEntries: 3, GoalsReached: 1}, s)
}

func TestProjectRepository_DeleteRollsBackWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM project_progress WHERE project_id = $1;`)).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM project WHERE id = $1;`)).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = NewProjectRepository(db).Delete(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_WrapsDriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM project WHERE id = $1;`)).
		WithArgs(int64(1)).
		WillReturnError(boom)

	_, err = NewProjectRepository(db).Get(context.Background(), 1)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_CreateMapsPostgresForeignKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO project_progress`)).
		WillReturnError(&pq.Error{Code: "23503"})

	p := domain.NewProgress(77, domain.ProgressFields{Value: 1}, testNow)
	err = NewProgressRepository(db).Create(context.Background(), p)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "No project with id 77", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}
