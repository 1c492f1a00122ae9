package database

import (
	"context"
	"os"
	"path/filepath"
	"sticky-board/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var drivers = []string{DriverPure, DriverCGO}

func setupTestRepo(t *testing.T, driver string) (*Repository, *DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "notes-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(driver, dbPath)
	require.NoError(t, err)

	err = db.Migrate(context.Background())
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return NewRepository(db), db, cleanup
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New("postgres", filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			_, db, cleanup := setupTestRepo(t, driver)
			defer cleanup()

			t.Run("Running twice is a no-op", func(t *testing.T) {
				require.NoError(t, db.Migrate(ctx))

				var version int
				require.NoError(t, db.QueryRow("PRAGMA user_version").Scan(&version))
				assert.Equal(t, SchemaVersion, version)
			})

			t.Run("Newer schema is rejected", func(t *testing.T) {
				_, err := db.Exec("PRAGMA user_version = 99")
				require.NoError(t, err)

				err = db.Migrate(ctx)
				assert.ErrorIs(t, err, ErrSchemaTooNew)
			})
		})
	}
}

func TestNoteOperations(t *testing.T) {
	ctx := context.Background()

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			repo, _, cleanup := setupTestRepo(t, driver)
			defer cleanup()

			t.Run("Create assigns increasing ids", func(t *testing.T) {
				first, err := repo.CreateNote(ctx, &models.Note{Color: "#ffeb3b"})
				require.NoError(t, err)
				second, err := repo.CreateNote(ctx, &models.Note{Color: "#8bc34a", Text: "two"})
				require.NoError(t, err)

				assert.Greater(t, second, first)
			})

			t.Run("Get missing note returns nil", func(t *testing.T) {
				note, err := repo.GetNote(ctx, 12345)
				require.NoError(t, err)
				assert.Nil(t, note)
			})

			t.Run("Put overwrites every column", func(t *testing.T) {
				id, err := repo.CreateNote(ctx, &models.Note{
					Color:    "red",
					Text:     "hello",
					Position: models.Position{X: 5, Y: 7},
				})
				require.NoError(t, err)

				err = repo.PutNote(ctx, &models.Note{ID: id, Color: "blue"})
				require.NoError(t, err)

				note, err := repo.GetNote(ctx, id)
				require.NoError(t, err)
				require.NotNil(t, note)
				assert.Equal(t, models.Note{ID: id, Color: "blue"}, *note)
			})

			t.Run("Put on unknown id inserts", func(t *testing.T) {
				err := repo.PutNote(ctx, &models.Note{ID: 500, Color: "green", Text: "upsert"})
				require.NoError(t, err)

				note, err := repo.GetNote(ctx, 500)
				require.NoError(t, err)
				require.NotNil(t, note)
				assert.Equal(t, "upsert", note.Text)

				next, err := repo.CreateNote(ctx, &models.Note{Color: "green"})
				require.NoError(t, err)
				assert.Greater(t, next, int64(500))
			})

			t.Run("List returns insertion order", func(t *testing.T) {
				notes, err := repo.ListNotes(ctx)
				require.NoError(t, err)
				require.NotEmpty(t, notes)
				for i := 1; i < len(notes); i++ {
					assert.Less(t, notes[i-1].ID, notes[i].ID)
				}
			})

			t.Run("Delete is idempotent", func(t *testing.T) {
				id, err := repo.CreateNote(ctx, &models.Note{Color: "pink"})
				require.NoError(t, err)

				require.NoError(t, repo.DeleteNote(ctx, id))
				require.NoError(t, repo.DeleteNote(ctx, id))

				note, err := repo.GetNote(ctx, id)
				require.NoError(t, err)
				assert.Nil(t, note)
			})

			t.Run("Clear empties the table without reusing ids", func(t *testing.T) {
				before, err := repo.CreateNote(ctx, &models.Note{Color: "gray"})
				require.NoError(t, err)

				require.NoError(t, repo.ClearNotes(ctx))

				notes, err := repo.ListNotes(ctx)
				require.NoError(t, err)
				assert.Empty(t, notes)
				assert.NotNil(t, notes)

				after, err := repo.CreateNote(ctx, &models.Note{Color: "gray"})
				require.NoError(t, err)
				assert.Greater(t, after, before)
			})
		})
	}
}
