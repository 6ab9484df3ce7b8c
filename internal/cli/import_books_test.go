package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/entities"
)

const catalogCSV = `isbn,title,author,year
0380795272,Krondor: The Betrayal,Raymond E. Feist,1998
1416949658,The Dark Is Rising,Susan Cooper,1973
1857231082,The Black Unicorn,Terry Brooks,nineteen
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func countBooks(t *testing.T, dbPath string) int64 {
	t.Helper()
	db, err := database.NewQuietDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	return count
}

func TestImportBooksCommand_ParseFlags(t *testing.T) {
	cmd := NewImportBooksCommand()

	err := cmd.ParseFlags([]string{"-file", "catalog.csv", "-db", "reviews.db", "-dry-run", "-verbose"})

	require.NoError(t, err)
	assert.Equal(t, "catalog.csv", cmd.FilePath)
	assert.Equal(t, "reviews.db", cmd.DatabaseURL)
	assert.True(t, cmd.DryRun)
	assert.True(t, cmd.Verbose)
}

func TestImportBooksCommand_ParseFlags_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cmd := NewImportBooksCommand()

	err := cmd.ParseFlags([]string{"-file", "catalog.csv"})

	assert.Error(t, err)
}

func TestImportBooksCommand_ParseFlags_DatabaseFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/books")
	cmd := NewImportBooksCommand()

	require.NoError(t, cmd.ParseFlags(nil))
	assert.Equal(t, "postgres://localhost/books", cmd.DatabaseURL)
}

func TestImportBooksCommand_Run(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reviews.db")
	var out bytes.Buffer

	cmd := &ImportBooksCommand{
		FilePath:    writeCatalog(t, catalogCSV),
		DatabaseURL: dbPath,
		Verbose:     true,
		Out:         &out,
	}
	require.NoError(t, cmd.Run())

	assert.Equal(t, int64(2), countBooks(t, dbPath))
	assert.Contains(t, out.String(), "Books imported: 2")
	assert.Contains(t, out.String(), "invalid year")

	// A second run finds everything already imported.
	out.Reset()
	require.NoError(t, cmd.Run())
	assert.Equal(t, int64(2), countBooks(t, dbPath))
	assert.Contains(t, out.String(), "Books imported: 0")
	assert.Contains(t, out.String(), "Already in catalog: 2")
}

func TestImportBooksCommand_DryRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reviews.db")
	var out bytes.Buffer

	cmd := &ImportBooksCommand{
		FilePath:    writeCatalog(t, catalogCSV),
		DatabaseURL: dbPath,
		DryRun:      true,
		Out:         &out,
	}
	require.NoError(t, cmd.Run())

	assert.Zero(t, countBooks(t, dbPath))
	assert.Contains(t, out.String(), "Books that would be imported: 2")
}

func TestImportBooksCommand_MissingFile(t *testing.T) {
	cmd := &ImportBooksCommand{
		FilePath:    filepath.Join(t.TempDir(), "missing.csv"),
		DatabaseURL: filepath.Join(t.TempDir(), "reviews.db"),
		Out:         &bytes.Buffer{},
	}

	err := cmd.Run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open catalog file")
}
