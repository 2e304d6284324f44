package contacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	content := "email,first_name,company,source\n" +
		"alice@example.org,Alice,Initech,webinar\n" +
		"bob@example.org,Bob,,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := Load(path)
	require.NoError(t, err)

	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{"email", "first_name", "company", "source"}, table.Header)
	assert.Equal(t, "alice@example.org", table.Records[0].Email)
	assert.Equal(t, "Initech", table.Records[0].Company)
	assert.Equal(t, "webinar", table.Records[0].Extra["source"])
	assert.Equal(t, "Bob", table.Records[1].FirstName)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadEmptyFile(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestWriteValidPreservesColumns(t *testing.T) {
	table, err := Read(strings.NewReader("source,email,first_name\nnewsletter,carl@example.org,Carl\n"))
	require.NoError(t, err)

	// Simulate a typo correction: the corrected email must land back in the
	// original email column.
	table.Records[0].Email = "carl@gmail.com"

	out := filepath.Join(t.TempDir(), "valid.csv")
	require.NoError(t, table.WriteValid(out, table.Records))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "source,email,first_name", lines[0])
	assert.Equal(t, "newsletter,carl@gmail.com,Carl", lines[1])
}

func TestWriteInvalidAppendsErrors(t *testing.T) {
	table, err := Read(strings.NewReader("email,first_name\ntest@example.com,John\n"))
	require.NoError(t, err)

	table.Records[0].ValidationErrors = []string{
		"Appears to be test/placeholder data",
		"Disposable email address",
	}

	out := filepath.Join(t.TempDir(), "invalid.csv")
	require.NoError(t, table.WriteInvalid(out, table.Records))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "email,first_name,validation_errors", lines[0])
	assert.Contains(t, lines[1], "Appears to be test/placeholder data; Disposable email address")
}
