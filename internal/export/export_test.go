package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/pkg/logging"
)

var stamp = time.Date(2024, 3, 15, 9, 30, 5, 0, time.UTC)

func listing(id, title string) models.JobListing {
	return models.JobListing{
		Title:       title,
		Company:     "Acme & Sons",
		Location:    "Bengaluru",
		Experience:  "2-5 Yrs",
		Salary:      "Salary not found",
		Description: "Café <b>dashboards</b>",
		Skills:      "SQL, Python",
		Link:        "https://www.naukri.com/job-listings-" + id,
		PostedDate:  "Posted 3 days ago",
		JobID:       id,
		ExtractedAt: "2024-03-15 09:30:05",
		ParsedDate:  "2024-03-12",
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		name string
		q    models.SearchQuery
		want string
	}{
		{"full query", models.SearchQuery{JobTitle: "data analyst", Location: "New Delhi", TimeFrame: models.TimeFrameWeek}, "data_analyst_New_Delhi_week_20240315_093005"},
		{"no title", models.SearchQuery{Location: "india", TimeFrame: models.TimeFrameMonth}, "all_india_month_20240315_093005"},
		{"nothing", models.SearchQuery{}, "all_all_all_time_20240315_093005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseName(tt.q, stamp))
		})
	}
}

func TestSnapshotName(t *testing.T) {
	q := models.SearchQuery{JobTitle: "data analyst", Location: "india", TimeFrame: models.TimeFrameMonth}
	assert.Equal(t, "incremental_data_analyst_india_month_page4_20240315_093005.json", SnapshotName(q, 4, stamp))
}

func TestJSONKeepsTextAsIs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, []models.JobListing{listing("1", "Analyst")}))

	out := buf.String()
	assert.Contains(t, out, "Café <b>dashboards</b>")
	assert.Contains(t, out, "Acme & Sons")
	assert.Contains(t, out, "\n  {\n    \"title\": \"Analyst\"")
}

func TestJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteAndReadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	in := []models.JobListing{listing("1", "Analyst"), listing("2", "Engineer")}

	require.NoError(t, WriteJSON(path, in))
	out, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, []models.JobListing{listing("1", "Analyst, Senior")}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, models.Columns(), records[0])
	assert.Equal(t, "Analyst, Senior", records[1][0])
	assert.Equal(t, "2024-03-12", records[1][11])
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteExcel(path, []models.JobListing{listing("1", "Analyst"), listing("2", "Engineer")}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(excelSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.Columns(), rows[0])
	assert.Equal(t, "Engineer", rows[2][0])
	assert.Equal(t, "2", rows[2][9])
}

func TestSnapshotter(t *testing.T) {
	dir := t.TempDir()
	s := NewSnapshotter(dir, logging.NewNop())
	s.Now = func() time.Time { return stamp }
	q := models.SearchQuery{JobTitle: "data analyst", Location: "india", TimeFrame: models.TimeFrameMonth}

	t.Run("empty run writes nothing", func(t *testing.T) {
		require.NoError(t, s.Snapshot(q, 2, nil))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("writes cumulative listings", func(t *testing.T) {
		in := []models.JobListing{listing("1", "Analyst"), listing("2", "Engineer")}
		require.NoError(t, s.Snapshot(q, 2, in))

		out, err := ReadJSON(filepath.Join(dir, "incremental_data_analyst_india_month_page2_20240315_093005.json"))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestExporterSave(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, logging.NewNop())
	e.Now = func() time.Time { return stamp }
	e.Register("broken", Format{Ext: "txt", Write: func(string, []models.JobListing) error {
		return errors.New("printer on fire")
	}})
	q := models.SearchQuery{JobTitle: "data analyst", Location: "india", TimeFrame: models.TimeFrameMonth}
	base := "data_analyst_india_month_20240315_093005"

	paths, err := e.Save(q, []models.JobListing{listing("1", "Analyst")}, []string{"json", "broken", "csv", "excel", "yaml"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "printer on fire")
	assert.Contains(t, err.Error(), `unknown format "yaml"`)
	assert.Equal(t, map[string]string{
		"json":  filepath.Join(dir, base+".json"),
		"csv":   filepath.Join(dir, base+".csv"),
		"excel": filepath.Join(dir, base+".xlsx"),
	}, paths)
	for _, p := range paths {
		assert.FileExists(t, p)
	}
}

func TestExporterSaveNothing(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, logging.NewNop())

	paths, err := e.Save(models.SearchQuery{}, nil, []string{"json"})

	require.NoError(t, err)
	assert.Nil(t, paths)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type fakeValues struct {
	cleared string
	updated string
	values  [][]interface{}
	err     error
}

func (f *fakeValues) ClearValues(_ context.Context, _, rng string) error {
	f.cleared = rng
	return f.err
}

func (f *fakeValues) UpdateValues(_ context.Context, _, rng string, values [][]interface{}) error {
	f.updated = rng
	f.values = values
	return nil
}

func TestSheetsWriter(t *testing.T) {
	t.Run("replaces sheet contents", func(t *testing.T) {
		client := &fakeValues{}
		w := NewSheetsWriter(client, "sheet-id", "Listings!A1")

		require.NoError(t, w.Write(context.Background(), []models.JobListing{listing("1", "Analyst")}))

		assert.Equal(t, "Listings", client.cleared)
		assert.Equal(t, "Listings!A1", client.updated)
		require.Len(t, client.values, 2)
		assert.Equal(t, "title", client.values[0][0])
		assert.Equal(t, "Analyst", client.values[1][0])
	})

	t.Run("clear failure stops the update", func(t *testing.T) {
		client := &fakeValues{err: errors.New("quota")}
		w := NewSheetsWriter(client, "sheet-id", "Listings!A1")

		err := w.Write(context.Background(), nil)

		assert.ErrorContains(t, err, "quota")
		assert.Empty(t, client.updated)
	})
}
