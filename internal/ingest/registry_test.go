package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akave-ai/ledgerdesk/internal/ingest"
)

func TestRegistry_Default(t *testing.T) {
	r := ingest.DefaultRegistry()
	assert.Equal(t, []string{"csv", "json", "xlsx", "xml"}, r.ListRegistered())

	infos := r.AllFormatsInfo()
	require.Len(t, infos, 4)
	assert.Equal(t, "csv", infos[0].Format)
	assert.Equal(t, []string{".csv"}, infos[0].Extensions)
	assert.NotEmpty(t, infos[0].Description)
}

func TestRegistry_Get(t *testing.T) {
	r := ingest.DefaultRegistry()

	p, err := r.Get("json")
	require.NoError(t, err)
	assert.IsType(t, &ingest.JSONParser{}, p)

	_, err = r.Get("yaml")
	assert.ErrorIs(t, err, ingest.ErrUnsupportedFormat)
}

func TestRegistry_FormatForFilename(t *testing.T) {
	r := ingest.DefaultRegistry()
	tests := []struct {
		filename string
		format   string
		wantErr  bool
	}{
		{filename: "tickets.csv", format: "csv"},
		{filename: "TICKETS.CSV", format: "csv"},
		{filename: "export.Json", format: "json"},
		{filename: "dump.xml", format: "xml"},
		{filename: "sheet.xlsx", format: "xlsx"},
		{filename: "notes.txt", wantErr: true},
		{filename: "noextension", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			got, err := r.FormatForFilename(tc.filename)
			if tc.wantErr {
				assert.ErrorIs(t, err, ingest.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.format, got)
		})
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := ingest.NewRegistry()
	assert.Empty(t, r.ListRegistered())
	r.Register(&ingest.CSVParser{})
	r.Register(&ingest.CSVParser{})
	assert.Equal(t, []string{"csv"}, r.ListRegistered())
}

type stubParser struct {
	format string
	exts   []string
}

func (p stubParser) Info() ingest.FormatInfo {
	return ingest.FormatInfo{Format: p.format, Extensions: p.exts}
}

func (p stubParser) Parse([]byte) ingest.Result { return ingest.Result{} }

func TestRegistry_FormatForFilenameSharedExtension(t *testing.T) {
	r := ingest.NewRegistry()
	r.Register(stubParser{format: "tsv", exts: []string{".txt"}})
	r.Register(stubParser{format: "plain", exts: []string{".txt"}})
	r.Register(stubParser{format: "notes", exts: []string{".md", ".txt"}})

	for range 50 {
		got, err := r.FormatForFilename("export.TXT")
		require.NoError(t, err)
		assert.Equal(t, "notes", got)
	}
}
