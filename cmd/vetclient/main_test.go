package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.vetclinic.dev/vetclient/clients"
	"go.vetclinic.dev/vetclient/session"
	"go.vetclinic.dev/vetclient/store"
	"gopkg.in/yaml.v2"
)

func TestEditCommand(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "veterinary_db.sqlite3")
	var out = withIO(t, "a\nJane\nq\n")

	var parser = newParser()
	var _, err = parser.ParseArgs([]string{"--store.path", path, "edit"})
	require.NoError(t, err)
	require.NotNil(t, parser.Active)
	require.NoError(t, runDefault(parser)) // No-op, as "edit" already ran.

	require.Contains(t, out.String(), "First Name updated to: Jane")
	require.Equal(t, "Jane", fetch(t, path, 50).FirstName)
}

func TestDefaultCommandIsEdit(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "veterinary_db.sqlite3")
	var out = withIO(t, "g\nV4K 1A1\nq\n")

	var parser = newParser()
	var _, err = parser.ParseArgs([]string{"--store.path", path})
	require.NoError(t, err)
	require.Nil(t, parser.Active)
	require.NoError(t, runDefault(parser))

	require.True(t, strings.HasSuffix(out.String(), "Exiting... Goodbye!\n"))
	require.Equal(t, "V4K 1A1", fetch(t, path, 50).PostalCode)
}

func TestEditOfMissingClient(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "veterinary_db.sqlite3")
	var out = withIO(t, "q\n")

	defer func(id int64) { editCfg.ClientID = id }(editCfg.ClientID)

	var parser = newParser()
	var _, err = parser.ParseArgs([]string{"--store.path", path, "edit", "--client-id", "51"})
	require.NoError(t, err)
	require.Equal(t, "Client not found!\n", out.String())
}

func TestSeedCommand(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "veterinary_db.sqlite3")
	var out = withIO(t, "")

	for range []int{0, 1} {
		var _, err = newParser().ParseArgs([]string{"--store.path", path, "seed"})
		require.NoError(t, err)
	}
	require.Equal(t, "Seeded client 50.\nClient 50 already exists.\n", out.String())
	require.Equal(t, clients.Sample(), fetch(t, path, 50))
}

func TestShowCommand(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "veterinary_db.sqlite3")
	var out = withIO(t, "")

	var _, err = newParser().ParseArgs([]string{"--store.path", path, "seed"})
	require.NoError(t, err)

	for _, format := range []string{"text", "table", "yaml", "json"} {
		out.Reset()
		_, err = newParser().ParseArgs([]string{"--store.path", path, "show", "--format", format})
		require.NoError(t, err)

		var expect bytes.Buffer
		require.NoError(t, writeRecord(&expect, clients.Sample(), format))
		require.Equal(t, expect.String(), out.String(), format)
	}

	_, err = newParser().ParseArgs([]string{"--store.path", path, "show", "--client-id", "51"})
	require.Equal(t, clients.ErrNotFound, errors.Cause(err))
}

func TestWriteRecordFormats(t *testing.T) {
	var r = clients.Sample()
	var buf bytes.Buffer

	require.NoError(t, writeRecord(&buf, r, "text"))
	require.Contains(t, buf.String(), "Postal Code: V4M3B7\n")

	buf.Reset()
	require.NoError(t, writeRecord(&buf, r, "table"))
	require.Contains(t, buf.String(), "950 53rd Street")
	require.Contains(t, buf.String(), "joe@lunchbox.ca")

	buf.Reset()
	require.NoError(t, writeRecord(&buf, r, "yaml"))
	var fromYAML clients.Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	require.Equal(t, r, fromYAML)
	require.Contains(t, buf.String(), "phone_num: \"6049222222\"\n")

	buf.Reset()
	require.NoError(t, writeRecord(&buf, r, "json"))
	var fromJSON clients.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	require.Equal(t, r, fromJSON)

	require.EqualError(t, writeRecord(&buf, r, "xml"), `unknown format "xml"`)
}

func TestMetricsFileIsWritten(t *testing.T) {
	var dir = t.TempDir()
	var metricsPath = filepath.Join(dir, "vetclient.prom")
	withIO(t, "i\nq\n")

	var _, err = newParser().ParseArgs([]string{
		"--store.path", filepath.Join(dir, "veterinary_db.sqlite3"),
		"--diagnostics.metrics-file", metricsPath,
		"edit",
	})
	require.NoError(t, err)
	defer func() { baseCfg.Diagnostics.MetricsFile = "" }()

	var b, rErr = os.ReadFile(metricsPath)
	require.NoError(t, rErr)
	require.Contains(t, string(b), `vetclient_menu_choices_total{choice="i"}`)
	require.Contains(t, string(b), `vetclient_store_operations_total{operation="fetch",status="ok"}`)
}

// withIO swaps operator input & output for the duration of the test.
func withIO(t *testing.T, input string) *bytes.Buffer {
	var out = new(bytes.Buffer)
	var prevIn, prevOut, prevClearer = stdin, stdout, editCfg.clearer

	stdin, stdout, editCfg.clearer = strings.NewReader(input), out, session.NopClearer
	t.Cleanup(func() { stdin, stdout, editCfg.clearer = prevIn, prevOut, prevClearer })

	return out
}

func fetch(t *testing.T, path string, id int64) clients.Record {
	var ctx = context.Background()
	var st, err = store.Open(ctx, store.Config{Path: path})
	require.NoError(t, err)
	defer st.Close()

	r, err := st.Fetch(ctx, id)
	require.NoError(t, err)
	return r
}
