package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiratR/batch-transaction-viewer/internal/denylist"
)

const payload = `{
  "reasons": {"1": "Lost", "2": "Stolen"},
  "entries": [
    {"pan": "5500", "removed": false, "reason_ids": ["2"], "reason_labels": ["Stolen"]},
    {"pan": "4111", "removed": true, "reason_ids": ["1", "7"], "reason_labels": ["Lost"]}
  ]
}`

func writePayload(t *testing.T, data []byte) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "denylist.json")
	require.NoError(t, os.WriteFile(name, data, 0o600))
	return name
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestLookup(t *testing.T) {
	name := writePayload(t, []byte(payload))

	t.Run("denied", func(t *testing.T) {
		code, out, _ := runCLI(t, "", "-pan", "4111", name)
		assert.Equal(t, 0, code)
		assert.Equal(t, "[DENIED] 4111 [1 7] [Lost] removed= true\n", out)
	})

	t.Run("not denied", func(t *testing.T) {
		code, out, _ := runCLI(t, "", "-pan", "0000", name)
		assert.Equal(t, 0, code)
		assert.Equal(t, "[OK] Not in deny list.\n", out)
	})
}

func TestList(t *testing.T) {
	name := writePayload(t, []byte(payload))

	t.Run("reasons by id and entries by pan", func(t *testing.T) {
		code, out, _ := runCLI(t, "", "-list", name)
		assert.Equal(t, 0, code)
		assert.Equal(t, "# Reasons (2):\n- 1: Lost\n- 2: Stolen\n\n# Entries (2):\n4111 [1 7] [Lost] true\n5500 [2] [Stolen] false\n", out)
	})

	t.Run("query flags narrow the listing", func(t *testing.T) {
		code, out, _ := runCLI(t, "", "-list", "-removed", "false", name)
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "# Entries (1):\n5500 [2] [Stolen] false\n")
	})

	t.Run("descending sort", func(t *testing.T) {
		code, out, _ := runCLI(t, "", "-list", "-dir", "desc", name)
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "5500 [2] [Stolen] false\n4111 [1 7] [Lost] true\n")
	})
}

func TestStats(t *testing.T) {
	name := writePayload(t, []byte(payload))

	code, out, _ := runCLI(t, "", "-stats", name)

	assert.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Total entries: 2", lines[0])
	assert.Equal(t, "Counts by reason id:", lines[1])
	assert.Contains(t, lines[2], "Lost")
	assert.Contains(t, lines[3], "Stolen")
	assert.Contains(t, lines[4], "UNKNOWN(7)")
	assert.Equal(t, "Removed=true: 1", lines[5])
	assert.Equal(t, "Removed=false: 1", lines[6])
}

func TestExport(t *testing.T) {
	name := writePayload(t, []byte(payload))

	t.Run("csv file", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "out.csv")
		code, out, _ := runCLI(t, "", "-export-csv", dst, name)
		require.Equal(t, 0, code)
		assert.Equal(t, "[OK] exported CSV -> "+dst+"\n", out)

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "pan,removed,removed_present,reason_ids,reason_labels\n4111,true,,\"1,7\",Lost\n5500,false,,2,Stolen\n", string(data))
	})

	t.Run("json to stdout from stdin", func(t *testing.T) {
		code, out, _ := runCLI(t, payload, "-export-json", "-", "-")
		require.Equal(t, 0, code)

		res, err := denylist.NormalizeJSON([]byte(out))
		require.NoError(t, err)
		assert.Equal(t, denylist.ShapeList, res.Shape)
		assert.Equal(t, []string{"4111", "5500"}, []string{res.Entries[0].PAN, res.Entries[1].PAN})
		assert.Equal(t, "Stolen", res.Reasons["2"])
	})
}

func TestCompressedInput(t *testing.T) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	name := writePayload(t, buf.Bytes())

	code, out, _ := runCLI(t, "", "-pan", "5500", name)

	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "[DENIED] 5500"))
}

func TestUsageErrors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		code, _, errOut := runCLI(t, "")
		assert.Equal(t, 2, code)
		assert.Contains(t, errOut, "usage: denylist")
	})

	t.Run("bad sort key", func(t *testing.T) {
		code, _, _ := runCLI(t, "", "-sort", "expiry", "x.json")
		assert.Equal(t, 2, code)
	})

	t.Run("unreadable file", func(t *testing.T) {
		code, _, errOut := runCLI(t, "", filepath.Join(t.TempDir(), "missing.json"))
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "open payload")
	})
}
