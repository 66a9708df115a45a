package common

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagValidator(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))

	v := NewFlagValidator().
		ValidateInt("period", 5, 1, 100).
		ValidateChoice("source", "csv", []string{"bybit", "csv"}).
		ValidateDate("start", "2015-01-01").
		ValidateDate("end", "").
		ValidateFile("data", existing, true)
	assert.False(t, v.HasErrors())
	assert.NoError(t, v.GetError())

	v = NewFlagValidator().
		ValidateInt("period", 0, 1, 100).
		ValidateChoice("source", "ftp", []string{"bybit", "csv"}).
		ValidateDate("start", "2015/01/01").
		ValidateFile("data", "", true)
	assert.True(t, v.HasErrors())
	assert.Contains(t, v.GetError().Error(), "period must be between 1 and 100")

	var buf bytes.Buffer
	v.PrintErrors(&buf)
	assert.Contains(t, buf.String(), "data is required")
}

func TestCheckHelpAndVersion(t *testing.T) {
	fs := flag.NewFlagSet("indicators", flag.ContinueOnError)
	cf := RegisterCommonFlags(fs)
	usage := NewUsageFormatter("indicators", "Print technical indicators").
		AddExample("indicators -symbol CCL", "Latest values for CCL")

	var buf bytes.Buffer
	require.NoError(t, fs.Parse(nil))
	assert.False(t, CheckHelpAndVersion(&buf, "indicators", cf, usage, fs))

	require.NoError(t, fs.Parse([]string{"-version"}))
	assert.True(t, CheckHelpAndVersion(&buf, "indicators", cf, usage, fs))
	assert.Contains(t, buf.String(), "indicators v"+ProjectVersion)

	buf.Reset()
	*cf.Version = false
	require.NoError(t, fs.Parse([]string{"-help"}))
	assert.True(t, CheckHelpAndVersion(&buf, "indicators", cf, usage, fs))
	assert.Contains(t, buf.String(), "Latest values for CCL")
	assert.Contains(t, buf.String(), "-data-root")
}
