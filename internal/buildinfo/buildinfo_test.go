package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	var out bytes.Buffer
	PrintBuildData(&out)
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", out.String())

	buildVersion, buildCommit = "v0.3.0", "abc123"
	t.Cleanup(func() { buildVersion, buildCommit = "", "" })

	out.Reset()
	PrintBuildData(&out)
	assert.Contains(t, out.String(), "Build version: v0.3.0")
	assert.Contains(t, out.String(), "Build commit: abc123")
}
