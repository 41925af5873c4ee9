package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, "", []string{"ID", "Severity"}, [][]interface{}{{"run-rate-risk", "danger"}})

	out := buf.String()
	assert.Contains(t, out, "SEVERITY")
	assert.Contains(t, out, "run-rate-risk")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, RenderJSON(&buf, map[string]int{"rows": 2}))
	assert.JSONEq(t, `{"rows": 2}`, buf.String())
}
