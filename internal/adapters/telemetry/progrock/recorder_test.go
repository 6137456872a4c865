package progrock_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pak/internal/adapters/telemetry/progrock"
	"go.trai.ch/pak/internal/core/ports"
)

func TestNew(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	var recorder ports.Telemetry = progrock.New(&buf)

	_, vertex := recorder.Record(context.Background(), "install Example@1.0.0")
	vertex.Complete(nil)

	assert.Equal(t, "✓ install Example@1.0.0\n", buf.String())
}
