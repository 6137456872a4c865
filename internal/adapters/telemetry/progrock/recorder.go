// Package progrock records install progress as progrock vertices and prints them.
package progrock

import (
	"context"
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	rec   *progrock.Recorder
	level domain.LogLevel
}

// New creates a Recorder that prints progress to w, dropping debug messages.
func New(w io.Writer) *Recorder {
	return NewRecorder(NewPrinter(w, colorProfile()), domain.LogLevelInfo)
}

// NewRecorder creates a Recorder writing to w. Vertex messages below level are dropped.
func NewRecorder(w progrock.Writer, level domain.LogLevel) *Recorder {
	return &Recorder{
		rec:   progrock.NewRecorder(w),
		level: level,
	}
}

// Record starts recording a new vertex. Vertices are keyed by name, so recording
// the same name twice continues the same vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
	return ctx, &Vertex{vertex: v, level: r.level}
}

// Close completes the recording session and closes the writer.
func (r *Recorder) Close() error {
	r.rec.Complete()
	return r.rec.Close()
}
