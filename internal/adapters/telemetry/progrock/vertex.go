package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/pak/internal/core/domain"
)

// Vertex implements ports.Vertex on a progrock vertex.
type Vertex struct {
	vertex *progrock.VertexRecorder
	level  domain.LogLevel
}

// Stdout returns the vertex's stdout log stream.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns the vertex's stderr log stream.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log records msg on the vertex. Warnings and errors go to the stderr stream;
// messages below the recorder's level are dropped.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	if level < v.level {
		return
	}
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintln(w, msg)
}

// Complete finishes the vertex, failed when err is not nil.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached finishes the vertex as satisfied without doing any work.
func (v *Vertex) Cached() {
	v.vertex.Cached()
	v.vertex.Complete()
}
