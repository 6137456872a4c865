package progrock

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
)

// Palette used by the printer.
const (
	colorSlate  = "#667085"
	colorGreen  = "#12B76A"
	colorRed    = "#D93025"
	colorYellow = "#F59E0B"
)

// Printer is a progrock.Writer that prints the log lines recorded on vertices and one
// line per vertex once it is finished.
type Printer struct {
	mu       sync.Mutex
	out      *termenv.Output
	names    map[string]string
	reported map[string]bool
}

// NewPrinter creates a Printer writing to w with the given color profile.
func NewPrinter(w io.Writer, profile termenv.Profile) *Printer {
	return &Printer{
		out:      termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithTTY(true)),
		names:    make(map[string]string),
		reported: make(map[string]bool),
	}
}

// colorProfile honours NO_COLOR and otherwise detects the terminal's color profile.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// WriteStatus implements progrock.Writer.
func (p *Printer) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, v := range update.GetVertexes() {
		p.names[v.GetId()] = v.GetName()
	}

	for _, l := range update.GetLogs() {
		color := colorSlate
		if l.GetStream() == progrock.LogStream_STDERR {
			color = colorYellow
		}
		name := p.names[l.GetVertex()]
		for _, line := range strings.Split(strings.TrimRight(string(l.GetData()), "\n"), "\n") {
			if line == "" {
				continue
			}
			if err := p.print("  "+name+": "+line, color); err != nil {
				return err
			}
		}
	}

	for _, v := range update.GetVertexes() {
		var line, color string
		switch {
		case v.Error != nil:
			line, color = "✗ "+v.GetName()+": "+v.GetError(), colorRed
		case v.GetCanceled():
			line, color = "✗ "+v.GetName()+" (canceled)", colorRed
		case v.GetCached():
			line, color = "✓ "+v.GetName()+" (cached)", colorSlate
		case v.Completed != nil:
			line, color = "✓ "+v.GetName(), colorGreen
		default:
			// Started again under the same id.
			delete(p.reported, v.GetId())
			continue
		}
		if p.reported[v.GetId()] {
			continue
		}
		p.reported[v.GetId()] = true
		if err := p.print(line, color); err != nil {
			return err
		}
	}
	return nil
}

// Close implements progrock.Writer.
func (p *Printer) Close() error {
	return nil
}

func (p *Printer) print(line, color string) error {
	styled := p.out.String(line).Foreground(termenv.RGBColor(color))
	_, err := p.out.WriteString(styled.String() + "\n")
	return err
}
