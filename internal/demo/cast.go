package demo

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// castHeader is the first line of an asciicast v2 file.
type castHeader struct {
	Version int               `json:"version"`
	Width   int               `json:"width"`
	Height  int               `json:"height"`
	Title   string            `json:"title,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// clearScreen homes the cursor and clears the display before each frame.
const clearScreen = "\x1b[H\x1b[2J"

// WriteCast writes frames recorded from s as an asciicast v2 file. Each
// frame is one output event after its delay; captions become markers.
func WriteCast(w io.Writer, s *Scenario, frames []Frame) error {
	bw := bufio.NewWriter(w)

	header := castHeader{
		Version: 2,
		Width:   s.Width,
		Height:  s.Height,
		Title:   s.Description,
		Env:     map[string]string{"TERM": "xterm-256color"},
	}
	if err := writeJSONLine(bw, header); err != nil {
		return err
	}

	var elapsed float64
	for _, f := range frames {
		elapsed += f.Delay.Seconds()
		if f.Caption != "" {
			if err := writeJSONLine(bw, []any{elapsed, "m", f.Caption}); err != nil {
				return err
			}
		}
		out := clearScreen + strings.ReplaceAll(f.Content, "\n", "\r\n")
		if err := writeJSONLine(bw, []any{elapsed, "o", out}); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeJSONLine(w *bufio.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cast event: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
