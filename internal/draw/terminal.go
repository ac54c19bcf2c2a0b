package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Terminal control sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqBell       = "\a"
)

// maxChunkSize caps a single write to the terminal. 1400 bytes stays under a
// typical MTU so a frame streams smoothly over SSH.
const maxChunkSize = 1400

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns the size of the terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ChunkWriter collects one frame of terminal output and writes it out in
// MTU-sized chunks on Flush. Cursor positions are 1-based canvas coordinates
// shifted by the offset of the centered render area.
//
// The first write error is kept: every later Flush returns it without
// touching the writer again.
type ChunkWriter struct {
	w      io.Writer
	buf    []byte
	offCol int
	offRow int
	bell   bool
	err    error
}

var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates a ChunkWriter writing to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		w:      w,
		buf:    make([]byte, 0, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the render area, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor queues a cursor move to canvas cell (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf = append(cw.buf, "\033["...)
	cw.buf = strconv.AppendInt(cw.buf, int64(row+cw.offRow), 10)
	cw.buf = append(cw.buf, ';')
	cw.buf = strconv.AppendInt(cw.buf, int64(col+cw.offCol), 10)
	cw.buf = append(cw.buf, 'H')
}

// Write queues p. It never fails; errors surface from Flush.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	return len(p), nil
}

// WriteString queues s.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf = append(cw.buf, s...)
}

// WriteAt queues s at canvas cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf = append(cw.buf, s...)
}

// Clear queues a full screen clear. Anything queued since the last Flush
// would be wiped by it, so it is dropped.
func (cw *ChunkWriter) Clear() {
	cw.buf = append(cw.buf[:0], seqClear...)
}

// HideCursor queues hiding the cursor.
func (cw *ChunkWriter) HideCursor() {
	cw.buf = append(cw.buf, seqHideCursor...)
}

// ShowCursor queues showing the cursor.
func (cw *ChunkWriter) ShowCursor() {
	cw.buf = append(cw.buf, seqShowCursor...)
}

// Bell rings the terminal bell once at the end of the next Flush, however
// many times it is called before then.
func (cw *ChunkWriter) Bell() {
	cw.bell = true
}

// Len returns the number of queued bytes.
func (cw *ChunkWriter) Len() int {
	return len(cw.buf)
}

// Flush writes the queued output in chunks of at most maxChunkSize bytes.
func (cw *ChunkWriter) Flush() error {
	if cw.bell {
		cw.buf = append(cw.buf, seqBell...)
		cw.bell = false
	}
	data := cw.buf
	cw.buf = cw.buf[:0]
	if cw.err != nil {
		return cw.err
	}
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.w.Write(data[:n]); err != nil {
			cw.err = err
			return err
		}
		data = data[n:]
	}
	return nil
}
