package input

import (
	"bufio"
)

// Stream delivers input bytes from a reader via a channel so the frame loop
// can drain them without blocking.
type Stream struct {
	ch      chan byte
	partial []byte // unfinished escape sequence carried to the next poll
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes (non-blocking), decodes them and feeds
// the resulting key presses into kb. It returns the number of keys decoded.
func (s *Stream) Poll(kb *Keyboard) int {
	buf := s.partial
	s.partial = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	keys, rest := Decode(buf)
	if len(rest) > 0 && !s.closed {
		s.partial = append([]byte(nil), rest...)
	}
	for _, k := range keys {
		kb.Press(k)
	}
	return len(keys)
}

// Decode parses terminal bytes into logical key names. Arrow keys arrive as
// CSI sequences (ESC [ A..D). An incomplete trailing sequence is returned
// as rest so the caller can retry once more bytes arrive.
func Decode(buf []byte) (keys []string, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i+1 >= len(buf) {
				return keys, buf[i:]
			}
			if buf[i+1] == '[' {
				if i+2 >= len(buf) {
					return keys, buf[i:]
				}
				switch buf[i+2] {
				case 'A':
					keys = append(keys, KeyArrowUp)
				case 'B':
					keys = append(keys, KeyArrowDown)
				case 'C':
					keys = append(keys, KeyArrowRight)
				case 'D':
					keys = append(keys, KeyArrowLeft)
				}
				i += 2
				continue
			}
			keys = append(keys, KeyEscape)
			continue
		}

		if k, ok := byteKey(b); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// byteKey maps a single byte to its key name.
func byteKey(b byte) (string, bool) {
	switch {
	case b == ' ':
		return KeySpace, true
	case b == '\n' || b == '\r':
		return KeyEnter, true
	case b == '\b' || b == '\x7f':
		return KeyBackspace, true
	case b == '\x03':
		return KeyCtrlC, true
	case b >= 'A' && b <= 'Z':
		return string(rune(b - 'A' + 'a')), true
	case b >= '!' && b <= '~':
		return string(rune(b)), true
	}
	return "", false
}
