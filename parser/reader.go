package parser

import (
	"errors"
	"io"
)

// reader exposes the input one byte at a time. In-place sources scan the
// caller's bytes directly; stream sources refill a fixed block.
type reader struct {
	src   io.Reader
	block []byte
	buf   []byte
	base  int
	pos   int
	ch    byte
	end   bool
	err   error
}

func (r *reader) resetStream(src io.Reader, buf []byte) {
	*r = reader{src: src, buf: buf, pos: -1}
	r.consume()
}

func (r *reader) resetBytes(data []byte) {
	*r = reader{block: data, pos: -1}
	r.consume()
}

func (r *reader) offset() int { return r.base + r.pos }

// consume advances to the next byte, setting end once input is exhausted.
func (r *reader) consume() {
	r.pos++
	if r.pos < len(r.block) {
		r.ch = r.block[r.pos]
		return
	}
	r.fill()
}

func (r *reader) fill() {
	r.base += len(r.block)
	r.pos = 0
	r.block = r.block[:0]
	if r.src != nil && !r.end {
		for {
			n, err := r.src.Read(r.buf)
			if n > 0 {
				r.block = r.buf[:n]
				r.ch = r.block[0]
				return
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					r.err = err
				}
				break
			}
		}
	}
	r.end = true
	r.ch = 0
}

func (r *reader) skipWhitespace() {
	for !r.end {
		switch r.ch {
		case ' ', '\t', '\n', '\r':
			r.consume()
		default:
			return
		}
	}
}
