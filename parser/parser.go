// Package parser turns JSON text into a tree.Value without recursion.
//
// Nesting is tracked on an explicit context stack bounded by MaxDepth. The
// parser tolerates trailing commas and leading zeros unless Strict is set.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/viant/dynajson/internal/pool"
	"github.com/viant/dynajson/internal/stack"
	"github.com/viant/dynajson/tree"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const (
	// DefaultMaxDepth bounds container nesting when Config.MaxDepth is unset.
	DefaultMaxDepth = 512
	blockSize       = 512
	shortStringSize = 32
)

// Config controls a Parser.
type Config struct {
	MaxDepth int
	// Strict rejects trailing commas and numbers with leading zeros.
	Strict bool
	// Encoding decodes stream and byte input to UTF-8 before parsing.
	Encoding encoding.Encoding
	Logger   log.Logger
}

// Parser is safe for concurrent use; every call rents its own buffer set.
type Parser struct {
	maxDepth int
	strict   bool
	encoding encoding.Encoding
	logger   log.Logger
}

// frame is an open container: an array, or an object with its pending key.
type frame struct {
	arr     *tree.Array
	dict    *tree.Dictionary
	key     string
	pending bool
}

type buffers struct {
	block [blockSize]byte
	str   []byte
	num   []byte
	stack stack.Stack[frame]
}

var buffersPool = pool.New(func() *buffers {
	return &buffers{str: make([]byte, 0, 4*shortStringSize), num: make([]byte, 0, 32)}
})

// New creates a parser.
func New(cfg Config) *Parser {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}
	return &Parser{maxDepth: cfg.MaxDepth, strict: cfg.Strict, encoding: cfg.Encoding, logger: cfg.Logger}
}

// Parse reads a single JSON value from r, streaming through a fixed block.
func (p *Parser) Parse(r io.Reader) (tree.Value, error) {
	if p.encoding != nil {
		r = transform.NewReader(r, p.encoding.NewDecoder())
	}
	bufs := buffersPool.Rent()
	var rd reader
	rd.resetStream(r, bufs.block[:])
	return p.run(&rd, bufs)
}

// ParseBytes parses data, scanning it in place unless an encoding is set.
func (p *Parser) ParseBytes(data []byte) (tree.Value, error) {
	if p.encoding != nil {
		return p.Parse(bytes.NewReader(data))
	}
	bufs := buffersPool.Rent()
	var rd reader
	rd.resetBytes(data)
	return p.run(&rd, bufs)
}

// ParseString parses UTF-8 text in place.
func (p *Parser) ParseString(text string) (tree.Value, error) {
	bufs := buffersPool.Rent()
	var rd reader
	rd.resetBytes(unsafe.Slice(unsafe.StringData(text), len(text)))
	return p.run(&rd, bufs)
}

// run returns the buffer set to the pool only on success; a failed parse
// abandons it.
func (p *Parser) run(rd *reader, bufs *buffers) (tree.Value, error) {
	value, err := p.parse(rd, bufs)
	if err != nil {
		if rd.err != nil {
			return tree.Value{}, fmt.Errorf("failed to read json input: %w", rd.err)
		}
		level.Debug(p.logger).Log("msg", "parse failed, discarding buffer set", "err", err)
		return tree.Value{}, err
	}
	buffersPool.Return(bufs)
	return value, nil
}

func (p *Parser) parse(rd *reader, bufs *buffers) (tree.Value, error) {
	st := &bufs.stack
	var ctx frame
	var value tree.Value
	afterComma := false
	for {
		rd.skipWhitespace()
		if rd.end {
			return value, unexpected(rd)
		}
		switch rd.ch {
		case '[':
			if st.Len() == p.maxDepth {
				return value, tooDeep(rd, st.Len()+1)
			}
			st.Push(ctx)
			ctx = frame{arr: tree.NewArray(0)}
			afterComma = false
			rd.consume()
			continue
		case ']':
			if ctx.arr == nil || (afterComma && p.strict) {
				return value, unexpected(rd)
			}
			value = tree.ArrayOf(ctx.arr)
			ctx = st.Pop()
			rd.consume()
		case '{':
			if st.Len() == p.maxDepth {
				return value, tooDeep(rd, st.Len()+1)
			}
			st.Push(ctx)
			ctx = frame{dict: tree.NewDictionary(0)}
			rd.consume()
			if err := p.key(rd, bufs, &ctx, false); err != nil {
				return value, err
			}
			continue
		case '}':
			if ctx.dict == nil || ctx.pending {
				return value, unexpected(rd)
			}
			value = tree.ObjectOf(ctx.dict)
			ctx = st.Pop()
			rd.consume()
		case 'n':
			if err := literal(rd, "ull"); err != nil {
				return value, err
			}
			value = tree.Null()
		case 't':
			if err := literal(rd, "rue"); err != nil {
				return value, err
			}
			value = tree.Bool(true)
		case 'f':
			if err := literal(rd, "alse"); err != nil {
				return value, err
			}
			value = tree.Bool(false)
		case '"':
			s, err := p.readString(rd, bufs)
			if err != nil {
				return value, err
			}
			value = tree.String(s)
		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			f, err := p.readNumber(rd, bufs)
			if err != nil {
				return value, err
			}
			value = tree.Number(f)
		default:
			return value, unexpected(rd)
		}

		afterComma = false
		rd.skipWhitespace()
		if st.Len() == 0 {
			if !rd.end {
				return value, unexpected(rd)
			}
			return value, nil
		}
		if ctx.arr != nil {
			ctx.arr.Add(value)
			switch {
			case rd.end:
				return value, expecting(rd, "',' or ']'")
			case rd.ch == ',':
				rd.consume()
				afterComma = true
			case rd.ch != ']':
				return value, expecting(rd, "',' or ']'")
			}
			continue
		}
		ctx.dict.Add(ctx.key, value)
		ctx.pending = false
		switch {
		case rd.end:
			return value, expecting(rd, "',' or '}'")
		case rd.ch == ',':
			rd.consume()
			if err := p.key(rd, bufs, &ctx, true); err != nil {
				return value, err
			}
		case rd.ch != '}':
			return value, expecting(rd, "',' or '}'")
		}
	}
}

// key reads the next member name and its ':' or accepts the closing brace.
func (p *Parser) key(rd *reader, bufs *buffers, ctx *frame, afterComma bool) error {
	rd.skipWhitespace()
	if !rd.end && rd.ch == '}' {
		if afterComma && p.strict {
			return unexpected(rd)
		}
		return nil
	}
	if rd.end || rd.ch != '"' {
		return expecting(rd, "string")
	}
	k, err := p.readString(rd, bufs)
	if err != nil {
		return err
	}
	rd.skipWhitespace()
	if rd.end || rd.ch != ':' {
		return expecting(rd, "':'")
	}
	rd.consume()
	ctx.key = k
	ctx.pending = true
	return nil
}

// literal matches the remainder of null, true or false after its first byte.
func literal(rd *reader, rest string) error {
	for i := 0; i < len(rest); i++ {
		rd.consume()
		if rd.end || rd.ch != rest[i] {
			return expecting(rd, "'"+rest[i:i+1]+"'")
		}
	}
	rd.consume()
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *Parser) readNumber(rd *reader, bufs *buffers) (float64, error) {
	start := rd.offset()
	num := bufs.num[:0]
	if rd.ch == '-' {
		num = append(num, '-')
		rd.consume()
	}
	if rd.end || !isDigit(rd.ch) {
		return 0, expecting(rd, "digit")
	}
	if p.strict && rd.ch == '0' {
		num = append(num, '0')
		rd.consume()
		if !rd.end && isDigit(rd.ch) {
			return 0, unexpected(rd)
		}
	}
	num = digits(rd, num)
	if !rd.end && rd.ch == '.' {
		num = append(num, '.')
		rd.consume()
		if rd.end || !isDigit(rd.ch) {
			return 0, expecting(rd, "digit")
		}
		num = digits(rd, num)
	}
	if !rd.end && (rd.ch == 'e' || rd.ch == 'E') {
		num = append(num, 'e')
		rd.consume()
		if !rd.end && (rd.ch == '+' || rd.ch == '-') {
			num = append(num, rd.ch)
			rd.consume()
		}
		if rd.end || !isDigit(rd.ch) {
			return 0, expecting(rd, "digit")
		}
		num = digits(rd, num)
	}
	bufs.num = num
	f, err := strconv.ParseFloat(unsafe.String(unsafe.SliceData(num), len(num)), 64)
	if err != nil {
		return 0, &Error{Message: "Number out of range", Offset: start}
	}
	return f, nil
}

func digits(rd *reader, num []byte) []byte {
	for !rd.end && isDigit(rd.ch) {
		num = append(num, rd.ch)
		rd.consume()
	}
	return num
}

// stringBuilder assembles short strings in a fixed array and spills longer
// ones into the reusable buffer of the rented set.
type stringBuilder struct {
	short   [shortStringSize]byte
	n       int
	long    []byte
	spilled bool
}

func (b *stringBuilder) add(c byte) {
	if !b.spilled {
		if b.n < len(b.short) {
			b.short[b.n] = c
			b.n++
			return
		}
		b.long = append(b.long[:0], b.short[:b.n]...)
		b.spilled = true
	}
	b.long = append(b.long, c)
}

func (b *stringBuilder) addRune(r rune) {
	if r < utf8.RuneSelf {
		b.add(byte(r))
		return
	}
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)
	for i := 0; i < n; i++ {
		b.add(enc[i])
	}
}

func (b *stringBuilder) String() string {
	if b.spilled {
		return string(b.long)
	}
	return string(b.short[:b.n])
}

func (p *Parser) readString(rd *reader, bufs *buffers) (string, error) {
	sb := stringBuilder{long: bufs.str}
	var high rune
	rd.consume()
	for {
		if rd.end {
			return "", unexpected(rd)
		}
		c := rd.ch
		if c == '"' {
			if high != 0 {
				sb.addRune(utf8.RuneError)
			}
			rd.consume()
			if sb.spilled {
				bufs.str = sb.long[:0]
			}
			return sb.String(), nil
		}
		if c < ' ' {
			return "", unexpected(rd)
		}
		if c != '\\' {
			if high != 0 {
				sb.addRune(utf8.RuneError)
				high = 0
			}
			sb.add(c)
			rd.consume()
			continue
		}
		rd.consume()
		if rd.end {
			return "", unexpected(rd)
		}
		var r rune
		switch rd.ch {
		case '"', '\\', '/':
			r = rune(rd.ch)
		case 'b':
			r = '\b'
		case 'f':
			r = '\f'
		case 'n':
			r = '\n'
		case 'r':
			r = '\r'
		case 't':
			r = '\t'
		case 'u':
			code, err := readHex4(rd)
			if err != nil {
				return "", err
			}
			r = code
		default:
			return "", invalid(rd, "escape character")
		}
		rd.consume()
		switch {
		case high != 0 && r >= 0xDC00 && r <= 0xDFFF:
			sb.addRune(0x10000 + (high-0xD800)<<10 + (r - 0xDC00))
			high = 0
			continue
		case high != 0:
			sb.addRune(utf8.RuneError)
			high = 0
		}
		if r >= 0xD800 && r <= 0xDBFF {
			high = r
			continue
		}
		sb.addRune(r)
	}
}

func readHex4(rd *reader) (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		rd.consume()
		if rd.end {
			return 0, unexpected(rd)
		}
		c := rd.ch
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		default:
			return 0, invalid(rd, "unicode escape")
		}
	}
	return r, nil
}
