package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"
	"github.com/viant/dynajson"
	"github.com/viant/dynajson/tree"
)

// fmtCommand reserializes each file.
type fmtCommand struct {
	*settings
	files *[]string
}

func (cmd *fmtCommand) run(_ *kingpin.ParseContext) error {
	for _, name := range *cmd.files {
		v, _, err := cmd.parseFile(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := dynajson.SerializeTo(cmd.stdout, &v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintln(cmd.stdout)
	}
	return nil
}

// validateCommand reports OK or the parse error of each file.
type validateCommand struct {
	*settings
	files *[]string
}

func (cmd *validateCommand) run(_ *kingpin.ParseContext) error {
	ok := color.New(color.FgGreen)
	failed := color.New(color.FgRed)
	invalid := 0
	for _, name := range *cmd.files {
		if _, _, err := cmd.parseFile(name); err != nil {
			invalid++
			level.Warn(cmd.logger).Log("msg", "invalid json", "file", name, "err", err)
			failed.Fprintf(cmd.stdout, "%s: %v\n", name, err)
			continue
		}
		ok.Fprintf(cmd.stdout, "%s: OK\n", name)
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d files are invalid", invalid, len(*cmd.files))
	}
	return nil
}

// statsCommand prints node counts per tag, depth and size for each file.
type statsCommand struct {
	*settings
	files *[]string
}

type stats struct {
	counts   [tree.TypeObject + 1]uint64
	maxDepth int
	size     int64
}

func (cmd *statsCommand) run(_ *kingpin.ParseContext) error {
	bold := color.New(color.Bold)
	for _, name := range *cmd.files {
		v, size, err := cmd.parseFile(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		st := collectStats(&v)
		st.size = size
		bold.Fprintf(cmd.stdout, "%s:\n", name)
		fmt.Fprintf(cmd.stdout, "\tsize: %v, nodes: %s, max depth: %d\n",
			humanize.Bytes(uint64(st.size)), humanize.Comma(int64(st.total())), st.maxDepth)
		for typ := tree.TypeNull; typ <= tree.TypeObject; typ++ {
			if st.counts[typ] == 0 {
				continue
			}
			fmt.Fprintf(cmd.stdout, "\t%s: %s\n", typ, humanize.Comma(int64(st.counts[typ])))
		}
	}
	return nil
}

func (s *stats) total() uint64 {
	var ret uint64
	for _, c := range s.counts {
		ret += c
	}
	return ret
}

// collectStats walks the tree with an explicit stack; scalars sit at the
// depth of their container.
func collectStats(root *tree.Value) stats {
	type item struct {
		value *tree.Value
		depth int
	}
	var ret stats
	pending := []item{{value: root}}
	for len(pending) > 0 {
		it := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		ret.counts[it.value.Type()]++
		if !it.value.Type().IsContainer() {
			continue
		}
		depth := it.depth + 1
		if depth > ret.maxDepth {
			ret.maxDepth = depth
		}
		switch it.value.Type() {
		case tree.TypeArray:
			arr := it.value.Array()
			for i := arr.Len() - 1; i >= 0; i-- {
				child, _ := arr.At(i)
				pending = append(pending, item{value: child, depth: depth})
			}
		case tree.TypeObject:
			cursor := it.value.Dictionary().Cursor()
			for cursor.Next() {
				pending = append(pending, item{value: cursor.Value(), depth: depth})
			}
		}
	}
	return ret
}
