package jsondiff

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	colorClose   = "\x1b[0m"
	colorNeutral = "\x1b[37m"
	colorInsert  = "\x1b[32m"
	colorDelete  = "\x1b[31m"
	colorSet     = "\x1b[34m"
)

// FormatPrettyString is a convenice wrapper that outputs to a string instead of
// an io.Writer
func FormatPrettyString(patch *Object, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, patch, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report of a patch to w, one line per
// instruction in apply order, nested patches indented below their target.
// if colorTTY is true it will add
// red "-" for deletions
// green "+" for insertions
// blue "~" for sets
func FormatPretty(w io.Writer, patch *Object, colorTTY bool) error {
	if patch == nil {
		return nil
	}
	var colorMap map[Op]string
	if colorTTY {
		colorMap = map[Op]string{
			OpInsert: colorInsert,
			OpDelete: colorDelete,
			OpSet:    colorSet,
			OpMerge:  colorNeutral,
		}
	}
	return formatPretty(w, patch, 0, colorMap)
}

func formatPretty(w io.Writer, patch Value, indent int, colorMap map[Op]string) error {
	ins, err := parseInstructions(patch)
	if err != nil {
		return err
	}
	closeColor := ""
	if colorMap != nil {
		closeColor = colorClose
	}

	for _, in := range ins {
		pad := strings.Repeat("  ", indent)
		name := displayKey(in)
		switch in.Op {
		case OpDelete:
			if _, err := fmt.Fprintf(w, "%s%s- %s%s\n", pad, colorMap[in.Op], name, closeColor); err != nil {
				return err
			}
		case OpMerge:
			if _, isObj := in.Value.(*Object); !isObj && !isInstructionList(in.Value) {
				// merges that degrade to a set
				if err := formatValue(w, pad, colorMap[OpSet], "~", name, in.Value, closeColor); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%s%s%s:%s\n", pad, colorMap[in.Op], name, closeColor); err != nil {
				return err
			}
			if err := formatPretty(w, in.Value, indent+1, colorMap); err != nil {
				return err
			}
		case OpInsert:
			if err := formatValue(w, pad, colorMap[in.Op], "+", name, in.Value, closeColor); err != nil {
				return err
			}
		default:
			if err := formatValue(w, pad, colorMap[in.Op], "~", name, in.Value, closeColor); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatValue(w io.Writer, pad, color, sym, name string, v Value, closeColor string) error {
	data, err := JSON.Encode(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s%s%s %s: %s%s\n", pad, color, sym, name, data, closeColor)
	return err
}

// displayKey is the instruction's address without operation markers
func displayKey(in Instruction) string {
	b := &strings.Builder{}
	b.WriteString(in.Key)
	for _, idx := range in.Indices {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(idx))
		b.WriteByte(']')
	}
	return b.String()
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return formatStats(diffStat, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(diffStat *Stats) string {
	return formatStats(diffStat, true)
}

func formatStats(ds *Stats, color bool) string {
	var (
		neutralColor, insertColor, deleteColor, updateColor, closeColor string
	)

	if ds == nil {
		return ""
	}

	if color {
		neutralColor = colorNeutral
		insertColor = colorInsert
		deleteColor = colorDelete
		updateColor = colorSet
		closeColor = colorClose
	}

	buf := &bytes.Buffer{}

	elsColor := insertColor
	change := ds.NodeChange()
	elementsWord := "elements"
	sign := "+"
	if change < 0 {
		elsColor = deleteColor
		sign = ""
	} else if change == 0 {
		elsColor = neutralColor
		sign = ""
	}
	if change == 1 || change == -1 {
		elementsWord = "element"
	}

	buf.WriteString(fmt.Sprintf("%s%s%d %s%s%s%s.",
		elsColor, sign, change, closeColor,
		neutralColor, elementsWord, closeColor,
	))

	buf.WriteString(fmt.Sprintf(" %s%d %s.%s", insertColor, ds.Inserts, plural(ds.Inserts, "insert"), closeColor))
	buf.WriteString(fmt.Sprintf(" %s%d %s.%s", deleteColor, ds.Deletes, plural(ds.Deletes, "delete"), closeColor))
	buf.WriteString(fmt.Sprintf(" %s%d %s.%s", updateColor, ds.Sets, plural(ds.Sets, "set"), closeColor))
	if ds.Merges > 0 {
		buf.WriteString(fmt.Sprintf(" %s%d %s.%s", neutralColor, ds.Merges, plural(ds.Merges, "merge"), closeColor))
	}

	buf.WriteRune('\n')

	return buf.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
