package html2md

import (
	"strconv"
	"strings"
)

func (c *Converter) openList(ordered bool) {
	if c.tableDepth > 0 {
		return
	}
	if c.listDepth == 0 {
		c.ensureBlankLine()
	} else {
		c.ensureLineStart()
	}
	c.containers = append(c.containers, container{kind: containerList, ordered: ordered})
	c.refreshPrefix()
}

// closeList pops the innermost list. The outermost list is followed by a
// blank line so trailing text does not continue the last item.
func (c *Converter) closeList() {
	if c.tableDepth > 0 {
		return
	}
	idx := c.topContainer(containerList)
	if idx < 0 {
		return
	}
	c.containers = c.containers[:idx]
	c.refreshPrefix()
	if c.listDepth == 0 {
		c.ensureBlankLine()
		return
	}
	c.ensureLineStart()
}

// openListItem writes the item marker on a fresh line. Continuation lines of
// the item are indented to the column after the marker.
func (c *Converter) openListItem() {
	if c.tableDepth > 0 {
		c.appendBlank()
		return
	}
	idx := c.topContainer(containerList)
	if idx < 0 {
		c.ensureLineStart()
		c.emitByte(c.opts.UnorderedListMarker)
		c.emitByte(' ')
		c.lineTextStart = c.out.len()
		return
	}
	if c.ignored {
		return
	}
	lvl := &c.containers[idx]
	var marker string
	if lvl.ordered {
		lvl.index++
		marker = strconv.Itoa(lvl.index) + string(c.opts.OrderedListMarker) + " "
	} else {
		marker = string(c.opts.UnorderedListMarker) + " "
	}
	if c.lineHasContent() {
		c.emitByte('\n')
	} else {
		c.resetLine()
	}
	c.emit(c.prefixBelow(idx))
	c.emit(marker)
	lvl.prefix = strings.Repeat(" ", len(marker))
	c.refreshPrefix()
	c.itemStart = c.out.len()
	c.lineTextStart = c.out.len()
}

func (c *Converter) closeListItem() {
	if c.tableDepth > 0 {
		return
	}
	c.ensureLineStart()
}
