package quote

import (
	"strings"
	"unicode"
)

// TableState tells whether the scanner is between an item table header and
// its end marker
type TableState int

const (
	Outside TableState = iota
	Inside
)

func (s TableState) String() string {
	if s == Inside {
		return "inside"
	}
	return "outside"
}

// LineKind is how the scanner classified a line
type LineKind int

const (
	LineText        LineKind = iota // buffered or ignored text
	LineHeader                      // column titles, opens the table
	LineFooter                      // totals or payment terms, closes the table
	LineRow                         // committed quantity row
	LineRowRejected                 // quantity row without any description
)

func (k LineKind) String() string {
	switch k {
	case LineHeader:
		return "header"
	case LineFooter:
		return "footer"
	case LineRow:
		return "row"
	case LineRowRejected:
		return "rejected"
	}
	return "text"
}

// ScanEvent describes what the scanner did with one line
type ScanEvent struct {
	Line        string
	Kind        LineKind
	State       TableState // state after the line
	Row         ParsedRow  // set for LineRow and LineRowRejected
	Description string     // resolved description for LineRow
}

// CommitFunc receives every row accepted by a PageScanner
type CommitFunc func(description string, qty float64) bool

// PageScanner runs the table state machine over the lines of one page. It
// must be Reset before each page; table state never carries over.
type PageScanner struct {
	segmenter *Segmenter
	buffer    *DescriptionBuffer
	state     TableState
	commit    CommitFunc
}

// NewPageScanner creates a scanner. commit may be nil when only the events
// are of interest.
func NewPageScanner(segmenter *Segmenter, bufferCapacity int, commit CommitFunc) *PageScanner {
	if segmenter == nil {
		segmenter = NewSegmenter()
	}
	return &PageScanner{
		segmenter: segmenter,
		buffer:    NewDescriptionBuffer(bufferCapacity),
		state:     Outside,
		commit:    commit,
	}
}

// Reset returns the scanner to Outside with an empty buffer
func (p *PageScanner) Reset() {
	p.state = Outside
	p.buffer.Clear()
}

func (p *PageScanner) State() TableState {
	return p.state
}

// Buffered returns the description lines currently held
func (p *PageScanner) Buffered() []string {
	return p.buffer.Lines()
}

// Scan feeds one logical line to the state machine
func (p *PageScanner) Scan(line string) ScanEvent {
	line = strings.TrimSpace(line)
	ev := ScanEvent{Line: line, Kind: LineText}
	if line == "" {
		ev.State = p.state
		return ev
	}

	switch p.state {
	case Outside:
		if IsHeader(line) {
			p.state = Inside
			p.buffer.Clear()
			ev.Kind = LineHeader
		} else {
			p.buffer.Push(line)
		}

	case Inside:
		if IsFooter(line) {
			p.state = Outside
			p.buffer.Clear()
			ev.Kind = LineFooter
			break
		}
		// repeated column titles; a line with figures is never one
		if IsHeader(line) && !strings.ContainsFunc(line, unicode.IsDigit) {
			p.buffer.Clear()
			ev.Kind = LineHeader
			break
		}

		row, ok := p.segmenter.ParseQuantityLine(line)
		if !ok {
			p.buffer.Push(line)
			break
		}

		ev.Row = row
		description := row.Description
		if description == "" {
			description = p.buffer.Description()
		}
		p.buffer.Clear()

		if description == "" {
			ev.Kind = LineRowRejected
			break
		}
		if p.commit != nil && !p.commit(description, row.Qty) {
			ev.Kind = LineRowRejected
			break
		}
		ev.Kind = LineRow
		ev.Description = description
	}

	ev.State = p.state
	return ev
}

// ScanLines resets the scanner and feeds it the lines of one page
func (p *PageScanner) ScanLines(lines []string) []ScanEvent {
	p.Reset()
	events := make([]ScanEvent, 0, len(lines))
	for _, line := range lines {
		events = append(events, p.Scan(line))
	}
	return events
}
