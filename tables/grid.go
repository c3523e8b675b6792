package tables

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/typeset/model"
)

// StructureError describes a malformed grid-table region. Line is the
// 1-based line number in the scanned source.
type StructureError struct {
	Line int
	Msg  string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// GridScanner finds grid tables in text and parses their structure
type GridScanner struct {
	// MinRegionLines is the smallest region that can form a table: an
	// opening border, one content line, and a closing border.
	MinRegionLines int

	// MaxIndent is the deepest leading-space indent at which a border may
	// open a region. Anything deeper is indented code in Markdown terms.
	MaxIndent int
}

// NewGridScanner creates a scanner with default settings
func NewGridScanner() *GridScanner {
	return &GridScanner{
		MinRegionLines: 3,
		MaxIndent:      3,
	}
}

// GridTable is the structure of one parsed grid table. Cell content is kept
// as raw text for the caller to parse.
type GridTable struct {
	ColSpecs []model.ColSpec
	Head     []*GridRow
	Body     []*GridRow
}

// GridRow is one logical table row
type GridRow struct {
	Cells []*GridCell
}

// GridCell is one cell: raw text plus the columns and rows it spans
type GridCell struct {
	Text    string
	ColSpan int
	RowSpan int
}

// GridMatch ties a parsed table to the line range it occupied
type GridMatch struct {
	StartLine int // 1-based, inclusive
	EndLine   int // 1-based, inclusive
	Table     *GridTable
}

// ScanResult is the outcome of one scan: the tables found, the residual
// text with table regions replaced by placeholders, and the structural
// problems encountered. A region that produced an error appears in the
// residual unchanged and yields no match.
type ScanResult struct {
	Matches  []GridMatch
	Residual string
	Errors   []*StructureError
}

const (
	placeholderPrefix = "@@typeset-grid-table-"
	placeholderSuffix = "@@"
)

// Placeholder returns the stand-in line written to the residual text for
// table i.
func Placeholder(i int) string {
	return placeholderPrefix + strconv.Itoa(i) + placeholderSuffix
}

// PlaceholderIndex reports whether s is exactly a table placeholder, and if
// so which table it stands for.
func PlaceholderIndex(s string) (int, bool) {
	if !strings.HasPrefix(s, placeholderPrefix) || !strings.HasSuffix(s, placeholderSuffix) {
		return 0, false
	}
	num := s[len(placeholderPrefix) : len(s)-len(placeholderSuffix)]
	if num == "" {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Scan walks source line by line, extracting every well-formed grid table.
// The residual text keeps the exact line count of the input: each table
// region becomes one placeholder line padded with blanks.
func (gs *GridScanner) Scan(source string) *ScanResult {
	lines := strings.Split(source, "\n")
	res := &ScanResult{}
	out := make([]string, 0, len(lines))

	inFence := false
	var fenceChar byte
	var fenceLen int

	i := 0
	for i < len(lines) {
		line := strings.TrimRight(lines[i], "\r")

		if inFence {
			if closesFence(line, fenceChar, fenceLen) {
				inFence = false
			}
			out = append(out, lines[i])
			i++
			continue
		}
		if ch, n, ok := opensFence(line); ok {
			inFence = true
			fenceChar, fenceLen = ch, n
			out = append(out, lines[i])
			i++
			continue
		}

		if !gs.opensRegion(line) {
			out = append(out, lines[i])
			i++
			continue
		}

		j := i
		for j < len(lines) && isRegionLine(lines[j]) {
			j++
		}
		region := lines[i:j]

		table, serr := gs.parseRegion(region, i+1)
		if serr != nil {
			res.Errors = append(res.Errors, serr)
			out = append(out, region...)
			i = j
			continue
		}

		res.Matches = append(res.Matches, GridMatch{
			StartLine: i + 1,
			EndLine:   j,
			Table:     table,
		})
		out = append(out, Placeholder(len(res.Matches)-1))
		for k := 1; k < len(region); k++ {
			out = append(out, "")
		}
		i = j
	}

	res.Residual = strings.Join(out, "\n")
	return res
}

// opensRegion reports whether a line can start a table region: a border of
// corners and dash or equals runs, optionally capped with alignment colons,
// at an indent shallow enough not to be indented code.
func (gs *GridScanner) opensRegion(line string) bool {
	t := strings.TrimLeft(line, " ")
	if len(line)-len(t) > gs.MaxIndent {
		return false
	}
	t = strings.TrimRight(t, " ")
	if len(t) < 3 || t[0] != '+' || t[len(t)-1] != '+' {
		return false
	}
	for k := 0; k < len(t); k++ {
		switch t[k] {
		case '+', '-', '=', ':':
		default:
			return false
		}
	}
	return true
}

// isRegionLine reports whether a line continues a candidate region
func isRegionLine(line string) bool {
	t := strings.TrimLeft(strings.TrimRight(line, " \r"), " ")
	return t != "" && (t[0] == '+' || t[0] == '|')
}

// opensFence recognizes backtick and tilde code fences so table detection
// skips fenced content.
func opensFence(line string) (byte, int, bool) {
	t := strings.TrimLeft(line, " ")
	if len(line)-len(t) > 3 || t == "" {
		return 0, 0, false
	}
	ch := t[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	n := 0
	for n < len(t) && t[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	if ch == '`' && strings.ContainsRune(t[n:], '`') {
		return 0, 0, false
	}
	return ch, n, true
}

func closesFence(line string, ch byte, minLen int) bool {
	t := strings.TrimLeft(line, " ")
	n := 0
	for n < len(t) && t[n] == ch {
		n++
	}
	return n >= minLen && strings.TrimRight(t[n:], " ") == ""
}

// ============================================================================
// Region parsing
// ============================================================================

func (gs *GridScanner) parseRegion(region []string, startLine int) (*GridTable, *StructureError) {
	if len(region) < gs.MinRegionLines {
		return nil, unterminated(startLine)
	}

	opening := strings.TrimRight(region[0], " \r")
	bounds := plusOffsets(opening)
	if len(bounds) < 2 {
		return nil, &StructureError{Line: startLine, Msg: "opening border defines no columns"}
	}
	specs, serr := parseOpeningBorder(opening, bounds, startLine)
	if serr != nil {
		return nil, serr
	}

	p := &regionParser{
		bounds:   bounds,
		nCols:    len(bounds) - 1,
		headRows: -1,
	}
	p.carry = make([]*GridCell, p.nCols)

	// Validate the closing border up front so a broken ending reports as an
	// unterminated region at the opening line.
	closing, cerr := p.parseBorder(strings.TrimRight(region[len(region)-1], " \r"), startLine+len(region)-1)
	if cerr != nil || closing.kind != borderDash || closing.hasOpen() {
		return nil, unterminated(startLine)
	}

	for idx := 1; idx < len(region); idx++ {
		lineNo := startLine + idx
		line := strings.TrimRight(region[idx], " \r")
		if len(line) != p.rightEdge()+1 {
			return nil, &StructureError{Line: lineNo, Msg: fmt.Sprintf("line does not end at the table edge (expected width %d)", p.rightEdge()+1)}
		}
		if strings.TrimLeft(line[:p.bounds[0]], " ") != "" {
			return nil, &StructureError{Line: lineNo, Msg: "content outside the table's left edge"}
		}
		switch line[p.bounds[0]] {
		case '+':
			b, serr := p.parseBorder(line, lineNo)
			if serr != nil {
				return nil, serr
			}
			if serr := p.closeGroup(b, lineNo); serr != nil {
				return nil, serr
			}
		case '|':
			if serr := p.addContentLine(line, lineNo); serr != nil {
				return nil, serr
			}
		default:
			return nil, &StructureError{Line: lineNo, Msg: "expected a border or cell line aligned with the table corners"}
		}
	}

	if len(p.rows) == 0 {
		return nil, &StructureError{Line: startLine, Msg: "grid table has no content rows"}
	}

	table := &GridTable{ColSpecs: specs}
	if p.headRows >= 0 {
		table.Head = p.rows[:p.headRows]
		table.Body = p.rows[p.headRows:]
	} else {
		table.Body = p.rows
	}
	return table, nil
}

func unterminated(line int) *StructureError {
	return &StructureError{Line: line, Msg: "grid table region is not terminated by a closing border"}
}

func plusOffsets(line string) []int {
	var offs []int
	for k := 0; k < len(line); k++ {
		if line[k] == '+' {
			offs = append(offs, k)
		}
	}
	return offs
}

// parseOpeningBorder derives the column specs: alignment from colon markers
// and width hints proportional to segment lengths.
func parseOpeningBorder(line string, bounds []int, lineNo int) ([]model.ColSpec, *StructureError) {
	specs := make([]model.ColSpec, 0, len(bounds)-1)
	total := 0
	for c := 0; c+1 < len(bounds); c++ {
		seg := line[bounds[c]+1 : bounds[c+1]]
		if len(seg) == 0 {
			return nil, &StructureError{Line: lineNo, Msg: "opening border has an empty column segment"}
		}
		body := seg
		left := body[0] == ':'
		if left {
			body = body[1:]
		}
		right := len(body) > 0 && body[len(body)-1] == ':'
		if right {
			body = body[:len(body)-1]
		}
		if body == "" || strings.Count(body, "-") != len(body) {
			return nil, &StructureError{Line: lineNo, Msg: "opening border must be dashes between column corners"}
		}
		align := model.AlignDefault
		switch {
		case left && right:
			align = model.AlignCenter
		case left:
			align = model.AlignLeft
		case right:
			align = model.AlignRight
		}
		specs = append(specs, model.ColSpec{Align: align, Width: float64(len(seg))})
		total += len(seg)
	}
	for k := range specs {
		specs[k].Width /= float64(total)
	}
	return specs, nil
}

type borderKind int

const (
	borderDash borderKind = iota
	borderEqual
)

type borderInfo struct {
	kind  borderKind
	fills []byte // per column: '-', '=', or ' '
}

func (b *borderInfo) hasOpen() bool {
	for _, f := range b.fills {
		if f == ' ' {
			return true
		}
	}
	return false
}

type regionParser struct {
	bounds   []int
	nCols    int
	rows     []*GridRow
	headRows int // row count at the = separator, -1 when none seen

	// carry holds, per column, the cell left open by the previous border.
	carry []*GridCell

	group *rowGroup
}

type rowGroup struct {
	closed []int // boundary indices where the group's lines carry |
	slots  []*slotAccum
}

type slotAccum struct {
	from, to int // boundary indices delimiting the slot
	lines    []string
}

func (p *regionParser) rightEdge() int {
	return p.bounds[p.nCols]
}

// parseBorder classifies a border line column by column. Interior corners
// may be omitted where the fill runs straight through.
func (p *regionParser) parseBorder(line string, lineNo int) (*borderInfo, *StructureError) {
	if len(line) != p.rightEdge()+1 {
		return nil, &StructureError{Line: lineNo, Msg: "border line does not reach the table edge"}
	}
	if line[p.bounds[0]] != '+' || line[p.rightEdge()] != '+' {
		return nil, &StructureError{Line: lineNo, Msg: "border line must start and end with a corner"}
	}

	fills := make([]byte, p.nCols)
	for c := 0; c < p.nCols; c++ {
		fill, ok := segmentFill(line[p.bounds[c]+1 : p.bounds[c+1]])
		if !ok {
			return nil, &StructureError{Line: lineNo, Msg: "border segment mixes fill characters"}
		}
		fills[c] = fill
	}
	for c := 1; c < p.nCols; c++ {
		ch := line[p.bounds[c]]
		if ch == '+' {
			continue
		}
		if ch != fills[c-1] || fills[c-1] != fills[c] {
			return nil, &StructureError{Line: lineNo, Msg: "misaligned corner marker on border line"}
		}
	}

	dashes, equals := 0, 0
	for _, f := range fills {
		switch f {
		case '-':
			dashes++
		case '=':
			equals++
		}
	}
	if equals > 0 && equals < p.nCols {
		return nil, &StructureError{Line: lineNo, Msg: "header separator cannot mix with dashes or open segments"}
	}
	kind := borderDash
	if equals > 0 {
		kind = borderEqual
	}
	return &borderInfo{kind: kind, fills: fills}, nil
}

// segmentFill classifies a border segment as dash, equals, or open space.
// Colon alignment markers may cap a dash or equals run.
func segmentFill(seg string) (byte, bool) {
	if len(seg) == 0 {
		return 0, false
	}
	body := seg
	if body[0] == ':' {
		body = body[1:]
	}
	if len(body) > 0 && body[len(body)-1] == ':' {
		body = body[:len(body)-1]
	}
	if len(body) == 0 {
		return 0, false
	}
	fill := body[0]
	if fill != '-' && fill != '=' && fill != ' ' {
		return 0, false
	}
	for k := 1; k < len(body); k++ {
		if body[k] != fill {
			return 0, false
		}
	}
	if fill == ' ' && len(body) != len(seg) {
		return 0, false
	}
	return fill, true
}

// addContentLine records one source line of the current row group
func (p *regionParser) addContentLine(line string, lineNo int) *StructureError {
	if line[p.rightEdge()] != '|' {
		return &StructureError{Line: lineNo, Msg: "cell line does not close at the table edge"}
	}

	closed := make([]int, 0, p.nCols+1)
	for c := 0; c <= p.nCols; c++ {
		if line[p.bounds[c]] == '|' {
			closed = append(closed, c)
		}
	}

	if p.group == nil {
		slots := make([]*slotAccum, 0, len(closed)-1)
		for k := 0; k+1 < len(closed); k++ {
			slots = append(slots, &slotAccum{from: closed[k], to: closed[k+1]})
		}
		p.group = &rowGroup{closed: closed, slots: slots}
	} else if !equalInts(p.group.closed, closed) {
		return &StructureError{Line: lineNo, Msg: "cell walls do not line up with the first line of the row"}
	}

	for _, s := range p.group.slots {
		s.lines = append(s.lines, strings.TrimSpace(line[p.bounds[s.from]+1:p.bounds[s.to]]))
	}
	return nil
}

// closeGroup turns the accumulated row group into a GridRow and applies the
// border that ended it: equals separators split head from body, open
// segments extend row spans into the next group.
func (p *regionParser) closeGroup(b *borderInfo, lineNo int) *StructureError {
	if p.group == nil {
		return &StructureError{Line: lineNo, Msg: "empty row group between borders"}
	}

	row := &GridRow{}
	colCell := make([]*GridCell, p.nCols)
	for _, s := range p.group.slots {
		carried := p.carry[s.from]
		if carried != nil {
			// The open cell above must cover exactly this slot.
			for c := s.from; c < s.to; c++ {
				if p.carry[c] != carried {
					return &StructureError{Line: lineNo, Msg: "row span does not line up with cell walls"}
				}
			}
			if (s.from > 0 && p.carry[s.from-1] == carried) ||
				(s.to < p.nCols && p.carry[s.to] == carried) {
				return &StructureError{Line: lineNo, Msg: "row span does not line up with cell walls"}
			}
			if text := assembleText(s.lines); text != "" {
				if carried.Text != "" {
					carried.Text += " "
				}
				carried.Text += text
			}
			for c := s.from; c < s.to; c++ {
				colCell[c] = carried
			}
			continue
		}
		for c := s.from; c < s.to; c++ {
			if p.carry[c] != nil {
				return &StructureError{Line: lineNo, Msg: "row span does not line up with cell walls"}
			}
		}
		cell := &GridCell{
			Text:    assembleText(s.lines),
			ColSpan: s.to - s.from,
			RowSpan: 1,
		}
		row.Cells = append(row.Cells, cell)
		for c := s.from; c < s.to; c++ {
			colCell[c] = cell
		}
	}
	p.rows = append(p.rows, row)
	p.group = nil

	if b.kind == borderEqual {
		if p.headRows >= 0 {
			return &StructureError{Line: lineNo, Msg: "duplicate header separator"}
		}
		p.headRows = len(p.rows)
	}

	// An open segment must leave whole cells open, never part of one.
	for c := 1; c < p.nCols; c++ {
		if colCell[c] != nil && colCell[c] == colCell[c-1] {
			if (b.fills[c] == ' ') != (b.fills[c-1] == ' ') {
				return &StructureError{Line: lineNo, Msg: "row span splits a multi-column cell"}
			}
		}
	}

	newCarry := make([]*GridCell, p.nCols)
	seen := make(map[*GridCell]bool)
	for c := 0; c < p.nCols; c++ {
		if b.fills[c] != ' ' {
			continue
		}
		cell := colCell[c]
		if cell == nil {
			return &StructureError{Line: lineNo, Msg: "row span continues above the first row"}
		}
		newCarry[c] = cell
		if !seen[cell] {
			seen[cell] = true
			cell.RowSpan++
		}
	}
	p.carry = newCarry
	return nil
}

// assembleText joins a slot's source lines: consecutive lines join with a
// space, a blank line starts a new paragraph.
func assembleText(lines []string) string {
	var paras []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			paras = append(paras, strings.Join(cur, " "))
			cur = nil
		}
	}
	for _, ln := range lines {
		if ln == "" {
			flush()
			continue
		}
		cur = append(cur, ln)
	}
	flush()
	return strings.Join(paras, "\n\n")
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
