// Package sourcemap stitches multiple source origins (files, synthetic
// buffers such as "<string>") into a single combined string while
// preserving the ability to map any offset in that combined string back
// to the (origin, line, column) it came from.
package sourcemap

import (
	"fmt"
	"sort"
	"strings"
)

// Position identifies a location within an original source origin.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

// SourceSegment is a contiguous run of one origin's content placed at
// CombinedStart within the combined string.
type SourceSegment struct {
	Origin        string
	Content       string
	CombinedStart int
	StartLine     int
	StartColumn   int
}

// CombinedEnd returns the exclusive end offset of the segment within the
// combined string.
func (s SourceSegment) CombinedEnd() int {
	return s.CombinedStart + len(s.Content)
}

// ErrOutOfRange is returned by GetLocation when an offset falls in a
// padding gap or beyond the combined string's length.
var ErrOutOfRange = fmt.Errorf("sourcemap: offset out of range")

// SourceMap is an ordered sequence of segments plus the string they
// combine into. The zero value is ready to use.
type SourceMap struct {
	segments []*SourceSegment
	combined string
	dirty    bool
}

// AddOrigin places origin's content into the combined string.
//
// insertAt, when >= 0, is the combined-string offset at which content is
// spliced; -1 appends after the current end. When replaceLength > 0, that
// many characters starting at insertAt are first removed from whatever
// segment(s) currently occupy that range -- used to cover an `include`
// directive's own text with the content it expands to. stripTrailingNewline
// drops a single leading '\n' from the content that followed the replaced
// range, avoiding a doubled blank line.
//
// Returns the combined_start at which origin was placed.
func (sm *SourceMap) AddOrigin(origin, content string, insertAt, replaceLength, startLine, startColumn int, stripTrailingNewline bool) int {
	if startLine == 0 {
		startLine = 1
	}
	if startColumn == 0 {
		startColumn = 1
	}

	if insertAt < 0 {
		insertAt = sm.end()
	}

	if replaceLength > 0 {
		sm.replaceText(insertAt, replaceLength, stripTrailingNewline)
	}

	seg := &SourceSegment{
		Origin:        origin,
		Content:       content,
		CombinedStart: insertAt,
		StartLine:     startLine,
		StartColumn:   startColumn,
	}
	sm.insertSegment(seg, insertAt, len(content))
	sm.dirty = true
	return seg.CombinedStart
}

func (sm *SourceMap) end() int {
	end := 0
	for _, seg := range sm.segments {
		if e := seg.CombinedEnd(); e > end {
			end = e
		}
	}
	return end
}

// insertSegment splits a segment that insertAt falls strictly inside,
// shifts every segment starting at or after insertAt to the right by
// length, then inserts seg in sorted order.
func (sm *SourceMap) insertSegment(seg *SourceSegment, insertAt, length int) {
	for _, existing := range sm.segments {
		rel := insertAt - existing.CombinedStart
		if rel <= 0 || rel >= len(existing.Content) {
			continue
		}
		head := existing.Content[:rel]
		tail := &SourceSegment{Origin: existing.Origin, Content: existing.Content[rel:], CombinedStart: insertAt,
			StartLine: existing.StartLine + strings.Count(head, "\n"), StartColumn: existing.StartColumn + rel}
		if nl := strings.LastIndex(head, "\n"); nl >= 0 {
			tail.StartColumn = rel - nl
		}
		existing.Content = head
		sm.segments = append(sm.segments, tail)
		break
	}

	for _, existing := range sm.segments {
		if existing.CombinedStart >= insertAt {
			existing.CombinedStart += length
		}
	}

	idx := len(sm.segments)
	for i, existing := range sm.segments {
		if existing.CombinedStart > seg.CombinedStart {
			idx = i
			break
		}
	}
	sm.segments = append(sm.segments, nil)
	copy(sm.segments[idx+1:], sm.segments[idx:])
	sm.segments[idx] = seg
}

// replaceText removes [startPos, startPos+length) from the combined string,
// splitting or trimming whichever segments overlap it, then shifts every
// later segment left by length.
func (sm *SourceMap) replaceText(startPos, length int, stripTrailingNewline bool) {
	if length <= 0 {
		return
	}
	endPos := startPos + length

	var kept []*SourceSegment
	var created []*SourceSegment

	for _, seg := range sm.segments {
		segStart := seg.CombinedStart
		segEnd := seg.CombinedEnd()

		if segStart >= endPos || segEnd <= startPos {
			kept = append(kept, seg)
			continue
		}

		replaceStartIn := max(0, startPos-segStart)
		replaceEndIn := min(len(seg.Content), endPos-segStart)

		before := seg.Content[:replaceStartIn]
		removedAndBefore := seg.Content[:replaceEndIn]
		after := seg.Content[replaceEndIn:]

		if before != "" {
			seg.Content = before
			kept = append(kept, seg)
		}

		if after != "" {
			lineAdjust := 0
			if stripTrailingNewline && strings.HasPrefix(after, "\n") {
				after = after[1:]
				lineAdjust = 1
			}
			if after == "" {
				continue
			}

			lineCount := strings.Count(removedAndBefore, "\n") + lineAdjust

			newSeg := &SourceSegment{
				Origin:        seg.Origin,
				Content:       after,
				CombinedStart: startPos,
			}
			switch {
			case lineAdjust == 1:
				// The stripped newline was itself the line break, so
				// after starts at column 1 on the new line.
				newSeg.StartLine = seg.StartLine + lineCount
				newSeg.StartColumn = 1
			case lineCount > 0:
				lastNL := strings.LastIndex(removedAndBefore, "\n")
				newSeg.StartLine = seg.StartLine + lineCount
				newSeg.StartColumn = len(removedAndBefore) - lastNL
			default:
				newSeg.StartLine = seg.StartLine
				newSeg.StartColumn = seg.StartColumn + len(removedAndBefore)
			}
			created = append(created, newSeg)
		}
	}

	kept = append(kept, created...)

	for _, seg := range kept {
		if seg.CombinedStart >= endPos {
			seg.CombinedStart -= length
		}
	}

	sm.segments = kept
}

// GetCombinedString returns the stitched buffer, padding gaps between
// segments with spaces so offsets stay meaningful.
func (sm *SourceMap) GetCombinedString() string {
	if sm.dirty {
		sm.rebuild()
	}
	return sm.combined
}

func (sm *SourceMap) rebuild() {
	if len(sm.segments) == 0 {
		sm.combined = ""
		sm.dirty = false
		return
	}

	sorted := make([]*SourceSegment, len(sm.segments))
	copy(sorted, sm.segments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CombinedStart < sorted[j].CombinedStart })

	var b strings.Builder
	pos := 0
	for _, seg := range sorted {
		if seg.CombinedStart > pos {
			b.WriteString(strings.Repeat(" ", seg.CombinedStart-pos))
			pos = seg.CombinedStart
		}
		b.WriteString(seg.Content)
		pos += len(seg.Content)
	}

	sm.combined = b.String()
	sm.dirty = false
}

// GetLocation maps an offset in the combined string back to its origin,
// line, and column, via binary search over segments ordered by
// CombinedStart.
func (sm *SourceMap) GetLocation(offset int) (Position, error) {
	sorted := sm.sortedSegments()
	if len(sorted) == 0 || offset < 0 {
		return Position{}, ErrOutOfRange
	}

	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].CombinedEnd() > offset
	})
	if idx == len(sorted) || offset < sorted[idx].CombinedStart {
		return Position{}, ErrOutOfRange
	}

	seg := sorted[idx]
	rel := offset - seg.CombinedStart
	prefix := seg.Content[:rel]

	line := seg.StartLine + strings.Count(prefix, "\n")
	column := seg.StartColumn + rel
	if nl := strings.LastIndex(prefix, "\n"); nl >= 0 {
		column = rel - nl
	}

	return Position{File: seg.Origin, Offset: offset, Line: line, Column: column}, nil
}

// GetSegments returns a stable-ordered snapshot of the segments, for
// debugging/inspection.
func (sm *SourceMap) GetSegments() []SourceSegment {
	sorted := sm.sortedSegments()
	out := make([]SourceSegment, len(sorted))
	for i, seg := range sorted {
		out[i] = *seg
	}
	return out
}

func (sm *SourceMap) sortedSegments() []*SourceSegment {
	sorted := make([]*SourceSegment, len(sm.segments))
	copy(sorted, sm.segments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CombinedStart < sorted[j].CombinedStart })
	return sorted
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
