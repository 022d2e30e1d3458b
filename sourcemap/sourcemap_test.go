package sourcemap

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestAddOriginAppend(t *testing.T) {
	var sm SourceMap
	start := sm.AddOrigin("main.scad", "x = 5;\n", -1, 0, 1, 1, false)
	assert.Equal(t, 0, start)
	assert.Equal(t, "x = 5;\n", sm.GetCombinedString())
}

func TestAddOriginAppendTwice(t *testing.T) {
	var sm SourceMap
	sm.AddOrigin("a.scad", "aaa", -1, 0, 1, 1, false)
	second := sm.AddOrigin("b.scad", "bbb", -1, 0, 1, 1, false)
	assert.Equal(t, 3, second)
	assert.Equal(t, "aaabbb", sm.GetCombinedString())
}

func TestGetLocation(t *testing.T) {
	var sm SourceMap
	sm.AddOrigin("main.scad", "x = 5;\ny = 6;\n", -1, 0, 1, 1, false)

	loc, err := sm.GetLocation(0)
	assert.NoError(t, err)
	assert.Equal(t, "main.scad", loc.File)
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 1, loc.Column)

	loc2, err := sm.GetLocation(7) // start of "y = 6;"
	assert.NoError(t, err)
	assert.Equal(t, 2, loc2.Line)
	assert.Equal(t, 1, loc2.Column)
}

func TestGetLocationOutOfRange(t *testing.T) {
	var sm SourceMap
	sm.AddOrigin("main.scad", "abc", -1, 0, 1, 1, false)
	_, err := sm.GetLocation(100)
	assert.Error(t, err)
}

func TestInsertAtSplicesAndShifts(t *testing.T) {
	var sm SourceMap
	sm.AddOrigin("main.scad", "before after", -1, 0, 1, 1, false)
	sm.AddOrigin("lib.scad", "MID", 7, 0, 1, 1, false)

	assert.Equal(t, "before MIDafter", sm.GetCombinedString())
}

func TestReplaceLengthCoversIncludeDirective(t *testing.T) {
	var sm SourceMap
	sm.AddOrigin("main.scad", "a();\ninclude_directive\nb();\n", -1, 0, 1, 1, false)
	// replace "include_directive" (offsets 5..22, length 17) with library content
	sm.AddOrigin("lib.scad", "c();", 5, 17, 1, 1, false)

	assert.Equal(t, "a();\nc();\nb();\n", sm.GetCombinedString())
}

func TestReplaceTextStripTrailingNewlineAdvancesLine(t *testing.T) {
	var sm SourceMap
	sm.AddOrigin("main.scad", "include <lib.scad>\nm();\n", -1, 0, 1, 1, false)
	// replace "include <lib.scad>" (offsets 0..18, length 18) with lib content,
	// stripping the newline that follows so it isn't duplicated.
	sm.AddOrigin("lib.scad", "module m() {}", 0, 18, 1, 1, true)

	loc, err := sm.GetLocation(len(sm.GetCombinedString()) - len("m();\n"))
	assert.NoError(t, err)
	assert.Equal(t, "main.scad", loc.File)
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 1, loc.Column)
}

func TestGetSegmentsStableOrder(t *testing.T) {
	var sm SourceMap
	sm.AddOrigin("a.scad", "111", -1, 0, 1, 1, false)
	sm.AddOrigin("b.scad", "222", -1, 0, 1, 1, false)

	segs := sm.GetSegments()
	assert.Equal(t, 2, len(segs))
	assert.Equal(t, "a.scad", segs[0].Origin)
	assert.Equal(t, "b.scad", segs[1].Origin)
	assert.Equal(t, 0, segs[0].CombinedStart)
	assert.Equal(t, 3, segs[1].CombinedStart)
}
