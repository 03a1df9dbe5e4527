// Package reaper extracts track metadata from REAPER project (.RPP) files.
//
// Project files are line-oriented text without a formal grammar: blocks open
// with tags such as <TRACK or <ITEM and close with a lone ">" at or left of
// the opening indentation. The scanner walks the file once, tracking the
// current track block and item sub-block by indentation, and collects each
// track's GUID, name, peak color, and referenced source files.
//
// The scanner is deliberately forgiving. Real project files are large and
// hand-edited; unmatched markers, missing lookahead lines, and unparsable
// fields are absorbed with documented fallbacks instead of failing the
// parse. Only I/O errors are reported to the caller.
package reaper
