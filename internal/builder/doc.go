// Package builder writes a book's wiki pages to an output directory and removes
// them again.
//
// A build runs in fixed stages: load (manifest and topic graph), assets (copy
// each asset directory), special (write special pages) and topics (render and
// write every hierarchical topic). Every generated file starts with
// GeneratedMarker, which is how Clean tells generated files from hand-written
// ones. Any error aborts the run; files written before the failure stay on disk.
package builder
