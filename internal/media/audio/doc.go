// Package audio holds the per-stream decisions of the cutting pipeline:
// whether each stream is stream-copied or decoded to an uncompressed
// fallback, and how selected streams map onto output files.
package audio
