// Package timecode derives absolute per-frame start times for a clip and
// maps frame-index intervals onto precise timestamp ranges.
//
// A Table carries N+1 second offsets for an N-frame clip and can be built
// three ways: from a constant frame rate, from a v2 timecode file, or by
// accumulating exact per-frame duration fractions for VFR material. VFR
// builds are expensive (one pass over every frame), so Cache memoizes tables
// per clip fingerprint, optionally backed by a persistent store.
package timecode
