// Package trim validates and resolves frame-indexed edit intervals. Callers
// supply half-open trims whose endpoints may be open (nil) or negative
// (offsets from the clip end); Normalize turns them into ordered positive
// frame pairs and reports adjacent-pair overlaps as non-fatal advisories.
package trim
