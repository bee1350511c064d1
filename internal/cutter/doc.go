// Package cutter orchestrates the segment pipeline: it normalizes trims,
// maps them to timestamps, extracts one segment per range, concatenates
// multiple segments through a manifest, and either renames the merged result
// to the destination or demuxes it into per-stream outputs. Every temporary
// artifact is registered when created and removed on every exit path.
package cutter
