// Package clip models the video clip metadata audiocut needs to derive
// frame-accurate audio timestamps: frame count, rational frame rate, and an
// optional lazy source of exact per-frame durations for VFR material.
package clip
