// Package ffmpeg is the external media-toolkit client. It shells out to the
// ffmpeg and ffprobe binaries for stream probing, codec capability listing,
// segment extraction, concatenation, demuxing, and muxing.
//
// Every invocation goes through an injectable Executor so the pipeline can be
// tested without media files or binaries. Invocations are blocking and carry
// no internal timeout; callers needing bounded latency wrap the context.
package ffmpeg
