// Package tablestore persists timecode tables in a small SQLite database so
// the expensive VFR walk over a clip's frames is paid once per clip, not once
// per process. It implements the timecode.Store interface.
package tablestore
