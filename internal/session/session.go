// Package session tags one compiler invocation with a UUID, used both
// as the arena's debug label (internal/arena's Stats output) and as the
// build log's primary key (internal/buildlog), threading a single
// identity through one run of the pipeline.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one compile invocation from the moment the CLI
// parses its arguments to the moment it exits.
type Session struct {
	ID        uuid.UUID
	Started   time.Time
	SourceDir string
}

// New returns a Session with a fresh random ID and the current time as
// its start, for the given source directory (recorded for the build
// log's audit trail).
func New(sourceDir string) *Session {
	return &Session{
		ID:        uuid.New(),
		Started:   time.Now(),
		SourceDir: sourceDir,
	}
}

// Label returns the debug label to hand to arena.NewArena, combining
// the session id with its source directory.
func (s *Session) Label() string {
	return s.ID.String() + ":" + s.SourceDir
}

// Elapsed returns how long this session has been running.
func (s *Session) Elapsed() time.Duration {
	return time.Since(s.Started)
}
