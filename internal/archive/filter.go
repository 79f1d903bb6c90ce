package archive

import (
	"hytalebackup/internal/worlds"
	"path"
	"strings"
)

// Options selects optional world content. It is copied into the worker when
// a transfer starts.
type Options struct {
	IncludeLogs    bool
	IncludeBackups bool
}

// Includes reports whether the entry at rel (slash separated, relative to the
// world root) belongs in the archive. Any "logs" or "backup" path segment
// excludes the entry unless the matching option is set.
func (o Options) Includes(rel string) bool {
	for _, segment := range strings.Split(path.Clean(rel), "/") {
		if segment == worlds.LogsDirName && !o.IncludeLogs {
			return false
		}
		if segment == worlds.BackupDirName && !o.IncludeBackups {
			return false
		}
	}
	return true
}
