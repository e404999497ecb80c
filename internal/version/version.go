// Package version reports build information and the migration conventions
// this build writes.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/satishbabariya/migconvert/internal/adapters/database"
	"github.com/satishbabariya/migconvert/internal/core/migration/synthesizer"
	"github.com/satishbabariya/migconvert/internal/repository"
)

// Set with -ldflags "-X github.com/satishbabariya/migconvert/internal/version.Version=...".
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Info describes a build of migconvert.
type Info struct {
	Version   string
	BuildDate string
	GitCommit string
	GoVersion string
	Platform  string

	// Dialects lists the databases the build can introspect.
	Dialects []database.SQLDialect
	// HistoryTable is the default ledger table.
	HistoryTable string
	// FilePattern is the name of a generated migration file.
	FilePattern string
}

// Get returns the running build's information. Without ldflags the module
// version and VCS revision embedded by `go install` are used.
func Get() Info {
	info := Info{
		Version:      Version,
		BuildDate:    BuildDate,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		Platform:     fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Dialects:     []database.SQLDialect{database.MySQL, database.PostgreSQL, database.SQLite, database.SQLServer},
		HistoryTable: repository.DefaultHistoryTable,
		FilePattern:  synthesizer.PrefixLayout + "_create_<table>_table" + synthesizer.Extension,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fromBuildInfo(bi)
	}
	return info
}

func (i *Info) fromBuildInfo(bi *debug.BuildInfo) {
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "unknown" {
				i.GitCommit = s.Value
			}
		case "vcs.time":
			if i.BuildDate == "unknown" {
				i.BuildDate = s.Value
			}
		}
	}
}

func (i Info) String() string {
	return fmt.Sprintf("migconvert %s (%s)", i.Version, i.Platform)
}

// FullString adds build metadata and the conventions generated files follow.
func (i Info) FullString() string {
	dialects := make([]string, len(i.Dialects))
	for n, d := range i.Dialects {
		dialects[n] = string(d)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "migconvert %s\n", i.Version)
	fmt.Fprintf(&b, "  commit:        %s\n", i.GitCommit)
	fmt.Fprintf(&b, "  built:         %s\n", i.BuildDate)
	fmt.Fprintf(&b, "  go:            %s %s\n", i.GoVersion, i.Platform)
	fmt.Fprintf(&b, "  dialects:      %s\n", strings.Join(dialects, ", "))
	fmt.Fprintf(&b, "  history table: %s\n", i.HistoryTable)
	fmt.Fprintf(&b, "  file name:     %s", i.FilePattern)
	return b.String()
}
