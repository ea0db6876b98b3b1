// Package buildinfo reports how the running binary was built.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"strings"
)

var readBuildInfo = debug.ReadBuildInfo

// Info is the subset of the embedded build information shown by "version".
type Info struct {
	Version  string
	Revision string
	Dirty    bool
	Tags     string
}

func Read() Info {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return Info{Version: "dev"}
	}
	out := Info{Version: info.Main.Version}
	if out.Version == "" || out.Version == "(devel)" {
		out.Version = "dev"
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "-tags":
			out.Tags = setting.Value
		case "vcs.revision":
			out.Revision = setting.Value
		case "vcs.modified":
			out.Dirty = setting.Value == "true"
		}
	}
	return out
}

// String renders e.g. "v1.2.0 (abc1234-dirty, tags: netgo)".
func (i Info) String() string {
	var extra []string
	if i.Revision != "" {
		rev := i.Revision
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if i.Dirty {
			rev += "-dirty"
		}
		extra = append(extra, rev)
	}
	if i.Tags != "" {
		extra = append(extra, "tags: "+i.Tags)
	}
	if len(extra) == 0 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, strings.Join(extra, ", "))
}
