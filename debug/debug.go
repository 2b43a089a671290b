package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Compare bool
	Inspect bool
	Sync    bool
	Merge   bool
	Load    bool
	Patch   bool
	Select  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Compare = boolEnv("CONFSYNC_DEBUG_COMPARE")
	d.Inspect = boolEnv("CONFSYNC_DEBUG_INSPECT")
	d.Sync = boolEnv("CONFSYNC_DEBUG_SYNC")
	d.Merge = boolEnv("CONFSYNC_DEBUG_MERGE")
	d.Load = boolEnv("CONFSYNC_DEBUG_LOAD")
	d.Patch = boolEnv("CONFSYNC_DEBUG_PATCH")
	d.Select = boolEnv("CONFSYNC_DEBUG_SELECT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Compare() bool {
	return d.Compare
}
func Inspect() bool {
	return d.Inspect
}
func Sync() bool {
	return d.Sync
}
func Merge() bool {
	return d.Merge
}
func Load() bool {
	return d.Load
}
func Patch() bool {
	return d.Patch
}
func Select() bool {
	return d.Select
}
