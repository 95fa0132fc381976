package main

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionString() string {
	return version + "\n  commit: " + commit + "\n  built: " + date
}
