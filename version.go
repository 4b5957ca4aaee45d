package main

// Set with -ldflags "-X main.Version=v1.2.3 -X main.GitCommit=... -X main.BuildDate=..."
var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = "" // RFC3339
)
