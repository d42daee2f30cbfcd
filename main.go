package main

import "github.com/zjrosen/contactus/cmd"

// version is injected with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
