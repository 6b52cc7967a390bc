// Command scribe runs the article assistant as an HTTP API, an MCP server or an interactive chat.
package main

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	Execute()
}
