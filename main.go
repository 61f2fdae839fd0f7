package main

import (
	"os"

	"github.com/linearmcp/linear-mcp-go/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
