package main

import "github.com/ironsheep/image-space-mcp/cmd/spacectl/cmd"

func main() {
	cmd.Execute()
}
