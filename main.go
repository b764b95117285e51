package main

import "github.com/notargets/vmmfluid/cmd"

func main() {
	cmd.Execute()
}
