package main

import "github.com/bandkon/kon/cmd/kon/cmd"

func main() {
	cmd.Execute()
}
