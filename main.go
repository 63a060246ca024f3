// Package main is the entry point for the unfold CLI.
package main

import "unfold.dev/pkg/unfold/cmd"

func main() {
	cmd.Execute()
}
