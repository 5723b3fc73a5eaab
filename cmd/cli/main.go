package main

import "github.com/mat-analysis/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
