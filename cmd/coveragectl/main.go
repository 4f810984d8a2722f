package main

import "github.com/Kamar-Folarin/coverage-monitor/cmd/coveragectl/cmd"

func main() {
	cmd.Execute()
}
