package main

import "github.com/processforge/bpmn-architect/cmd"

func main() {
	cmd.Execute()
}
