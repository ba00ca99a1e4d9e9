package main

import "github.com/papapumpkin/gramsort/cmd"

func main() {
	cmd.Execute()
}
