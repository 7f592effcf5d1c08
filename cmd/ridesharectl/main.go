package main

import "github.com/spec-kit/rideshare-client/cmd/ridesharectl/command"

func main() {
	command.Execute()
}
