package main

import "github.com/markgate/markgate/cmd/markgate/cmd"

func main() {
	cmd.Execute()
}
