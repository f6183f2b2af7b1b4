package main

import "github.com/lepinkainen/gameshelf/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
