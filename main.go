package main

import "github.com/lepinkainen/foodmap/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
