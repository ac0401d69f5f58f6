package main

import "recipe-api/cmd"

func main() {
	cmd.Execute()
}
