package main

import "bitwise74/notes-api/cmd"

func main() {
	cmd.Execute()
}
