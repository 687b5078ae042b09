package main

import "github.com/jsphweid/notesift/cmd"

func main() {
	cmd.Execute()
}
