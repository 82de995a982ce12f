package main

import "tidynotes.com/tidynotes/cmd"

func main() {
	cmd.Execute()
}
