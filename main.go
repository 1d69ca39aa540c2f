package main

import "messmate/cmd"

func main() {
	cmd.Execute()
}
