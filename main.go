package main

import "mangasio/cmd"

func main() {
	cmd.Execute()
}
