package main

import "imgpipe/cmd"

func main() {
	cmd.Execute()
}
