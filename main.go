package main

import "github.com/Ramsey-B/fern/cmd"

func main() {
	cmd.Execute()
}
