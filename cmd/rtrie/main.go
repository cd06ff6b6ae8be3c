package main

import "github.com/dadrus/rtrie/cmd"

func main() {
	cmd.Execute()
}
