package main

import "github.com/Eursukkul/roomescape-service/cmd"

func main() {
	cmd.Execute()
}
