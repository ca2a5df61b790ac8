package main

import "github.com/ocflkit/ocflkit/cmd/ocflkit/cmd"

func main() {
	cmd.Execute()
}
