package main

import "github.com/hash-d/jmes/cmd"

func main() {
	cmd.Execute()
}
