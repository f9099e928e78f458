package main

import "github.com/onlinefem/onlinefem/cmd"

func main() {
	cmd.Execute()
}
