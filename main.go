package main

import "go-consult/cmd"

func main() {
	cmd.Execute()
}
