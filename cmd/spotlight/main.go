package main

import "github.com/maxw3st/spotlight/cmd"

func main() {
	cmd.Execute()
}
