package main

import "github.com/getmanga/getmanga/cmd"

func main() {
	cmd.Execute()
}
