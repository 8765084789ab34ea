package main

import "github.com/notargets/gnuplot1d/cmd"

func main() {
	cmd.Execute()
}
