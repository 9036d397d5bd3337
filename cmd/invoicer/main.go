package main

import "github.com/aalvaropc/invoicer/internal/cli"

func main() {
	cli.Execute()
}
