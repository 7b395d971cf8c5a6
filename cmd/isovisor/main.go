package main

import "github.com/ivnamo/isoVisor/internal/cli"

func main() {
	cli.Execute()
}
