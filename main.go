package main

import "github.com/qe-first/qedriver/pkg/cli"

func main() {
	cli.Execute()
}
