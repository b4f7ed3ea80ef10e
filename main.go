package main

import (
	"github.com/jgrimm/slotmap/cmd"
)

func main() {
	cmd.Execute()
}
