package main

import (
	"github.com/sidkik/editsync/cmd"
	"github.com/sidkik/editsync/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
