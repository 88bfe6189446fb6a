package main

import (
	"github.com/afancontrol/afancontrol/cmd"
)

func main() {
	cmd.Execute()
}
