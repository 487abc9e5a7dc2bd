package main

import (
	"os"

	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/cmd/valet/topics"
)

func main() {

	client.InitExitMessage()

	err := topics.Execute()

	msg := client.GetExitMessage()
	msg.Display(os.Stderr)

	if err != nil {
		os.Exit(1)
	}
}
