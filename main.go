package main

import "github.com/twiced-technology-gmbh/deepsea/cmd"

func main() {
	cmd.Execute()
}
