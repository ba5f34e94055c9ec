package main

import "github.com/OpenTraceLab/OpenTraceDivider/cmd/otdiv/cmd"

func main() {
	cmd.Execute()
}
