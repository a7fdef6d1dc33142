package main

import "github.com/OxfordCMS/ocmstoolkit/cmd"

func main() {
	cmd.Execute()
}
