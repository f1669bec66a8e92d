package main

import "github.com/kamusis/postsearch/cmd"

func main() {
	cmd.Execute()
}
