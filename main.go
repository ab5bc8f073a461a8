package main

import "github.com/MrJinPro/SVOD/cmd"

func main() {
	cmd.Execute()
}
