package main

import "github.com/forPelevin/fillercut/internal/cli"

func main() { cli.Main() }
