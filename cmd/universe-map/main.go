package main

import (
	"github.com/Taiyi-94/prun-universe-map/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
