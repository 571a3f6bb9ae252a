package main

import (
	"context"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/cli"
)

func main() {
	cli.Main(context.Background())
}
