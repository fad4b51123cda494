// cmd/seqindex/main.go
package main

import (
	"seqindex/internal/app"
	"seqindex/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
