// Package main is the entry point for the tvscout application.
package main

import (
	"github.com/samber/lo"
	"github.com/tvscout-cli/tvscout/cmd"
	"github.com/tvscout-cli/tvscout/config"
	"github.com/tvscout-cli/tvscout/internal/cache"
	"github.com/tvscout-cli/tvscout/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background pruning of expired page caches.
	go cache.CollectGarbage()

	cmd.Execute()
}
