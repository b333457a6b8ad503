package main

import (
	"log"

	_ "ledger-core/docs"
	"ledger-core/internal/app"
)

// @title           Ledger Core API
// @version         1.0
// @description     In-memory account ledger: open accounts, read balances and history, transfer between accounts

// @host      localhost:8080
// @BasePath  /api/v1
func main() {
	app, err := app.NewApp()
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}

	if err := app.BuildLedgerLayer(); err != nil {
		log.Fatalf("failed to build ledger layer: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
