package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/muhammadolammi/cvmatch/internal/logging"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		logging.Default().Error("command failed", "err", err)
		os.Exit(1)
	}
}
