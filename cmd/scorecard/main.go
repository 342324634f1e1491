package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd(logrus.StandardLogger()).Execute(); err != nil {
		os.Exit(1)
	}
}
