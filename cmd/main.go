package main

import (
	"pricenode/internal/app"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("pricenode exited with error")
	}
}
