package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/icalorie/icalorie-server/calorieservice"
)

func main() {
	if err := calorieservice.Run(); err != nil {
		log.Error().Err(err).Msg("calorie-service exited with error")
		os.Exit(1)
	}
}
