package main

import (
	"log"

	"github.com/eduardofuncao/pgenv/internal/config"
	"github.com/eduardofuncao/pgenv/internal/styles"
)

func main() {
	profiles, err := config.LoadProfiles(config.CfgFile)
	if err != nil {
		log.Fatal("Could not load config file: ", err)
	}
	styles.SetAccent(profiles.Style.Accent)

	NewApp(profiles).Run()
}
