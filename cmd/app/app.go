package main

import (
	"os"

	"github.com/ColdBlood237/odin-inventory/internal/app"
	config "github.com/ColdBlood237/odin-inventory/internal/cfg"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
)

//	@title			Odin Inventory API
//	@version		1.0
//	@description	Каталог товаров и категорий с изображениями
//	@host			localhost:8080
//	@BasePath		/api/v1
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
