// Команда populate заполняет каталог демонстрационными категориями и товарами.
// Повторный запуск безопасен: при политике reuse существующие записи переиспользуются.
package main

import (
	"context"
	"os"
	"time"

	"github.com/ColdBlood237/odin-inventory/internal/app"
	config "github.com/ColdBlood237/odin-inventory/internal/cfg"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"github.com/google/uuid"
)

const seedTimeout = 30 * time.Second

type seedCategory struct {
	name        string
	description string
}

type seedItem struct {
	name        string
	description string
	price       string
	stock       string
	categories  []string
}

var categories = []seedCategory{
	{name: "Fantasy", description: "Magic, dragons and medieval worlds"},
	{name: "Science Fiction", description: "Space, robots and the far future"},
	{name: "Animes", description: "Japanese animation and manga"},
}

var items = []seedItem{
	{
		name:        "Berserk",
		description: "Dark fantasy manga by Kentaro Miura",
		price:       "14.99",
		stock:       "17",
		categories:  []string{"Animes"},
	},
	{
		name:        "Dragon",
		description: "A real dragon. Handle with care",
		price:       "150000",
		stock:       "1",
		categories:  []string{"Fantasy"},
	},
	{
		name:        "Darth Vader",
		description: "Dark Lord of the Sith, slightly used",
		price:       "2000000",
		stock:       "1",
		categories:  []string{"Science Fiction"},
	},
}

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

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	err = populate(ctx, application.CategoryUC(), application.ItemUC(), log)
	cancel()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), seedTimeout)
	defer closeCancel()
	if cerr := application.Close(closeCtx); cerr != nil {
		log.Warnf("shutdown: %v", cerr)
	}

	if err != nil {
		log.Errorf(err, "populate failed")
		os.Exit(1)
	}
	log.Infof("populate: done")
}

func populate(ctx context.Context, categoryUC usecase.CategoryUC, itemUC usecase.ItemUC, log logger.Logger) error {
	ids := make(map[string]uuid.UUID, len(categories))
	for _, c := range categories {
		res, err := categoryUC.Create(ctx, usecase.RawFields{
			usecase.FieldName:        {c.name},
			usecase.FieldDescription: {c.description},
		}, nil)
		if err != nil {
			return err
		}
		ids[c.name] = res.ID
		log.Infof("category %q: %s (existing=%t)", c.name, res.ID, res.Existing)
	}

	for _, it := range items {
		fields := usecase.RawFields{
			usecase.FieldName:        {it.name},
			usecase.FieldDescription: {it.description},
			usecase.FieldPrice:       {it.price},
			usecase.FieldStock:       {it.stock},
		}
		for _, name := range it.categories {
			fields[usecase.FieldCategories] = append(fields[usecase.FieldCategories], ids[name].String())
		}

		res, err := itemUC.Create(ctx, fields, nil)
		if err != nil {
			return err
		}
		log.Infof("item %q: %s (existing=%t)", it.name, res.ID, res.Existing)
	}

	return nil
}
