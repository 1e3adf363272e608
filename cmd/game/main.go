package main

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/threadweaver/internal/client"
	"github.com/Garsondee/threadweaver/internal/config"
	"github.com/Garsondee/threadweaver/internal/game"
	"github.com/Garsondee/threadweaver/internal/store"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	saves := store.NewFileStore(settings.DataPath)
	seed := time.Now().UnixNano()
	if settings.HasSeed {
		seed = settings.Seed
	}
	sim := game.NewSim(game.WithPersistence(saves), game.WithRandSeed(seed))
	if err := saves.Err(); err != nil {
		log.Printf("save file %s: %v (starting from defaults)", saves.Path(), err)
	}

	ebiten.SetWindowTitle("Threadweaver")
	ebiten.SetWindowSize(settings.WindowW, settings.WindowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(client.New(sim, settings.WindowW, settings.WindowH, seed)); err != nil {
		log.Fatal(err)
	}
	if err := saves.Err(); err != nil {
		log.Printf("save file %s: %v", saves.Path(), err)
	}
}
