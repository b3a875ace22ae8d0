package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Rink-Sense/internal/config"
	"github.com/Garsondee/Rink-Sense/internal/game"
)

func main() {
	cfg, err := config.ParseMatch(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	g, err := game.New(cfg.Options()...)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Rink Sense")
	ebiten.SetWindowSize(g.Size())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
