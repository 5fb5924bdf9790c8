package main

import (
	"github.com/AkashRanjanSaikia/Hotal-Booking-system/startup"
	"github.com/AkashRanjanSaikia/Hotal-Booking-system/startup/config"
)

func main() {
	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()
}
