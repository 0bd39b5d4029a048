package main

import "shippertrip_backend/internal/app"

func main() {
	app.Run()
}
