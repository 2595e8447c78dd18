package main

import "stagematch_backend/internal/app"

func main() {
	app.Run()
}
