package main

import "tender-service/app"

func main() {
	app.Run()
}
