package main

import (
	"fitcoach/config"
	"fitcoach/routes"
	"fitcoach/services"
	"fitcoach/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitMailer()
	services.InitStripe()

	r := routes.SetupRouter()
	r.Run(":8080")
}
