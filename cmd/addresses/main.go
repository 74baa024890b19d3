package main

import (
	"postaladdr/internal/addresses/handler"
	"postaladdr/internal/addresses/repository"
	"postaladdr/internal/addresses/service"
	"postaladdr/internal/addresses/validator"
	"postaladdr/pkg/app"
	"postaladdr/pkg/config"
)

const ServiceName = "addresses"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	addressValidator := validator.NewAddressValidator(cfg.Log)
	addressRepo := repository.NewMongoAddressRepository(cfg)
	addressService := service.NewAddressService(addressRepo, addressValidator, cfg)
	addressHandler := handler.NewAddressHandler(addressService, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(addressHandler)
	serverApp.Run()
}
