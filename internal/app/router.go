package app

import (
	"crypto/rsa"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/poofware/rental-service/internal/controllers"
	"github.com/poofware/rental-service/internal/middleware"
	"github.com/poofware/rental-service/internal/routes"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/rs/cors"
)

// NewRouter wires services and controllers onto the store and returns the
// CORS-wrapped handler for the whole API.
func NewRouter(a *App) http.Handler {
	cfg := a.Config
	store := a.Store

	// Services
	apartmentService := services.NewApartmentService(store.Apartments)
	userService := services.NewUserService(store.Users)
	buildingService := services.NewBuildingService(store.Buildings, store.Apartments)
	contractService := services.NewContractService(store.Contracts, store.Users, store.Apartments)
	authService := services.NewAuthService(store.Users, services.NewJWTService(cfg.RSAPrivateKey), cfg.TokenExpiry)

	// Controllers
	healthController := controllers.NewHealthController(a)
	apartmentController := controllers.NewApartmentController(apartmentService)
	userController := controllers.NewUserController(userService)
	buildingController := controllers.NewBuildingController(buildingService)
	contractController := controllers.NewContractController(contractService)
	authController := controllers.NewAuthController(authService)

	router := mux.NewRouter()

	// Public routes
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthUsers, authController.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthToken, authController.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthTokenLogin, authController.LoginHandler).Methods(http.MethodPost)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))
	secured.HandleFunc(routes.AuthMe, authController.MeHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AuthTokenLogout, authController.LogoutHandler).Methods(http.MethodPost)

	reads := router.NewRoute().Subrouter()
	reads.Use(authPolicy(cfg.LDFlag_RequireAuthForReads, cfg.RSAPublicKey))

	writes := router.NewRoute().Subrouter()
	writes.Use(authPolicy(cfg.LDFlag_RequireAuthForWrites, cfg.RSAPublicKey))

	// Apartments
	reads.HandleFunc(routes.Apartments, apartmentController.ListHandler).Methods(http.MethodGet)
	reads.HandleFunc(routes.Apartment, apartmentController.GetHandler).Methods(http.MethodGet)
	reads.HandleFunc(routes.ApartmentUpdate, apartmentController.GetHandler).Methods(http.MethodGet)
	writes.HandleFunc(routes.ApartmentCreate, apartmentController.CreateHandler).Methods(http.MethodPost)
	writes.HandleFunc(routes.ApartmentUpdate, apartmentController.ReplaceHandler).Methods(http.MethodPut)
	writes.HandleFunc(routes.ApartmentUpdate, apartmentController.PatchHandler).Methods(http.MethodPatch)
	writes.HandleFunc(routes.ApartmentDelete, apartmentController.DeleteHandler).Methods(http.MethodDelete)

	// Users
	reads.HandleFunc(routes.Users, userController.ListHandler).Methods(http.MethodGet)
	reads.HandleFunc(routes.Agents, userController.ListAgentsHandler).Methods(http.MethodGet)
	reads.HandleFunc(routes.Clients, userController.ListClientsHandler).Methods(http.MethodGet)
	reads.HandleFunc(routes.User, userController.GetHandler).Methods(http.MethodGet)
	reads.HandleFunc(routes.UserUpdate, userController.GetHandler).Methods(http.MethodGet)
	writes.HandleFunc(routes.UserCreate, userController.CreateHandler).Methods(http.MethodPost)
	writes.HandleFunc(routes.UserUpdate, userController.ReplaceHandler).Methods(http.MethodPut)
	writes.HandleFunc(routes.UserUpdate, userController.PatchHandler).Methods(http.MethodPatch)
	writes.HandleFunc(routes.UserDelete, userController.DeleteHandler).Methods(http.MethodDelete)

	// Buildings
	reads.HandleFunc(routes.Buildings, buildingController.ListHandler).Methods(http.MethodGet)
	reads.HandleFunc(routes.Building, buildingController.GetHandler).Methods(http.MethodGet)
	reads.HandleFunc(routes.BuildingUpdate, buildingController.GetHandler).Methods(http.MethodGet)
	writes.HandleFunc(routes.BuildingCreate, buildingController.CreateHandler).Methods(http.MethodPost)
	writes.HandleFunc(routes.BuildingUpdate, buildingController.ReplaceHandler).Methods(http.MethodPut)
	writes.HandleFunc(routes.BuildingUpdate, buildingController.PatchHandler).Methods(http.MethodPatch)
	writes.HandleFunc(routes.BuildingDelete, buildingController.DeleteHandler).Methods(http.MethodDelete)
	writes.HandleFunc(routes.BuildingApartment, buildingController.AddApartmentHandler).Methods(http.MethodPost)
	writes.HandleFunc(routes.BuildingApartment, buildingController.RemoveApartmentHandler).Methods(http.MethodDelete)

	// Contracts
	reads.HandleFunc(routes.Contracts, contractController.ListHandler).Methods(http.MethodGet)
	reads.HandleFunc(routes.Contract, contractController.GetHandler).Methods(http.MethodGet)
	reads.HandleFunc(routes.ContractUpdate, contractController.GetHandler).Methods(http.MethodGet)
	writes.HandleFunc(routes.ContractCreate, contractController.CreateHandler).Methods(http.MethodPost)
	writes.HandleFunc(routes.ContractUpdate, contractController.ReplaceHandler).Methods(http.MethodPut)
	writes.HandleFunc(routes.ContractUpdate, contractController.PatchHandler).Methods(http.MethodPatch)
	writes.HandleFunc(routes.ContractDelete, contractController.DeleteHandler).Methods(http.MethodDelete)

	allowedOrigins := []string{}
	if cfg.AppUrl != "" {
		allowedOrigins = append(allowedOrigins, cfg.AppUrl)
	}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return co.Handler(router)
}

func authPolicy(required bool, pub *rsa.PublicKey) mux.MiddlewareFunc {
	if required {
		return middleware.AuthMiddleware(pub)
	}
	return middleware.OptionalAuthMiddleware(pub)
}
