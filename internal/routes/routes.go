package routes

const (
	Health = "/health"

	Apartments      = "/apartments/"
	Apartment       = "/apartment/{id:[0-9]+}/"
	ApartmentCreate = "/apartment/create/"
	ApartmentUpdate = "/apartment/update/{id:[0-9]+}/"
	ApartmentDelete = "/apartment/delete/{id:[0-9]+}/"

	Users      = "/users/"
	Agents     = "/agents/"
	Clients    = "/clients/"
	User       = "/user/{id:[0-9]+}/"
	UserCreate = "/user/create/"
	UserUpdate = "/user/update/{id:[0-9]+}/"
	UserDelete = "/user/delete/{id:[0-9]+}/"

	Buildings         = "/buildings/"
	Building          = "/building/{id:[0-9]+}/"
	BuildingCreate    = "/building/create/"
	BuildingUpdate    = "/building/update/{id:[0-9]+}/"
	BuildingDelete    = "/building/delete/{id:[0-9]+}/"
	BuildingApartment = "/building/{id:[0-9]+}/apartments/{apartment_id:[0-9]+}/"

	Contracts      = "/contracts/"
	Contract       = "/contract/{id:[0-9]+}/"
	ContractCreate = "/contract/create/"
	ContractUpdate = "/contract/update/{id:[0-9]+}/"
	ContractDelete = "/contract/delete/{id:[0-9]+}/"

	AuthUsers       = "/auth/users/"
	AuthMe          = "/auth/users/me/"
	AuthToken       = "/auth/token/"
	AuthTokenLogin  = "/auth/token/login/"
	AuthTokenLogout = "/auth/token/logout/"
)
