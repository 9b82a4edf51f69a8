package models

import "time"

// RideStatusInProgress is the only status a ride ever has. There is no
// completion event, so rides never leave it.
const RideStatusInProgress = "in progress"

type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type City struct {
	Name string `json:"name"`
	Loc  Coord  `json:"loc"`
}

type Customer struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Driver struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Car       string `json:"car"`
	Available bool   `json:"available"`
}

type Ride struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"`
	DriverID   int       `json:"driver_id"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	DistanceKm float64   `json:"distance_km"`
	Price      float64   `json:"price"`
	Status     string    `json:"status"`
	MapPath    string    `json:"map"`
	CreatedAt  time.Time `json:"created_at"`
}
