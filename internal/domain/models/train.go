package models

// FareClass is the service tier of a coach. Each class has its own
// price and seat pool per train.
type FareClass string

const (
	FirstAC  FareClass = "1st-ac"
	SecondAC FareClass = "2nd-ac"
	ThirdAC  FareClass = "3rd-ac"
	Sleeper  FareClass = "sleeper"
	General  FareClass = "general"
)

// FareClasses lists all classes in display order.
var FareClasses = []FareClass{FirstAC, SecondAC, ThirdAC, Sleeper, General}

func (f FareClass) Valid() bool {
	switch f {
	case FirstAC, SecondAC, ThirdAC, Sleeper, General:
		return true
	}
	return false
}

// TrainService is one train on a route, owned by the catalog.
type TrainService struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Number    string              `json:"number"`
	Origin    string              `json:"origin"`
	Dest      string              `json:"destination"`
	Departure string              `json:"departure"` // HH:MM
	Arrival   string              `json:"arrival"`   // HH:MM
	Duration  string              `json:"duration"`  // e.g. "8h 30m"
	Fares     map[FareClass]Money `json:"fares"`
	Stops     []StationStop       `json:"stops,omitempty"`
}

// StationStop is one scheduled halt, used for running-status lookups.
type StationStop struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Arrival   string `json:"arrival"`   // HH:MM, "Source" for origin
	Departure string `json:"departure"` // HH:MM, "Destination" for terminus
	Distance  int    `json:"distance_km"`
}
