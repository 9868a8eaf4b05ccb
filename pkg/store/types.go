/*
Package store holds the store domain model and the dataset loading layer.

The dataset is one flat document of retail store locations, loaded fully at
startup and treated as immutable afterwards. JSON is the canonical format;
a msgpack binary form of the same document is supported for smaller deploys.

Field tags mirror the camelCase keys of the source document exactly so both
codecs round-trip without any mapping layer.
*/
package store

// Address is the postal address of a store location.
type Address struct {
	Street      string `json:"street" msgpack:"street"`
	HouseNumber string `json:"houseNumber" msgpack:"houseNumber"`
	PostalCode  string `json:"postalCode" msgpack:"postalCode"`
	City        string `json:"city" msgpack:"city"`
	State       string `json:"state" msgpack:"state"`
	CountryCode string `json:"countryCode" msgpack:"countryCode"`
}

// Location pairs coordinates with the postal address.
type Location struct {
	Latitude  float64 `json:"latitude" msgpack:"latitude"`
	Longitude float64 `json:"longitude" msgpack:"longitude"`
	Address   Address `json:"address" msgpack:"address"`
}

// Availability is an open-ended date interval for a commerce channel.
type Availability struct {
	StartsOn string `json:"startsOn" msgpack:"startsOn"`
	EndsOn   string `json:"endsOn" msgpack:"endsOn"`
}

// CommerceService is one named service channel and its availability window.
type CommerceService struct {
	Available    bool         `json:"available" msgpack:"available"`
	Availability Availability `json:"availability" msgpack:"availability"`
}

// Commerce groups the three service channels of a store.
type Commerce struct {
	InStore      CommerceService `json:"inStore" msgpack:"inStore"`
	HomeDelivery CommerceService `json:"homeDelivery" msgpack:"homeDelivery"`
	Collection   CommerceService `json:"collection" msgpack:"collection"`
}

// Facilities describes what a store location offers on site.
type Facilities struct {
	CookingStudio bool   `json:"cookingStudio" msgpack:"cookingStudio"`
	DryCleaning   bool   `json:"dryCleaning" msgpack:"dryCleaning"`
	Flowers       bool   `json:"flowers" msgpack:"flowers"`
	Kitchen       bool   `json:"kitchen" msgpack:"kitchen"`
	LiquorService bool   `json:"liquorService" msgpack:"liquorService"`
	LocationType  string `json:"locationType" msgpack:"locationType"`
	Parking       string `json:"parking" msgpack:"parking"`
	Pharmacy      bool   `json:"pharmacy" msgpack:"pharmacy"`
	PhotoService  bool   `json:"photoService" msgpack:"photoService"`
	PickUpType    string `json:"pickUpType" msgpack:"pickUpType"`
	PostOffice    bool   `json:"postOffice" msgpack:"postOffice"`
	SelfCheckout  bool   `json:"selfCheckout" msgpack:"selfCheckout"`
	SelfScan      bool   `json:"selfScan" msgpack:"selfScan"`
	Wifi          bool   `json:"wifi" msgpack:"wifi"`
}

// OpeningHoursDay is one weekday's open/close pair. Empty strings mean the
// store is closed that entire day.
type OpeningHoursDay struct {
	OpensAt  string `json:"opensAt" msgpack:"opensAt"`
	ClosesAt string `json:"closesAt" msgpack:"closesAt"`
}

// OpeningHours keys the weekly schedule by calendar weekday.
type OpeningHours struct {
	Monday    OpeningHoursDay `json:"monday" msgpack:"monday"`
	Tuesday   OpeningHoursDay `json:"tuesday" msgpack:"tuesday"`
	Wednesday OpeningHoursDay `json:"wednesday" msgpack:"wednesday"`
	Thursday  OpeningHoursDay `json:"thursday" msgpack:"thursday"`
	Friday    OpeningHoursDay `json:"friday" msgpack:"friday"`
	Saturday  OpeningHoursDay `json:"saturday" msgpack:"saturday"`
	Sunday    OpeningHoursDay `json:"sunday" msgpack:"sunday"`
}

// Store is one retail location. Records are immutable once loaded.
type Store struct {
	StoreID       string       `json:"storeId" msgpack:"storeId"`
	Name          string       `json:"name" msgpack:"name"`
	ComplexNumber int          `json:"complexNumber" msgpack:"complexNumber"`
	WebsiteURL    string       `json:"websiteURL" msgpack:"websiteURL"`
	Facilities    Facilities   `json:"facilities" msgpack:"facilities"`
	Commerce      Commerce     `json:"commerce" msgpack:"commerce"`
	Location      Location     `json:"location" msgpack:"location"`
	OpeningHours  OpeningHours `json:"openingHours" msgpack:"openingHours"`
}

// Data is the dataset document: the full store collection as a single batch.
type Data struct {
	Stores []Store `json:"stores" msgpack:"stores"`
}
