package store

import "strings"

// ByID returns the store with the given identifier, or nil when absent.
func (d *Data) ByID(storeID string) *Store {
	for i := range d.Stores {
		if d.Stores[i].StoreID == storeID {
			return &d.Stores[i]
		}
	}
	return nil
}

// ByCity returns every store whose address city contains the given text,
// case-insensitively. This is the loose lookup the detail resolvers use;
// the view layer's city filter is an exact match and lives in pkg/view.
func (d *Data) ByCity(city string) []Store {
	needle := strings.ToLower(city)
	var out []Store
	for _, s := range d.Stores {
		if strings.Contains(strings.ToLower(s.Location.Address.City), needle) {
			out = append(out, s)
		}
	}
	return out
}

// WithFacility returns every store whose named boolean facility is set.
// Unknown facility names match nothing.
func (d *Data) WithFacility(facility string) []Store {
	var out []Store
	for _, s := range d.Stores {
		if hasFacility(s.Facilities, facility) {
			out = append(out, s)
		}
	}
	return out
}

func hasFacility(f Facilities, name string) bool {
	switch name {
	case "cookingStudio":
		return f.CookingStudio
	case "dryCleaning":
		return f.DryCleaning
	case "flowers":
		return f.Flowers
	case "kitchen":
		return f.Kitchen
	case "liquorService":
		return f.LiquorService
	case "pharmacy":
		return f.Pharmacy
	case "photoService":
		return f.PhotoService
	case "postOffice":
		return f.PostOffice
	case "selfCheckout":
		return f.SelfCheckout
	case "selfScan":
		return f.SelfScan
	case "wifi":
		return f.Wifi
	}
	return false
}

// Day returns the schedule entry for a weekday index (Sunday=0 .. Saturday=6).
func (h OpeningHours) Day(weekday int) OpeningHoursDay {
	switch weekday % 7 {
	case 0:
		return h.Sunday
	case 1:
		return h.Monday
	case 2:
		return h.Tuesday
	case 3:
		return h.Wednesday
	case 4:
		return h.Thursday
	case 5:
		return h.Friday
	default:
		return h.Saturday
	}
}
