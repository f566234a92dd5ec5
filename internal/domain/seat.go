package domain

// AvailableSeats returns the hall's seat identifiers in row-major order with
// every booked identifier removed. It never returns nil.
func AvailableSeats(hall Hall, bookedSeats []string) []string {
	booked := make(map[string]struct{}, len(bookedSeats))
	for _, seat := range bookedSeats {
		booked[seat] = struct{}{}
	}

	available := make([]string, 0, hall.Rows*hall.SeatsPerRow)

	for _, seat := range hall.AllSeats() {
		if _, ok := booked[seat]; !ok {
			available = append(available, seat)
		}
	}

	return available
}
