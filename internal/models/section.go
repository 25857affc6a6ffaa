package models

// SectionType categorizes how a section admits attendees
type SectionType string

const (
	SectionSeated   SectionType = "SEATED"
	SectionStanding SectionType = "STANDING"
	SectionVIP      SectionType = "VIP"
	SectionBox      SectionType = "BOX"
)

// Section is one sellable zone of a venue layout, with live availability
// counts as of the last seating-map fetch. Availability is advisory: the
// backend is authoritative at order time.
type Section struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      SectionType `json:"type"`
	Price     int         `json:"price"` // per ticket, in cents
	Color     string      `json:"color"`
	Capacity  int         `json:"capacity"`
	Available int         `json:"available"`
	Sold      int         `json:"sold"`
}

// SeatingMap is the section layout plus availability for one event
type SeatingMap struct {
	EventID    string    `json:"event_id"`
	VenueName  string    `json:"venue_name"`
	Sections   []Section `json:"sections"`
	TotalSeats int       `json:"total_seats"`
}

// SectionByID returns the section with the given ID, or nil
func (m *SeatingMap) SectionByID(id string) *Section {
	for i := range m.Sections {
		if m.Sections[i].ID == id {
			return &m.Sections[i]
		}
	}
	return nil
}
