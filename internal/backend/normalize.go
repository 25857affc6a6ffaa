package backend

import (
	"math"
	"time"

	"event-ticketing-frontend/internal/models"
)

// The backend's JSON is loosely typed in places: prices are decimals,
// event schedules arrive either as one RFC 3339 instant in startDate or
// split across startDate/startTime duals, and section prices alias
// between price and pricePerTicket. Everything is folded into the
// canonical models here, so nothing downstream sees a wire shape.

type eventWire struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	VenueName   string  `json:"venueName"`
	City        string  `json:"city"`
	ImageURL    string  `json:"imageUrl"`
	StartDate   string  `json:"startDate"`
	StartTime   string  `json:"startTime"`
	EndDate     string  `json:"endDate"`
	EndTime     string  `json:"endTime"`
	Status      string  `json:"status"`
	MinPrice    float64 `json:"minPrice"`
	MaxPrice    float64 `json:"maxPrice"`
}

type sectionWire struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Price          float64 `json:"price"`
	PricePerTicket float64 `json:"pricePerTicket"`
	Color          string  `json:"color"`
	Capacity       int     `json:"capacity"`
	Available      int     `json:"available"`
	Sold           int     `json:"sold"`
}

type seatingMapWire struct {
	EventID    string        `json:"eventId"`
	VenueName  string        `json:"venueName"`
	Sections   []sectionWire `json:"sections"`
	TotalSeats int           `json:"totalSeats"`
}

type orderWire struct {
	ID          string  `json:"id"`
	EventID     string  `json:"eventId"`
	EventTitle  string  `json:"eventTitle"`
	TicketCount int     `json:"ticketCount"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

type paymentWire struct {
	ID           string  `json:"id"`
	OrderID      string  `json:"orderId"`
	Provider     string  `json:"provider"`
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	ClientSecret string  `json:"clientSecret"`
	CheckoutURL  string  `json:"checkoutUrl"`
	PublicKey    string  `json:"publicKey"`
	ErrorMessage string  `json:"errorMessage"`
	CreatedAt    string  `json:"createdAt"`
	CompletedAt  string  `json:"completedAt"`
}

type ticketValidationWire struct {
	Valid        bool   `json:"valid"`
	TicketID     string `json:"ticketId"`
	EventTitle   string `json:"eventTitle"`
	SectionName  string `json:"sectionName"`
	AttendeeName string `json:"attendeeName"`
	Message      string `json:"message"`
	ValidatedAt  string `json:"validatedAt"`
}

// toCents converts a decimal money amount to integer minor units
func toCents(amount float64) int {
	return int(math.Round(amount * 100))
}

// fromCents converts integer minor units back to the decimal the backend expects
func fromCents(cents int) float64 {
	return float64(cents) / 100
}

// parseInstant resolves the startDate/startTime dual-field shape: a full
// RFC 3339 instant in date wins; otherwise date and clock are combined.
func parseInstant(date, clock string) time.Time {
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t
	}
	if clock != "" {
		if t, err := time.Parse("2006-01-02 15:04", date+" "+clock); err == nil {
			return t
		}
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t
	}
	return time.Time{}
}

func parseOptionalInstant(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}

func (w eventWire) normalize() models.Event {
	return models.Event{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Category:    w.Category,
		VenueName:   w.VenueName,
		City:        w.City,
		ImageURL:    w.ImageURL,
		StartsAt:    parseInstant(w.StartDate, w.StartTime),
		EndsAt:      parseInstant(w.EndDate, w.EndTime),
		Status:      models.EventStatus(w.Status),
		MinPrice:    toCents(w.MinPrice),
		MaxPrice:    toCents(w.MaxPrice),
	}
}

func (w sectionWire) normalize() models.Section {
	price := w.Price
	if price == 0 {
		price = w.PricePerTicket
	}
	return models.Section{
		ID:        w.ID,
		Name:      w.Name,
		Type:      models.SectionType(w.Type),
		Price:     toCents(price),
		Color:     w.Color,
		Capacity:  w.Capacity,
		Available: w.Available,
		Sold:      w.Sold,
	}
}

func (w seatingMapWire) normalize() models.SeatingMap {
	sections := make([]models.Section, 0, len(w.Sections))
	for _, s := range w.Sections {
		sections = append(sections, s.normalize())
	}
	return models.SeatingMap{
		EventID:    w.EventID,
		VenueName:  w.VenueName,
		Sections:   sections,
		TotalSeats: w.TotalSeats,
	}
}

func (w orderWire) normalize() models.Order {
	created := time.Time{}
	if t := parseOptionalInstant(w.CreatedAt); t != nil {
		created = *t
	}
	return models.Order{
		ID:          w.ID,
		EventID:     w.EventID,
		EventTitle:  w.EventTitle,
		TicketCount: w.TicketCount,
		TotalAmount: toCents(w.TotalAmount),
		Currency:    w.Currency,
		Status:      models.OrderStatus(w.Status),
		CreatedAt:   created,
	}
}

func (w paymentWire) normalize() models.Payment {
	created := time.Time{}
	if t := parseOptionalInstant(w.CreatedAt); t != nil {
		created = *t
	}
	return models.Payment{
		ID:           w.ID,
		OrderID:      w.OrderID,
		Provider:     models.PaymentProvider(w.Provider),
		Status:       models.PaymentStatus(w.Status),
		Amount:       toCents(w.Amount),
		Currency:     w.Currency,
		ClientSecret: w.ClientSecret,
		CheckoutURL:  w.CheckoutURL,
		PublicKey:    w.PublicKey,
		ErrorMessage: w.ErrorMessage,
		CreatedAt:    created,
		CompletedAt:  parseOptionalInstant(w.CompletedAt),
	}
}

func (w ticketValidationWire) normalize() models.TicketValidation {
	return models.TicketValidation{
		Valid:        w.Valid,
		TicketID:     w.TicketID,
		EventTitle:   w.EventTitle,
		SectionName:  w.SectionName,
		AttendeeName: w.AttendeeName,
		Message:      w.Message,
		ValidatedAt:  parseOptionalInstant(w.ValidatedAt),
	}
}
