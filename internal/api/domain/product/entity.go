package product

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

type Product struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	Price        float64    `json:"price"`
	EventDate    *time.Time `json:"event_date"`
	Status       Status     `json:"status"`
	Slug         string     `json:"slug"`
	ImageURL     *string    `json:"image_url"`
	MaxQuantity  *int       `json:"max_quantity"`
	SoldQuantity int        `json:"sold_quantity"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsPurchasable reports whether the storefront may sell the product.
func (p Product) IsPurchasable() bool {
	return p.Status == StatusActive
}

// Availability renders "sold/max", or "unlimited" when there is no cap.
func (p Product) Availability() string {
	if p.MaxQuantity == nil {
		return "unlimited"
	}
	return strconv.Itoa(p.SoldQuantity) + "/" + strconv.Itoa(*p.MaxQuantity)
}

// Remaining returns how many tickets are left. ok is false for uncapped products.
func (p Product) Remaining() (remaining int, ok bool) {
	if p.MaxQuantity == nil {
		return 0, false
	}
	return max(*p.MaxQuantity-p.SoldQuantity, 0), true
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusSoldOut  Status = "sold_out"
	StatusUpcoming Status = "upcoming"
)

var AvailableStatuses = []Status{StatusActive, StatusInactive, StatusSoldOut, StatusUpcoming}

func NewStatus(raw string) (Status, error) {
	if slices.Contains(AvailableStatuses, Status(raw)) {
		return Status(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// Input is what an admin submits to create or edit a product.
type Input struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Price       float64    `json:"price"`
	EventDate   *time.Time `json:"event_date"`
	Status      Status     `json:"status"`
	Slug        string     `json:"slug"`
	ImageURL    *string    `json:"image_url"`
	MaxQuantity *int       `json:"max_quantity"`
}

// Normalize trims the input, fills the slug from the name when it is blank
// and validates the result.
func (in *Input) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Description = trimmedOrNil(in.Description)
	in.ImageURL = trimmedOrNil(in.ImageURL)

	if in.Status == "" {
		in.Status = StatusActive
	}

	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if _, err := NewStatus(string(in.Status)); err != nil {
		return err
	}
	if in.MaxQuantity != nil && *in.MaxQuantity <= 0 {
		return fmt.Errorf("%w: max_quantity must be positive", ErrValidation)
	}

	if in.Slug == "" {
		in.Slug = GenerateSlug(in.Name)
	} else {
		in.Slug = GenerateSlug(in.Slug)
	}
	if in.Slug == "" {
		return fmt.Errorf("%w: slug is empty", ErrValidation)
	}
	return nil
}

func (in Input) apply(p *Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.EventDate = in.EventDate
	p.Status = in.Status
	p.Slug = in.Slug
	p.ImageURL = in.ImageURL
	p.MaxQuantity = in.MaxQuantity
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
