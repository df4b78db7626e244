package models

import (
	"errors"
	"time"
)

type ActivityType string

const (
	ActivityFree ActivityType = "free"
	ActivityPaid ActivityType = "paid"
)

var ErrInvalidPricing = errors.New("price must be zero for free activities and positive for paid ones")

type Activity struct {
	ID           string       `json:"id"`
	OrganizerID  string       `json:"organizerId"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Location     string       `json:"location"`
	Date         time.Time    `json:"date"`
	ActivityType ActivityType `json:"activityType"`
	Price        float64      `json:"price"`
	TotalSeats   int          `json:"totalSeats"`
	// AvailableSeats is nil until first initialised; nil means all seats are free.
	AvailableSeats *int       `json:"availableSeats"`
	Organizer      *Organizer `json:"organizer,omitempty"`
}

// Organizer is the public profile of an activity owner.
type Organizer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
}

// ValidatePricing is the single enforcement point of the free/paid price rule.
// Every storage write path calls it before persisting.
func (a *Activity) ValidatePricing() error {
	switch a.ActivityType {
	case ActivityFree:
		if a.Price != 0 {
			return ErrInvalidPricing
		}
	case ActivityPaid:
		if a.Price <= 0 {
			return ErrInvalidPricing
		}
	default:
		return ErrInvalidPricing
	}

	return nil
}

// Available returns the seats left, treating an uninitialised counter as full capacity.
func (a *Activity) Available() int {
	if a.AvailableSeats == nil {
		return a.TotalSeats
	}

	return *a.AvailableSeats
}

type ActivityPatch struct {
	Title        *string
	Description  *string
	Location     *string
	Date         *time.Time
	ActivityType *ActivityType
	Price        *float64
}

func (p ActivityPatch) Apply(a *Activity) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.ActivityType != nil {
		a.ActivityType = *p.ActivityType
	}
	if p.Price != nil {
		a.Price = *p.Price
	}
}
