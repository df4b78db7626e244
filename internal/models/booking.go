package models

import "time"

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

type Booking struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	ActivityID    string        `json:"activityId"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	BookingStatus BookingStatus `json:"bookingStatus"`
	BookedAt      time.Time     `json:"bookedAt"`
}

// BookingDetails is a booking joined with the activity and the booking user.
type BookingDetails struct {
	Booking
	Activity BookedActivity `json:"activity"`
	User     BookedUser     `json:"user"`
}

type BookedActivity struct {
	Title        string       `json:"title"`
	Date         time.Time    `json:"date"`
	Location     string       `json:"location"`
	ActivityType ActivityType `json:"activityType"`
	Price        float64      `json:"price"`
}

type BookedUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
