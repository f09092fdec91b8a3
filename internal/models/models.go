package models

import "github.com/jackc/pgx/v5/pgtype"

type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
	Role         string `db:"role"`
}

type Client struct {
	ID          int64  `db:"id_client" json:"id_client"`
	FullName    string `db:"full_name" json:"full_name" validate:"required,max=255"`
	DateOfBirth Date   `db:"date_of_birth" json:"date_of_birth"`
	Gender      string `db:"gender" json:"gender" validate:"required,max=10"`
	PhoneNumber string `db:"phone_number" json:"phone_number" validate:"required,max=20"`
}

type Review struct {
	ID           int64   `db:"id_reviews" json:"id_reviews"`
	ClientID     int64   `db:"id_client" json:"id_client" validate:"gt=0"`
	Rating       int     `db:"rating" json:"rating"`
	Comments     *string `db:"comments" json:"comments" validate:"omitempty,max=255"`
	DateOfReview Date    `db:"date_of_review" json:"date_of_review"`
}

type PaymentType struct {
	ID   int64  `db:"id_payment_types" json:"id_payment_types"`
	Name string `db:"name" json:"name" validate:"required,max=255"`
}

type Room struct {
	ID       int64  `db:"id_rooms" json:"id_rooms"`
	Capacity int    `db:"capacity" json:"capacity" validate:"gte=0"`
	Name     string `db:"name" json:"name" validate:"required,max=255"`
}

type Equipment struct {
	ID     int64  `db:"id_equipment" json:"id_equipment"`
	RoomID int64  `db:"id_rooms" json:"id_rooms" validate:"gt=0"`
	Name   string `db:"name" json:"name" validate:"required,max=255"`
}

type SportType struct {
	ID   int64  `db:"id_sport_types" json:"id_sport_types"`
	Name string `db:"name" json:"name" validate:"required,max=255"`
}

type Subscription struct {
	ID                 int64          `db:"id_subscriptions" json:"id_subscriptions"`
	TypeOfSubscription string         `db:"type_of_subscription" json:"type_of_subscription" validate:"required,max=255"`
	Price              pgtype.Numeric `db:"price" json:"price"`
}

type Purchased struct {
	ID                      int64 `db:"id_purchased" json:"id_purchased"`
	ClientID                int64 `db:"id_client" json:"id_client" validate:"gt=0"`
	SubscriptionID          int64 `db:"id_subscriptions" json:"id_subscriptions" validate:"gt=0"`
	PaymentTypeID           int64 `db:"id_payment_types" json:"id_payment_types" validate:"gt=0"`
	DateOfPayment           Date  `db:"date_of_payment" json:"date_of_payment"`
	DateOfSubscriptionStart Date  `db:"date_of_subscription_start" json:"date_of_subscription_start"`
	DateOfSubscriptionEnd   Date  `db:"date_of_subscription_end" json:"date_of_subscription_end"`
}

type Trainer struct {
	ID             int64  `db:"id_trainer" json:"id_trainer"`
	FullName       string `db:"full_name" json:"full_name" validate:"required,max=255"`
	DateOfBirth    Date   `db:"date_of_birth" json:"date_of_birth"`
	Experience     int    `db:"experience" json:"experience" validate:"gte=0"`
	Specialization string `db:"specialization" json:"specialization" validate:"required,max=255"`
}

type Schedule struct {
	ID          int64  `db:"id_schedule" json:"id_schedule"`
	TrainerID   int64  `db:"id_trainer" json:"id_trainer" validate:"gt=0"`
	RoomID      int64  `db:"id_rooms" json:"id_rooms" validate:"gt=0"`
	SportTypeID int64  `db:"id_sport_types" json:"id_sport_types" validate:"gt=0"`
	DayOfWeek   string `db:"day_of_week" json:"day_of_week" validate:"required,max=20"`
	Time        Clock  `db:"time" json:"time"`
}

type Record struct {
	ID           int64  `db:"id_records" json:"id_records"`
	PurchasedID  int64  `db:"id_purchased" json:"id_purchased" validate:"gt=0"`
	ScheduleID   int64  `db:"id_schedule" json:"id_schedule" validate:"gt=0"`
	DateOfRecord Date   `db:"date_of_record" json:"date_of_record"`
	Attendance   string `db:"attendance" json:"attendance" validate:"required,max=10"`
}

func (c Client) PrimaryKey() int64       { return c.ID }
func (r Review) PrimaryKey() int64       { return r.ID }
func (p PaymentType) PrimaryKey() int64  { return p.ID }
func (r Room) PrimaryKey() int64         { return r.ID }
func (e Equipment) PrimaryKey() int64    { return e.ID }
func (s SportType) PrimaryKey() int64    { return s.ID }
func (s Subscription) PrimaryKey() int64 { return s.ID }
func (p Purchased) PrimaryKey() int64    { return p.ID }
func (t Trainer) PrimaryKey() int64      { return t.ID }
func (s Schedule) PrimaryKey() int64     { return s.ID }
func (r Record) PrimaryKey() int64       { return r.ID }

// Decorated list rows. Parents are nil when the referenced row is missing.

type ReviewRow struct {
	Review
	Client *Client `json:"client"`
}

type EquipmentRow struct {
	Equipment
	Room *Room `json:"room"`
}

type PurchasedRow struct {
	Purchased
	Client       *Client       `json:"client"`
	Subscription *Subscription `json:"subscription"`
	PaymentType  *PaymentType  `json:"payment_type"`
}

type ScheduleRow struct {
	Schedule
	Trainer   *Trainer   `json:"trainer"`
	Room      *Room      `json:"room"`
	SportType *SportType `json:"sport_type"`
}

type RecordRow struct {
	Record
	Purchased *Purchased `json:"purchased"`
	Schedule  *Schedule  `json:"schedule"`
}
