package services

import (
	"context"

	"gym-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

var clientsTable = &table[models.Client]{
	name: "clients", singular: "client", label: "Client",
	table: "clients", key: "id_client",
	fields: []FieldSpec{
		{Name: "full_name", Kind: KindText},
		{Name: "date_of_birth", Kind: KindDate},
		{Name: "gender", Kind: KindText},
		{Name: "phone_number", Kind: KindText},
	},
	bind: func(f *Form, id int64) models.Client {
		return models.Client{
			ID:          id,
			FullName:    f.String("full_name"),
			DateOfBirth: f.Date("date_of_birth"),
			Gender:      f.String("gender"),
			PhoneNumber: f.String("phone_number"),
		}
	},
}

var reviewsTable = &table[models.Review]{
	name: "reviews", singular: "review", label: "Review",
	table: "reviews", key: "id_reviews",
	fields: []FieldSpec{
		{Name: "id_client", Kind: KindRef, Ref: "clients"},
		{Name: "rating", Kind: KindInt},
		{Name: "comments", Kind: KindText, Optional: true},
		{Name: "date_of_review", Kind: KindDate},
	},
	bind: func(f *Form, id int64) models.Review {
		return models.Review{
			ID:           id,
			ClientID:     f.ID("id_client"),
			Rating:       f.Int("rating"),
			Comments:     f.OptionalString("comments"),
			DateOfReview: f.Date("date_of_review"),
		}
	},
	decorate: decorateReviews,
}

var paymentTypesTable = &table[models.PaymentType]{
	name: "payment_types", singular: "payment_type", label: "Payment type",
	table: "payment_types", key: "id_payment_types",
	fields: []FieldSpec{{Name: "name", Kind: KindText}},
	bind: func(f *Form, id int64) models.PaymentType {
		return models.PaymentType{ID: id, Name: f.String("name")}
	},
}

var roomsTable = &table[models.Room]{
	name: "rooms", singular: "room", label: "Room",
	table: "rooms", key: "id_rooms",
	fields: []FieldSpec{
		{Name: "capacity", Kind: KindInt},
		{Name: "name", Kind: KindText},
	},
	bind: func(f *Form, id int64) models.Room {
		return models.Room{ID: id, Capacity: f.Int("capacity"), Name: f.String("name")}
	},
}

var equipmentTable = &table[models.Equipment]{
	name: "equipment", singular: "equipment", label: "Equipment",
	table: "equipment", key: "id_equipment",
	fields: []FieldSpec{
		{Name: "id_rooms", Kind: KindRef, Ref: "rooms"},
		{Name: "name", Kind: KindText},
	},
	bind: func(f *Form, id int64) models.Equipment {
		return models.Equipment{ID: id, RoomID: f.ID("id_rooms"), Name: f.String("name")}
	},
	decorate: decorateEquipment,
}

var sportTypesTable = &table[models.SportType]{
	name: "sport_types", singular: "sport_type", label: "Sport type",
	table: "sport_types", key: "id_sport_types",
	fields: []FieldSpec{{Name: "name", Kind: KindText}},
	bind: func(f *Form, id int64) models.SportType {
		return models.SportType{ID: id, Name: f.String("name")}
	},
}

var subscriptionsTable = &table[models.Subscription]{
	name: "subscriptions", singular: "subscription", label: "Subscription",
	table: "subscriptions", key: "id_subscriptions",
	fields: []FieldSpec{
		{Name: "type_of_subscription", Kind: KindText},
		{Name: "price", Kind: KindDecimal},
	},
	bind: func(f *Form, id int64) models.Subscription {
		return models.Subscription{
			ID:                 id,
			TypeOfSubscription: f.String("type_of_subscription"),
			Price:              f.Decimal("price"),
		}
	},
}

var purchasedTable = &table[models.Purchased]{
	name: "purchased", singular: "purchased", label: "Purchase",
	table: "purchased", key: "id_purchased",
	fields: []FieldSpec{
		{Name: "id_client", Kind: KindRef, Ref: "clients"},
		{Name: "id_subscriptions", Kind: KindRef, Ref: "subscriptions"},
		{Name: "id_payment_types", Kind: KindRef, Ref: "payment_types"},
		{Name: "date_of_payment", Kind: KindDate},
		{Name: "date_of_subscription_start", Kind: KindDate},
		{Name: "date_of_subscription_end", Kind: KindDate},
	},
	bind: func(f *Form, id int64) models.Purchased {
		return models.Purchased{
			ID:                      id,
			ClientID:                f.ID("id_client"),
			SubscriptionID:          f.ID("id_subscriptions"),
			PaymentTypeID:           f.ID("id_payment_types"),
			DateOfPayment:           f.Date("date_of_payment"),
			DateOfSubscriptionStart: f.Date("date_of_subscription_start"),
			DateOfSubscriptionEnd:   f.Date("date_of_subscription_end"),
		}
	},
	decorate: decoratePurchased,
}

var trainersTable = &table[models.Trainer]{
	name: "trainers", singular: "trainer", label: "Trainer",
	table: "trainers", key: "id_trainer",
	fields: []FieldSpec{
		{Name: "full_name", Kind: KindText},
		{Name: "date_of_birth", Kind: KindDate},
		{Name: "experience", Kind: KindInt},
		{Name: "specialization", Kind: KindText},
	},
	bind: func(f *Form, id int64) models.Trainer {
		return models.Trainer{
			ID:             id,
			FullName:       f.String("full_name"),
			DateOfBirth:    f.Date("date_of_birth"),
			Experience:     f.Int("experience"),
			Specialization: f.String("specialization"),
		}
	},
}

var scheduleTable = &table[models.Schedule]{
	name: "schedule", singular: "schedule", label: "Schedule entry",
	table: "schedule", key: "id_schedule",
	fields: []FieldSpec{
		{Name: "id_trainer", Kind: KindRef, Ref: "trainers"},
		{Name: "id_rooms", Kind: KindRef, Ref: "rooms"},
		{Name: "id_sport_types", Kind: KindRef, Ref: "sport_types"},
		{Name: "day_of_week", Kind: KindText},
		{Name: "time", Kind: KindTime},
	},
	bind: func(f *Form, id int64) models.Schedule {
		return models.Schedule{
			ID:          id,
			TrainerID:   f.ID("id_trainer"),
			RoomID:      f.ID("id_rooms"),
			SportTypeID: f.ID("id_sport_types"),
			DayOfWeek:   f.String("day_of_week"),
			Time:        f.Clock("time"),
		}
	},
	decorate: decorateSchedule,
}

var recordsTable = &table[models.Record]{
	name: "records", singular: "record", label: "Record",
	table: "records", key: "id_records",
	fields: []FieldSpec{
		{Name: "id_purchased", Kind: KindRef, Ref: "purchased"},
		{Name: "id_schedule", Kind: KindRef, Ref: "schedule"},
		{Name: "date_of_record", Kind: KindDate},
		{Name: "attendance", Kind: KindText},
	},
	bind: func(f *Form, id int64) models.Record {
		return models.Record{
			ID:           id,
			PurchasedID:  f.ID("id_purchased"),
			ScheduleID:   f.ID("id_schedule"),
			DateOfRecord: f.Date("date_of_record"),
			Attendance:   f.String("attendance"),
		}
	},
	decorate: decorateRecords,
}

// Catalog is the static entity lookup, in dashboard order.
var Catalog = []Resource{
	clientsTable,
	reviewsTable,
	paymentTypesTable,
	roomsTable,
	equipmentTable,
	sportTypesTable,
	subscriptionsTable,
	purchasedTable,
	trainersTable,
	scheduleTable,
	recordsTable,
}

// LookupResource finds an entity by table name ("clients").
func LookupResource(name string) (Resource, bool) {
	for _, resource := range Catalog {
		if resource.Name() == name {
			return resource, true
		}
	}
	return nil, false
}

// LookupSingular finds an entity by the singular used in edit/add/delete
// routes ("client").
func LookupSingular(singular string) (Resource, bool) {
	for _, resource := range Catalog {
		if resource.Singular() == singular {
			return resource, true
		}
	}
	return nil, false
}

func ptrOrNil[T any](items map[int64]T, id int64) *T {
	item, ok := items[id]
	if !ok {
		return nil
	}
	return &item
}

func decorateReviews(ctx context.Context, q sqlx.QueryerContext, rows []models.Review) (interface{}, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ClientID)
	}
	clients, err := clientsTable.byKeys(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.ReviewRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ReviewRow{Review: row, Client: ptrOrNil(clients, row.ClientID)})
	}
	return out, nil
}

func decorateEquipment(ctx context.Context, q sqlx.QueryerContext, rows []models.Equipment) (interface{}, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.RoomID)
	}
	rooms, err := roomsTable.byKeys(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.EquipmentRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.EquipmentRow{Equipment: row, Room: ptrOrNil(rooms, row.RoomID)})
	}
	return out, nil
}

func decoratePurchased(ctx context.Context, q sqlx.QueryerContext, rows []models.Purchased) (interface{}, error) {
	clientIDs := make([]int64, 0, len(rows))
	subscriptionIDs := make([]int64, 0, len(rows))
	paymentTypeIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		clientIDs = append(clientIDs, row.ClientID)
		subscriptionIDs = append(subscriptionIDs, row.SubscriptionID)
		paymentTypeIDs = append(paymentTypeIDs, row.PaymentTypeID)
	}
	clients, err := clientsTable.byKeys(ctx, q, clientIDs)
	if err != nil {
		return nil, err
	}
	subscriptions, err := subscriptionsTable.byKeys(ctx, q, subscriptionIDs)
	if err != nil {
		return nil, err
	}
	paymentTypes, err := paymentTypesTable.byKeys(ctx, q, paymentTypeIDs)
	if err != nil {
		return nil, err
	}
	out := make([]models.PurchasedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.PurchasedRow{
			Purchased:    row,
			Client:       ptrOrNil(clients, row.ClientID),
			Subscription: ptrOrNil(subscriptions, row.SubscriptionID),
			PaymentType:  ptrOrNil(paymentTypes, row.PaymentTypeID),
		})
	}
	return out, nil
}

func decorateSchedule(ctx context.Context, q sqlx.QueryerContext, rows []models.Schedule) (interface{}, error) {
	trainerIDs := make([]int64, 0, len(rows))
	roomIDs := make([]int64, 0, len(rows))
	sportTypeIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		trainerIDs = append(trainerIDs, row.TrainerID)
		roomIDs = append(roomIDs, row.RoomID)
		sportTypeIDs = append(sportTypeIDs, row.SportTypeID)
	}
	trainers, err := trainersTable.byKeys(ctx, q, trainerIDs)
	if err != nil {
		return nil, err
	}
	rooms, err := roomsTable.byKeys(ctx, q, roomIDs)
	if err != nil {
		return nil, err
	}
	sportTypes, err := sportTypesTable.byKeys(ctx, q, sportTypeIDs)
	if err != nil {
		return nil, err
	}
	out := make([]models.ScheduleRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ScheduleRow{
			Schedule:  row,
			Trainer:   ptrOrNil(trainers, row.TrainerID),
			Room:      ptrOrNil(rooms, row.RoomID),
			SportType: ptrOrNil(sportTypes, row.SportTypeID),
		})
	}
	return out, nil
}

func decorateRecords(ctx context.Context, q sqlx.QueryerContext, rows []models.Record) (interface{}, error) {
	purchasedIDs := make([]int64, 0, len(rows))
	scheduleIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		purchasedIDs = append(purchasedIDs, row.PurchasedID)
		scheduleIDs = append(scheduleIDs, row.ScheduleID)
	}
	purchases, err := purchasedTable.byKeys(ctx, q, purchasedIDs)
	if err != nil {
		return nil, err
	}
	schedules, err := scheduleTable.byKeys(ctx, q, scheduleIDs)
	if err != nil {
		return nil, err
	}
	out := make([]models.RecordRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.RecordRow{
			Record:    row,
			Purchased: ptrOrNil(purchases, row.PurchasedID),
			Schedule:  ptrOrNil(schedules, row.ScheduleID),
		})
	}
	return out, nil
}
