package services

import (
	"context"
	"net/url"
	"regexp"
	"testing"
	"time"

	"gym-backend-go/internal/db"
	"gym-backend-go/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, "pgx"), mock
}

func clientColumns() []string {
	return []string{"id_client", "full_name", "date_of_birth", "gender", "phone_number"}
}

func TestCreateClientThenList(t *testing.T) {
	database, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO clients ("full_name", "date_of_birth", "gender", "phone_number") VALUES ($1, $2, $3, $4) RETURNING "id_client"`)).
		WithArgs("Ann Lee", "1990-01-01", "F", "555-0100").
		WillReturnRows(sqlmock.NewRows([]string{"id_client"}).AddRow(1))
	mock.ExpectCommit()

	values := url.Values{
		"full_name":     {"Ann Lee"},
		"date_of_birth": {"1990-01-01"},
		"gender":        {"F"},
		"phone_number":  {"555-0100"},
	}
	var id int64
	err := db.InTx(ctx, database, func(tx *sqlx.Tx) error {
		var err error
		id, err = clientsTable.Create(ctx, tx, values)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id_client", "full_name", "date_of_birth", "gender", "phone_number" FROM clients ORDER BY "id_client"`)).
		WillReturnRows(sqlmock.NewRows(clientColumns()).
			AddRow(1, "Ann Lee", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "F", "555-0100"))

	listed, err := clientsTable.List(ctx, database)
	require.NoError(t, err)
	rows, ok := listed.([]models.Client)
	require.True(t, ok)
	require.Len(t, rows, 1)
	require.Equal(t, int64(1), rows[0].ID)
	require.Equal(t, "Ann Lee", rows[0].FullName)
	require.Equal(t, "1990-01-01", rows[0].DateOfBirth.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewWithoutRatingInsertsNothing(t *testing.T) {
	database, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	values := url.Values{
		"id_client":      {"1"},
		"comments":       {"great"},
		"date_of_review": {"2024-05-01"},
	}
	err := db.InTx(ctx, database, func(tx *sqlx.Tx) error {
		_, err := reviewsTable.Create(ctx, tx, values)
		return err
	})
	serr, ok := AsServiceError(err)
	require.True(t, ok)
	require.Equal(t, KindValidation, serr.Kind)
	require.Equal(t, "Missing field: rating", serr.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsOverlongField(t *testing.T) {
	database, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	values := url.Values{
		"full_name":     {"Ann Lee"},
		"date_of_birth": {"1990-01-01"},
		"gender":        {"female-identifying"},
		"phone_number":  {"555-0100"},
	}
	err := db.InTx(ctx, database, func(tx *sqlx.Tx) error {
		_, err := clientsTable.Create(ctx, tx, values)
		return err
	})
	serr, ok := AsServiceError(err)
	require.True(t, ok)
	require.Equal(t, "Invalid value for field: gender", serr.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSubscriptionKeepsExactPrice(t *testing.T) {
	database, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO subscriptions ("type_of_subscription", "price") VALUES ($1, $2) RETURNING "id_subscriptions"`)).
		WithArgs("Monthly", "0.30").
		WillReturnRows(sqlmock.NewRows([]string{"id_subscriptions"}).AddRow(5))
	mock.ExpectCommit()

	err := db.InTx(ctx, database, func(tx *sqlx.Tx) error {
		_, err := subscriptionsTable.Create(ctx, tx, url.Values{"type_of_subscription": {"Monthly"}, "price": {"0,30"}})
		return err
	})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id_subscriptions", "type_of_subscription", "price" FROM subscriptions ORDER BY "id_subscriptions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id_subscriptions", "type_of_subscription", "price"}).
			AddRow(5, "Monthly", "0.30"))

	listed, err := subscriptionsTable.List(ctx, database)
	require.NoError(t, err)
	rows, ok := listed.([]models.Subscription)
	require.True(t, ok)
	require.Len(t, rows, 1)
	price, err := rows[0].Price.Value()
	require.NoError(t, err)
	require.Equal(t, "0.30", price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOverwritesAllFields(t *testing.T) {
	database, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM rooms WHERE "id_rooms" = $1 FOR UPDATE`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET "capacity" = $1, "name" = $2 WHERE "id_rooms" = $3`)).
		WithArgs(30, "Hall B", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.InTx(ctx, database, func(tx *sqlx.Tx) error {
		return roomsTable.Update(ctx, tx, 4, url.Values{"capacity": {"30"}, "name": {"Hall B"}})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	database, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM sport_types WHERE "id_sport_types" = $1 FOR UPDATE`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))
	mock.ExpectRollback()

	err := db.InTx(ctx, database, func(tx *sqlx.Tx) error {
		return sportTypesTable.Update(ctx, tx, 99, url.Values{"name": {"Yoga"}})
	})
	serr, ok := AsServiceError(err)
	require.True(t, ok)
	require.Equal(t, KindNotFound, serr.Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingRowWinsOverBadForm(t *testing.T) {
	database, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM rooms WHERE "id_rooms" = $1 FOR UPDATE`)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))
	mock.ExpectRollback()

	err := db.InTx(ctx, database, func(tx *sqlx.Tx) error {
		return roomsTable.Update(ctx, tx, 42, url.Values{"name": {"Gym"}})
	})
	serr, ok := AsServiceError(err)
	require.True(t, ok)
	require.Equal(t, KindNotFound, serr.Kind)
	require.Equal(t, "Room not found", serr.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExistingRowStillValidatesForm(t *testing.T) {
	database, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM rooms WHERE "id_rooms" = $1 FOR UPDATE`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectRollback()

	err := db.InTx(ctx, database, func(tx *sqlx.Tx) error {
		return roomsTable.Update(ctx, tx, 4, url.Values{"name": {"Gym"}})
	})
	serr, ok := AsServiceError(err)
	require.True(t, ok)
	require.Equal(t, KindValidation, serr.Kind)
	require.Equal(t, "Missing field: capacity", serr.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithDependentsIsConstraintViolation(t *testing.T) {
	database, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM clients WHERE "id_client" = $1`)).
		WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{
			Code:           "23503",
			ConstraintName: "reviews_id_client_fkey",
			Detail:         `Key (id_client)=(1) is still referenced from table "reviews".`,
		})
	mock.ExpectRollback()

	err := db.InTx(ctx, database, func(tx *sqlx.Tx) error {
		return clientsTable.Delete(ctx, tx, 1)
	})
	serr, ok := AsServiceError(err)
	require.True(t, ok)
	require.Equal(t, KindConstraint, serr.Kind)
	require.Contains(t, serr.Message, `still referenced from table "reviews"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRemovesRow(t *testing.T) {
	database, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM payment_types WHERE "id_payment_types" = $1`)).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.InTx(ctx, database, func(tx *sqlx.Tx) error {
		return paymentTypesTable.Delete(ctx, tx, 2)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingRowIsNotFound(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM trainers WHERE "id_trainer" = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id_trainer", "full_name", "date_of_birth", "experience", "specialization"}))

	_, err := trainersTable.Get(context.Background(), database, 5)
	serr, ok := AsServiceError(err)
	require.True(t, ok)
	require.Equal(t, "Trainer not found", serr.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListReviewsBatchesClientLookup(t *testing.T) {
	database, mock := newMockDB(t)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id_reviews", "id_client", "rating", "comments", "date_of_review" FROM reviews ORDER BY "id_reviews"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id_reviews", "id_client", "rating", "comments", "date_of_review"}).
			AddRow(1, 1, 5, "great", day).
			AddRow(2, 1, 4, nil, day).
			AddRow(3, 2, 3, "ok", day))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id_client", "full_name", "date_of_birth", "gender", "phone_number" FROM clients WHERE "id_client" IN ($1, $2)`)).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(clientColumns()).
			AddRow(1, "Ann Lee", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "F", "555-0100"))

	listed, err := reviewsTable.List(context.Background(), database)
	require.NoError(t, err)
	rows, ok := listed.([]models.ReviewRow)
	require.True(t, ok)
	require.Len(t, rows, 3)
	require.NotNil(t, rows[0].Client)
	require.Equal(t, "Ann Lee", rows[0].Client.FullName)
	require.Nil(t, rows[1].Comments)
	require.NotNil(t, rows[1].Client)
	require.Nil(t, rows[2].Client)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithoutRowsSkipsParentLookup(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM equipment ORDER BY "id_equipment"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id_equipment", "id_rooms", "name"}))

	listed, err := equipmentTable.List(context.Background(), database)
	require.NoError(t, err)
	require.Empty(t, listed.([]models.EquipmentRow))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateScheduleParsesClock(t *testing.T) {
	database, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO schedule ("id_trainer", "id_rooms", "id_sport_types", "day_of_week", "time") VALUES ($1, $2, $3, $4, $5) RETURNING "id_schedule"`)).
		WithArgs(int64(1), int64(2), int64(3), "Monday", "07:30:00").
		WillReturnRows(sqlmock.NewRows([]string{"id_schedule"}).AddRow(9))
	mock.ExpectCommit()

	var id int64
	err := db.InTx(ctx, database, func(tx *sqlx.Tx) error {
		var err error
		id, err = scheduleTable.Create(ctx, tx, url.Values{
			"id_trainer":     {"1"},
			"id_rooms":       {"2"},
			"id_sport_types": {"3"},
			"day_of_week":    {"Monday"},
			"time":           {"07:30"},
		})
		return err
	})
	require.NoError(t, err)
	require.Equal(t, int64(9), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogLookups(t *testing.T) {
	require.Len(t, Catalog, 11)

	resource, ok := LookupResource("payment_types")
	require.True(t, ok)
	require.Equal(t, "payment_type", resource.Singular())

	resource, ok = LookupSingular("purchased")
	require.True(t, ok)
	require.Equal(t, "purchased", resource.Name())

	_, ok = LookupResource("lockers")
	require.False(t, ok)
}
