package repositories

import (
	"context"
	"reflect"
	"regexp"
	"testing"
	"time"

	"smartcab/internal/domain"
	"smartcab/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBuildBookingListQueryNoFilters(t *testing.T) {
	query, countQuery, args, countArgs := buildBookingListQuery(models.BookingFilter{})

	if regexp.MustCompile(`WHERE`).MatchString(query) {
		t.Fatalf("no filters should produce no WHERE clause: %s", query)
	}
	if !regexp.MustCompile(`ORDER BY created_at DESC LIMIT \? OFFSET \?`).MatchString(query) {
		t.Fatalf("missing ordering/pagination: %s", query)
	}
	if !reflect.DeepEqual(args, []any{100, 0}) {
		t.Fatalf("default pagination args wrong: %v", args)
	}
	if len(countArgs) != 0 {
		t.Fatalf("count query must not be paginated: %v", countArgs)
	}
	if regexp.MustCompile(`LIMIT`).MatchString(countQuery) {
		t.Fatalf("count query carries LIMIT: %s", countQuery)
	}
}

func TestBuildBookingListQueryAllFilters(t *testing.T) {
	f := models.BookingFilter{
		BookingID:     "BK1A2B3C",
		UserID:        9,
		Status:        "pending",
		CustomerPhone: "0300123",
		Limit:         10,
		Offset:        20,
	}
	query, countQuery, args, countArgs := buildBookingListQuery(f)

	want := "WHERE booking_id = ? AND user_id = ? AND status = ? AND customer_phone = ?"
	if !regexp.MustCompile(regexp.QuoteMeta(want)).MatchString(query) {
		t.Fatalf("filter clause wrong: %s", query)
	}
	if !reflect.DeepEqual(args, []any{"BK1A2B3C", int64(9), "pending", "0300123", 10, 20}) {
		t.Fatalf("args wrong: %v", args)
	}
	if !reflect.DeepEqual(countArgs, []any{"BK1A2B3C", int64(9), "pending", "0300123"}) {
		t.Fatalf("count args wrong: %v", countArgs)
	}
	if !regexp.MustCompile(regexp.QuoteMeta(want)).MatchString(countQuery) {
		t.Fatalf("count clause wrong: %s", countQuery)
	}
}

func bookingRows(created time.Time, ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "booking_id", "user_id", "customer_name", "customer_phone",
		"pickup_location", "dropoff_location", "ride_date", "ride_time",
		"car_type", "additional_notes", "status", "created_at",
	})
	for i, id := range ids {
		rows.AddRow(int64(i+1), id, int64(0), "Ali", "0300123",
			"Main St 5", "Airport", "2025-06-20", "10:00:00",
			"sedan", "", "pending", created)
	}
	return rows
}

func TestBookingRepositoryListScansRowsAndTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 6, 15, 9, 30, 0, 0, time.Local)
	mock.ExpectQuery("FROM bookings ORDER BY created_at DESC").
		WillReturnRows(bookingRows(created, "BKAAAAAA", "BKBBBBBB"))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := BookingRepository{DB: db, Timeout: time.Second}
	bookings, total, err := repo.List(context.Background(), models.BookingFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("got %d bookings, want 2", len(bookings))
	}
	if total != 7 {
		t.Fatalf("got total %d, want 7", total)
	}
	if bookings[0].BookingID != "BKAAAAAA" {
		t.Fatalf("first booking id %q", bookings[0].BookingID)
	}
	if bookings[0].CreatedAt != "2025-06-15 09:30:00" {
		t.Fatalf("created_at formatting wrong: %q", bookings[0].CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepositoryUpdateFieldsAllowList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	status := "cancelled"
	notes := "gate 3"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = ?, additional_notes = ? WHERE booking_id = ?")).
		WithArgs("cancelled", "gate 3", "BKAAAAAA").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepository{DB: db, Timeout: time.Second}
	err = repo.UpdateFields(context.Background(), "BKAAAAAA", models.BookingUpdate{
		Status:          &status,
		AdditionalNotes: &notes,
	})
	if err != nil {
		t.Fatalf("UpdateFields returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepositoryUpdateFieldsEmpty(t *testing.T) {
	repo := BookingRepository{}
	err := repo.UpdateFields(context.Background(), "BKAAAAAA", models.BookingUpdate{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookingRepositoryDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM bookings").
		WithArgs("BKMISSING").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db, Timeout: time.Second}
	err = repo.Delete(context.Background(), "BKMISSING")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepositorySearchByRoute(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 6, 15, 9, 30, 0, 0, time.Local)
	mock.ExpectQuery("pickup_location LIKE").
		WithArgs("Main St", "%Main St%", "Airport", "%Airport%", searchLimit).
		WillReturnRows(bookingRows(created, "BKAAAAAA"))

	repo := BookingRepository{DB: db, Timeout: time.Second}
	bookings, err := repo.SearchByRoute(context.Background(), "Main St", "Airport")
	if err != nil {
		t.Fatalf("SearchByRoute returned error: %v", err)
	}
	if len(bookings) != 1 || bookings[0].BookingID != "BKAAAAAA" {
		t.Fatalf("unexpected result: %+v", bookings)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
