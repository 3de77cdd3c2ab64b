// Command seed fills MongoDB with users and bookings for trying out the review
// dashboard locally, and prints a bearer token for every seeded user.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"reviewdesk/config"
	"reviewdesk/database"
	"reviewdesk/models"
	"reviewdesk/utils"

	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	config.LoadConfig()

	// Initialize the database connection.
	database.InitDB()
	db := database.DB()
	userColl := db.Collection("users")
	bookingColl := db.Collection("bookings")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	defer func() {
		if err := database.Disconnect(context.Background()); err != nil {
			log.Printf("Failed to disconnect: %v", err)
		}
	}()

	// Clear existing seed data.
	for _, coll := range []string{"users", "bookings", "reviews"} {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", coll, err)
		}
	}

	names := []string{"alice", "bob", "carol", "dave"}
	now := time.Now()

	var users []interface{}
	for _, name := range names {
		users = append(users, models.User{
			ID:        "user-" + name,
			Username:  name,
			Email:     name + "@example.com",
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if _, err := userColl.InsertMany(ctx, users); err != nil {
		log.Fatalf("Failed to insert users: %v", err)
	}

	// Every user books every other user once; statuses and dates vary so that the
	// dashboard shows reviewable, not-yet-over and ineligible bookings.
	statuses := []string{
		models.BookingStatusCompleted,
		models.BookingStatusPaid,
		models.BookingStatusConfirmed,
		"Cancelled",
	}
	titles := []string{"Sea view flat", "Garden studio", "City loft", "Lake cabin"}

	var bookings []interface{}
	counter := 1
	for i, asker := range names {
		for j, offerer := range names {
			if i == j {
				continue
			}
			// Two in three bookings lie in the past.
			offset := -rand.Intn(30) - 1
			if counter%3 == 0 {
				offset = rand.Intn(14) + 1
			}
			start := 480 + 60*rand.Intn(8)
			bookings = append(bookings, models.Booking{
				ID:           fmt.Sprintf("booking-%d", counter),
				ListingID:    fmt.Sprintf("listing-%d", j+1),
				ListingTitle: titles[j%len(titles)],
				ProviderID:   "user-" + offerer,
				UserID:       "user-" + asker,
				Date:         now.AddDate(0, 0, offset).Format("2006-01-02"),
				Start:        start,
				End:          start + 120,
				Status:       statuses[rand.Intn(len(statuses))],
				CreatedAt:    now,
			})
			counter++
		}
	}

	insertResult, err := bookingColl.InsertMany(ctx, bookings)
	if err != nil {
		log.Fatalf("Failed to insert bookings: %v", err)
	}
	fmt.Printf("Inserted %d bookings\n", len(insertResult.InsertedIDs))

	for _, name := range names {
		token, err := utils.GenerateToken("user-"+name, name+"@example.com", 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to sign token for %s: %v", name, err)
		}
		fmt.Printf("%s: Bearer %s\n", name, token)
	}
}
